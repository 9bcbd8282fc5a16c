package gateways

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrBadPattern is returned for malformed glob patterns
var ErrBadPattern = doublestar.ErrBadPattern

// PathExpander expands glob patterns against the filesystem
// Supports ** for recursive matching
type PathExpander struct{}

// NewPathExpander creates a new path expander
func NewPathExpander() *PathExpander {
	return &PathExpander{}
}

// Expand returns every path matching pattern, in lexical order.
// Matches may include directories; callers filter them out.
func (e *PathExpander) Expand(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, nil
	}

	matches, err := doublestar.FilepathGlob(filepath.FromSlash(pattern))
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
	}

	return matches, nil
}
