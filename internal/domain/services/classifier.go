// Package services implements domain business logic and use cases.
package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/release-assets/internal/domain/entities"
)

// Classifier resolves candidate paths against the filesystem
type Classifier struct {
	fsys fs.StatFS
}

// NewClassifier creates a classifier backed by the host filesystem
func NewClassifier() *Classifier {
	return &Classifier{}
}

// NewClassifierFS creates a classifier reading from fsys instead of the host filesystem
func NewClassifierFS(fsys fs.StatFS) *Classifier {
	return &Classifier{fsys: fsys}
}

// Classify trims path, checks that it denotes a regular file and reads it fully.
// Missing paths and non-regular files return an error wrapping ErrSkipped;
// any other filesystem error is returned as is.
func (c *Classifier) Classify(path string) (*entities.AssetFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty path: %w", ErrSkipped)
	}

	info, err := c.stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s does not exist: %w", path, ErrSkipped)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is a %s: %w", path, describeMode(info.Mode()), ErrSkipped)
	}

	content, err := c.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	name := filepath.Base(path)
	return &entities.AssetFile{
		Path:        path,
		Name:        name,
		ContentType: ContentTypeFor(name),
		Content:     content,
	}, nil
}

func (c *Classifier) stat(path string) (fs.FileInfo, error) {
	if c.fsys != nil {
		return c.fsys.Stat(filepath.ToSlash(path))
	}
	return os.Stat(path)
}

func (c *Classifier) readFile(path string) ([]byte, error) {
	if c.fsys != nil {
		return fs.ReadFile(c.fsys, filepath.ToSlash(path))
	}
	//nolint:gosec // G304: path is user-provided for upload
	return os.ReadFile(path)
}

func describeMode(m fs.FileMode) string {
	switch {
	case m.IsDir():
		return "directory"
	case m&fs.ModeSymlink != 0:
		return "symlink"
	case m&fs.ModeNamedPipe != 0:
		return "named pipe"
	case m&fs.ModeSocket != 0:
		return "socket"
	case m&fs.ModeDevice != 0:
		return "device"
	default:
		return "non-regular file"
	}
}
