// Package services defines interfaces for domain service contracts.
package services

import "github.com/ochairo/release-assets/internal/domain/entities"

// FileClassifier turns a candidate path into an uploadable asset
type FileClassifier interface {
	// Classify returns the asset for path, or an error wrapping ErrSkipped
	// when path does not denote a regular file
	Classify(path string) (*entities.AssetFile, error)
}
