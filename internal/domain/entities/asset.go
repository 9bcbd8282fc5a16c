// Package entities defines core domain models and data structures.
package entities

import (
	"crypto/sha256"
	"encoding/hex"
)

// DefaultContentType is used when no content type can be inferred from a file name
const DefaultContentType = "application/octet-stream"

// AssetFile is a local file read into memory and ready for upload
type AssetFile struct {
	Path        string
	Name        string // basename, registered as the asset name
	ContentType string
	Content     []byte
}

// Size returns the exact byte length of the content
func (a *AssetFile) Size() int64 {
	return int64(len(a.Content))
}

// SHA256 returns the hex-encoded SHA256 digest of the content
func (a *AssetFile) SHA256() string {
	sum := sha256.Sum256(a.Content)
	return hex.EncodeToString(sum[:])
}
