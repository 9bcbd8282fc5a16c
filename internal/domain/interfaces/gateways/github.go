// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// ReleaseAsset represents an uploaded release asset
type ReleaseAsset struct {
	ID                 int64
	Name               string
	Label              string
	State              string
	ContentType        string
	Size               int64
	BrowserDownloadURL string
}

// FieldError is one entry of the structured error list GitHub returns on validation failures
type FieldError struct {
	Resource string `json:"resource,omitempty"`
	Field    string `json:"field,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

// APIError is a non-success response from the GitHub API
type APIError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("status %d", e.StatusCode)
	}
	if len(e.Errors) == 0 {
		return msg
	}
	detail, err := json.Marshal(e.Errors)
	if err != nil {
		return msg
	}
	return msg + " " + string(detail)
}

// HasCode reports whether any field error carries the given code (e.g. "already_exists")
func (e *APIError) HasCode(code string) bool {
	for _, fe := range e.Errors {
		if fe.Code == code {
			return true
		}
	}
	return false
}

// ReleaseGateway defines the release operations used for asset uploads
type ReleaseGateway interface {
	// UploadAsset uploads size bytes of content as a release asset named name
	UploadAsset(ctx context.Context, uploadURL, name, contentType string, content io.Reader, size int64) (*ReleaseAsset, error)
}
