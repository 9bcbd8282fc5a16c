package entities

import (
	"errors"
	"fmt"
	"strings"
)

// TargetSource identifies where the upload URL came from
type TargetSource string

// Upload target sources
const (
	TargetFromEvent TargetSource = "event"
	TargetFromInput TargetSource = "input"
)

// UploadTarget is the resolved release upload endpoint
type UploadTarget struct {
	URL    string
	Source TargetSource
}

// UploadError is a failure attached to one candidate path
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// UploadOutcome is the per-candidate result of a run
type UploadOutcome struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
	SHA256      string

	AssetID     int64
	DownloadURL string

	Skipped    bool
	SkipReason string

	Err error
}

// Failed reports whether the candidate failed
func (o *UploadOutcome) Failed() bool {
	return o.Err != nil
}

// RunReport contains the results of one upload run
type RunReport struct {
	RunID    string
	URL      string
	Uploaded []UploadOutcome
	Skipped  []UploadOutcome
	Failed   []UploadOutcome
}

// Add files an outcome under the matching bucket
func (r *RunReport) Add(o UploadOutcome) {
	switch {
	case o.Failed():
		r.Failed = append(r.Failed, o)
	case o.Skipped:
		r.Skipped = append(r.Skipped, o)
	default:
		r.Uploaded = append(r.Uploaded, o)
	}
}

// Err aggregates every failed outcome into one error, or nil when nothing failed
func (r *RunReport) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failed))
	for _, o := range r.Failed {
		errs = append(errs, &UploadError{Path: o.Path, Err: o.Err})
	}
	return fmt.Errorf("%d of %d uploads failed: %w",
		len(r.Failed), len(r.Failed)+len(r.Uploaded), errors.Join(errs...))
}

// Summary returns a human-readable summary of the run
func (r *RunReport) Summary() string {
	if r.URL == "" {
		return "No release URL; nothing uploaded"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Release: %s\nUploaded: %d  Skipped: %d  Failed: %d",
		r.URL, len(r.Uploaded), len(r.Skipped), len(r.Failed))
	for _, o := range r.Uploaded {
		fmt.Fprintf(&b, "\n  ✓ %s (%s, %d bytes)", o.Name, o.ContentType, o.Size)
	}
	for _, o := range r.Skipped {
		fmt.Fprintf(&b, "\n  - %s", o.SkipReason)
	}
	for _, o := range r.Failed {
		fmt.Fprintf(&b, "\n  ✗ %s: %v", o.Path, o.Err)
	}
	return b.String()
}
