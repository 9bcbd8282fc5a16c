package entities

// ReleaseDescriptor is the release object of a release event payload
type ReleaseDescriptor struct {
	ID        int64  `json:"id"`
	TagName   string `json:"tag_name"`
	Name      string `json:"name"`
	HTMLURL   string `json:"html_url"`
	UploadURL string `json:"upload_url"`
}

// RunContext is the trigger context supplied by the host pipeline.
// Release is nil unless the run was triggered by a release event.
type RunContext struct {
	EventName string
	Release   *ReleaseDescriptor
}

// ReleaseUploadURL returns the release upload URL carried by the event, if any
func (c *RunContext) ReleaseUploadURL() string {
	if c == nil || c.Release == nil {
		return ""
	}
	return c.Release.UploadURL
}
