package actions

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvent(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0600))
	return path
}

func TestLoadRunContext_Release(t *testing.T) {
	path := writeEvent(t, `{
  "action": "published",
  "release": {
    "id": 42,
    "tag_name": "v1.2.3",
    "name": "v1.2.3",
    "html_url": "https://github.com/o/r/releases/tag/v1.2.3",
    "upload_url": "https://uploads.github.com/repos/o/r/releases/42/assets{?name,label}"
  },
  "repository": {"full_name": "o/r"}
}`)

	action := newTestAction(io.Discard, map[string]string{
		"GITHUB_EVENT_NAME": "release",
		"GITHUB_EVENT_PATH": path,
	})

	runCtx, err := LoadRunContext(action)
	require.NoError(t, err)

	assert.Equal(t, "release", runCtx.EventName)
	require.NotNil(t, runCtx.Release)
	assert.Equal(t, int64(42), runCtx.Release.ID)
	assert.Equal(t, "v1.2.3", runCtx.Release.TagName)
	assert.Equal(t, "https://uploads.github.com/repos/o/r/releases/42/assets{?name,label}", runCtx.ReleaseUploadURL())
}

func TestLoadRunContext_NonReleaseEvent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"push", `{"ref":"refs/heads/main"}`},
		{"null release", `{"release":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := newTestAction(io.Discard, map[string]string{
				"GITHUB_EVENT_NAME": "push",
				"GITHUB_EVENT_PATH": writeEvent(t, tt.payload),
			})

			runCtx, err := LoadRunContext(action)
			require.NoError(t, err)
			assert.Nil(t, runCtx.Release)
			assert.Equal(t, "", runCtx.ReleaseUploadURL())
		})
	}
}

func TestLoadRunContext_NoPayload(t *testing.T) {
	runCtx, err := LoadRunContext(newTestAction(io.Discard, nil))
	require.NoError(t, err)
	assert.Empty(t, runCtx.EventName)
	assert.Nil(t, runCtx.Release)
}

func TestLoadRunContext_Malformed(t *testing.T) {
	action := newTestAction(io.Discard, map[string]string{
		"GITHUB_EVENT_NAME": "release",
		"GITHUB_EVENT_PATH": writeEvent(t, `{"release":`),
	})

	_, err := LoadRunContext(action)
	assert.ErrorContains(t, err, "failed to read event payload")
}

func TestLoadRunContext_MistypedRelease(t *testing.T) {
	action := newTestAction(io.Discard, map[string]string{
		"GITHUB_EVENT_NAME": "release",
		"GITHUB_EVENT_PATH": writeEvent(t, `{"release":{"upload_url":7}}`),
	})

	_, err := LoadRunContext(action)
	assert.ErrorContains(t, err, "failed to decode release payload")
}
