package services

import (
	"strings"
	"testing"
)

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a.txt", "text/plain"},
		{"b.png", "image/png"},
		{"release.zip", "application/zip"},
		{"app-1.0.0-linux-amd64.tar.gz", "application/gzip"},
		{"APP.ZIP", "application/zip"},
		{"notes.html", "text/html"},
		{"font.woff2", "font/woff2"},
		{"demo.mp4", "video/mp4"},
		{"Cargo.toml", "application/toml"},
		{"checksums.sha256", "application/octet-stream"},
		{"Makefile", "application/octet-stream"},
		{"binary", "application/octet-stream"},
		{"weird.nosuchextension", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentTypeFor(tt.name); got != tt.want {
				t.Errorf("ContentTypeFor(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

// Every table entry is served from the table, independent of the host's mime.types
func TestContentTypeFor_TableEntries(t *testing.T) {
	for ext, want := range releaseContentTypes {
		if got := ContentTypeFor("asset" + ext); got != want {
			t.Errorf("ContentTypeFor(%q) = %s, want %s", "asset"+ext, got, want)
		}
		if got := ContentTypeFor("ASSET" + strings.ToUpper(ext)); got != want {
			t.Errorf("ContentTypeFor(%q) = %s, want %s", "ASSET"+strings.ToUpper(ext), got, want)
		}
	}
}
