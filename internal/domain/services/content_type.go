package services

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/ochairo/release-assets/internal/domain/entities"
)

// releaseContentTypes covers the file types commonly attached to releases.
// Values match the IANA media types registered for each extension, without parameters.
var releaseContentTypes = map[string]string{
	".7z":       "application/x-7z-compressed",
	".aar":      "application/octet-stream",
	".apk":      "application/vnd.android.package-archive",
	".appimage": "application/octet-stream",
	".asc":      "application/pgp-signature",
	".avif":     "image/avif",
	".bin":      "application/octet-stream",
	".bmp":      "image/bmp",
	".bz2":      "application/x-bzip2",
	".cab":      "application/vnd.ms-cab-compressed",
	".crt":      "application/x-x509-ca-cert",
	".css":      "text/css",
	".csv":      "text/csv",
	".deb":      "application/x-debian-package",
	".dmg":      "application/x-apple-diskimage",
	".epub":     "application/epub+zip",
	".exe":      "application/x-msdownload",
	".gif":      "image/gif",
	".gz":       "application/gzip",
	".htm":      "text/html",
	".html":     "text/html",
	".ico":      "image/vnd.microsoft.icon",
	".iso":      "application/x-iso9660-image",
	".jar":      "application/java-archive",
	".jpeg":     "image/jpeg",
	".jpg":      "image/jpeg",
	".js":       "application/javascript",
	".json":     "application/json",
	".md":       "text/markdown",
	".mov":      "video/quicktime",
	".mp3":      "audio/mpeg",
	".mp4":      "video/mp4",
	".msi":      "application/x-msdownload",
	".ogg":      "audio/ogg",
	".pdf":      "application/pdf",
	".pem":      "application/x-x509-ca-cert",
	".pkg":      "application/octet-stream",
	".png":      "image/png",
	".rar":      "application/vnd.rar",
	".rpm":      "application/x-rpm",
	".rtf":      "application/rtf",
	".sh":       "application/x-sh",
	".sig":      "application/pgp-signature",
	".svg":      "image/svg+xml",
	".tar":      "application/x-tar",
	".tgz":      "application/gzip",
	".tif":      "image/tiff",
	".tiff":     "image/tiff",
	".toml":     "application/toml",
	".tsv":      "text/tab-separated-values",
	".ttf":      "font/ttf",
	".txt":      "text/plain",
	".wasm":     "application/wasm",
	".wav":      "audio/wav",
	".webm":     "video/webm",
	".webp":     "image/webp",
	".whl":      "application/zip",
	".woff":     "font/woff",
	".woff2":    "font/woff2",
	".xhtml":    "application/xhtml+xml",
	".xml":      "application/xml",
	".xz":       "application/x-xz",
	".yaml":     "text/yaml",
	".yml":      "text/yaml",
	".zip":      "application/zip",
	".zst":      "application/zstd",
}

// ContentTypeFor infers the content type of a file from its name.
// Unknown or missing extensions default to application/octet-stream.
func ContentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return entities.DefaultContentType
	}
	if ct, ok := releaseContentTypes[ext]; ok {
		return ct
	}

	// Fall back to the platform's mime tables, dropping parameters such as charset.
	// Those tables come from the host's mime.types files, so extensions missing
	// above may map differently from one runner image to another.
	if ct := mime.TypeByExtension(ext); ct != "" {
		if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
			return mediaType
		}
	}
	return entities.DefaultContentType
}
