// Package gateways provides adapter implementations for external services and tools.
package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/ochairo/release-assets/internal/domain/interfaces"
	"github.com/ochairo/release-assets/internal/domain/interfaces/gateways"
)

const (
	defaultUserAgent = "release-assets/1.0"

	// Large artifacts take a while on slow runners
	defaultClientTimeout = 5 * time.Minute

	// Remaining calls below which a warning is logged
	rateLimitLowWatermark = 10
)

// HTTPGitHubGateway implements ReleaseGateway against the GitHub REST API
type HTTPGitHubGateway struct {
	client    *http.Client
	userAgent string
	logger    interfaces.Logger
}

// NewHTTPGitHubGateway creates a gateway whose requests carry token as a bearer credential
func NewHTTPGitHubGateway(ctx context.Context, token string, logger interfaces.Logger) *HTTPGitHubGateway {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	client.Timeout = defaultClientTimeout

	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &HTTPGitHubGateway{
		client:    client,
		userAgent: defaultUserAgent,
		logger:    logger,
	}
}

// rateLimitRemaining reads the remaining call budget from a response
func rateLimitRemaining(resp *http.Response) (int, bool) {
	remaining, err := strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
	if err != nil {
		return 0, false
	}
	return remaining, true
}

// checkRateLimit returns an error when a rejected request was caused by an exhausted rate limit
func checkRateLimit(resp *http.Response) error {
	if remaining, ok := rateLimitRemaining(resp); !ok || remaining > 0 {
		return nil
	}

	if resetUnix, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		resetAt := time.Unix(resetUnix, 0)
		return fmt.Errorf("GitHub API rate limit exceeded (0 remaining), resets at %s", resetAt.UTC().Format(time.RFC3339))
	}
	return fmt.Errorf("GitHub API rate limit exceeded (0 remaining)")
}

// warnRateLimit logs when the remaining budget runs low
func (g *HTTPGitHubGateway) warnRateLimit(resp *http.Response) {
	if remaining, ok := rateLimitRemaining(resp); ok && remaining <= rateLimitLowWatermark {
		g.logger.Warn("GitHub API rate limit low", interfaces.F("remaining", remaining))
	}
}

// githubAsset represents the GitHub API release asset format
type githubAsset struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Label              string `json:"label"`
	State              string `json:"state"`
	ContentType        string `json:"content_type"`
	Size               int64  `json:"size"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// githubError represents the GitHub API error body
type githubError struct {
	Message string                `json:"message"`
	Errors  []gateways.FieldError `json:"errors"`
}

// AssetUploadURL turns a release upload URL into the request URL for one asset.
// GitHub returns upload URLs as RFC 6570 templates like .../assets{?name,label}.
func AssetUploadURL(uploadURL, name string) (string, error) {
	baseURL := strings.Split(uploadURL, "{")[0]

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid upload URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid upload URL: %q is not absolute", baseURL)
	}

	// Uploads must go to uploads.github.com, not api.github.com
	if parsed.Host == "api.github.com" {
		parsed.Host = "uploads.github.com"
	}

	query := parsed.Query()
	query.Set("name", name)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// UploadAsset uploads content to a release as an asset named name
func (g *HTTPGitHubGateway) UploadAsset(ctx context.Context, uploadURL, name, contentType string, content io.Reader, size int64) (*gateways.ReleaseAsset, error) {
	target, err := AssetUploadURL(uploadURL, name)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = size
	if size == 0 {
		// An empty body still declares Content-Length: 0
		req.Body = http.NoBody
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload asset: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		if err := checkRateLimit(resp); err != nil {
			return nil, err
		}
		return nil, decodeAPIError(resp)
	}

	// The asset exists once GitHub answers 201, whatever budget is left
	g.warnRateLimit(resp)

	var result githubAsset
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &gateways.ReleaseAsset{
		ID:                 result.ID,
		Name:               result.Name,
		Label:              result.Label,
		State:              result.State,
		ContentType:        result.ContentType,
		Size:               result.Size,
		BrowserDownloadURL: result.BrowserDownloadURL,
	}, nil
}

// decodeAPIError reads a non-success response into an APIError
func decodeAPIError(resp *http.Response) error {
	apiErr := &gateways.APIError{StatusCode: resp.StatusCode}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr.Message = fmt.Sprintf("status %d (failed to read response)", resp.StatusCode)
		return apiErr
	}

	var body githubError
	if err := json.Unmarshal(bodyBytes, &body); err != nil || body.Message == "" {
		apiErr.Message = strings.TrimSpace(fmt.Sprintf("status %d: %s", resp.StatusCode, string(bodyBytes)))
		return apiErr
	}

	apiErr.Message = body.Message
	apiErr.Errors = body.Errors
	return apiErr
}
