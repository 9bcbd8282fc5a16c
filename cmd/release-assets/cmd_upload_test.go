package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/release-assets/internal/domain/entities"
)

// inputEnv returns the variable the runner sets for an action input
func inputEnv(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// isolateEnv clears every variable the command reads from the runner environment
func isolateEnv(t *testing.T) {
	t.Helper()

	for _, name := range []string{
		entities.InputGitHubToken, entities.InputReleaseURL, entities.InputFile,
		entities.InputFiles, entities.InputPattern, entities.InputGPGPrivateKey,
		entities.InputGPGPassphrase, entities.InputConcurrency, entities.InputUploadTimeout,
		entities.InputTimeout, entities.InputConfig,
	} {
		t.Setenv(inputEnv(name), "")
	}
	for _, name := range []string{"GITHUB_TOKEN", "GITHUB_EVENT_NAME", "GITHUB_EVENT_PATH", "GITHUB_OUTPUT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(name, "")
	}
}

// fakeReleases records uploads the way the release assets endpoint would accept them
type fakeReleases struct {
	mu      sync.Mutex
	names   []string
	bodies  map[string]string
	types   map[string]string
	tokens  []string
	failFor string
}

func newFakeReleases(t *testing.T) (*fakeReleases, *httptest.Server) {
	t.Helper()

	f := &fakeReleases{bodies: map[string]string{}, types: map[string]string{}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		body, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.names = append(f.names, name)
		f.bodies[name] = string(body)
		f.types[name] = r.Header.Get("Content-Type")
		f.tokens = append(f.tokens, r.Header.Get("Authorization"))
		id := len(f.names)
		f.mu.Unlock()

		if name == f.failFor {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"Validation Failed","errors":[{"resource":"ReleaseAsset","code":"already_exists","field":"name"}]}`))
			return
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "name": name, "state": "uploaded"})
	}))
	t.Cleanup(server.Close)

	return f, server
}

func (f *fakeReleases) uploaded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := append([]string(nil), f.names...)
	sort.Strings(names)
	return names
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	// A nil slice makes cobra fall back to os.Args
	cmd.SetArgs(append([]string{}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLI_Version(t *testing.T) {
	stdout, _, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, stdout, version)
}

func TestCLI_MissingToken(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "--release-url", "https://uploads.github.com/repos/o/r/releases/1/assets")

	require.Error(t, err)
	assert.Contains(t, stdout, "::error::Input required and not supplied: github-token")
}

func TestCLI_NoReleaseURL(t *testing.T) {
	isolateEnv(t)
	t.Setenv(inputEnv(entities.InputGitHubToken), "token")

	outputFile := filepath.Join(t.TempDir(), "output")
	t.Setenv("GITHUB_OUTPUT", outputFile)

	stdout, _, err := execute(t)

	require.NoError(t, err)
	assert.Contains(t, stdout, "::warning::No release URL, skipping.")
	assert.NoFileExists(t, outputFile)
}

func TestCLI_ReleaseEvent(t *testing.T) {
	isolateEnv(t)
	fake, server := newFakeReleases(t)
	dir := t.TempDir()

	a := writeFile(t, dir, "a.txt", "alpha")
	b := writeFile(t, dir, "img/b.png", "png")
	writeFile(t, dir, "dist/c.zip", "zip")

	uploadURL := server.URL + "/repos/o/r/releases/1/assets{?name,label}"
	payload := `{"action":"published","release":{"id":1,"tag_name":"v1.0.0","upload_url":"` + uploadURL + `"}}`
	eventPath := writeFile(t, dir, "event.json", payload)
	outputFile := filepath.Join(dir, "github_output")

	t.Setenv("GITHUB_EVENT_NAME", "release")
	t.Setenv("GITHUB_EVENT_PATH", eventPath)
	t.Setenv("GITHUB_OUTPUT", outputFile)
	t.Setenv(inputEnv(entities.InputGitHubToken), "  secret  ")
	t.Setenv(inputEnv(entities.InputReleaseURL), "https://ignored.example.com/assets")
	t.Setenv(inputEnv(entities.InputFiles), a+"\n"+b+"\n"+filepath.Join(dir, "missing.txt"))
	t.Setenv(inputEnv(entities.InputPattern), filepath.Join(dir, "dist", "*.zip"))

	stdout, _, err := execute(t)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "b.png", "c.zip"}, fake.uploaded())
	assert.Equal(t, "text/plain", fake.types["a.txt"])
	assert.Equal(t, "image/png", fake.types["b.png"])
	assert.Equal(t, "application/zip", fake.types["c.zip"])
	assert.Equal(t, "alpha", fake.bodies["a.txt"])
	for _, token := range fake.tokens {
		assert.Equal(t, "Bearer secret", token)
	}

	output, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(output), "url<<")
	assert.Contains(t, string(output), "\n"+uploadURL+"\n")

	assert.Contains(t, stdout, "Uploaded: 3  Skipped: 1  Failed: 0")
}

func TestCLI_FlagsOverrideInputs(t *testing.T) {
	isolateEnv(t)
	fake, server := newFakeReleases(t)
	dir := t.TempDir()

	bin := writeFile(t, dir, "real.bin", "data")

	t.Setenv(inputEnv(entities.InputGitHubToken), "env-token")
	t.Setenv(inputEnv(entities.InputFile), filepath.Join(dir, "from-env.bin"))

	_, _, err := execute(t,
		"--github-token", "flag-token",
		"--release-url", server.URL+"/assets",
		"--file", bin,
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"real.bin"}, fake.uploaded())
	assert.Equal(t, []string{"Bearer flag-token"}, fake.tokens)
	assert.Equal(t, "application/octet-stream", fake.types["real.bin"])
}

func TestCLI_FilesFlagRepeated(t *testing.T) {
	isolateEnv(t)
	fake, server := newFakeReleases(t)
	dir := t.TempDir()

	a := writeFile(t, dir, "a.txt", "a")
	b := writeFile(t, dir, "b.txt", "b")

	_, _, err := execute(t,
		"--github-token", "token",
		"--release-url", server.URL+"/assets",
		"--files", a,
		"--files", b,
		"--concurrency", "2",
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "b.txt"}, fake.uploaded())
}

func TestCLI_ConfigFile(t *testing.T) {
	isolateEnv(t)
	fake, server := newFakeReleases(t)
	dir := t.TempDir()

	a := writeFile(t, dir, "notes.txt", "notes")
	config := writeFile(t, dir, "release-assets.yaml", strings.Join([]string{
		"release-url: " + server.URL + "/assets",
		"files:",
		"  - " + a,
		"upload-timeout: 30s",
	}, "\n"))

	t.Setenv("GITHUB_TOKEN", "fallback-token")

	t.Setenv("LOG_LEVEL", "debug")

	_, stderr, err := execute(t, "--config", config)
	require.NoError(t, err)
	assert.Contains(t, stderr, "path="+config)

	assert.Equal(t, []string{"notes.txt"}, fake.uploaded())
	assert.Equal(t, []string{"Bearer fallback-token"}, fake.tokens)
}

func TestCLI_ConfigFileNotFound(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GITHUB_TOKEN", "token")

	stdout, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, stdout, "::error::config file not found")
}

func TestCLI_UploadFailure(t *testing.T) {
	isolateEnv(t)
	fake, server := newFakeReleases(t)
	fake.failFor = "dup.txt"
	dir := t.TempDir()

	dup := writeFile(t, dir, "dup.txt", "dup")
	ok := writeFile(t, dir, "ok.txt", "ok")

	stdout, stderr, err := execute(t,
		"--github-token", "token",
		"--release-url", server.URL+"/assets",
		"--files", dup+"\n"+ok,
	)

	require.Error(t, err)
	assert.Contains(t, stderr, `msg="Upload run failed"`)
	assert.Contains(t, stderr, "error=")
	assert.Equal(t, []string{"dup.txt", "ok.txt"}, fake.uploaded())
	assert.Contains(t, stdout, "::error::")
	assert.Contains(t, stdout, "already_exists")
	assert.Contains(t, stdout, "Uploaded: 1  Skipped: 0  Failed: 1")
}

func TestCLI_InvalidConcurrency(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "--github-token", "token", "--concurrency", "0")

	require.Error(t, err)
	assert.Contains(t, err.Error(), entities.InputConcurrency)
}
