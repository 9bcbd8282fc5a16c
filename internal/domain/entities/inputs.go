package entities

import "time"

// Input names recognized by the action
const (
	InputGitHubToken   = "github-token"
	InputReleaseURL    = "release-url"
	InputFile          = "file"
	InputFiles         = "files"
	InputPattern       = "pattern"
	InputGPGPrivateKey = "gpg-private-key"
	InputGPGPassphrase = "gpg-passphrase"
	InputConcurrency   = "concurrency"
	InputUploadTimeout = "upload-timeout"
	InputTimeout       = "timeout"
	InputConfig        = "config"
)

// Defaults for optional inputs
const (
	DefaultConcurrency   = 1
	DefaultUploadTimeout = 5 * time.Minute
	DefaultTimeout       = 30 * time.Minute
)

// Inputs holds the resolved configuration values of one run
type Inputs struct {
	GitHubToken string
	ReleaseURL  string
	File        string
	Files       string
	Pattern     string

	GPGPrivateKey string
	GPGPassphrase string

	Concurrency   int
	UploadTimeout time.Duration
	Timeout       time.Duration
}

// SigningEnabled reports whether detached signatures should be uploaded
func (i *Inputs) SigningEnabled() bool {
	return i.GPGPrivateKey != ""
}
