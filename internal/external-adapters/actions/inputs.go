// Package actions adapts the GitHub Actions runner environment: inputs, event payload,
// outputs and workflow commands.
package actions

import (
	"strconv"
	"time"

	"github.com/sethvargo/go-githubactions"

	"github.com/ochairo/release-assets/internal/domain/entities"
	"github.com/ochairo/release-assets/internal/domain/interfaces/repositories"
	"github.com/ochairo/release-assets/internal/domain/services"
)

// EnvSource implements repositories.InputSource over the INPUT_* variables of an action
type EnvSource struct {
	action *githubactions.Action
}

// NewEnvSource creates an input source reading the inputs of action
func NewEnvSource(action *githubactions.Action) *EnvSource {
	return &EnvSource{action: action}
}

// Lookup returns the trimmed input value. Empty values count as unset.
func (s *EnvSource) Lookup(name string) (string, bool) {
	v := s.action.GetInput(name)
	return v, v != ""
}

// MapSource implements repositories.InputSource over a fixed map
type MapSource map[string]string

// Lookup returns the value stored under name
func (m MapSource) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok && v != ""
}

// Chain resolves each input from the first source that defines it
type Chain []repositories.InputSource

// Lookup implements repositories.InputSource
func (c Chain) Lookup(name string) (string, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

// LoadInputs reads every recognized input from src.
// A missing github-token or a malformed numeric or duration input is a ConfigurationError.
func LoadInputs(src repositories.InputSource) (*entities.Inputs, error) {
	get := func(name string) string {
		v, _ := src.Lookup(name)
		return v
	}

	inputs := &entities.Inputs{
		GitHubToken:   get(entities.InputGitHubToken),
		ReleaseURL:    get(entities.InputReleaseURL),
		File:          get(entities.InputFile),
		Files:         get(entities.InputFiles),
		Pattern:       get(entities.InputPattern),
		GPGPrivateKey: get(entities.InputGPGPrivateKey),
		GPGPassphrase: get(entities.InputGPGPassphrase),
		Concurrency:   entities.DefaultConcurrency,
		UploadTimeout: entities.DefaultUploadTimeout,
		Timeout:       entities.DefaultTimeout,
	}

	if inputs.GitHubToken == "" {
		return nil, services.MissingInput(entities.InputGitHubToken)
	}

	if v := get(entities.InputConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, &services.ConfigurationError{Input: entities.InputConcurrency, Reason: "Input must be a positive integer"}
		}
		inputs.Concurrency = n
	}

	var err error
	if inputs.UploadTimeout, err = parseDuration(get, entities.InputUploadTimeout, entities.DefaultUploadTimeout); err != nil {
		return nil, err
	}
	if inputs.Timeout, err = parseDuration(get, entities.InputTimeout, entities.DefaultTimeout); err != nil {
		return nil, err
	}

	return inputs, nil
}

func parseDuration(get func(string) string, name string, def time.Duration) (time.Duration, error) {
	v := get(name)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, &services.ConfigurationError{Input: name, Reason: "Input must be a positive duration such as 90s or 5m"}
	}
	return d, nil
}
