// Package yaml provides YAML-based configuration parsing and input sources.
package yaml

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ochairo/release-assets/internal/domain/entities"
)

// yamlConfig represents the raw YAML structure. Keys match the action input names.
type yamlConfig struct {
	GitHubToken   string   `yaml:"github-token"`
	ReleaseURL    string   `yaml:"release-url"`
	File          string   `yaml:"file"`
	Files         fileList `yaml:"files"`
	Pattern       string   `yaml:"pattern"`
	GPGPrivateKey string   `yaml:"gpg-private-key"`
	GPGPassphrase string   `yaml:"gpg-passphrase"`
	Concurrency   int      `yaml:"concurrency"`
	UploadTimeout string   `yaml:"upload-timeout"`
	Timeout       string   `yaml:"timeout"`
}

// fileList accepts either a block string or a YAML sequence of paths
type fileList []string

// UnmarshalYAML implements yaml.Unmarshaler
func (l *fileList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = fileList{node.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: files must be a string or a list of strings", node.Line)
	}
}

// ConfigParser parses YAML configuration files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile parses a YAML configuration file into input values keyed by input name
func (p *ConfigParser) ParseFile(filePath string) (map[string]string, error) {
	//nolint:gosec // G304: filePath is the user-selected configuration file
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into input values keyed by input name.
// Keys absent from the document are absent from the map.
func (p *ConfigParser) Parse(data []byte) (map[string]string, error) {
	var cfg yamlConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must not be negative")
	}

	values := make(map[string]string)
	set := func(name, value string) {
		if value != "" {
			values[name] = value
		}
	}

	set(entities.InputGitHubToken, cfg.GitHubToken)
	set(entities.InputReleaseURL, cfg.ReleaseURL)
	set(entities.InputFile, cfg.File)
	set(entities.InputFiles, strings.Join(cfg.Files, "\n"))
	set(entities.InputPattern, cfg.Pattern)
	set(entities.InputGPGPrivateKey, cfg.GPGPrivateKey)
	set(entities.InputGPGPassphrase, cfg.GPGPassphrase)
	set(entities.InputUploadTimeout, cfg.UploadTimeout)
	set(entities.InputTimeout, cfg.Timeout)
	if cfg.Concurrency > 0 {
		values[entities.InputConcurrency] = strconv.Itoa(cfg.Concurrency)
	}

	return values, nil
}
