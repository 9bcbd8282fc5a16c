package yaml

import (
	"fmt"
	"os"
)

// ConfigSource implements repositories.InputSource using a YAML file
type ConfigSource struct {
	path   string
	values map[string]string
}

// NewConfigSource loads the YAML file at path
func NewConfigSource(path string) (*ConfigSource, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	values, err := NewConfigParser().ParseFile(path)
	if err != nil {
		return nil, err
	}

	return &ConfigSource{path: path, values: values}, nil
}

// Path returns the file the values were loaded from
func (s *ConfigSource) Path() string {
	return s.path
}

// Lookup returns the value of an input defined in the file
func (s *ConfigSource) Lookup(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}
