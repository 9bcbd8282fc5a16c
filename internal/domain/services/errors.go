package services

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every ConfigurationError
	ErrConfiguration = errors.New("configuration error")

	// ErrSkipped marks a candidate path that does not denote a regular file
	ErrSkipped = errors.New("not a regular file")
)

// ConfigurationError reports a missing or invalid input
type ConfigurationError struct {
	Input  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Input)
}

// Is lets errors.Is(err, ErrConfiguration) match any ConfigurationError
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// MissingInput builds the error returned for an absent required input
func MissingInput(name string) *ConfigurationError {
	return &ConfigurationError{Input: name, Reason: "Input required and not supplied"}
}
