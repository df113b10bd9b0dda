package wfp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration marks a descriptor configuration defect in the calling
// code. It is never an operational failure and is never retried.
var ErrConfiguration = errors.New("invalid descriptor configuration")

// ConfigError reports a required descriptor field that was not set.
type ConfigError struct {
	Kind    Kind
	Object  string // display name, if one was set
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Object == "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s %q: %s: %s", e.Kind, e.Object, e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// ValidationError is a single invariant violation across a set of
// descriptors.
type ValidationError struct {
	Object  string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Object, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is find ErrConfiguration behind a failed validation.
func (e ValidationErrors) Unwrap() error {
	return ErrConfiguration
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}
