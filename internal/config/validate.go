package config

import (
	"fmt"
	"strings"

	"github.com/RostamVPN/mullvadvpn-app/internal/logging"
	"github.com/RostamVPN/mullvadvpn-app/internal/validation"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validate validates the configuration.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors

	v, err := ParseVersion(c.SchemaVersion)
	if err != nil {
		errs = append(errs, ValidationError{Field: "schema_version", Message: err.Error()})
	} else if !IsSupportedVersion(v) {
		errs = append(errs, ValidationError{
			Field:   "schema_version",
			Message: fmt.Sprintf("unsupported version %s (current %s)", v, CurrentSchemaVersion),
		})
	}

	if c.Log != nil {
		if _, err := logging.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, ValidationError{Field: "log.level", Message: err.Error()})
		}
	}

	if c.Ledger != nil && !c.Ledger.Disabled {
		if c.Ledger.Path == "" {
			errs = append(errs, ValidationError{Field: "ledger.path", Message: "required unless ledger is disabled"})
		} else if err := validation.ValidatePath(c.Ledger.Path); err != nil {
			errs = append(errs, ValidationError{Field: "ledger.path", Message: err.Error()})
		}
	}

	if c.Metrics != nil && c.Metrics.Textfile != "" {
		if err := validation.ValidatePath(c.Metrics.Textfile); err != nil {
			errs = append(errs, ValidationError{Field: "metrics.textfile", Message: err.Error()})
		}
	}

	return errs
}

// LoggingConfig converts the log block into a logging.Config.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if c.Log != nil {
		if level, err := logging.ParseLevel(c.Log.Level); err == nil {
			cfg.Level = level
		}
		cfg.JSON = c.Log.JSON
	}
	return cfg
}
