package wfp

import (
	"github.com/RostamVPN/mullvadvpn-app/internal/validation"
	"github.com/RostamVPN/mullvadvpn-app/internal/wfp/guids"
)

// ProviderConfig holds the fields of a provider before validation.
// Key is required.
type ProviderConfig struct {
	Name        string
	Description string
	Key         guids.Key
	Persistent  bool
}

// Build validates the configuration and returns the provider descriptor.
func (c ProviderConfig) Build() (Provider, error) {
	fail := func(field, msg string) (Provider, error) {
		return Provider{}, &ConfigError{Kind: KindProvider, Object: c.Name, Field: field, Message: msg}
	}

	if c.Key.IsZero() {
		return fail("key", "required")
	}
	if err := validation.ValidateDisplayText(c.Name); err != nil {
		return fail("name", err.Error())
	}
	if err := validation.ValidateDisplayText(c.Description); err != nil {
		return fail("description", err.Error())
	}

	return Provider{
		Name:        c.Name,
		Description: c.Description,
		Key:         c.Key,
		Persistent:  c.Persistent,
	}, nil
}
