package wfp

import (
	"github.com/RostamVPN/mullvadvpn-app/internal/validation"
	"github.com/RostamVPN/mullvadvpn-app/internal/wfp/guids"
)

// SublayerConfig holds the fields of a sublayer before validation.
// Key, Provider and Weight are required. Weight is a pointer so that an
// explicit zero weight can be told apart from a forgotten one.
type SublayerConfig struct {
	Name        string
	Description string
	Key         guids.Key
	Provider    guids.Key // owning provider
	Weight      *Weight
	Persistent  bool
}

// Build validates the configuration and returns the sublayer descriptor.
func (c SublayerConfig) Build() (Sublayer, error) {
	fail := func(field, msg string) (Sublayer, error) {
		return Sublayer{}, &ConfigError{Kind: KindSublayer, Object: c.Name, Field: field, Message: msg}
	}

	switch {
	case c.Key.IsZero():
		return fail("key", "required")
	case c.Provider.IsZero():
		return fail("provider", "required")
	case c.Weight == nil:
		return fail("weight", "required")
	case c.Provider == c.Key:
		return fail("provider", "sublayer cannot own itself")
	}
	if err := validation.ValidateDisplayText(c.Name); err != nil {
		return fail("name", err.Error())
	}
	if err := validation.ValidateDisplayText(c.Description); err != nil {
		return fail("description", err.Error())
	}

	return Sublayer{
		Name:        c.Name,
		Description: c.Description,
		Key:         c.Key,
		ProviderKey: c.Provider,
		Weight:      *c.Weight,
		Persistent:  c.Persistent,
	}, nil
}
