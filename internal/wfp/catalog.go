package wfp

import (
	"fmt"
	"sort"

	"github.com/RostamVPN/mullvadvpn-app/internal/wfp/guids"
)

// Catalog is the complete set of objects registered by the integration.
type Catalog struct {
	providers map[Flavor]Provider
	sublayers map[Flavor]Sublayer
}

// BuildCatalog builds every flavor. It fails on the first configuration
// error; the catalog is not validated, call Validate for that.
func BuildCatalog() (*Catalog, error) {
	c := &Catalog{
		providers: make(map[Flavor]Provider),
		sublayers: make(map[Flavor]Sublayer),
	}

	for _, f := range Flavors() {
		switch f.Kind() {
		case KindProvider:
			p, err := buildProvider(f)
			if err != nil {
				return nil, fmt.Errorf("build %s: %w", f, err)
			}
			c.providers[f] = p
		case KindSublayer:
			s, err := buildSublayer(f)
			if err != nil {
				return nil, fmt.Errorf("build %s: %w", f, err)
			}
			c.sublayers[f] = s
		}
	}

	return c, nil
}

// Provider returns the provider of flavor f.
func (c *Catalog) Provider(f Flavor) (Provider, bool) {
	p, ok := c.providers[f]
	return p, ok
}

// Sublayer returns the sublayer of flavor f.
func (c *Catalog) Sublayer(f Flavor) (Sublayer, bool) {
	s, ok := c.sublayers[f]
	return s, ok
}

// Providers returns all providers in flavor order.
func (c *Catalog) Providers() []Provider {
	var out []Provider
	for _, f := range Flavors() {
		if p, ok := c.providers[f]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Sublayers returns all sublayers in flavor order.
func (c *Catalog) Sublayers() []Sublayer {
	var out []Sublayer
	for _, f := range Flavors() {
		if s, ok := c.sublayers[f]; ok {
			out = append(out, s)
		}
	}
	return out
}

// SublayersOf returns the sublayers owned by providerKey, highest weight
// first.
func (c *Catalog) SublayersOf(providerKey guids.Key) []Sublayer {
	var out []Sublayer
	for _, s := range c.Sublayers() {
		if s.ProviderKey == providerKey {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Weight > out[j].Weight
	})
	return out
}

// Entries lists the key of every object in the catalog by logical name.
func (c *Catalog) Entries() []guids.Entry {
	var out []guids.Entry
	for _, f := range Flavors() {
		if p, ok := c.providers[f]; ok {
			out = append(out, guids.Entry{Name: f.LogicalName(), Key: p.Key})
		}
		if s, ok := c.sublayers[f]; ok {
			out = append(out, guids.Entry{Name: f.LogicalName(), Key: s.Key})
		}
	}
	return out
}

// Validate checks the invariants that span descriptors.
func (c *Catalog) Validate() error {
	return ValidateObjects(c.Providers(), c.Sublayers())
}

// ValidateObjects checks that:
//   - keys are unique across all objects
//   - every sublayer's owner resolves to exactly one provider
//   - a sublayer's persistence matches its owner's
//   - sibling sublayers have distinct weights
func ValidateObjects(providers []Provider, sublayers []Sublayer) error {
	var errs ValidationErrors

	seen := make(map[guids.Key]string)
	claim := func(k guids.Key, object string) {
		if prev, dup := seen[k]; dup {
			errs = append(errs, ValidationError{
				Object:  object,
				Message: fmt.Sprintf("key %s already used by %s", k, prev),
			})
			return
		}
		seen[k] = object
	}

	owners := make(map[guids.Key][]Provider)
	for _, p := range providers {
		claim(p.Key, "provider "+p.Name)
		owners[p.Key] = append(owners[p.Key], p)
	}

	type sibling struct {
		owner  guids.Key
		weight Weight
	}
	weights := make(map[sibling]string)

	for _, s := range sublayers {
		object := "sublayer " + s.Name
		claim(s.Key, object)

		matches := owners[s.ProviderKey]
		switch len(matches) {
		case 0:
			errs = append(errs, ValidationError{
				Object:  object,
				Message: fmt.Sprintf("owner %s does not resolve to a provider", s.ProviderKey),
			})
			continue
		case 1:
		default:
			errs = append(errs, ValidationError{
				Object:  object,
				Message: fmt.Sprintf("owner %s resolves to %d providers", s.ProviderKey, len(matches)),
			})
			continue
		}

		owner := matches[0]
		if owner.Persistent != s.Persistent {
			errs = append(errs, ValidationError{
				Object: object,
				Message: fmt.Sprintf("persistent=%t but owner %q has persistent=%t",
					s.Persistent, owner.Name, owner.Persistent),
			})
		}

		sib := sibling{owner: s.ProviderKey, weight: s.Weight}
		if prev, dup := weights[sib]; dup {
			errs = append(errs, ValidationError{
				Object:  object,
				Message: fmt.Sprintf("weight %d already used by sibling %s", s.Weight, prev),
			})
		} else {
			weights[sib] = s.Name
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
