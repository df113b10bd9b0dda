package wfp

import (
	"fmt"

	"github.com/RostamVPN/mullvadvpn-app/internal/wfp/guids"
)

// Registrar adds descriptors to the filtering engine, normally inside a
// single engine transaction.
type Registrar interface {
	AddProvider(p Provider) error
	AddSublayer(s Sublayer) error
}

// Step is one entry of a registration plan.
type Step struct {
	Flavor Flavor
	Kind   Kind
	Name   string
	Key    guids.Key
	Owner  guids.Key // zero for providers
	Weight Weight
}

// RegistrationOrder returns the order in which objects must be added: each provider is
// followed by its sublayers, highest weight first.
func (c *Catalog) RegistrationOrder() []Step {
	flavorOf := make(map[guids.Key]Flavor)
	for f, s := range c.sublayers {
		flavorOf[s.Key] = f
	}

	var steps []Step
	for _, f := range Flavors() {
		p, ok := c.providers[f]
		if !ok {
			continue
		}
		steps = append(steps, Step{Flavor: f, Kind: KindProvider, Name: p.Name, Key: p.Key})
		for _, s := range c.SublayersOf(p.Key) {
			steps = append(steps, Step{
				Flavor: flavorOf[s.Key],
				Kind:   KindSublayer,
				Name:   s.Name,
				Key:    s.Key,
				Owner:  s.ProviderKey,
				Weight: s.Weight,
			})
		}
	}
	return steps
}

// Register validates the catalog and hands every object to r in registration
// order. It stops at the first registrar error. Rolling back earlier steps is
// up to the registrar's transaction.
func Register(r Registrar, c *Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}

	for _, step := range c.RegistrationOrder() {
		var err error
		switch step.Kind {
		case KindProvider:
			p, _ := c.Provider(step.Flavor)
			err = r.AddProvider(p)
		case KindSublayer:
			s, _ := c.Sublayer(step.Flavor)
			err = r.AddSublayer(s)
		}
		if err != nil {
			return fmt.Errorf("register %s %q: %w", step.Kind, step.Name, err)
		}
	}
	return nil
}

// DryRunRegistrar records the calls it receives without touching the engine.
type DryRunRegistrar struct {
	Providers []Provider
	Sublayers []Sublayer
	Ops       []string
}

func (d *DryRunRegistrar) AddProvider(p Provider) error {
	d.Providers = append(d.Providers, p)
	d.Ops = append(d.Ops, fmt.Sprintf("add provider %s %q persistent=%t", p.Key, p.Name, p.Persistent))
	return nil
}

func (d *DryRunRegistrar) AddSublayer(s Sublayer) error {
	d.Sublayers = append(d.Sublayers, s)
	d.Ops = append(d.Ops, fmt.Sprintf("add sublayer %s %q provider=%s weight=%d persistent=%t",
		s.Key, s.Name, s.ProviderKey, s.Weight, s.Persistent))
	return nil
}
