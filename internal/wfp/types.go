package wfp

import (
	"math"

	"github.com/RostamVPN/mullvadvpn-app/internal/wfp/guids"
)

// Weight orders sibling sublayers within a provider. The engine evaluates
// higher weights first.
type Weight uint16

// MaxWeight is the highest representable sublayer weight.
const MaxWeight Weight = math.MaxUint16

// WeightOf returns a pointer to w, for use in SublayerConfig literals.
func WeightOf(w Weight) *Weight {
	return &w
}

// Kind distinguishes providers from sublayers.
type Kind string

const (
	KindProvider Kind = "provider"
	KindSublayer Kind = "sublayer"
)

// Provider is a policy namespace.
type Provider struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Key         guids.Key `json:"key" yaml:"key"`
	Persistent  bool      `json:"persistent" yaml:"persistent"`
}

// Sublayer is an ordered bucket of filters owned by a provider.
type Sublayer struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Key         guids.Key `json:"key" yaml:"key"`
	ProviderKey guids.Key `json:"provider_key" yaml:"provider_key"`
	Weight      Weight    `json:"weight" yaml:"weight"`
	Persistent  bool      `json:"persistent" yaml:"persistent"`
}
