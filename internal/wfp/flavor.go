package wfp

import (
	"fmt"

	"github.com/RostamVPN/mullvadvpn-app/internal/wfp/guids"
)

// Flavor enumerates the objects the firewall integration registers.
type Flavor uint8

const (
	FlavorProvider Flavor = iota
	FlavorProviderPersistent
	FlavorSublayerBaseline
	FlavorSublayerDNS
	FlavorSublayerPersistent
)

var flavorNames = map[Flavor]guids.LogicalName{
	FlavorProvider:           guids.NameProvider,
	FlavorProviderPersistent: guids.NameProviderPersistent,
	FlavorSublayerBaseline:   guids.NameSublayerBaseline,
	FlavorSublayerDNS:        guids.NameSublayerDNS,
	FlavorSublayerPersistent: guids.NameSublayerPersistent,
}

// Flavors lists every flavor, providers first.
func Flavors() []Flavor {
	return []Flavor{
		FlavorProvider,
		FlavorProviderPersistent,
		FlavorSublayerBaseline,
		FlavorSublayerDNS,
		FlavorSublayerPersistent,
	}
}

// ParseFlavor is the inverse of Flavor.String.
func ParseFlavor(s string) (Flavor, error) {
	for f, name := range flavorNames {
		if string(name) == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown flavor %q", s)
}

func (f Flavor) String() string {
	if name, ok := flavorNames[f]; ok {
		return string(name)
	}
	return fmt.Sprintf("Flavor(%d)", uint8(f))
}

// LogicalName is the identity registry name of the flavor.
func (f Flavor) LogicalName() guids.LogicalName {
	return flavorNames[f]
}

// Kind reports whether the flavor is a provider or a sublayer.
func (f Flavor) Kind() Kind {
	switch f {
	case FlavorProvider, FlavorProviderPersistent:
		return KindProvider
	}
	return KindSublayer
}

// Valid reports whether f is one of the enumerated flavors.
func (f Flavor) Valid() bool {
	_, ok := flavorNames[f]
	return ok
}
