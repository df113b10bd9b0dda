package wfp

import (
	"fmt"

	"github.com/RostamVPN/mullvadvpn-app/internal/brand"
	"github.com/RostamVPN/mullvadvpn-app/internal/wfp/guids"
)

// Weights of the sublayers. Baseline and DNS share the regular provider and
// baseline is evaluated first. The persistent sublayer lives in its own
// provider and does not compete with either.
const (
	WeightBaseline   = MaxWeight
	WeightDNS        = MaxWeight - 1
	WeightPersistent = MaxWeight
)

// ProviderConfigFor returns the fixed configuration of a provider flavor.
func ProviderConfigFor(f Flavor) (ProviderConfig, error) {
	product := brand.ProductName()

	switch f {
	case FlavorProvider:
		return ProviderConfig{
			Name:        product,
			Description: product + " firewall integration",
			Key:         guids.Provider(),
		}, nil
	case FlavorProviderPersistent:
		return ProviderConfig{
			Name:        product + " persistent",
			Description: product + " firewall integration",
			Key:         guids.ProviderPersistent(),
			Persistent:  true,
		}, nil
	}
	return ProviderConfig{}, fmt.Errorf("%w: %s is not a provider flavor", ErrConfiguration, f)
}

// SublayerConfigFor returns the fixed configuration of a sublayer flavor.
func SublayerConfigFor(f Flavor) (SublayerConfig, error) {
	product := brand.ProductName()

	switch f {
	case FlavorSublayerBaseline:
		return SublayerConfig{
			Name:        product + " baseline",
			Description: "Filters that enforce a good baseline",
			Key:         guids.SublayerBaseline(),
			Provider:    guids.Provider(),
			Weight:      WeightOf(WeightBaseline),
		}, nil
	case FlavorSublayerDNS:
		return SublayerConfig{
			Name:        product + " DNS",
			Description: "Filters that restrict DNS traffic",
			Key:         guids.SublayerDNS(),
			Provider:    guids.Provider(),
			Weight:      WeightOf(WeightDNS),
		}, nil
	case FlavorSublayerPersistent:
		return SublayerConfig{
			Name:        product + " persistent",
			Description: "Filters that restrict traffic before WinFw is initialized",
			Key:         guids.SublayerPersistent(),
			Provider:    guids.ProviderPersistent(),
			Weight:      WeightOf(WeightPersistent),
			Persistent:  true,
		}, nil
	}
	return SublayerConfig{}, fmt.Errorf("%w: %s is not a sublayer flavor", ErrConfiguration, f)
}

func buildProvider(f Flavor) (Provider, error) {
	cfg, err := ProviderConfigFor(f)
	if err != nil {
		return Provider{}, err
	}
	return cfg.Build()
}

func buildSublayer(f Flavor) (Sublayer, error) {
	cfg, err := SublayerConfigFor(f)
	if err != nil {
		return Sublayer{}, err
	}
	return cfg.Build()
}

// NewProvider builds the provider scoped to the running integration.
func NewProvider() (Provider, error) {
	return buildProvider(FlavorProvider)
}

// NewProviderPersistent builds the provider that survives restarts, so that
// baseline protection exists before the full integration initializes.
func NewProviderPersistent() (Provider, error) {
	return buildProvider(FlavorProviderPersistent)
}

// NewSublayerBaseline builds the general enforcement sublayer.
func NewSublayerBaseline() (Sublayer, error) {
	return buildSublayer(FlavorSublayerBaseline)
}

// NewSublayerDNS builds the DNS restriction sublayer, evaluated after
// baseline within the shared provider.
func NewSublayerDNS() (Sublayer, error) {
	return buildSublayer(FlavorSublayerDNS)
}

// NewSublayerPersistent builds the sublayer enforced before the rest of the
// integration is initialized.
func NewSublayerPersistent() (Sublayer, error) {
	return buildSublayer(FlavorSublayerPersistent)
}
