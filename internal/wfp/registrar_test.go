package wfp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RostamVPN/mullvadvpn-app/internal/wfp/guids"
)

func TestRegistrationOrderProvidersFirst(t *testing.T) {
	steps := mustCatalog(t).RegistrationOrder()
	require.Len(t, steps, 5)

	want := []Flavor{
		FlavorProvider,
		FlavorSublayerBaseline,
		FlavorSublayerDNS,
		FlavorProviderPersistent,
		FlavorSublayerPersistent,
	}
	for i, f := range want {
		assert.Equal(t, f, steps[i].Flavor, "step %d", i)
		assert.Equal(t, f.Kind(), steps[i].Kind, "step %d", i)
	}

	assert.True(t, steps[0].Owner.IsZero())
	assert.Equal(t, guids.Provider(), steps[1].Owner)
	assert.Equal(t, WeightBaseline, steps[1].Weight)
}

func TestRegisterDryRun(t *testing.T) {
	var dry DryRunRegistrar
	require.NoError(t, Register(&dry, mustCatalog(t)))

	assert.Len(t, dry.Providers, 2)
	assert.Len(t, dry.Sublayers, 3)
	require.Len(t, dry.Ops, 5)
	assert.Contains(t, dry.Ops[0], "add provider "+guids.Provider().String())
	assert.Contains(t, dry.Ops[1], "weight=65535")
	assert.Contains(t, dry.Ops[2], "weight=65534")
}

type failingRegistrar struct {
	DryRunRegistrar
	failOn guids.Key
	err    error
}

func (f *failingRegistrar) AddSublayer(s Sublayer) error {
	if s.Key == f.failOn {
		return f.err
	}
	return f.DryRunRegistrar.AddSublayer(s)
}

func TestRegisterStopsAtFirstError(t *testing.T) {
	errDenied := errors.New("access denied")
	r := &failingRegistrar{failOn: guids.SublayerDNS(), err: errDenied}

	err := Register(r, mustCatalog(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, errDenied)
	assert.NotErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "register sublayer")

	// Nothing after the failing step is attempted.
	assert.Len(t, r.Providers, 1)
	assert.Len(t, r.Sublayers, 1)
}

func TestRegisterRejectsInvalidCatalog(t *testing.T) {
	c := mustCatalog(t)
	s := c.sublayers[FlavorSublayerDNS]
	s.Persistent = true
	c.sublayers[FlavorSublayerDNS] = s

	var dry DryRunRegistrar
	err := Register(&dry, c)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Empty(t, dry.Ops)
}
