package guids

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The installed objects on user machines carry these exact values.
func TestKeysArePinned(t *testing.T) {
	tests := []struct {
		name LogicalName
		want string
	}{
		{NameProvider, "{6A3B0F4E-1C52-4B8A-9E21-3F0C7D5A2B10}"},
		{NameProviderPersistent, "{B2E7C419-8D06-4F3A-A5C1-70E4D9F28B63}"},
		{NameSublayerBaseline, "{0C9D4E27-5B1A-4A86-8F3E-D2A7164C95B0}"},
		{NameSublayerDNS, "{E415A6D8-3F92-4C07-B6A4-89C1E0D57F2A}"},
		{NameSublayerPersistent, "{7F28C3B1-A64E-4D95-9C0B-1E5D83A72F46}"},
	}

	for _, tc := range tests {
		t.Run(string(tc.name), func(t *testing.T) {
			k, err := KeyFor(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, k.String())
		})
	}
}

func TestKeyForIsDeterministic(t *testing.T) {
	for _, e := range All() {
		a := MustKeyFor(e.Name)
		b := MustKeyFor(e.Name)
		assert.Equal(t, a, b, "name %s", e.Name)
		assert.Equal(t, e.Key, a, "name %s", e.Name)
	}
}

func TestNamedAccessors(t *testing.T) {
	assert.Equal(t, MustKeyFor(NameProvider), Provider())
	assert.Equal(t, MustKeyFor(NameProviderPersistent), ProviderPersistent())
	assert.Equal(t, MustKeyFor(NameSublayerBaseline), SublayerBaseline())
	assert.Equal(t, MustKeyFor(NameSublayerDNS), SublayerDNS())
	assert.Equal(t, MustKeyFor(NameSublayerPersistent), SublayerPersistent())
}

func TestKeysAreUniqueAndSet(t *testing.T) {
	seen := make(map[Key]LogicalName)
	for _, e := range All() {
		assert.False(t, e.Key.IsZero(), "name %s has nil key", e.Name)
		if prev, dup := seen[e.Key]; dup {
			t.Errorf("key %s shared by %s and %s", e.Key, prev, e.Name)
		}
		seen[e.Key] = e.Name
	}
	assert.Len(t, seen, 5)
}

func TestAllListsProvidersFirst(t *testing.T) {
	all := All()
	require.Len(t, all, 5)
	assert.Equal(t, NameProvider, all[0].Name)
	assert.Equal(t, NameProviderPersistent, all[1].Name)

	// Callers get a fresh slice.
	all[0].Key = Nil
	assert.Equal(t, Provider(), All()[0].Key)
}

func TestKeyForUnknown(t *testing.T) {
	_, err := KeyFor("sublayer_ipv6")
	assert.ErrorIs(t, err, ErrUnknownName)

	assert.Panics(t, func() { MustKeyFor("nope") })
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		input    string
		hasError bool
	}{
		{"{6A3B0F4E-1C52-4B8A-9E21-3F0C7D5A2B10}", false},
		{"6a3b0f4e-1c52-4b8a-9e21-3f0c7d5a2b10", false},
		{"  {6a3b0f4e-1c52-4b8a-9e21-3f0c7d5a2b10} ", false},
		{"{6A3B0F4E-1C52}", true},
		{"", true},
	}

	for _, tc := range tests {
		k, err := ParseKey(tc.input)
		if tc.hasError {
			assert.ErrorIs(t, err, ErrInvalidKey, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, Provider(), k)
	}
}

func TestKeyTextRoundTrip(t *testing.T) {
	data, err := json.Marshal(map[string]Key{"key": SublayerDNS()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"{E415A6D8-3F92-4C07-B6A4-89C1E0D57F2A}"}`, string(data))

	var out map[string]Key
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, SublayerDNS(), out["key"])

	var bad Key
	assert.Error(t, bad.UnmarshalText([]byte("not-a-guid")))
}

func TestMixedEndianBytes(t *testing.T) {
	k := MustParseKey("{00112233-4455-6677-8899-AABBCCDDEEFF}")
	want := [16]byte{
		0x33, 0x22, 0x11, 0x00,
		0x55, 0x44,
		0x77, 0x66,
		0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF,
	}
	assert.Equal(t, want, k.MixedEndianBytes())
}

func TestNilKey(t *testing.T) {
	assert.True(t, Nil.IsZero())
	var k Key
	assert.True(t, k.IsZero())
	assert.Equal(t, "{00000000-0000-0000-0000-000000000000}", k.String())
}
