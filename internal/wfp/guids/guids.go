// Package guids is the identity registry for the objects the firewall
// integration registers with the Windows Filtering Platform.
//
// Every key in this file is a long-lived constant. The engine recognizes a
// re-registration as an update only when the key is bit-identical to the one
// installed earlier, so editing a value here orphans persistent objects on
// every machine that already has them. Treat any change as a migration.
package guids

import (
	"errors"
	"fmt"
)

// ErrUnknownName is returned for a logical name the registry does not know.
var ErrUnknownName = errors.New("unknown logical name")

// LogicalName names one registered object independently of its key.
type LogicalName string

const (
	NameProvider           LogicalName = "provider"
	NameProviderPersistent LogicalName = "provider_persistent"
	NameSublayerBaseline   LogicalName = "sublayer_baseline"
	NameSublayerDNS        LogicalName = "sublayer_dns"
	NameSublayerPersistent LogicalName = "sublayer_persistent"
)

var (
	keyProvider           = MustParseKey("{6A3B0F4E-1C52-4B8A-9E21-3F0C7D5A2B10}")
	keyProviderPersistent = MustParseKey("{B2E7C419-8D06-4F3A-A5C1-70E4D9F28B63}")
	keySublayerBaseline   = MustParseKey("{0C9D4E27-5B1A-4A86-8F3E-D2A7164C95B0}")
	keySublayerDNS        = MustParseKey("{E415A6D8-3F92-4C07-B6A4-89C1E0D57F2A}")
	keySublayerPersistent = MustParseKey("{7F28C3B1-A64E-4D95-9C0B-1E5D83A72F46}")
)

// Entry pairs a logical name with its key.
type Entry struct {
	Name LogicalName
	Key  Key
}

// order is the listing order of All; providers precede sublayers.
var order = []LogicalName{
	NameProvider,
	NameProviderPersistent,
	NameSublayerBaseline,
	NameSublayerDNS,
	NameSublayerPersistent,
}

func lookup(name LogicalName) (Key, bool) {
	switch name {
	case NameProvider:
		return keyProvider, true
	case NameProviderPersistent:
		return keyProviderPersistent, true
	case NameSublayerBaseline:
		return keySublayerBaseline, true
	case NameSublayerDNS:
		return keySublayerDNS, true
	case NameSublayerPersistent:
		return keySublayerPersistent, true
	}
	return Nil, false
}

// KeyFor returns the key registered for name.
func KeyFor(name LogicalName) (Key, error) {
	k, ok := lookup(name)
	if !ok {
		return Nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return k, nil
}

// MustKeyFor is like KeyFor but panics for an unknown name.
func MustKeyFor(name LogicalName) Key {
	k, err := KeyFor(name)
	if err != nil {
		panic(err)
	}
	return k
}

// All lists every registered name with its key.
func All() []Entry {
	entries := make([]Entry, 0, len(order))
	for _, name := range order {
		k, _ := lookup(name)
		entries = append(entries, Entry{Name: name, Key: k})
	}
	return entries
}

// Provider is the key of the non-persistent provider.
func Provider() Key { return keyProvider }

// ProviderPersistent is the key of the provider that survives restarts.
func ProviderPersistent() Key { return keyProviderPersistent }

// SublayerBaseline is the key of the baseline enforcement sublayer.
func SublayerBaseline() Key { return keySublayerBaseline }

// SublayerDNS is the key of the DNS restriction sublayer.
func SublayerDNS() Key { return keySublayerDNS }

// SublayerPersistent is the key of the sublayer active before the rest of the
// integration is initialized.
func SublayerPersistent() Key { return keySublayerPersistent }
