package guids

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidKey is returned when a key cannot be parsed.
var ErrInvalidKey = errors.New("invalid key")

// Key identifies a provider or sublayer inside the filtering engine.
// It is a value type; copies are independent.
type Key uuid.UUID

// Nil is the unset key. No registered object may use it.
var Nil Key

// ParseKey parses the braced GUID form used by Windows tooling
// ("{6A3B...}") as well as the bare RFC 4122 form.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		s = s[1 : len(s)-1]
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("%w %q: %v", ErrInvalidKey, s, err)
	}
	return Key(u), nil
}

// MustParseKey is like ParseKey but panics on error.
// Only use it for compiled-in constants.
func MustParseKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// UUID returns the key as a uuid.UUID.
func (k Key) UUID() uuid.UUID {
	return uuid.UUID(k)
}

// IsZero reports whether the key was never set.
func (k Key) IsZero() bool {
	return k == Nil
}

// String renders the key in braced upper-case form,
// e.g. {6A3B0F4E-1C52-4B8A-9E21-3F0C7D5A2B10}.
func (k Key) String() string {
	return "{" + strings.ToUpper(uuid.UUID(k).String()) + "}"
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MixedEndianBytes returns the in-memory layout of the key as a Windows GUID
// struct: Data1, Data2 and Data3 little-endian, Data4 as-is.
func (k Key) MixedEndianBytes() [16]byte {
	var out [16]byte
	out[0], out[1], out[2], out[3] = k[3], k[2], k[1], k[0]
	out[4], out[5] = k[5], k[4]
	out[6], out[7] = k[7], k[6]
	copy(out[8:], k[8:])
	return out
}
