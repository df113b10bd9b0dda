//go:build windows

package guids

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGUIDConversion(t *testing.T) {
	k := MustParseKey("{00112233-4455-6677-8899-AABBCCDDEEFF}")
	g := k.GUID()

	assert.Equal(t, uint32(0x00112233), g.Data1)
	assert.Equal(t, uint16(0x4455), g.Data2)
	assert.Equal(t, uint16(0x6677), g.Data3)
	assert.Equal(t, [8]byte{0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}, g.Data4)
	assert.Equal(t, k, KeyFromGUID(g))
}
