//go:build windows

package guids

import (
	"encoding/binary"

	"golang.org/x/sys/windows"
)

// GUID converts the key into the struct the filtering engine API expects.
func (k Key) GUID() windows.GUID {
	g := windows.GUID{
		Data1: binary.BigEndian.Uint32(k[0:4]),
		Data2: binary.BigEndian.Uint16(k[4:6]),
		Data3: binary.BigEndian.Uint16(k[6:8]),
	}
	copy(g.Data4[:], k[8:16])
	return g
}

// KeyFromGUID is the inverse of Key.GUID.
func KeyFromGUID(g windows.GUID) Key {
	var k Key
	binary.BigEndian.PutUint32(k[0:4], g.Data1)
	binary.BigEndian.PutUint16(k[4:6], g.Data2)
	binary.BigEndian.PutUint16(k[6:8], g.Data3)
	copy(k[8:16], g.Data4[:])
	return k
}
