package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// HardwareAddr is a six-byte link layer address.
type HardwareAddr [6]byte

// ParseHardwareAddr parses colon-separated hex notation, e.g.
// "de:ad:be:ef:ca:fe".
func ParseHardwareAddr(s string) (HardwareAddr, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return HardwareAddr{}, fmt.Errorf("wire: invalid hardware address %q", s)
	}
	var a HardwareAddr
	for i, p := range parts {
		if len(p) != 2 {
			return HardwareAddr{}, fmt.Errorf("wire: invalid hardware address %q", s)
		}
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return HardwareAddr{}, fmt.Errorf("wire: invalid hardware address %q: %w", s, err)
		}
		a[i] = byte(v)
	}
	return a, nil
}

// MustHardwareAddr is ParseHardwareAddr for compile-time constants; it
// panics on malformed input.
func MustHardwareAddr(s string) HardwareAddr {
	a, err := ParseHardwareAddr(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a HardwareAddr) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", a[0], a[1], a[2], a[3], a[4], a[5])
}

// Addr4 is a four-byte network layer address.
type Addr4 [4]byte

// ParseAddr4 parses dotted-decimal notation, e.g. "10.255.255.1".
func ParseAddr4(s string) (Addr4, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return Addr4{}, fmt.Errorf("wire: invalid network address %q", s)
	}
	var a Addr4
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return Addr4{}, fmt.Errorf("wire: invalid network address %q: %w", s, err)
		}
		a[i] = byte(v)
	}
	return a, nil
}

// MustAddr4 is ParseAddr4 for compile-time constants; it panics on
// malformed input.
func MustAddr4(s string) Addr4 {
	a, err := ParseAddr4(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Addr4) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", a[0], a[1], a[2], a[3])
}
