package stack

import "github.com/nestwork/turducken/internal/wire"

// Inner addressing is fixed: both endpoints of a tunnel must build the
// inner layers identically for round trips to hold. Only the outer
// layers carry caller-chosen addresses.
var (
	innerSrcIP = wire.MustAddr4("10.255.255.1")
	innerDstIP = wire.MustAddr4("10.255.255.2")
	innerSrcHW = wire.MustHardwareAddr("de:ad:be:ef:ca:fe")
	innerDstHW = wire.MustHardwareAddr("fe:ed:fa:ce:de:ad")
)

const (
	innerSrcPort uint16 = 31337
	innerDstPort uint16 = 31338

	innerSeq uint32 = 1000
	innerAck uint32 = 1000
	outerSeq uint32 = 2000
	outerAck uint32 = 2000

	// 0x88B5 is a local-experimental ethertype; the outer frame claims
	// to carry an ordinary network packet.
	innerEtherType uint16 = 0x88B5
	outerEtherType uint16 = 0x0800

	// MessageName addresses the chunked text message.
	MessageName = "data.turducken.example.com"

	// EnvelopeHost and EnvelopePath shape the text envelope's header
	// block.
	EnvelopeHost   = "turducken.example.com"
	EnvelopePath   = "/turducken/v1/tunnel"
	envelopeMethod = "POST"
)

// Config carries the outer addressing of a stack. The zero value is
// usable; unset fields take the documented defaults.
type Config struct {
	OuterSrcIP   wire.Addr4
	OuterDstIP   wire.Addr4
	OuterSrcPort uint16
	OuterDstPort uint16
	OuterSrcHW   wire.HardwareAddr
	OuterDstHW   wire.HardwareAddr
}

// DefaultConfig returns the documented outer addressing defaults.
func DefaultConfig() Config {
	return Config{
		OuterSrcIP:   wire.MustAddr4("192.168.1.100"),
		OuterDstIP:   wire.MustAddr4("192.168.1.200"),
		OuterSrcPort: 54321,
		OuterDstPort: 9999,
		OuterSrcHW:   wire.MustHardwareAddr("00:11:22:33:44:55"),
		OuterDstHW:   wire.MustHardwareAddr("aa:bb:cc:dd:ee:ff"),
	}
}

// withDefaults fills any zero-valued field from DefaultConfig, keeping
// the zero Config usable.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.OuterSrcIP == (wire.Addr4{}) {
		c.OuterSrcIP = def.OuterSrcIP
	}
	if c.OuterDstIP == (wire.Addr4{}) {
		c.OuterDstIP = def.OuterDstIP
	}
	if c.OuterSrcPort == 0 {
		c.OuterSrcPort = def.OuterSrcPort
	}
	if c.OuterDstPort == 0 {
		c.OuterDstPort = def.OuterDstPort
	}
	if c.OuterSrcHW == (wire.HardwareAddr{}) {
		c.OuterSrcHW = def.OuterSrcHW
	}
	if c.OuterDstHW == (wire.HardwareAddr{}) {
		c.OuterDstHW = def.OuterDstHW
	}
	return c
}
