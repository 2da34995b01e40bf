// Package stack composes the five wire codecs into the fixed
// eight-layer turducken pipeline. Encode walks the step table forward,
// decode walks it backward; the mirror-order invariant is structural.
package stack

import (
	"github.com/nestwork/turducken/internal/wire"
)

// Layer identifies one step of the pipeline, in encode order.
type Layer int

const (
	LayerInnerLink Layer = iota
	LayerInnerPacket
	LayerInnerSegment
	LayerMessage
	LayerEnvelope
	LayerOuterSegment
	LayerOuterPacket
	LayerOuterLink
)

func (l Layer) String() string {
	switch l {
	case LayerInnerLink:
		return "inner link frame"
	case LayerInnerPacket:
		return "inner network packet"
	case LayerInnerSegment:
		return "inner transport segment"
	case LayerMessage:
		return "chunked text message"
	case LayerEnvelope:
		return "text envelope"
	case LayerOuterSegment:
		return "outer transport segment"
	case LayerOuterPacket:
		return "outer network packet"
	case LayerOuterLink:
		return "outer link frame"
	default:
		return "unknown layer"
	}
}

type layerStep struct {
	layer Layer
	build func(*Stack, []byte) ([]byte, error)
	parse func(*Stack, []byte) ([]byte, error)
}

// steps is the single source of truth for pipeline order. Encapsulate
// iterates it forward, Decapsulate backward.
var steps = []layerStep{
	{
		layer: LayerInnerLink,
		build: func(_ *Stack, b []byte) ([]byte, error) {
			return wire.BuildFrame(b, innerSrcHW, innerDstHW, innerEtherType), nil
		},
		parse: func(_ *Stack, b []byte) ([]byte, error) { return wire.ParseFrame(b) },
	},
	{
		layer: LayerInnerPacket,
		build: func(_ *Stack, b []byte) ([]byte, error) {
			return wire.BuildPacket(b, innerSrcIP, innerDstIP, wire.ProtocolTCP)
		},
		parse: func(_ *Stack, b []byte) ([]byte, error) { return wire.ParsePacket(b) },
	},
	{
		layer: LayerInnerSegment,
		build: func(_ *Stack, b []byte) ([]byte, error) {
			return wire.BuildSegment(b, innerSrcPort, innerDstPort, wire.FlagPSH|wire.FlagACK, innerSeq, innerAck), nil
		},
		parse: func(_ *Stack, b []byte) ([]byte, error) { return wire.ParseSegment(b) },
	},
	{
		layer: LayerMessage,
		build: func(_ *Stack, b []byte) ([]byte, error) { return wire.BuildMessage(b, MessageName) },
		parse: func(_ *Stack, b []byte) ([]byte, error) { return wire.ParseMessage(b) },
	},
	{
		layer: LayerEnvelope,
		build: func(_ *Stack, b []byte) ([]byte, error) {
			return wire.BuildEnvelope(b, envelopeMethod, EnvelopePath, EnvelopeHost), nil
		},
		parse: func(_ *Stack, b []byte) ([]byte, error) { return wire.ParseEnvelope(b) },
	},
	{
		layer: LayerOuterSegment,
		build: func(s *Stack, b []byte) ([]byte, error) {
			return wire.BuildSegment(b, s.cfg.OuterSrcPort, s.cfg.OuterDstPort, wire.FlagPSH|wire.FlagACK, outerSeq, outerAck), nil
		},
		parse: func(_ *Stack, b []byte) ([]byte, error) { return wire.ParseSegment(b) },
	},
	{
		layer: LayerOuterPacket,
		build: func(s *Stack, b []byte) ([]byte, error) {
			return wire.BuildPacket(b, s.cfg.OuterSrcIP, s.cfg.OuterDstIP, wire.ProtocolTCP)
		},
		parse: func(_ *Stack, b []byte) ([]byte, error) { return wire.ParsePacket(b) },
	},
	{
		layer: LayerOuterLink,
		build: func(s *Stack, b []byte) ([]byte, error) {
			return wire.BuildFrame(b, s.cfg.OuterSrcHW, s.cfg.OuterDstHW, outerEtherType), nil
		},
		parse: func(_ *Stack, b []byte) ([]byte, error) { return wire.ParseFrame(b) },
	},
}

// Stack is a configured pipeline. It keeps no per-call state and is
// safe for concurrent use.
type Stack struct {
	cfg Config
}

// New builds a Stack, filling unset Config fields with defaults.
func New(cfg Config) *Stack {
	return &Stack{cfg: cfg.withDefaults()}
}

// Config reports the effective (default-filled) configuration.
func (s *Stack) Config() Config {
	return s.cfg
}

// Encapsulate wraps payload in all eight layers and returns the outer
// frame bytes.
func (s *Stack) Encapsulate(payload []byte) ([]byte, error) {
	buf := payload
	for _, step := range steps {
		var err error
		buf, err = step.build(s, buf)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// Decapsulate unwraps all eight layers in mirror order and returns the
// original payload. The first layer error aborts the walk; a partially
// decoded packet is never meaningful.
func (s *Stack) Decapsulate(packet []byte) ([]byte, error) {
	buf := packet
	for i := len(steps) - 1; i >= 0; i-- {
		var err error
		buf, err = steps[i].parse(s, buf)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// LayerSize is one entry of a Trace: the cumulative packet size after
// the named layer was applied.
type LayerSize struct {
	Layer Layer
	Size  int
}

// Trace runs the encode walk recording the cumulative size after each
// step, for visualization.
func (s *Stack) Trace(payload []byte) ([]LayerSize, error) {
	buf := payload
	sizes := make([]LayerSize, 0, len(steps))
	for _, step := range steps {
		var err error
		buf, err = step.build(s, buf)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, LayerSize{Layer: step.layer, Size: len(buf)})
	}
	return sizes, nil
}
