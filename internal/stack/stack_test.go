package stack

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nestwork/turducken/internal/wire"
)

func TestEncapsulateDecapsulateRoundTrip(t *testing.T) {
	s := New(Config{})

	allBytes := make([]byte, 256)
	for i := range allBytes {
		allBytes[i] = byte(i)
	}

	cases := map[string][]byte{
		"empty":     {},
		"short":     []byte("Hello, World! This is a turducken test."),
		"all bytes": allBytes,
		"large":     bytes.Repeat(allBytes, 128), // 32 KiB
	}

	for name, payload := range cases {
		packet, err := s.Encapsulate(payload)
		if err != nil {
			t.Fatalf("%s: encapsulate: %v", name, err)
		}
		got, err := s.Decapsulate(packet)
		if err != nil {
			t.Fatalf("%s: decapsulate: %v", name, err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("%s: round trip mismatch: %d bytes in, %d out", name, len(payload), len(got))
		}
	}
}

func TestRoundTripSurvivesCustomOuterAddressing(t *testing.T) {
	cfg := Config{
		OuterSrcIP:   wire.MustAddr4("172.16.0.1"),
		OuterDstIP:   wire.MustAddr4("172.16.0.2"),
		OuterSrcPort: 4444,
		OuterDstPort: 5555,
		OuterSrcHW:   wire.MustHardwareAddr("02:00:00:00:00:01"),
		OuterDstHW:   wire.MustHardwareAddr("02:00:00:00:00:02"),
	}
	s := New(cfg)

	payload := []byte("custom addressing")
	packet, err := s.Encapsulate(payload)
	if err != nil {
		t.Fatalf("encapsulate: %v", err)
	}

	src, dst, err := wire.FrameAddrs(packet)
	if err != nil {
		t.Fatalf("frame addrs: %v", err)
	}
	if src != cfg.OuterSrcHW || dst != cfg.OuterDstHW {
		t.Fatalf("outer frame ignores config: src=%s dst=%s", src, dst)
	}

	// Decapsulation does not depend on addressing at all: a receiver
	// with a default stack must still recover the payload.
	got, err := New(Config{}).Decapsulate(packet)
	if err != nil {
		t.Fatalf("decapsulate with default stack: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("round trip mismatch across differently configured stacks")
	}
}

func TestConfigDefaultsFillZeroFields(t *testing.T) {
	s := New(Config{OuterDstPort: 1234})
	cfg := s.Config()
	if cfg.OuterDstPort != 1234 {
		t.Fatalf("explicit field overwritten: %d", cfg.OuterDstPort)
	}
	def := DefaultConfig()
	if cfg.OuterSrcIP != def.OuterSrcIP || cfg.OuterSrcHW != def.OuterSrcHW || cfg.OuterSrcPort != def.OuterSrcPort {
		t.Fatalf("zero fields not defaulted: %+v", cfg)
	}
}

func TestDecapsulateGarbage(t *testing.T) {
	s := New(Config{})
	if _, err := s.Decapsulate([]byte("not a valid packet")); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestDecapsulatePropagatesLayerErrors(t *testing.T) {
	s := New(Config{})
	packet, err := s.Encapsulate([]byte("payload"))
	if err != nil {
		t.Fatalf("encapsulate: %v", err)
	}

	// Chop the packet down to just the outer frame header plus a valid
	// outer network header whose declared length runs past the end: the
	// packet layer's own sentinel must surface unchanged.
	truncated := packet[:wire.LinkHeaderLen+wire.PacketHeaderLen-1]
	if _, err := s.Decapsulate(truncated); !errors.Is(err, wire.ErrMalformedHeader) {
		t.Fatalf("expected ErrMalformedHeader, got %v", err)
	}
}

func TestOverheadStats(t *testing.T) {
	s := New(Config{})

	st, err := s.OverheadStats([]byte("XXXXXXXXXX"))
	if err != nil {
		t.Fatalf("overhead stats: %v", err)
	}
	if st.PayloadSize != 10 {
		t.Fatalf("payload size = %d", st.PayloadSize)
	}
	if st.HeaderSize != st.TotalSize-st.PayloadSize {
		t.Fatalf("header size inconsistent: %+v", st)
	}
	if st.OverheadRatio <= 0 || st.EfficiencyPercent <= 0 || st.EfficiencyPercent >= 100 {
		t.Fatalf("implausible ratios: %+v", st)
	}

	empty, err := s.OverheadStats(nil)
	if err != nil {
		t.Fatalf("overhead stats (empty): %v", err)
	}
	if empty.OverheadRatio != 0 {
		t.Fatalf("empty payload ratio = %f, want 0", empty.OverheadRatio)
	}
}

func TestOverheadMonotonicInPayloadSize(t *testing.T) {
	s := New(Config{})

	prevRatio := 0.0
	prevEff := 0.0
	for i, n := range []int{10, 50, 100, 500, 1000, 5000} {
		st, err := s.OverheadStats(bytes.Repeat([]byte("X"), n))
		if err != nil {
			t.Fatalf("overhead stats (%d): %v", n, err)
		}
		if i > 0 {
			if st.OverheadRatio >= prevRatio {
				t.Fatalf("overhead ratio not strictly decreasing at %d bytes: %f >= %f", n, st.OverheadRatio, prevRatio)
			}
			if st.EfficiencyPercent <= prevEff {
				t.Fatalf("efficiency not strictly increasing at %d bytes: %f <= %f", n, st.EfficiencyPercent, prevEff)
			}
		}
		prevRatio = st.OverheadRatio
		prevEff = st.EfficiencyPercent
	}
}

func TestTrace(t *testing.T) {
	s := New(Config{})
	payload := []byte("trace me")

	trace, err := s.Trace(payload)
	if err != nil {
		t.Fatalf("trace: %v", err)
	}
	if len(trace) != 8 {
		t.Fatalf("expected 8 layers, got %d", len(trace))
	}
	if trace[0].Layer != LayerInnerLink || trace[7].Layer != LayerOuterLink {
		t.Fatalf("unexpected layer order: first=%s last=%s", trace[0].Layer, trace[7].Layer)
	}
	for i := 1; i < len(trace); i++ {
		if trace[i].Size <= trace[i-1].Size {
			t.Fatalf("cumulative size not increasing at %s: %d <= %d", trace[i].Layer, trace[i].Size, trace[i-1].Size)
		}
	}

	packet, err := s.Encapsulate(payload)
	if err != nil {
		t.Fatalf("encapsulate: %v", err)
	}
	if trace[7].Size != len(packet) {
		t.Fatalf("final trace size %d != packet size %d", trace[7].Size, len(packet))
	}
}

func TestStackSafeForConcurrentUse(t *testing.T) {
	s := New(Config{})
	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		payload := bytes.Repeat([]byte{byte(i)}, 64*(i+1))
		go func() {
			packet, err := s.Encapsulate(payload)
			if err != nil {
				done <- err
				return
			}
			got, err := s.Decapsulate(packet)
			if err != nil {
				done <- err
				return
			}
			if !bytes.Equal(got, payload) {
				done <- errors.New("round trip mismatch")
				return
			}
			done <- nil
		}()
	}
	for i := 0; i < 16; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent round trip: %v", err)
		}
	}
}

func TestOversizePayloadFailsFast(t *testing.T) {
	s := New(Config{})
	// Large enough that the inner network packet cannot carry it.
	if _, err := s.Encapsulate(make([]byte, 0x10000)); !errors.Is(err, wire.ErrOversize) {
		t.Fatalf("expected ErrOversize, got %v", err)
	}
}
