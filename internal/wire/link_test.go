package wire

import (
	"bytes"
	"errors"
	"testing"
)

var (
	testSrcHW = MustHardwareAddr("de:ad:be:ef:ca:fe")
	testDstHW = MustHardwareAddr("fe:ed:fa:ce:de:ad")
)

func TestBuildParseFrameRoundTrip(t *testing.T) {
	payload := []byte("hello link layer")
	frame := BuildFrame(payload, testSrcHW, testDstHW, 0x88B5)
	if len(frame) != LinkHeaderLen+len(payload) {
		t.Fatalf("frame length = %d, want %d", len(frame), LinkHeaderLen+len(payload))
	}

	got, err := ParseFrame(frame)
	if err != nil {
		t.Fatalf("parse frame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: got %q", got)
	}
}

func TestParseFrameEmptyPayload(t *testing.T) {
	frame := BuildFrame(nil, testSrcHW, testDstHW, 0x88B5)
	got, err := ParseFrame(frame)
	if err != nil {
		t.Fatalf("parse frame: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty payload, got %d bytes", len(got))
	}
}

func TestParseFrameShortInput(t *testing.T) {
	_, err := ParseFrame([]byte{1, 2, 3})
	if !errors.Is(err, ErrMalformedHeader) {
		t.Fatalf("expected ErrMalformedHeader, got %v", err)
	}
}

func TestFrameAddrs(t *testing.T) {
	frame := BuildFrame([]byte("x"), testSrcHW, testDstHW, 0x0800)
	src, dst, err := FrameAddrs(frame)
	if err != nil {
		t.Fatalf("frame addrs: %v", err)
	}
	if src != testSrcHW || dst != testDstHW {
		t.Fatalf("addr mismatch: src=%s dst=%s", src, dst)
	}
}

func TestParseHardwareAddr(t *testing.T) {
	a, err := ParseHardwareAddr("00:11:22:33:44:55")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if a.String() != "00:11:22:33:44:55" {
		t.Fatalf("round trip mismatch: %s", a)
	}

	if _, err := ParseHardwareAddr("00:11:22:33:44"); err == nil {
		t.Fatal("expected error for short address")
	}
	if _, err := ParseHardwareAddr("zz:11:22:33:44:55"); err == nil {
		t.Fatal("expected error for non-hex address")
	}
}
