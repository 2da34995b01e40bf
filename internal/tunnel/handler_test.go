package tunnel

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/nestwork/turducken/internal/testutil/testlog"
)

func TestHandleEcho(t *testing.T) {
	testlog.Start(t)
	h := NewHandler()
	payload := []byte{0, 1, 2, 0xFF}
	if got := h.Handle("echo", payload); !bytes.Equal(got, payload) {
		t.Fatalf("echo mismatch: %v", got)
	}
}

func TestHandleUnknownModeFallsBackToEcho(t *testing.T) {
	testlog.Start(t)
	h := NewHandler()
	payload := []byte("anything")
	if got := h.Handle("nonsense", payload); !bytes.Equal(got, payload) {
		t.Fatalf("fallback mismatch: %v", got)
	}
}

func TestHandleChatKeepsTranscript(t *testing.T) {
	testlog.Start(t)
	h := NewHandler()

	resp := h.Handle("chat", []byte("hello there"))
	if !strings.HasPrefix(string(resp), "Message received at ") {
		t.Fatalf("unexpected ack: %q", resp)
	}

	transcript := h.Transcript()
	if len(transcript) != 1 || transcript[0].Message != "hello there" {
		t.Fatalf("transcript wrong: %+v", transcript)
	}
}

func TestHandleFileStoresContent(t *testing.T) {
	testlog.Start(t)
	h := NewHandler()

	content := []byte("file body bytes")
	resp := h.Handle("file", EncodeFilePayload("notes.txt", content))
	if !strings.Contains(string(resp), `"notes.txt"`) {
		t.Fatalf("unexpected receipt: %q", resp)
	}

	stored, ok := h.File("notes.txt")
	if !ok || !bytes.Equal(stored, content) {
		t.Fatalf("stored file wrong: ok=%v content=%q", ok, stored)
	}
}

func TestHandleFileRejectsGarbage(t *testing.T) {
	testlog.Start(t)
	h := NewHandler()
	if got := string(h.Handle("file", []byte{1, 2})); got != "Error: invalid file format" {
		t.Fatalf("unexpected response: %q", got)
	}
}

func TestHandlePing(t *testing.T) {
	testlog.Start(t)
	h := NewHandler()

	sent := time.Now().UnixNano()
	resp := string(h.Handle("ping", []byte(strconv.FormatInt(sent, 10))))

	parts := strings.SplitN(resp, ",", 2)
	if len(parts) != 2 {
		t.Fatalf("unexpected ping response: %q", resp)
	}
	if echoed, err := strconv.ParseInt(parts[0], 10, 64); err != nil || echoed != sent {
		t.Fatalf("client timestamp not echoed: %q", resp)
	}
	if _, err := strconv.ParseInt(parts[1], 10, 64); err != nil {
		t.Fatalf("server timestamp unreadable: %q", resp)
	}
}

func TestHandlePingRejectsGarbage(t *testing.T) {
	testlog.Start(t)
	h := NewHandler()
	if got := string(h.Handle("ping", []byte("not a number"))); got != "Error: invalid ping format" {
		t.Fatalf("unexpected response: %q", got)
	}
}

func TestModeNamesCoverRegistry(t *testing.T) {
	for _, name := range []string{"echo", "chat", "file", "ping"} {
		if !KnownMode(name) {
			t.Fatalf("mode %q missing from registry", name)
		}
	}
	if KnownMode("carrier-pigeon") {
		t.Fatal("unexpected mode registered")
	}
	if len(ModeNames()) != 4 {
		t.Fatalf("mode list wrong: %v", ModeNames())
	}
}

func TestFilePayloadRoundTrip(t *testing.T) {
	name := "dir/archive.bin"
	content := bytes.Repeat([]byte{0xCA, 0xFE}, 300)

	gotName, gotContent, err := DecodeFilePayload(EncodeFilePayload(name, content))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gotName != name || !bytes.Equal(gotContent, content) {
		t.Fatalf("round trip mismatch: %q", gotName)
	}
}

func TestFilePayloadTruncated(t *testing.T) {
	full := EncodeFilePayload("name.txt", []byte("content"))
	for _, n := range []int{0, 3, 7} {
		if _, _, err := DecodeFilePayload(full[:n]); !errors.Is(err, ErrBadFilePayload) {
			t.Fatalf("expected ErrBadFilePayload for %d-byte prefix, got %v", n, err)
		}
	}
}

func TestFilePayloadHostileNameLength(t *testing.T) {
	// Length prefixes far beyond the buffer must fail cleanly, including
	// values that would wrap a 32-bit int.
	for _, prefix := range [][]byte{
		{0x00, 0x00, 0x00, 0x05},
		{0x7F, 0xFF, 0xFF, 0xFF},
		{0xFF, 0xFF, 0xFF, 0xF0},
	} {
		b := append(prefix, 'x', 'y')
		if _, _, err := DecodeFilePayload(b); !errors.Is(err, ErrBadFilePayload) {
			t.Fatalf("expected ErrBadFilePayload for prefix %x, got %v", prefix, err)
		}
	}
}
