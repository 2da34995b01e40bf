package tunnel

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ModeFunc handles one decapsulated request payload and produces the
// response payload. Handler-level failures come back as readable text
// payloads, matching what a client in that mode expects to print.
type ModeFunc func(h *Handler, payload []byte) []byte

// modes is the fixed mode registry. Unknown modes fall back to echo.
var modes = map[string]ModeFunc{
	"echo": (*Handler).handleEcho,
	"chat": (*Handler).handleChat,
	"file": (*Handler).handleFile,
	"ping": (*Handler).handlePing,
}

// KnownMode reports whether name is a registered mode.
func KnownMode(name string) bool {
	_, ok := modes[name]
	return ok
}

// ModeNames lists the registered modes for help text and validation
// messages.
func ModeNames() []string {
	names := make([]string, 0, len(modes))
	for name := range modes {
		names = append(names, name)
	}
	return names
}

// ChatEntry is one line of the in-memory chat transcript.
type ChatEntry struct {
	At      string `json:"at"`
	Message string `json:"message"`
}

// Handler routes request payloads by mode and owns the state the modes
// accumulate: stats, the chat transcript, and received files.
type Handler struct {
	Stats *Stats

	mu         sync.Mutex
	transcript []ChatEntry
	files      map[string][]byte
}

func NewHandler() *Handler {
	return &Handler{
		Stats: NewStats(),
		files: make(map[string][]byte),
	}
}

// Handle dispatches payload to the named mode.
func (h *Handler) Handle(mode string, payload []byte) []byte {
	fn, ok := modes[mode]
	if !ok {
		fn = (*Handler).handleEcho
	}
	return fn(h, payload)
}

func (h *Handler) handleEcho(payload []byte) []byte {
	log.Debug().Int("bytes", len(payload)).Msg("echo request")
	return payload
}

func (h *Handler) handleChat(payload []byte) []byte {
	ts := time.Now().Format("15:04:05")
	entry := ChatEntry{At: ts, Message: string(payload)}

	h.mu.Lock()
	h.transcript = append(h.transcript, entry)
	h.mu.Unlock()

	log.Info().Str("at", ts).Str("message", entry.Message).Msg("chat message")
	return []byte("Message received at " + ts)
}

func (h *Handler) handleFile(payload []byte) []byte {
	name, content, err := DecodeFilePayload(payload)
	if err != nil {
		return []byte("Error: invalid file format")
	}

	h.mu.Lock()
	h.files[name] = content
	h.mu.Unlock()

	log.Info().Str("file", name).Int("bytes", len(content)).Msg("file received")
	return []byte(fmt.Sprintf("File %q received (%d bytes)", name, len(content)))
}

func (h *Handler) handlePing(payload []byte) []byte {
	clientNanos, err := strconv.ParseInt(string(payload), 10, 64)
	if err != nil {
		return []byte("Error: invalid ping format")
	}
	return []byte(fmt.Sprintf("%d,%d", clientNanos, time.Now().UnixNano()))
}

// Transcript returns a copy of the chat history.
func (h *Handler) Transcript() []ChatEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]ChatEntry, len(h.transcript))
	copy(out, h.transcript)
	return out
}

// File returns a received file's content by name.
func (h *Handler) File(name string) ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	content, ok := h.files[name]
	return content, ok
}
