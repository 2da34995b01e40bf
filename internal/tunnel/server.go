package tunnel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nestwork/turducken/internal/observability"
	"github.com/nestwork/turducken/internal/stack"
)

// Server accepts tunnel connections and answers them in a fixed mode.
// One request/response exchange happens per connection.
type Server struct {
	mode     string
	stack    *stack.Stack
	handler  *Handler
	maxBytes uint32

	mu       sync.Mutex
	listener net.Listener
	wg       sync.WaitGroup
}

// NewServer builds a server in mode using st. Unknown modes fall back
// to echo at dispatch time; validation belongs to the caller.
func NewServer(st *stack.Stack, mode string) *Server {
	return &Server{
		mode:     mode,
		stack:    st,
		handler:  NewHandler(),
		maxBytes: MaxPacketBytes,
	}
}

// Handler exposes the accumulated mode state (stats, transcript, files).
func (s *Server) Handler() *Handler {
	return s.handler
}

// Addr reports the bound listen address, or "" before Serve.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Listen binds addr without accepting yet, so callers can learn the
// effective port before starting Serve in the background.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("tunnel listen on %s: %w", addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	return nil
}

// Serve runs the accept loop until ctx is canceled. Each connection is
// handled in its own goroutine; Serve drains them before returning.
func (s *Server) Serve(ctx context.Context, addr string) error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		if err := s.Listen(addr); err != nil {
			return err
		}
		s.mu.Lock()
		ln = s.listener
		s.mu.Unlock()
	}

	log.Info().Str("addr", ln.Addr().String()).Str("mode", s.mode).Msg("tunnel server listening")

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.wg.Wait()
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("tunnel accept: %w", err)
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	start := time.Now()
	remote := conn.RemoteAddr().String()

	packet, err := ReadPacket(conn, s.maxBytes)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn().Str("remote", remote).Err(err).Msg("tunnel read failed")
		}
		return
	}

	payload, err := s.stack.Decapsulate(packet)
	if err != nil {
		log.Warn().Str("remote", remote).Int("bytes", len(packet)).Err(err).Msg("decapsulation failed")
		observability.RecordTunnelExchange("tunneld", s.mode, len(packet), 0, time.Since(start), false)
		s.reply(conn, []byte("Error: "+err.Error()))
		return
	}

	s.handler.Stats.UpdateReceived(len(packet), len(payload))
	observability.RecordTunnelExchange("tunneld", s.mode, len(packet), len(payload), time.Since(start), true)
	log.Debug().
		Str("remote", remote).
		Str("mode", s.mode).
		Int("packet_bytes", len(packet)).
		Int("payload_bytes", len(payload)).
		Msg("tunnel request")

	s.reply(conn, s.handler.Handle(s.mode, payload))
}

// reply encapsulates the response payload and writes it back. Errors
// here only end the connection; there is nothing left to tell the peer.
func (s *Server) reply(conn net.Conn, payload []byte) {
	packet, err := s.stack.Encapsulate(payload)
	if err != nil {
		log.Error().Err(err).Msg("response encapsulation failed")
		return
	}
	if err := WritePacket(conn, packet, s.maxBytes); err != nil {
		log.Warn().Err(err).Msg("tunnel write failed")
		return
	}
	s.handler.Stats.UpdateSent(len(packet))
	observability.RecordTunnelReply("tunneld", s.mode, len(packet))
}
