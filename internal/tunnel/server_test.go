package tunnel

import (
	"bytes"
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/nestwork/turducken/internal/stack"
	"github.com/nestwork/turducken/internal/testutil/testlog"
)

// startServer runs a server in mode on a loopback listener and returns
// its address plus a stop func.
func startServer(t *testing.T, mode string) (*Server, string, func()) {
	t.Helper()

	srv := NewServer(stack.New(stack.Config{}), mode)
	if err := srv.Listen("127.0.0.1:0"); err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, "") }()

	stop := func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("serve: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("server did not shut down")
		}
	}
	return srv, srv.Addr(), stop
}

func TestSocketEchoRoundTrip(t *testing.T) {
	testlog.Start(t)
	srv, addr, stop := startServer(t, "echo")
	defer stop()

	client := NewClient(stack.New(stack.Config{}), addr, 5*time.Second)

	payload := make([]byte, 2048)
	for i := range payload {
		payload[i] = byte(i * 7)
	}

	resp, rtt, err := client.Exchange(context.Background(), payload)
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if !bytes.Equal(resp, payload) {
		t.Fatal("echo response mismatch")
	}
	if rtt <= 0 {
		t.Fatalf("implausible rtt: %v", rtt)
	}

	snap := srv.Handler().Stats.Snapshot()
	if snap.PacketsReceived != 1 || snap.PacketsSent != 1 {
		t.Fatalf("stats not updated: %+v", snap)
	}
	if snap.TotalOverhead == 0 {
		t.Fatalf("overhead not accounted: %+v", snap)
	}
}

func TestSocketChat(t *testing.T) {
	testlog.Start(t)
	srv, addr, stop := startServer(t, "chat")
	defer stop()

	client := NewClient(stack.New(stack.Config{}), addr, 5*time.Second)
	resp, _, err := client.Exchange(context.Background(), []byte("hello tunnel"))
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if !strings.HasPrefix(string(resp), "Message received at ") {
		t.Fatalf("unexpected ack: %q", resp)
	}
	if len(srv.Handler().Transcript()) != 1 {
		t.Fatal("transcript not recorded")
	}
}

func TestSocketPing(t *testing.T) {
	testlog.Start(t)
	_, addr, stop := startServer(t, "ping")
	defer stop()

	client := NewClient(stack.New(stack.Config{}), addr, 5*time.Second)
	rtt, err := client.Ping(context.Background())
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if rtt <= 0 {
		t.Fatalf("implausible rtt: %v", rtt)
	}
}

func TestServerRepliesWithEncapsulatedError(t *testing.T) {
	testlog.Start(t)
	_, addr, stop := startServer(t, "echo")
	defer stop()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	// A framed packet that is not a valid turducken packet at all.
	if err := WritePacket(conn, []byte("not a valid packet"), MaxPacketBytes); err != nil {
		t.Fatalf("write: %v", err)
	}

	respPacket, err := ReadPacket(conn, MaxPacketBytes)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	payload, err := stack.New(stack.Config{}).Decapsulate(respPacket)
	if err != nil {
		t.Fatalf("decapsulate error reply: %v", err)
	}
	if !strings.HasPrefix(string(payload), "Error: ") {
		t.Fatalf("expected error payload, got %q", payload)
	}
}

func TestConcurrentClients(t *testing.T) {
	testlog.Start(t)
	srv, addr, stop := startServer(t, "echo")
	defer stop()

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		payload := bytes.Repeat([]byte{byte(i + 1)}, 512)
		go func() {
			client := NewClient(stack.New(stack.Config{}), addr, 5*time.Second)
			resp, _, err := client.Exchange(context.Background(), payload)
			if err == nil && !bytes.Equal(resp, payload) {
				err = errors.New("echo response mismatch")
			}
			errs <- err
		}()
	}
	for i := 0; i < n; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("concurrent exchange: %v", err)
		}
	}

	if snap := srv.Handler().Stats.Snapshot(); snap.PacketsReceived != n {
		t.Fatalf("expected %d packets, got %+v", n, snap)
	}
}
