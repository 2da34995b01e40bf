package tunnel

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/nestwork/turducken/internal/stack"
)

// Client dials a tunnel server for one exchange per call.
type Client struct {
	addr    string
	timeout time.Duration
	stack   *stack.Stack
}

func NewClient(st *stack.Stack, addr string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{addr: addr, timeout: timeout, stack: st}
}

// Exchange encapsulates payload, performs one request/response on a
// fresh connection, and returns the decapsulated response plus the
// round trip time.
func (c *Client) Exchange(ctx context.Context, payload []byte) ([]byte, time.Duration, error) {
	packet, err := c.stack.Encapsulate(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("encapsulate request: %w", err)
	}

	dialer := net.Dialer{Timeout: c.timeout}
	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return nil, 0, fmt.Errorf("dial %s: %w", c.addr, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(c.timeout))
	}

	if err := WritePacket(conn, packet, MaxPacketBytes); err != nil {
		return nil, 0, fmt.Errorf("write request: %w", err)
	}
	respPacket, err := ReadPacket(conn, MaxPacketBytes)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	rtt := time.Since(start)

	resp, err := c.stack.Decapsulate(respPacket)
	if err != nil {
		return nil, 0, fmt.Errorf("decapsulate response: %w", err)
	}
	return resp, rtt, nil
}

// Ping sends the current time in the ping wire form and returns the
// measured round trip.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	sent := time.Now()
	payload := []byte(strconv.FormatInt(sent.UnixNano(), 10))

	resp, _, err := c.Exchange(ctx, payload)
	if err != nil {
		return 0, err
	}

	// Response is "<client nanos>,<server nanos>"; the client clock
	// alone determines the RTT.
	parts := strings.SplitN(string(resp), ",", 2)
	echoed, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad ping response %q: %w", resp, err)
	}
	if echoed != sent.UnixNano() {
		return 0, fmt.Errorf("ping response echoes wrong timestamp %d", echoed)
	}
	return time.Since(sent), nil
}
