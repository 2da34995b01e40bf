// Package tunnel carries turducken packets over one real TCP socket.
// It is glue around the stack: framing, mode handlers, a server accept
// loop, and a client. The stack itself stays pure.
package tunnel

import (
	"sync"
	"time"
)

// Stats accumulates tunnel counters. Safe for concurrent update; every
// connection runs in its own goroutine.
type Stats struct {
	mu sync.Mutex

	packetsReceived uint64
	packetsSent     uint64
	bytesReceived   uint64
	bytesSent       uint64
	totalOverhead   uint64
	started         time.Time
}

// Snapshot is one consistent read of the counters.
type Snapshot struct {
	UptimeSeconds   float64 `json:"uptime_seconds"`
	PacketsReceived uint64  `json:"packets_received"`
	PacketsSent     uint64  `json:"packets_sent"`
	BytesReceived   uint64  `json:"bytes_received"`
	BytesSent       uint64  `json:"bytes_sent"`
	TotalOverhead   uint64  `json:"total_overhead"`
}

func NewStats() *Stats {
	return &Stats{started: time.Now()}
}

// UpdateReceived records one inbound packet and the payload it carried.
func (s *Stats) UpdateReceived(packetSize, payloadSize int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packetsReceived++
	s.bytesReceived += uint64(packetSize)
	if packetSize > payloadSize {
		s.totalOverhead += uint64(packetSize - payloadSize)
	}
}

// UpdateSent records one outbound packet.
func (s *Stats) UpdateSent(packetSize int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packetsSent++
	s.bytesSent += uint64(packetSize)
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		UptimeSeconds:   time.Since(s.started).Seconds(),
		PacketsReceived: s.packetsReceived,
		PacketsSent:     s.packetsSent,
		BytesReceived:   s.bytesReceived,
		BytesSent:       s.bytesSent,
		TotalOverhead:   s.totalOverhead,
	}
}
