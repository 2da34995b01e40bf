package tunnel

import (
	"sync"
	"testing"
)

func TestStatsConcurrentUpdates(t *testing.T) {
	s := NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s.UpdateReceived(100, 40)
				s.UpdateSent(100)
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if snap.PacketsReceived != 8000 || snap.PacketsSent != 8000 {
		t.Fatalf("lost updates: %+v", snap)
	}
	if snap.BytesReceived != 800000 || snap.BytesSent != 800000 {
		t.Fatalf("byte counters wrong: %+v", snap)
	}
	if snap.TotalOverhead != 8000*60 {
		t.Fatalf("overhead counter wrong: %+v", snap)
	}
}
