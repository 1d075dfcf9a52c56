package ws

import (
	"testing"

	"backstage/server/internal/sim"
)

// stalledSession builds a session with no writer goroutine, so its send
// queue only ever fills.
func stalledSession(depth int) *Session {
	return &Session{
		send: make(chan []byte, depth),
		done: make(chan struct{}),
	}
}

func TestSessionQueueNeverBlocks(t *testing.T) {
	s := stalledSession(2)
	if !s.Queue([]byte("a")) || !s.Queue([]byte("b")) {
		t.Fatalf("expected the queue to accept up to its depth")
	}
	if s.Queue([]byte("c")) {
		t.Fatalf("expected a full queue to reject instead of blocking")
	}
	s.Close()
	if s.Queue([]byte("d")) {
		t.Fatalf("expected a closed session to reject")
	}
}

func TestBroadcastDropsSessionBehindOnSnapshots(t *testing.T) {
	hub := NewHub(nil, nil)
	stalled := stalledSession(1)
	hub.Add(stalled)

	hub.Broadcast(sim.Snapshot{Frame: 1})
	if got := len(hub.sessions); got != 1 {
		t.Fatalf("expected the session to survive while its queue has room, got %d sessions", got)
	}

	hub.Broadcast(sim.Snapshot{Frame: 2})
	if got := len(hub.sessions); got != 0 {
		t.Fatalf("expected the lagging session to be dropped, got %d sessions", got)
	}
}

func TestBroadcastKeepsDrainingSessions(t *testing.T) {
	hub := NewHub(nil, nil)
	s := stalledSession(4)
	hub.Add(s)

	hub.Broadcast(sim.Snapshot{Frame: 1})
	hub.Broadcast(sim.Snapshot{Frame: 2})

	if got := len(s.send); got != 2 {
		t.Fatalf("expected 2 staged snapshots, got %d", got)
	}
	if got := len(hub.sessions); got != 1 {
		t.Fatalf("expected the session to stay registered, got %d sessions", got)
	}
}
