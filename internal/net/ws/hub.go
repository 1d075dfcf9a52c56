package ws

import (
	"encoding/json"
	"sync"

	"backstage/server/internal/sim"
	"backstage/server/internal/telemetry"
)

const (
	metricSessionsGauge   = "ws_sessions"
	metricBroadcastsTotal = "ws_broadcasts_total"
)

// Hub tracks live sessions and fans frame snapshots out to them. Sessions
// that cannot keep up with the frame rate are dropped.
type Hub struct {
	mu       sync.Mutex
	sessions map[*Session]struct{}
	logger   telemetry.Logger
	metrics  telemetry.Metrics
}

// NewHub builds an empty session hub.
func NewHub(logger telemetry.Logger, metrics telemetry.Metrics) *Hub {
	return &Hub{
		sessions: make(map[*Session]struct{}),
		logger:   logger,
		metrics:  metrics,
	}
}

// Add registers a session.
func (h *Hub) Add(s *Session) {
	if h == nil || s == nil {
		return
	}
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	count := len(h.sessions)
	h.mu.Unlock()
	h.storeSessions(count)
}

// Remove deregisters and closes a session.
func (h *Hub) Remove(s *Session) {
	if h == nil || s == nil {
		return
	}
	h.mu.Lock()
	_, ok := h.sessions[s]
	if ok {
		delete(h.sessions, s)
	}
	count := len(h.sessions)
	h.mu.Unlock()
	if ok {
		s.Close()
	}
	h.storeSessions(count)
}

// Broadcast encodes a snapshot once and stages it on every session's send
// queue. Enqueueing never blocks, so the frame loop is insulated from slow
// clients; a session whose queue is full is dropped.
func (h *Hub) Broadcast(snapshot sim.Snapshot) {
	if h == nil {
		return
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		if h.logger != nil {
			h.logger.Printf("failed to encode snapshot: %v", err)
		}
		return
	}

	h.mu.Lock()
	targets := make([]*Session, 0, len(h.sessions))
	for s := range h.sessions {
		targets = append(targets, s)
	}
	h.mu.Unlock()

	for _, s := range targets {
		if !s.Queue(data) {
			if h.logger != nil {
				h.logger.Printf("dropping session behind on snapshots")
			}
			h.Remove(s)
		}
	}
	if h.metrics != nil {
		h.metrics.Add(metricBroadcastsTotal, 1)
	}
}

func (h *Hub) storeSessions(count int) {
	if h.metrics == nil {
		return
	}
	h.metrics.Store(metricSessionsGauge, uint64(count))
}
