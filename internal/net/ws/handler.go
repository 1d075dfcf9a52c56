package ws

import (
	"encoding/json"
	nethttp "net/http"
	"time"

	"github.com/gorilla/websocket"

	"backstage/server/internal/sim"
	"backstage/server/internal/telemetry"
)

// HandlerConfig carries the injected logger.
type HandlerConfig struct {
	Logger telemetry.Logger
}

// Handler upgrades edit clients onto the hub. Each connection gets one read
// pump that decodes edit messages and stages them on the frame loop; writes
// go through the hub broadcast.
type Handler struct {
	loop     *sim.Loop
	hub      *Hub
	logger   telemetry.Logger
	upgrader websocket.Upgrader
}

// NewHandler wires the upgrade endpoint.
func NewHandler(loop *sim.Loop, hub *Hub, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	return &Handler{
		loop:   loop,
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *nethttp.Request) bool {
				return true
			},
		},
	}
}

// Handle upgrades the request and runs the read pump until the client goes
// away.
func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		nethttp.Error(w, "missing session", nethttp.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed for %s: %v", sessionID, err)
		return
	}

	session := NewSession(conn)
	h.hub.Add(session)

	// Seed the client with the current stage before any frame arrives.
	var initial sim.Snapshot
	h.loop.WithEngine(func(e *sim.Engine) {
		initial = e.Snapshot()
	})
	if err := session.QueueJSON(initial); err != nil {
		h.logger.Printf("initial snapshot failed for %s: %v", sessionID, err)
		h.hub.Remove(session)
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.hub.Remove(session)
			return
		}
		var cmd sim.Command
		if err := json.Unmarshal(payload, &cmd); err != nil {
			h.logger.Printf("discarding malformed message from %s: %v", sessionID, err)
			continue
		}
		cmd.SessionID = sessionID
		cmd.IssuedAt = time.Now()
		if !h.loop.Enqueue(cmd) {
			h.logger.Printf("edit queue full, dropping %s from %s", cmd.Type, sessionID)
		}
	}
}
