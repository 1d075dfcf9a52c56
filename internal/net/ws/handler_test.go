package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"backstage/server/internal/sim"
	"backstage/server/internal/stage"
)

func newTestLoop() *sim.Loop {
	engine := sim.NewEngine(stage.New(stage.DefaultConfig()), 0, sim.Deps{})
	return sim.NewLoop(engine, sim.DefaultLoopConfig())
}

func websocketURL(t *testing.T, baseURL, sessionID string) string {
	t.Helper()

	parsed, err := url.Parse(baseURL)
	if err != nil {
		t.Fatalf("failed to parse test server url: %v", err)
	}
	parsed.Scheme = "ws"
	q := parsed.Query()
	q.Set("session", sessionID)
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

func TestHandleSendsInitialSnapshot(t *testing.T) {
	loop := newTestLoop()
	loop.WithEngine(func(e *sim.Engine) {
		e.Apply([]sim.Command{{
			Type:  sim.CommandPlace,
			Place: &sim.PlaceCommand{Subtype: "crate", X: 0, Z: 6},
		}})
	})

	handler := NewHandler(loop, NewHub(nil, nil), HandlerConfig{})
	srv := httptest.NewServer(http.HandlerFunc(handler.Handle))
	t.Cleanup(srv.Close)

	conn, resp, err := websocket.DefaultDialer.Dial(websocketURL(t, srv.URL, "crew-1"), nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read initial snapshot: %v", err)
	}

	var snap sim.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		t.Fatalf("failed to decode initial snapshot: %v", err)
	}
	if len(snap.Objects) != 1 || snap.Objects[0].Subtype != "crate" {
		t.Fatalf("expected the seeded crate in the initial snapshot, got %+v", snap.Objects)
	}
	if len(snap.TrapDoors) != 2 {
		t.Fatalf("expected the stock trap doors in the snapshot, got %d", len(snap.TrapDoors))
	}
}

func TestHandleStagesEditCommands(t *testing.T) {
	loop := newTestLoop()
	handler := NewHandler(loop, NewHub(nil, nil), HandlerConfig{})
	srv := httptest.NewServer(http.HandlerFunc(handler.Handle))
	t.Cleanup(srv.Close)

	conn, resp, err := websocket.DefaultDialer.Dial(websocketURL(t, srv.URL, "crew-1"), nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("failed to read initial snapshot: %v", err)
	}

	msg := []byte(`{"type":"Place","place":{"subtype":"chair","x":0,"z":6}}`)
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		t.Fatalf("failed to send edit message: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for loop.Pending() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected the edit to reach the queue")
		}
		time.Sleep(5 * time.Millisecond)
	}

	staged := loop.Advance(1.0 / 30.0)
	if len(staged.Objects) != 1 || staged.Objects[0].Subtype != "chair" {
		t.Fatalf("expected the staged chair to apply on the next frame, got %+v", staged.Objects)
	}
}

func TestHandleRejectsMissingSessionID(t *testing.T) {
	loop := newTestLoop()
	handler := NewHandler(loop, NewHub(nil, nil), HandlerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for a missing session id, got %d", rec.Code)
	}
}
