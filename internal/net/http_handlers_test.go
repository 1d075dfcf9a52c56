package net

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backstage/server/internal/net/ws"
	"backstage/server/internal/scene"
	"backstage/server/internal/sim"
	"backstage/server/internal/stage"
	"backstage/server/logging"
)

func newTestHandler() (http.Handler, *sim.Loop) {
	engine := sim.NewEngine(stage.New(stage.DefaultConfig()), 0, sim.Deps{})
	loop := sim.NewLoop(engine, sim.DefaultLoopConfig())
	handler := NewHTTPHandler(loop, ws.NewHub(nil, nil), HTTPHandlerConfig{
		Metrics: logging.NewMetrics(),
	})
	return handler, loop
}

func TestHTTPSceneExport(t *testing.T) {
	handler, loop := newTestHandler()
	loop.WithEngine(func(e *sim.Engine) {
		e.Apply([]sim.Command{{
			Type:  sim.CommandPlace,
			Place: &sim.PlaceCommand{Subtype: "piano", X: 2, Z: 5},
		}})
	})

	req := httptest.NewRequest(http.MethodGet, "/scene", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 OK, got %d", resp.Code)
	}
	if contentType := resp.Header().Get("Content-Type"); contentType != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", contentType)
	}

	var doc scene.Document
	if err := json.Unmarshal(resp.Body.Bytes(), &doc); err != nil {
		t.Fatalf("failed to decode export: %v", err)
	}
	if doc.Version != scene.DocumentVersion {
		t.Fatalf("expected document version %d, got %d", scene.DocumentVersion, doc.Version)
	}
	if len(doc.Objects) != 1 || doc.Objects[0].Subtype != "piano" {
		t.Fatalf("expected the placed piano in the export, got %+v", doc.Objects)
	}
}

func TestHTTPSceneImportReplacesScene(t *testing.T) {
	handler, loop := newTestHandler()

	doc := scene.Document{
		Version: scene.DocumentVersion,
		Objects: []scene.ObjectRecord{
			{ID: "obj-1", Subtype: "crate", Position: [3]float64{0, 0.6, 6}, Visible: true},
			{ID: "obj-2", Subtype: "chair", Position: [3]float64{3, 0.45, 6}, Visible: true},
		},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to marshal scene document: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/scene", bytes.NewReader(raw))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 OK, got %d: %s", resp.Code, resp.Body.String())
	}
	var result scene.LoadResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode load result: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected a successful import, got error %q", result.Error)
	}

	loop.WithEngine(func(e *sim.Engine) {
		if got := e.Stage().Registry().Len(); got != 2 {
			t.Fatalf("expected 2 imported objects, got %d", got)
		}
	})
}

func TestHTTPSceneImportRejectsMalformedDocument(t *testing.T) {
	handler, loop := newTestHandler()
	loop.WithEngine(func(e *sim.Engine) {
		e.Apply([]sim.Command{{
			Type:  sim.CommandPlace,
			Place: &sim.PlaceCommand{Subtype: "crate", X: 0, Z: 6},
		}})
	})

	req := httptest.NewRequest(http.MethodPost, "/scene", bytes.NewReader([]byte(`{"version":7}`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for a bad version, got %d", resp.Code)
	}
	var result scene.LoadResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode load result: %v", err)
	}
	if result.Success || result.Error == "" {
		t.Fatalf("expected a failure result with an error, got %+v", result)
	}

	// A rejected import must leave the live scene untouched.
	loop.WithEngine(func(e *sim.Engine) {
		if got := e.Stage().Registry().Len(); got != 1 {
			t.Fatalf("expected the prior scene to survive, got %d objects", got)
		}
	})
}

func TestHTTPUndoRedo(t *testing.T) {
	handler, loop := newTestHandler()
	loop.WithEngine(func(e *sim.Engine) {
		e.Apply([]sim.Command{{
			Type:  sim.CommandPlace,
			Place: &sim.PlaceCommand{Subtype: "chair", X: 0, Z: 6},
		}})
	})

	post := func(path string) historyResponse {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, path, nil)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200 OK from %s, got %d", path, resp.Code)
		}
		var out historyResponse
		if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
			t.Fatalf("failed to decode %s response: %v", path, err)
		}
		return out
	}

	if out := post("/undo"); !out.Acted {
		t.Fatalf("expected undo to act")
	}
	loop.WithEngine(func(e *sim.Engine) {
		if got := e.Stage().Registry().Len(); got != 0 {
			t.Fatalf("expected undo to empty the scene, got %d objects", got)
		}
	})

	if out := post("/redo"); !out.Acted {
		t.Fatalf("expected redo to act")
	}
	if out := post("/redo"); out.Acted {
		t.Fatalf("expected a second redo to be a no-op")
	}
}

func TestHTTPSceneMethodNotAllowed(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodDelete, "/scene", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", resp.Code)
	}
}
