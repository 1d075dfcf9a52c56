package net

import (
	"encoding/json"
	"io"
	nethttp "net/http"

	"backstage/server/internal/net/ws"
	"backstage/server/internal/observability"
	"backstage/server/internal/scene"
	"backstage/server/internal/sim"
	"backstage/server/internal/telemetry"
	"backstage/server/logging"
)

// HTTPHandlerConfig carries the injected infrastructure for the edit API.
type HTTPHandlerConfig struct {
	Logger        telemetry.Logger
	Metrics       *logging.Metrics
	Observability observability.Config
}

// NewHTTPHandler assembles the HTTP surface: websocket upgrades, scene
// import/export, synchronous undo/redo, and diagnostics.
func NewHTTPHandler(loop *sim.Loop, hub *ws.Hub, cfg HTTPHandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	h := &httpHandler{loop: loop, logger: logger, metrics: cfg.Metrics}

	wsHandler := ws.NewHandler(loop, hub, ws.HandlerConfig{Logger: logger})

	mux := nethttp.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.Handle)
	mux.HandleFunc("/scene", h.handleScene)
	mux.HandleFunc("/scene/schema", h.handleSceneSchema)
	mux.HandleFunc("/undo", h.handleHistory("undo"))
	mux.HandleFunc("/redo", h.handleHistory("redo"))
	mux.HandleFunc("/telemetry", h.handleTelemetry)
	mux.HandleFunc("/healthz", h.handleHealthz)
	observability.Register(mux, cfg.Observability)
	return mux
}

type httpHandler struct {
	loop    *sim.Loop
	logger  telemetry.Logger
	metrics *logging.Metrics
}

// handleScene exports the live scene on GET and imports a document on POST.
// Import validation happens before any state is touched, so a malformed
// document leaves the stage untouched.
func (h *httpHandler) handleScene(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodGet:
		var doc scene.Document
		h.loop.WithEngine(func(e *sim.Engine) {
			doc = scene.Encode(e.Stage().Registry())
		})
		writeJSON(w, nethttp.StatusOK, doc)

	case nethttp.MethodPost:
		body, err := io.ReadAll(nethttp.MaxBytesReader(w, r.Body, 1<<20))
		if err != nil {
			writeJSON(w, nethttp.StatusBadRequest, scene.LoadResult{Error: "unreadable request body"})
			return
		}
		result := scene.DecodeJSON(body)
		if !result.Success {
			writeJSON(w, nethttp.StatusBadRequest, result)
			return
		}
		h.loop.WithEngine(func(e *sim.Engine) {
			e.Editor().ResetScene(result.Objects)
		})
		writeJSON(w, nethttp.StatusOK, result)

	default:
		nethttp.Error(w, "method not allowed", nethttp.StatusMethodNotAllowed)
	}
}

func (h *httpHandler) handleSceneSchema(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		nethttp.Error(w, "method not allowed", nethttp.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, nethttp.StatusOK, scene.BuildSchema())
}

type historyResponse struct {
	Acted bool `json:"acted"`
}

func (h *httpHandler) handleHistory(direction string) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			nethttp.Error(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}
		var acted bool
		h.loop.WithEngine(func(e *sim.Engine) {
			if direction == "undo" {
				acted = e.Editor().Undo()
			} else {
				acted = e.Editor().Redo()
			}
		})
		writeJSON(w, nethttp.StatusOK, historyResponse{Acted: acted})
	}
}

func (h *httpHandler) handleTelemetry(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		nethttp.Error(w, "method not allowed", nethttp.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.metrics.Snapshot())
}

func (h *httpHandler) handleHealthz(w nethttp.ResponseWriter, r *nethttp.Request) {
	w.WriteHeader(nethttp.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w nethttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
