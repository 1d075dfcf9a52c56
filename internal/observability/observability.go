// Package observability holds opt-in profiling toggles. Profiling endpoints
// stay off by default so a production stage server exposes nothing extra.
package observability

import (
	"net/http"
	"net/http/pprof"
)

// Config captures the profiling toggles that wire into the HTTP surface.
type Config struct {
	EnablePprof bool
}

// Register attaches the pprof handlers to mux when profiling is enabled.
func Register(mux *http.ServeMux, cfg Config) {
	if mux == nil || !cfg.EnablePprof {
		return
	}
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
}
