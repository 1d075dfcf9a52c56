// Package app assembles the server from its parts: logging router, metrics,
// stage, frame loop, websocket hub, and the HTTP surface.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"backstage/server/internal/audio"
	servernet "backstage/server/internal/net"
	"backstage/server/internal/net/ws"
	"backstage/server/internal/observability"
	"backstage/server/internal/sim"
	"backstage/server/internal/stage"
	"backstage/server/internal/telemetry"
	"backstage/server/logging"
	loggingSinks "backstage/server/logging/sinks"
)

// Run wires and serves until ctx is cancelled or the listener fails.
func Run(ctx context.Context, cfg Config) error {
	logger := telemetry.WrapLogger(log.Default())
	metrics := logging.NewMetrics()

	logCfg := logging.DefaultConfig()
	logCfg.EnabledSinks = cfg.LogSinks
	logCfg.JSON.FilePath = cfg.LogJSONPath

	var named []logging.NamedSink
	var jsonFile *os.File
	if logCfg.HasSink(logging.SinkConsole) {
		named = append(named, logging.NamedSink{
			Name: logging.SinkConsole,
			Sink: loggingSinks.NewConsoleSink(os.Stdout, logCfg.Console),
		})
	}
	if logCfg.HasSink(logging.SinkJSON) && logCfg.JSON.FilePath != "" {
		f, err := os.OpenFile(logCfg.JSON.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open json event log: %w", err)
		}
		jsonFile = f
		named = append(named, logging.NamedSink{
			Name: logging.SinkJSON,
			Sink: loggingSinks.NewJSON(f, logCfg.JSON.FlushInterval),
		})
	}

	router := logging.NewRouter(logging.ClockFunc(time.Now), logCfg, named)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := router.Close(closeCtx); err != nil {
			logger.Printf("logging router close: %v", err)
		}
		if jsonFile != nil {
			jsonFile.Close()
		}
	}()

	st := stage.New(stage.Config{CellSize: cfg.CellSize})
	if cfg.AudioEnabled {
		channel := audio.NewChannel(cfg.AudioSampleRate)
		if err := channel.Init(); err != nil {
			logger.Printf("audio unavailable, running silent: %v", err)
		} else {
			st.SetSound(channel)
			defer channel.Close()
		}
	}

	engine := sim.NewEngine(st, cfg.HistoryLimit, sim.Deps{
		Logger:    logger,
		Metrics:   telemetry.WrapMetrics(metrics),
		Publisher: router,
		Clock:     logging.ClockFunc(time.Now),
	})
	loop := sim.NewLoop(engine, sim.LoopConfig{
		FrameRate:       cfg.FrameRate,
		CommandCapacity: cfg.CommandCapacity,
	})

	hub := ws.NewHub(logger, telemetry.WrapMetrics(metrics))
	loop.Broadcast = hub.Broadcast

	loopCtx, stopLoop := context.WithCancel(ctx)
	defer stopLoop()
	go loop.Run(loopCtx)

	handler := servernet.NewHTTPHandler(loop, hub, servernet.HTTPHandlerConfig{
		Logger:        logger,
		Metrics:       metrics,
		Observability: observability.Config{EnablePprof: cfg.EnablePprof},
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Printf("server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
