package sim

import (
	"context"
	"sync"
	"time"

	"backstage/server/logging/simulation"
)

const metricFrameDurationMetricKey = "sim_frame_duration_millis"

// LoopConfig tunes the fixed-timestep frame loop.
type LoopConfig struct {
	FrameRate       int
	CommandCapacity int
}

// DefaultLoopConfig matches a 30 Hz stage with a generous edit queue.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{FrameRate: 30, CommandCapacity: 256}
}

// Loop drives the engine at a fixed timestep from a single goroutine. Edit
// commands enqueue from any goroutine; they drain at the top of each frame,
// so journal mutation and physics never interleave mid-step.
type Loop struct {
	engine *Engine
	buffer *EditQueue
	config LoopConfig

	// stepMu serializes frames against out-of-band engine access from the
	// HTTP surface, preserving the one-mutator-at-a-time contract the
	// stage core assumes.
	stepMu sync.Mutex

	// Broadcast, when set, receives each post-frame snapshot.
	Broadcast func(Snapshot)
}

// NewLoop wraps an engine with a command queue and frame driver.
func NewLoop(engine *Engine, cfg LoopConfig) *Loop {
	if engine == nil {
		return nil
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = DefaultLoopConfig().FrameRate
	}
	if cfg.CommandCapacity <= 0 {
		cfg.CommandCapacity = DefaultLoopConfig().CommandCapacity
	}
	return &Loop{
		engine: engine,
		buffer: NewEditQueue(cfg.CommandCapacity, engine.deps.Metrics),
		config: cfg,
	}
}

// Engine exposes the wrapped engine.
func (l *Loop) Engine() *Engine {
	if l == nil {
		return nil
	}
	return l.engine
}

// Enqueue stages an edit command for the next frame.
func (l *Loop) Enqueue(cmd Command) bool {
	if l == nil {
		return false
	}
	return l.buffer.Push(cmd)
}

// Pending reports the number of staged commands.
func (l *Loop) Pending() int {
	if l == nil {
		return 0
	}
	return l.buffer.Len()
}

// Advance executes a single frame: drain edits, apply, step, snapshot.
func (l *Loop) Advance(dt float64) Snapshot {
	if l == nil {
		return Snapshot{}
	}
	l.stepMu.Lock()
	l.engine.Apply(l.buffer.Drain())
	l.engine.Step(dt)
	snapshot := l.engine.Snapshot()
	l.stepMu.Unlock()
	if l.Broadcast != nil {
		l.Broadcast(snapshot)
	}
	return snapshot
}

// WithEngine runs fn with the engine between frames, never mid-step. The
// scene import/export and synchronous undo/redo surfaces use it.
func (l *Loop) WithEngine(fn func(*Engine)) {
	if l == nil || fn == nil {
		return
	}
	l.stepMu.Lock()
	defer l.stepMu.Unlock()
	fn(l.engine)
}

// Run drives frames until the context ends. Frames that blow their budget
// are reported but never skipped; the stage simply runs late.
func (l *Loop) Run(ctx context.Context) {
	if l == nil {
		return
	}
	interval := time.Second / time.Duration(l.config.FrameRate)
	dt := interval.Seconds()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			started := time.Now()
			l.Advance(dt)
			elapsed := time.Since(started)
			l.engine.deps.Metrics.Store(metricFrameDurationMetricKey, uint64(elapsed.Milliseconds()))
			if elapsed > interval {
				simulation.FrameBudgetOverrun(ctx, l.engine.deps.Publisher, l.engine.stage.Frame(), simulation.FrameBudgetOverrunPayload{
					DurationMillis: elapsed.Milliseconds(),
					BudgetMillis:   interval.Milliseconds(),
					Ratio:          float64(elapsed) / float64(interval),
				})
			}
		}
	}
}
