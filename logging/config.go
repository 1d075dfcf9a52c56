package logging

import (
	"maps"
	"slices"
	"time"
)

// Sink names accepted in Config.EnabledSinks.
const (
	SinkConsole = "console"
	SinkJSON    = "json"
	SinkMemory  = "memory"
)

// Config tunes the event router. Start from DefaultConfig; the zero value
// has no sinks and no queue.
type Config struct {
	// EnabledSinks names the sinks the assembly should attach.
	EnabledSinks []string

	// BufferSize bounds the publish queue. When the queue is full the
	// event is dropped and counted; publishing never stalls the frame
	// loop.
	BufferSize int

	// MinimumSeverity filters events before they reach any sink.
	MinimumSeverity Severity

	// Fields attach to every event that does not already set them, for
	// deployment-wide labels like the stage name.
	Fields map[string]any

	JSON    JSONConfig
	Console ConsoleConfig

	// DropWarnInterval throttles the stderr warning emitted while events
	// are being dropped.
	DropWarnInterval time.Duration
}

// JSONConfig tunes the NDJSON file sink.
type JSONConfig struct {
	FilePath      string
	MaxBatch      int
	FlushInterval time.Duration
}

// ConsoleConfig tunes the human-readable sink.
type ConsoleConfig struct {
	UseColor bool
}

// DefaultConfig logs to the console only, with a queue deep enough to
// absorb an edit burst without dropping.
func DefaultConfig() Config {
	return Config{
		EnabledSinks:     []string{SinkConsole},
		BufferSize:       512,
		MinimumSeverity:  SeverityInfo,
		DropWarnInterval: 5 * time.Second,
		JSON: JSONConfig{
			MaxBatch:      32,
			FlushInterval: 2 * time.Second,
		},
	}
}

// HasSink reports whether the named sink is enabled.
func (c Config) HasSink(name string) bool {
	return slices.Contains(c.EnabledSinks, name)
}

func (c Config) cloneFields() map[string]any {
	if len(c.Fields) == 0 {
		return nil
	}
	return maps.Clone(c.Fields)
}
