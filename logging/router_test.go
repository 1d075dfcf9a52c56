package logging_test

import (
	"context"
	"testing"
	"time"

	"backstage/server/logging"
	"backstage/server/logging/sinks"
)

func waitForEvents(t *testing.T, sink *sinks.MemorySink, want int) []logging.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		events := sink.Events()
		if len(events) >= want {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, have %d", want, len(sink.Events()))
	return nil
}

func TestRouterDeliversToSinks(t *testing.T) {
	sink := sinks.NewMemorySink()
	router := logging.NewRouter(nil, logging.DefaultConfig(), []logging.NamedSink{{Name: logging.SinkMemory, Sink: sink}})
	defer router.Close(context.Background())

	router.Publish(context.Background(), logging.Event{
		Type:     "stage.object_placed",
		Frame:    7,
		Severity: logging.SeverityInfo,
		Category: "editing",
	})

	events := waitForEvents(t, sink, 1)
	if events[0].Type != "stage.object_placed" {
		t.Fatalf("unexpected event type %s", events[0].Type)
	}
	if events[0].Frame != 7 {
		t.Fatalf("expected frame 7, got %d", events[0].Frame)
	}
	if events[0].Time.IsZero() {
		t.Fatalf("expected the router to stamp a time")
	}

	stats := router.Stats()
	if stats.EventsTotal != 1 || stats.DroppedTotal != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestRouterFiltersBySeverity(t *testing.T) {
	sink := sinks.NewMemorySink()
	cfg := logging.DefaultConfig()
	cfg.MinimumSeverity = logging.SeverityWarn
	router := logging.NewRouter(nil, cfg, []logging.NamedSink{{Name: logging.SinkMemory, Sink: sink}})

	router.Publish(context.Background(), logging.Event{Type: "quiet", Severity: logging.SeverityInfo})
	router.Publish(context.Background(), logging.Event{Type: "loud", Severity: logging.SeverityWarn})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	events := sink.Events()
	if len(events) != 1 || events[0].Type != "loud" {
		t.Fatalf("expected only the warn event, got %+v", events)
	}
}

func TestRouterAttachesConfiguredFields(t *testing.T) {
	sink := sinks.NewMemorySink()
	cfg := logging.DefaultConfig()
	cfg.Fields = map[string]any{"deployment": "matinee"}
	router := logging.NewRouter(nil, cfg, []logging.NamedSink{{Name: logging.SinkMemory, Sink: sink}})
	defer router.Close(context.Background())

	router.Publish(context.Background(), logging.Event{Type: "stage.frame", Severity: logging.SeverityInfo})

	events := waitForEvents(t, sink, 1)
	if events[0].Extra["deployment"] != "matinee" {
		t.Fatalf("expected the configured field, got %+v", events[0].Extra)
	}
}

func TestRouterIgnoresEmptyEventType(t *testing.T) {
	sink := sinks.NewMemorySink()
	router := logging.NewRouter(nil, logging.DefaultConfig(), []logging.NamedSink{{Name: logging.SinkMemory, Sink: sink}})

	router.Publish(context.Background(), logging.Event{Severity: logging.SeverityInfo})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if got := sink.Events(); len(got) != 0 {
		t.Fatalf("expected no events, got %d", len(got))
	}
}
