package sim

import (
	"testing"

	"backstage/server/internal/stage"
	"backstage/server/internal/telemetry"
	"backstage/server/logging"
)

func newTestEngine(metrics *logging.Metrics) *Engine {
	return NewEngine(stage.New(stage.DefaultConfig()), 0, Deps{
		Metrics: telemetry.WrapMetrics(metrics),
	})
}

func TestEngineAppliesPlaceAndUndo(t *testing.T) {
	metrics := logging.NewMetrics()
	e := newTestEngine(metrics)

	e.Apply([]Command{{
		Type:  CommandPlace,
		Place: &PlaceCommand{Subtype: "chair", X: 0, Z: 6},
	}})

	snap := e.Snapshot()
	if len(snap.Objects) != 1 {
		t.Fatalf("expected one object after place, got %d", len(snap.Objects))
	}
	if snap.Objects[0].Subtype != "chair" {
		t.Fatalf("expected a chair, got %s", snap.Objects[0].Subtype)
	}
	if !snap.CanUndo {
		t.Fatalf("expected the snapshot to advertise undo")
	}

	e.Apply([]Command{{Type: CommandUndo}})
	snap = e.Snapshot()
	if len(snap.Objects) != 0 {
		t.Fatalf("expected undo to empty the scene, got %d objects", len(snap.Objects))
	}
	if !snap.CanRedo {
		t.Fatalf("expected the snapshot to advertise redo")
	}
	if got := metrics.Load("sim_commands_applied_total"); got != 2 {
		t.Fatalf("expected 2 applied commands, got %d", got)
	}
}

func TestEngineRejectsMalformedCommands(t *testing.T) {
	metrics := logging.NewMetrics()
	e := newTestEngine(metrics)

	e.Apply([]Command{
		{Type: CommandMove}, // missing payload
		{Type: CommandMove, Move: &MoveCommand{ObjectID: "missing"}}, // unknown object
		{Type: CommandType("Explode")},                               // unknown type
	})

	if got := metrics.Load("sim_commands_rejected_total"); got != 3 {
		t.Fatalf("expected 3 rejected commands, got %d", got)
	}
	if got := metrics.Load("sim_commands_applied_total"); got != 0 {
		t.Fatalf("expected no applied commands, got %d", got)
	}
}

func TestEngineBlockedPlacementIsNotAnError(t *testing.T) {
	metrics := logging.NewMetrics()
	e := newTestEngine(metrics)

	e.Apply([]Command{{Type: CommandPlace, Place: &PlaceCommand{Subtype: "crate", X: 0, Z: 6}}})
	e.Step(1.0 / 30.0)
	e.Apply([]Command{{Type: CommandPlace, Place: &PlaceCommand{Subtype: "crate", X: 0.3, Z: 6}}})

	// A blocked spot is a routine outcome, counted as applied.
	if got := metrics.Load("sim_commands_rejected_total"); got != 0 {
		t.Fatalf("expected no rejections, got %d", got)
	}
	if got := metrics.Load("sim_commands_applied_total"); got != 2 {
		t.Fatalf("expected 2 applied commands, got %d", got)
	}
	if snap := e.Snapshot(); len(snap.Objects) != 1 {
		t.Fatalf("expected the blocked placement to add nothing, got %d objects", len(snap.Objects))
	}
}

func TestEngineToggleReachesMachinery(t *testing.T) {
	e := newTestEngine(nil)

	e.Apply([]Command{{Type: CommandToggle, Toggle: &ToggleCommand{Kind: "trapdoor", Index: 0}}})
	if !e.Stage().TrapDoors[0].Open {
		t.Fatalf("expected the toggle to open the trap door")
	}

	snap := e.Snapshot()
	if len(snap.TrapDoors) != 2 || !snap.TrapDoors[0] || snap.TrapDoors[1] {
		t.Fatalf("expected the snapshot to mirror door state, got %v", snap.TrapDoors)
	}
}
