package sim

import (
	"context"
	"errors"

	"backstage/server/internal/stage"
	"backstage/server/logging"
	"backstage/server/logging/editing"
	"backstage/server/logging/simulation"
)

const (
	metricCommandsApplied  = "sim_commands_applied_total"
	metricCommandsRejected = "sim_commands_rejected_total"
)

// Engine owns the stage and its journaled editor. Edit commands apply
// between frames only: Apply and Step run on the same goroutine, so the
// journal never mutates stage state mid-frame. That ordering is the contract
// any future multi-threaded port has to keep.
type Engine struct {
	stage  *stage.Stage
	editor *stage.Editor
	deps   Deps
}

// NewEngine wires a stage with an editor and injected infrastructure.
func NewEngine(st *stage.Stage, historyLimit int, deps Deps) *Engine {
	if st == nil {
		return nil
	}
	return &Engine{
		stage:  st,
		editor: stage.NewEditor(st, historyLimit),
		deps:   deps.withDefaults(),
	}
}

// Stage exposes the underlying stage.
func (e *Engine) Stage() *stage.Stage {
	if e == nil {
		return nil
	}
	return e.stage
}

// Editor exposes the journaled editing surface.
func (e *Engine) Editor() *stage.Editor {
	if e == nil {
		return nil
	}
	return e.editor
}

// Apply routes drained edit commands through the editor. Expected failures
// (blocked placement, unknown ids) are logged and counted, never fatal.
func (e *Engine) Apply(cmds []Command) {
	if e == nil {
		return
	}
	ctx := context.Background()
	frame := e.stage.Frame()
	for _, cmd := range cmds {
		if err := e.applyOne(ctx, frame, cmd); err != nil {
			e.deps.Metrics.Add(metricCommandsRejected, 1)
			e.deps.Logger.Printf("command %s rejected: %v", cmd.Type, err)
			continue
		}
		e.deps.Metrics.Add(metricCommandsApplied, 1)
	}
}

func (e *Engine) applyOne(ctx context.Context, frame uint64, cmd Command) error {
	switch cmd.Type {
	case CommandPlace:
		if cmd.Place == nil {
			return errors.New("place command missing payload")
		}
		payload := editing.PlacementPayload{Subtype: cmd.Place.Subtype, X: cmd.Place.X, Z: cmd.Place.Z}
		placed, err := e.editor.AttemptPlacement(cmd.Place.Subtype, stage.Vec3{X: cmd.Place.X, Z: cmd.Place.Z})
		if errors.Is(err, stage.ErrPlacementBlocked) {
			editing.PlacementBlocked(ctx, e.deps.Publisher, frame, payload)
			return nil
		}
		if err != nil {
			return err
		}
		obj := placed.Object()
		editing.ObjectPlaced(ctx, e.deps.Publisher, frame, string(obj.ID), entityKind(obj.Category), payload)
		return nil

	case CommandMove:
		if cmd.Move == nil {
			return errors.New("move command missing payload")
		}
		id := stage.ObjectID(cmd.Move.ObjectID)
		if err := e.editor.AttemptMoveObject(id, stage.Vec3{X: cmd.Move.X, Y: cmd.Move.Y, Z: cmd.Move.Z}); err != nil {
			return err
		}
		kind := logging.EntityKindUnknown
		if obj, ok := e.stage.Registry().Get(id); ok {
			kind = entityKind(obj.Category)
		}
		editing.ObjectMoved(ctx, e.deps.Publisher, frame, cmd.Move.ObjectID, kind)
		return nil

	case CommandPush:
		if cmd.Push == nil {
			return errors.New("push command missing payload")
		}
		from := stage.Vec3{X: cmd.Push.FromX, Y: cmd.Push.FromY, Z: cmd.Push.FromZ}
		return e.editor.AttemptPush(stage.ObjectID(cmd.Push.ObjectID), from)

	case CommandRemove:
		if cmd.Remove == nil {
			return errors.New("remove command missing payload")
		}
		return e.editor.RemoveObject(stage.ObjectID(cmd.Remove.ObjectID))

	case CommandToggle:
		if cmd.Toggle == nil {
			return errors.New("toggle command missing payload")
		}
		kind := stage.StageElementKind(cmd.Toggle.Kind)
		if _, err := e.editor.ToggleStageElement(kind, cmd.Toggle.Index); err != nil {
			return err
		}
		editing.ElementToggled(ctx, e.deps.Publisher, frame, editing.TogglePayload{Kind: cmd.Toggle.Kind, Index: cmd.Toggle.Index})
		return nil

	case CommandUndo:
		acted := e.editor.Undo()
		editing.HistoryStep(ctx, e.deps.Publisher, frame, editing.HistoryPayload{Direction: "undo", Acted: acted})
		return nil

	case CommandRedo:
		acted := e.editor.Redo()
		editing.HistoryStep(ctx, e.deps.Publisher, frame, editing.HistoryPayload{Direction: "redo", Acted: acted})
		return nil
	}
	return errors.New("unknown command type " + string(cmd.Type))
}

// Step advances the stage one frame and reports machinery side effects.
func (e *Engine) Step(dt float64) {
	if e == nil {
		return
	}
	spinningBefore := e.stage.Turntable != nil && e.stage.Turntable.Spinning
	e.stage.Step(dt)
	if spinningBefore && e.stage.Turntable != nil && !e.stage.Turntable.Spinning {
		simulation.TurntableJammed(context.Background(), e.deps.Publisher, e.stage.Frame())
	}
}

// Snapshot captures the post-frame state for broadcast.
func (e *Engine) Snapshot() Snapshot {
	if e == nil {
		return Snapshot{}
	}
	st := e.stage
	snap := Snapshot{
		Frame:       st.Frame(),
		CurtainOpen: st.Curtain.Open,
		CanUndo:     e.editor.History().CanUndo(),
		CanRedo:     e.editor.History().CanRedo(),
	}
	st.Registry().ForEach(func(obj *stage.Object) {
		snap.Objects = append(snap.Objects, ObjectSnapshot{
			ID:       string(obj.ID),
			Category: string(obj.Category),
			Subtype:  obj.Subtype,
			X:        obj.Pos.X,
			Y:        obj.Pos.Y,
			Z:        obj.Pos.Z,
			Yaw:      obj.Yaw,
			Visible:  obj.Visible,
			Hidden:   obj.Hidden,
		})
	})
	for _, platform := range st.Platforms {
		snap.Platforms = append(snap.Platforms, PlatformSnapshot{Height: platform.Height, TargetHeight: platform.TargetHeight})
	}
	if st.Turntable != nil {
		snap.Turntable = TurntableSnapshot{Spinning: st.Turntable.Spinning, Visible: st.Turntable.Visible}
	}
	for _, door := range st.TrapDoors {
		snap.TrapDoors = append(snap.TrapDoors, door.Open)
	}
	for _, panel := range st.Panels {
		snap.Panels = append(snap.Panels, panel.Slid)
	}
	return snap
}

func entityKind(category stage.Category) logging.EntityKind {
	switch category {
	case stage.CategoryActor:
		return logging.EntityKindActor
	case stage.CategoryProp:
		return logging.EntityKindProp
	}
	return logging.EntityKindUnknown
}
