package stage

import (
	"errors"
	"fmt"

	"backstage/server/internal/journal"
)

// Expected editing outcomes are sentinel errors, not panics: a blocked
// placement or an out-of-range element index is routine, and callers branch
// on it.
var (
	ErrPlacementBlocked = errors.New("placement blocked by another object")
	ErrUnknownObject    = errors.New("unknown object")
	ErrUnknownElement   = errors.New("unknown stage element")
)

// defaultPushSpeed is the impulse handed to an object on a user shove.
const defaultPushSpeed = 4.0

// Editor is the journaled editing surface over a stage. All edits flow
// through here so every user-visible mutation is undoable.
type Editor struct {
	stage   *Stage
	history *journal.History
}

// NewEditor wraps a stage with an undo history of the given depth.
func NewEditor(s *Stage, historyLimit int) *Editor {
	return &Editor{stage: s, history: journal.NewHistory(historyLimit)}
}

// History exposes the journal for status queries.
func (e *Editor) History() *journal.History {
	if e == nil {
		return nil
	}
	return e.history
}

// AttemptPlacement validates a spot with a static collision check and, when
// clear, journals the instantiation. A blocked spot returns
// ErrPlacementBlocked with no side effects.
func (e *Editor) AttemptPlacement(subtype string, pos Vec3) (*PlaceCommand, error) {
	if e == nil || e.stage == nil {
		return nil, ErrUnknownObject
	}
	reg := e.stage.Registry()
	category := CategoryFor(subtype)
	vol := Classify(category, subtype)

	obj := &Object{
		ID:         reg.AllocateID(),
		Category:   category,
		Subtype:    subtype,
		Pos:        Vec3{X: pos.X, Y: vol.HalfHeight, Z: pos.Z},
		Visible:    true,
		RestOffset: vol.HalfHeight,
	}
	if e.stage.AttemptMove(obj, pos.X, pos.Z, 0) {
		return nil, ErrPlacementBlocked
	}

	cmd := NewPlaceCommand(e.stage, obj)
	e.history.Execute(cmd)
	return cmd, nil
}

// AttemptMoveObject journals a position change, typically the end of a drag.
// Consecutive moves of one object merge into a single undo step.
func (e *Editor) AttemptMoveObject(id ObjectID, target Vec3) error {
	obj, ok := e.stage.Registry().Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}
	e.history.Execute(NewMoveCommand(e.stage, id, obj.Pos, target))
	return nil
}

// RemoveObject journals the deletion of an object.
func (e *Editor) RemoveObject(id ObjectID) error {
	obj, ok := e.stage.Registry().Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}
	e.history.Execute(NewRemoveCommand(e.stage, obj))
	return nil
}

// AttemptPush shoves an object away from a point. The shove is not
// journaled: it hands a velocity to the integrator, and physics outcomes are
// not undoable edits.
func (e *Editor) AttemptPush(id ObjectID, from Vec3) error {
	obj, ok := e.stage.Registry().Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}
	e.stage.Push(obj, from, defaultPushSpeed)
	return nil
}

// ToggleStageElement flips one machinery element and journals the flip. The
// returned command holds opaque before/after snapshots.
func (e *Editor) ToggleStageElement(kind StageElementKind, index int) (journal.Command, error) {
	cmd, err := e.buildToggle(kind, index)
	if err != nil {
		return nil, err
	}
	e.history.Execute(cmd)
	return cmd, nil
}

// Undo reverts the latest edit; false means the history is empty.
func (e *Editor) Undo() bool {
	if e == nil {
		return false
	}
	return e.history.Undo()
}

// Redo re-applies the next undone edit; false means nothing to redo.
func (e *Editor) Redo() bool {
	if e == nil {
		return false
	}
	return e.history.Redo()
}

// ResetScene replaces every live object (a scene load or clear) and drops
// the history, which would otherwise reference dead objects.
func (e *Editor) ResetScene(objects []*Object) {
	reg := e.stage.Registry()
	reg.Clear()
	for _, obj := range objects {
		reg.Insert(obj)
		e.stage.RefreshRelationship(obj)
	}
	e.stage.rebuildIndex()
	e.history.Clear()
}

func (e *Editor) buildToggle(kind StageElementKind, index int) (*StageElementToggle, error) {
	s := e.stage
	switch kind {
	case ElementCurtain:
		open := s.Curtain.Open
		return newElementToggle(kind, 0, open, !open, func(v any) {
			s.Curtain.Open = v.(bool)
		}), nil

	case ElementPlatform:
		if index < 0 || index >= len(s.Platforms) {
			return nil, fmt.Errorf("%w: platform %d", ErrUnknownElement, index)
		}
		platform := s.Platforms[index]
		before := platform.TargetHeight
		after := platform.RaisedHeight
		if before != 0 {
			after = 0
		}
		return newElementToggle(kind, index, before, after, func(v any) {
			platform.TargetHeight = v.(float64)
		}), nil

	case ElementTurntable:
		if s.Turntable == nil {
			return nil, fmt.Errorf("%w: turntable", ErrUnknownElement)
		}
		visible := s.Turntable.Visible
		return newElementToggle(kind, 0, visible, !visible, func(v any) {
			s.Turntable.Visible = v.(bool)
			if !s.Turntable.Visible {
				s.Turntable.Spinning = false
			}
		}), nil

	case ElementTurntableSpin:
		if s.Turntable == nil {
			return nil, fmt.Errorf("%w: turntable", ErrUnknownElement)
		}
		spinning := s.Turntable.Spinning
		return newElementToggle(kind, 0, spinning, !spinning, func(v any) {
			s.Turntable.Spinning = v.(bool)
		}), nil

	case ElementTrapDoor:
		if index < 0 || index >= len(s.TrapDoors) {
			return nil, fmt.Errorf("%w: trapdoor %d", ErrUnknownElement, index)
		}
		door := s.TrapDoors[index]
		open := door.Open
		return newElementToggle(kind, index, open, !open, func(v any) {
			door.Open = v.(bool)
		}), nil

	case ElementSceneryPanel:
		if index < 0 || index >= len(s.Panels) {
			return nil, fmt.Errorf("%w: panel %d", ErrUnknownElement, index)
		}
		panel := s.Panels[index]
		slid := panel.Slid
		return newElementToggle(kind, index, slid, !slid, func(v any) {
			panel.Slid = v.(bool)
		}), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownElement, kind)
}
