package editing

import (
	"context"

	"backstage/server/logging"
)

const (
	// EventObjectPlaced is emitted when a placement command executes.
	EventObjectPlaced logging.EventType = "editing.object_placed"
	// EventPlacementBlocked is emitted when a placement spot is occupied.
	EventPlacementBlocked logging.EventType = "editing.placement_blocked"
	// EventObjectMoved is emitted when a move command executes.
	EventObjectMoved logging.EventType = "editing.object_moved"
	// EventElementToggled is emitted when stage machinery flips state.
	EventElementToggled logging.EventType = "editing.element_toggled"
	// EventHistoryStep is emitted for undo and redo walks.
	EventHistoryStep logging.EventType = "editing.history_step"
)

// PlacementPayload captures where an object landed or was refused.
type PlacementPayload struct {
	Subtype string  `json:"subtype"`
	X       float64 `json:"x"`
	Z       float64 `json:"z"`
}

// TogglePayload captures which machinery element flipped.
type TogglePayload struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
}

// HistoryPayload captures an undo/redo step and whether it acted.
type HistoryPayload struct {
	Direction string `json:"direction"`
	Acted     bool   `json:"acted"`
}

// ObjectPlaced publishes a successful placement.
func ObjectPlaced(ctx context.Context, pub logging.Publisher, frame uint64, id string, kind logging.EntityKind, payload PlacementPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventObjectPlaced,
		Frame:    frame,
		Subject:  logging.EntityRef{ID: id, Kind: kind},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEditing,
		Payload:  payload,
	})
}

// PlacementBlocked publishes a refused placement.
func PlacementBlocked(ctx context.Context, pub logging.Publisher, frame uint64, payload PlacementPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventPlacementBlocked,
		Frame:    frame,
		Subject:  logging.EntityRef{Kind: logging.EntityKindStage},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryEditing,
		Payload:  payload,
	})
}

// ObjectMoved publishes a journaled move.
func ObjectMoved(ctx context.Context, pub logging.Publisher, frame uint64, id string, kind logging.EntityKind) {
	publish(ctx, pub, logging.Event{
		Type:     EventObjectMoved,
		Frame:    frame,
		Subject:  logging.EntityRef{ID: id, Kind: kind},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryEditing,
	})
}

// ElementToggled publishes a machinery toggle.
func ElementToggled(ctx context.Context, pub logging.Publisher, frame uint64, payload TogglePayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventElementToggled,
		Frame:    frame,
		Subject:  logging.EntityRef{Kind: logging.EntityKindMachinery},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEditing,
		Payload:  payload,
	})
}

// HistoryStep publishes an undo or redo attempt.
func HistoryStep(ctx context.Context, pub logging.Publisher, frame uint64, payload HistoryPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventHistoryStep,
		Frame:    frame,
		Subject:  logging.EntityRef{Kind: logging.EntityKindStage},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryEditing,
		Payload:  payload,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event)
}
