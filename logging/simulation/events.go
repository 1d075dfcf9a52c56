package simulation

import (
	"context"

	"backstage/server/logging"
)

const (
	// EventFrameBudgetOverrun is emitted when a frame exceeds its time
	// budget.
	EventFrameBudgetOverrun logging.EventType = "simulation.frame_budget_overrun"
	// EventTurntableJammed is emitted when a blocked sweep clears the
	// turntable's spin flag.
	EventTurntableJammed logging.EventType = "simulation.turntable_jammed"
)

// FrameBudgetOverrunPayload captures timing details for a budget breach.
type FrameBudgetOverrunPayload struct {
	DurationMillis int64   `json:"durationMillis"`
	BudgetMillis   int64   `json:"budgetMillis"`
	Ratio          float64 `json:"ratio"`
}

// FrameBudgetOverrun publishes a warning when a frame ran long.
func FrameBudgetOverrun(ctx context.Context, pub logging.Publisher, frame uint64, payload FrameBudgetOverrunPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventFrameBudgetOverrun,
		Frame:    frame,
		Subject:  logging.EntityRef{Kind: logging.EntityKindStage},
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
	})
}

// TurntableJammed publishes the forced spin stop.
func TurntableJammed(ctx context.Context, pub logging.Publisher, frame uint64) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTurntableJammed,
		Frame:    frame,
		Subject:  logging.EntityRef{Kind: logging.EntityKindMachinery},
		Severity: logging.SeverityInfo,
		Category: logging.CategorySimulation,
	})
}
