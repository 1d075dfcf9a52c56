package sim

// ObjectSnapshot mirrors one scene object for broadcast. Velocity and
// relationship state are transient and never leave the core.
type ObjectSnapshot struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Subtype  string  `json:"subtype"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Yaw      float64 `json:"yaw"`
	Visible  bool    `json:"visible"`
	Hidden   bool    `json:"hidden"`
}

// PlatformSnapshot mirrors a lift's current travel.
type PlatformSnapshot struct {
	Height       float64 `json:"height"`
	TargetHeight float64 `json:"targetHeight"`
}

// TurntableSnapshot mirrors the rotating section's toggles.
type TurntableSnapshot struct {
	Spinning bool `json:"spinning"`
	Visible  bool `json:"visible"`
}

// Snapshot captures the state exposed to non-simulation callers after a
// frame.
type Snapshot struct {
	Frame       uint64             `json:"frame"`
	Objects     []ObjectSnapshot   `json:"objects,omitempty"`
	Platforms   []PlatformSnapshot `json:"platforms,omitempty"`
	Turntable   TurntableSnapshot  `json:"turntable"`
	TrapDoors   []bool             `json:"trapDoors,omitempty"`
	Panels      []bool             `json:"panels,omitempty"`
	CurtainOpen bool               `json:"curtainOpen"`
	CanUndo     bool               `json:"canUndo"`
	CanRedo     bool               `json:"canRedo"`
}
