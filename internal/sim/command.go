package sim

import "time"

// CommandType enumerates the edit intents accepted between frames.
type CommandType string

const (
	CommandPlace  CommandType = "Place"
	CommandMove   CommandType = "Move"
	CommandPush   CommandType = "Push"
	CommandRemove CommandType = "Remove"
	CommandToggle CommandType = "Toggle"
	CommandUndo   CommandType = "Undo"
	CommandRedo   CommandType = "Redo"
)

// PlaceCommand asks for a new object at a stage position.
type PlaceCommand struct {
	Subtype string  `json:"subtype"`
	X       float64 `json:"x"`
	Z       float64 `json:"z"`
}

// MoveCommand repositions an existing object.
type MoveCommand struct {
	ObjectID string  `json:"objectId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
}

// PushCommand shoves an object away from a point.
type PushCommand struct {
	ObjectID string  `json:"objectId"`
	FromX    float64 `json:"fromX"`
	FromY    float64 `json:"fromY"`
	FromZ    float64 `json:"fromZ"`
}

// RemoveCommand deletes an object.
type RemoveCommand struct {
	ObjectID string `json:"objectId"`
}

// ToggleCommand flips a stage machinery element.
type ToggleCommand struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
}

// Command is one edit intent captured for processing before the next frame.
type Command struct {
	Type      CommandType    `json:"type"`
	SessionID string         `json:"sessionId,omitempty"`
	IssuedAt  time.Time      `json:"issuedAt"`
	Place     *PlaceCommand  `json:"place,omitempty"`
	Move      *MoveCommand   `json:"move,omitempty"`
	Push      *PushCommand   `json:"push,omitempty"`
	Remove    *RemoveCommand `json:"remove,omitempty"`
	Toggle    *ToggleCommand `json:"toggle,omitempty"`
}
