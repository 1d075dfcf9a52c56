package stage

import "backstage/server/internal/journal"

// PlaceCommand instantiates a scene object on apply and removes it on
// revert. The object pointer is retained so redo restores the same identity.
type PlaceCommand struct {
	stage *Stage
	obj   *Object
}

// NewPlaceCommand wraps an already validated object for journaled insertion.
func NewPlaceCommand(s *Stage, obj *Object) *PlaceCommand {
	return &PlaceCommand{stage: s, obj: obj}
}

// Object returns the placed scene object.
func (c *PlaceCommand) Object() *Object {
	if c == nil {
		return nil
	}
	return c.obj
}

func (c *PlaceCommand) Apply() {
	c.stage.addObject(c.obj)
}

func (c *PlaceCommand) Revert() {
	c.stage.removeObject(c.obj.ID)
}

func (c *PlaceCommand) Name() string { return "place" }

// RemoveCommand deletes an object; revert restores it in place.
type RemoveCommand struct {
	stage *Stage
	obj   *Object
}

// NewRemoveCommand wraps an existing object for journaled removal.
func NewRemoveCommand(s *Stage, obj *Object) *RemoveCommand {
	return &RemoveCommand{stage: s, obj: obj}
}

func (c *RemoveCommand) Apply() {
	c.stage.removeObject(c.obj.ID)
}

func (c *RemoveCommand) Revert() {
	c.stage.addObject(c.obj)
}

func (c *RemoveCommand) Name() string { return "remove" }

// MoveCommand repositions an object. Consecutive moves of the same object
// merge into one history entry so a drag undoes in a single step.
type MoveCommand struct {
	stage *Stage
	id    ObjectID
	from  Vec3
	to    Vec3
}

// NewMoveCommand records a reversible move from the object's current
// position to target.
func NewMoveCommand(s *Stage, id ObjectID, from, to Vec3) *MoveCommand {
	return &MoveCommand{stage: s, id: id, from: from, to: to}
}

func (c *MoveCommand) Apply() {
	c.setPosition(c.to)
}

func (c *MoveCommand) Revert() {
	c.setPosition(c.from)
}

func (c *MoveCommand) Name() string { return "move" }

// Merge absorbs a following move of the same object by extending the
// destination; the origin stays put so undo returns to the drag start.
func (c *MoveCommand) Merge(next journal.Command) bool {
	other, ok := next.(*MoveCommand)
	if !ok || other.id != c.id {
		return false
	}
	c.to = other.to
	return true
}

func (c *MoveCommand) setPosition(pos Vec3) {
	obj, ok := c.stage.Registry().Get(c.id)
	if !ok {
		return
	}
	obj.Pos = pos
	c.stage.reindexObject(obj)
	c.stage.RefreshRelationship(obj)
}

// StageElementKind names a toggleable piece of stage machinery.
type StageElementKind string

const (
	ElementCurtain       StageElementKind = "curtain"
	ElementPlatform      StageElementKind = "platform"
	ElementTurntable     StageElementKind = "turntable"
	ElementTurntableSpin StageElementKind = "turntable-spin"
	ElementTrapDoor      StageElementKind = "trapdoor"
	ElementSceneryPanel  StageElementKind = "panel"
)

// StageElementToggle is one reversible machinery toggle. A single apply
// function parameterized by an opaque snapshot unifies curtain, platform
// height, turntable visibility and spin, trap doors, and scenery slides.
type StageElementToggle struct {
	kind   StageElementKind
	index  int
	before any
	after  any
	apply  func(any)
}

func (c *StageElementToggle) Apply()  { c.apply(c.after) }
func (c *StageElementToggle) Revert() { c.apply(c.before) }

func (c *StageElementToggle) Name() string { return "toggle:" + string(c.kind) }

// newElementToggle captures before/after snapshots around a setter closure.
func newElementToggle(kind StageElementKind, index int, before, after any, apply func(any)) *StageElementToggle {
	return &StageElementToggle{kind: kind, index: index, before: before, after: after, apply: apply}
}
