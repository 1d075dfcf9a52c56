package stage

import "fmt"

// Category splits scene objects into stage props and performers.
type Category string

const (
	CategoryProp  Category = "prop"
	CategoryActor Category = "actor"
)

// ObjectID uniquely identifies a scene object for its lifetime.
type ObjectID string

// RenderHandle is the write-only surface the core uses to push transform and
// visibility changes to whatever draws the stage. There is no readback; the
// registry remains the single source of truth.
type RenderHandle interface {
	SetPosition(x, y, z float64)
	SetYaw(yaw float64)
	SetVisible(visible bool)
}

// Object is a single placed prop or actor. Physics side state (velocity,
// substrate relationships) lives in registry-owned tables keyed by ID, not on
// the object itself.
type Object struct {
	ID       ObjectID
	Category Category
	Subtype  string
	Pos      Vec3
	Yaw      float64

	// Visible is the user-facing flag. Hidden is physics-driven occlusion
	// (an open trap door); Hidden implies not Visible, enforced during
	// integration.
	Visible bool
	Hidden  bool

	// RestOffset lifts the object's resting point above whatever it stands
	// on, so tall props do not sink into platform tops.
	RestOffset float64

	Render RenderHandle
}

// Relationship binds an object to at most one platform and one trap door,
// plus turntable membership. Indexes are -1 when unbound.
type Relationship struct {
	Platform    int
	TrapDoor    int
	OnTurntable bool
}

// NoRelationship is the unbound state for freshly placed objects.
func NoRelationship() Relationship {
	return Relationship{Platform: -1, TrapDoor: -1}
}

// Registry owns every live object plus the transient physics side tables.
// It is created by the engine and passed down; nothing reaches for it as a
// package global.
type Registry struct {
	objects    map[ObjectID]*Object
	order      []ObjectID
	velocities map[ObjectID]Vec2
	relations  map[ObjectID]Relationship
	nextID     uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		objects:    make(map[ObjectID]*Object),
		velocities: make(map[ObjectID]Vec2),
		relations:  make(map[ObjectID]Relationship),
	}
}

// AllocateID mints the next object identifier.
func (r *Registry) AllocateID() ObjectID {
	r.nextID++
	return ObjectID(fmt.Sprintf("obj-%d", r.nextID))
}

// Insert adds an object to the registry. Objects with a duplicate or empty
// ID are rejected.
func (r *Registry) Insert(obj *Object) bool {
	if r == nil || obj == nil || obj.ID == "" {
		return false
	}
	if _, exists := r.objects[obj.ID]; exists {
		return false
	}
	r.objects[obj.ID] = obj
	r.order = append(r.order, obj.ID)
	r.relations[obj.ID] = NoRelationship()
	return true
}

// Remove deletes an object and its side-table entries.
func (r *Registry) Remove(id ObjectID) {
	if r == nil || id == "" {
		return
	}
	if _, ok := r.objects[id]; !ok {
		return
	}
	delete(r.objects, id)
	delete(r.velocities, id)
	delete(r.relations, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get looks up an object by ID.
func (r *Registry) Get(id ObjectID) (*Object, bool) {
	if r == nil {
		return nil, false
	}
	obj, ok := r.objects[id]
	return obj, ok
}

// ForEach visits every live object in insertion order.
func (r *Registry) ForEach(fn func(*Object)) {
	if r == nil || fn == nil {
		return
	}
	for _, id := range r.order {
		if obj, ok := r.objects[id]; ok {
			fn(obj)
		}
	}
}

// Len reports the number of live objects.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Clear removes every object and side-table entry.
func (r *Registry) Clear() {
	if r == nil {
		return
	}
	r.objects = make(map[ObjectID]*Object)
	r.order = r.order[:0]
	r.velocities = make(map[ObjectID]Vec2)
	r.relations = make(map[ObjectID]Relationship)
}

// Velocity returns the horizontal velocity for an object. Absence means at
// rest.
func (r *Registry) Velocity(id ObjectID) (Vec2, bool) {
	if r == nil {
		return Vec2{}, false
	}
	vel, ok := r.velocities[id]
	return vel, ok
}

// SetVelocity stores a horizontal velocity. Magnitudes below the rest
// epsilon are coerced to exact rest (the entry is dropped).
func (r *Registry) SetVelocity(id ObjectID, vel Vec2) {
	if r == nil || id == "" {
		return
	}
	if vel.Length() < velocityRestEpsilon {
		delete(r.velocities, id)
		return
	}
	r.velocities[id] = vel
}

// Relationship returns the current substrate bindings for an object.
func (r *Registry) Relationship(id ObjectID) Relationship {
	if r == nil {
		return NoRelationship()
	}
	rel, ok := r.relations[id]
	if !ok {
		return NoRelationship()
	}
	return rel
}

// SetRelationship replaces the substrate bindings for an object.
func (r *Registry) SetRelationship(id ObjectID, rel Relationship) {
	if r == nil || id == "" {
		return
	}
	r.relations[id] = rel
}
