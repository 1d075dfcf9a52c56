package stage

// ShapeKind selects the narrow-phase test used for a collision volume.
type ShapeKind string

const (
	ShapeBox     ShapeKind = "box"
	ShapeSphere  ShapeKind = "sphere"
	ShapeCapsule ShapeKind = "capsule"
)

// CollisionVolume is the derived collision footprint of an object. It is a
// pure function of subtype and never stored on the object.
type CollisionVolume struct {
	HalfWidth  float64
	HalfDepth  float64
	HalfHeight float64
	Kind       ShapeKind
}

// BoundingRadius is the horizontal radius of the volume's bounding square,
// used for broad-phase insertion and queries.
func (v CollisionVolume) BoundingRadius() float64 {
	if v.HalfWidth > v.HalfDepth {
		return v.HalfWidth
	}
	return v.HalfDepth
}

// archetype bundles the collision volume with the mass and surface friction
// the momentum resolver needs.
type archetype struct {
	volume   CollisionVolume
	mass     float64
	friction float64
}

// defaultArchetype covers unknown subtypes: a unit box of moderate weight.
var defaultArchetype = archetype{
	volume:   CollisionVolume{HalfWidth: 0.5, HalfDepth: 0.5, HalfHeight: 0.5, Kind: ShapeBox},
	mass:     20,
	friction: 0.4,
}

// actorArchetype is shared by every performer regardless of subtype.
var actorArchetype = archetype{
	volume:   CollisionVolume{HalfWidth: 0.35, HalfDepth: 0.35, HalfHeight: 0.9, Kind: ShapeCapsule},
	mass:     70,
	friction: 0.5,
}

var propArchetypes = map[string]archetype{
	"chair":    {volume: CollisionVolume{HalfWidth: 0.45, HalfDepth: 0.45, HalfHeight: 0.9, Kind: ShapeBox}, mass: 8, friction: 0.3},
	"stool":    {volume: CollisionVolume{HalfWidth: 0.3, HalfDepth: 0.3, HalfHeight: 0.5, Kind: ShapeBox}, mass: 5, friction: 0.25},
	"table":    {volume: CollisionVolume{HalfWidth: 1.1, HalfDepth: 0.7, HalfHeight: 0.75, Kind: ShapeBox}, mass: 35, friction: 0.45},
	"crate":    {volume: CollisionVolume{HalfWidth: 0.6, HalfDepth: 0.6, HalfHeight: 0.6, Kind: ShapeBox}, mass: 25, friction: 0.5},
	"sofa":     {volume: CollisionVolume{HalfWidth: 1.3, HalfDepth: 0.6, HalfHeight: 0.7, Kind: ShapeBox}, mass: 60, friction: 0.6},
	"piano":    {volume: CollisionVolume{HalfWidth: 1.4, HalfDepth: 0.8, HalfHeight: 1.1, Kind: ShapeBox}, mass: 320, friction: 0.7},
	"wardrobe": {volume: CollisionVolume{HalfWidth: 0.9, HalfDepth: 0.5, HalfHeight: 1.6, Kind: ShapeBox}, mass: 150, friction: 0.65},
	"pedestal": {volume: CollisionVolume{HalfWidth: 0.4, HalfDepth: 0.4, HalfHeight: 1.0, Kind: ShapeBox}, mass: 45, friction: 0.55},
	"barrel":   {volume: CollisionVolume{HalfWidth: 0.45, HalfDepth: 0.45, HalfHeight: 0.65, Kind: ShapeSphere}, mass: 30, friction: 0.2},
	"globe":    {volume: CollisionVolume{HalfWidth: 0.5, HalfDepth: 0.5, HalfHeight: 0.5, Kind: ShapeSphere}, mass: 12, friction: 0.15},
	"balloon":  {volume: CollisionVolume{HalfWidth: 0.6, HalfDepth: 0.6, HalfHeight: 0.6, Kind: ShapeSphere}, mass: 1, friction: 0.05},
	"lamp":     {volume: CollisionVolume{HalfWidth: 0.25, HalfDepth: 0.25, HalfHeight: 1.4, Kind: ShapeBox}, mass: 7, friction: 0.3},
	"vase":     {volume: CollisionVolume{HalfWidth: 0.2, HalfDepth: 0.2, HalfHeight: 0.4, Kind: ShapeBox}, mass: 3, friction: 0.2},
}

// actorSubtypes are the known performer variants. Membership only affects
// categorisation; every actor shares actorArchetype.
var actorSubtypes = map[string]struct{}{
	"performer":  {},
	"dancer":     {},
	"stagehand":  {},
	"understudy": {},
}

// IsActorSubtype reports whether a subtype names a performer.
func IsActorSubtype(subtype string) bool {
	_, ok := actorSubtypes[subtype]
	return ok
}

// CategoryFor derives the category from a subtype.
func CategoryFor(subtype string) Category {
	if IsActorSubtype(subtype) {
		return CategoryActor
	}
	return CategoryProp
}

func archetypeFor(category Category, subtype string) archetype {
	if category == CategoryActor {
		return actorArchetype
	}
	if arch, ok := propArchetypes[subtype]; ok {
		return arch
	}
	return defaultArchetype
}

// Classify returns the collision volume for a subtype. Unknown subtypes get
// the default unit box; actors share one capsule footprint.
func Classify(category Category, subtype string) CollisionVolume {
	return archetypeFor(category, subtype).volume
}

// VolumeFor is shorthand for classifying a live object.
func VolumeFor(obj *Object) CollisionVolume {
	if obj == nil {
		return defaultArchetype.volume
	}
	return Classify(obj.Category, obj.Subtype)
}

// MassFor returns the resolver mass for an object.
func MassFor(obj *Object) float64 {
	if obj == nil {
		return defaultArchetype.mass
	}
	return archetypeFor(obj.Category, obj.Subtype).mass
}

// FrictionFor returns the surface friction for an object, in [0, 1).
func FrictionFor(obj *Object) float64 {
	if obj == nil {
		return defaultArchetype.friction
	}
	return archetypeFor(obj.Category, obj.Subtype).friction
}
