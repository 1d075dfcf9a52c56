package stage

// Stage machinery is fixed furniture driven by toggles, not scene objects:
// it never enters the spatial index, and dynamic objects bind to it through
// the relationship tracker instead of colliding with it.

// Platform is an elevating stage section. Height eases toward TargetHeight;
// riders follow with their resting offset applied.
type Platform struct {
	Center       Vec2
	HalfWidth    float64
	HalfDepth    float64
	Height       float64
	TargetHeight float64
	RaisedHeight float64
}

// Contains reports whether a horizontal point is over the platform deck,
// padded by the binding threshold.
func (p *Platform) Contains(x, z float64) bool {
	if p == nil {
		return false
	}
	return x > p.Center.X-p.HalfWidth-platformProximity &&
		x < p.Center.X+p.HalfWidth+platformProximity &&
		z > p.Center.Z-p.HalfDepth-platformProximity &&
		z < p.Center.Z+p.HalfDepth+platformProximity
}

// step eases the deck toward its target height.
func (p *Platform) step() {
	if p == nil {
		return
	}
	p.Height += (p.TargetHeight - p.Height) * elevationApproachRate
}

// Turntable is the rotating circular stage section. AngularStep is the
// radians swept per frame while Spinning.
type Turntable struct {
	Center      Vec2
	Radius      float64
	AngularStep float64
	Spinning    bool
	Visible     bool
}

// Contains reports whether a horizontal point rides the turntable disc.
func (t *Turntable) Contains(x, z float64) bool {
	if t == nil || !t.Visible {
		return false
	}
	dx := x - t.Center.X
	dz := z - t.Center.Z
	return dx*dx+dz*dz < t.Radius*t.Radius
}

// TrapDoor is a floor hatch. While Open, objects bound to it are hidden.
type TrapDoor struct {
	Center Vec2
	Extent float64
	Open   bool
}

// Contains reports whether a horizontal point is over the hatch.
func (d *TrapDoor) Contains(x, z float64) bool {
	if d == nil {
		return false
	}
	reach := d.Extent + trapDoorProximity
	dx := x - d.Center.X
	dz := z - d.Center.Z
	return dx*dx+dz*dz < reach*reach
}

// PanelCutout is an optional rectangular pass-through opening in a scenery
// panel (a doorway or archway), tested against the mover's (x, y).
type PanelCutout struct {
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// SceneryPanel is a flat static backdrop along a Z line. It blocks movement
// on Z proximity plus X overlap unless the mover passes through the cutout.
// Slid panels are parked offstage and block nothing.
type SceneryPanel struct {
	Z       float64
	MinX    float64
	MaxX    float64
	Cutout  *PanelCutout
	Slid    bool
	SlideBy float64
}

// Blocks reports whether the panel stops an object at (x, y, z).
func (p *SceneryPanel) Blocks(x, y, z float64) bool {
	if p == nil || p.Slid {
		return false
	}
	if z < p.Z-panelBlockDepth || z > p.Z+panelBlockDepth {
		return false
	}
	if x < p.MinX || x > p.MaxX {
		return false
	}
	if c := p.Cutout; c != nil {
		if x > c.MinX && x < c.MaxX && y > c.MinY && y < c.MaxY {
			return false
		}
	}
	return true
}

// Curtain is the front-of-stage drape. It only gates what the renderer
// shows; physics ignores it.
type Curtain struct {
	Open bool
}
