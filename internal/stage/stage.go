package stage

// SoundChannel is the fire-and-forget audio surface. Implementations must
// never block the frame; failures are swallowed.
type SoundChannel interface {
	PlayCollisionSound(pos Vec3, speed float64)
	PlayMovementSound(pos Vec3, speed float64)
}

// Config tunes the physics core.
type Config struct {
	CellSize float64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{CellSize: DefaultCellSize}
}

// Stage owns the scene registry, the per-frame spatial index, and all stage
// machinery. A single goroutine drives it; nothing here locks.
type Stage struct {
	registry *Registry
	index    *SpatialIndex
	sound    SoundChannel

	Platforms []*Platform
	Turntable *Turntable
	TrapDoors []*TrapDoor
	Panels    []*SceneryPanel
	Curtain   Curtain

	frame uint64
}

// New builds an empty stage with the default machinery layout.
func New(cfg Config) *Stage {
	s := &Stage{
		registry: NewRegistry(),
		index:    NewSpatialIndex(cfg.CellSize),
	}
	s.installDefaultMachinery()
	return s
}

// Registry exposes the object registry to the engine and editor.
func (s *Stage) Registry() *Registry {
	if s == nil {
		return nil
	}
	return s.registry
}

// SetSound attaches the audio channel. A nil channel silences the stage.
func (s *Stage) SetSound(ch SoundChannel) {
	if s == nil {
		return
	}
	s.sound = ch
}

// Frame reports the current frame counter.
func (s *Stage) Frame() uint64 {
	if s == nil {
		return 0
	}
	return s.frame
}

// Step advances one frame. Order is load-bearing: relationship refresh (when
// due) happens before integration, integration before the turntable sweep,
// and the sweep before render handoff, so elevation and rotation computed
// this frame reach this frame's draw. The grid is cleared and rebuilt before
// any query and never reused across frames.
func (s *Stage) Step(dt float64) {
	if s == nil {
		return
	}
	if s.frame%RelationshipRefreshFrames == 0 {
		s.RefreshAllRelationships()
	}
	s.rebuildIndex()
	s.integrate(dt)
	s.stepMachinery()
	s.sweepTurntable()
	s.syncRender()
	s.frame++
}

// addObject registers an object and indexes it immediately, so a later edit
// in the same command batch sees its occupancy before the next frame
// rebuild.
func (s *Stage) addObject(obj *Object) {
	s.registry.Insert(obj)
	s.index.Insert(obj)
	s.RefreshRelationship(obj)
}

// removeObject deletes an object and vacates its grid cells on the spot.
func (s *Stage) removeObject(id ObjectID) {
	s.registry.Remove(id)
	s.index.Remove(id)
}

// reindexObject refreshes grid occupancy after a between-frame reposition.
func (s *Stage) reindexObject(obj *Object) {
	s.index.Remove(obj.ID)
	s.index.Insert(obj)
}

func (s *Stage) rebuildIndex() {
	s.index.Clear()
	s.registry.ForEach(func(obj *Object) {
		s.index.Insert(obj)
	})
}

func (s *Stage) stepMachinery() {
	for _, platform := range s.Platforms {
		platform.step()
	}
}

func (s *Stage) syncRender() {
	s.registry.ForEach(func(obj *Object) {
		if obj.Render == nil {
			return
		}
		obj.Render.SetPosition(obj.Pos.X, obj.Pos.Y, obj.Pos.Z)
		obj.Render.SetYaw(obj.Yaw)
		obj.Render.SetVisible(obj.Visible && !obj.Hidden)
	})
}

func (s *Stage) playCollision(pos Vec3, speed float64) {
	if s.sound == nil {
		return
	}
	s.sound.PlayCollisionSound(pos, speed)
}

func (s *Stage) playMovement(pos Vec3, speed float64) {
	if s.sound == nil {
		return
	}
	s.sound.PlayMovementSound(pos, speed)
}

// installDefaultMachinery lays out the stock stage: two lifts flanking
// center, the turntable mid-stage, two trap doors downstage, and a backdrop
// panel with a doorway cutout.
func (s *Stage) installDefaultMachinery() {
	s.Platforms = []*Platform{
		{Center: Vec2{X: -8, Z: -4}, HalfWidth: 3, HalfDepth: 3, RaisedHeight: 2.5},
		{Center: Vec2{X: 8, Z: -4}, HalfWidth: 3, HalfDepth: 3, RaisedHeight: 2.5},
	}
	s.Turntable = &Turntable{
		Center:      Vec2{X: 0, Z: -2},
		Radius:      4,
		AngularStep: 0.02,
		Visible:     true,
	}
	s.TrapDoors = []*TrapDoor{
		{Center: Vec2{X: -4, Z: 4}, Extent: 0.9},
		{Center: Vec2{X: 4, Z: 4}, Extent: 0.9},
	}
	s.Panels = []*SceneryPanel{
		{
			Z:       -9,
			MinX:    -12,
			MaxX:    12,
			SlideBy: 24,
			Cutout:  &PanelCutout{MinX: -1.5, MaxX: 1.5, MinY: 0, MaxY: 2.2},
		},
	}
}
