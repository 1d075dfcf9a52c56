package stage

// integrate advances every object with a live velocity record through the
// collision facade, applies substrate effects, and decays velocities toward
// rest. This is the only place the hidden-implies-invisible invariant is
// enforced.
func (s *Stage) integrate(dt float64) {
	s.registry.ForEach(func(obj *Object) {
		if obj.Hidden && obj.Visible {
			obj.Visible = false
		}

		s.applySubstrates(obj)

		vel, moving := s.registry.Velocity(obj.ID)
		if !moving {
			return
		}

		speed := vel.Length()
		targetX := obj.Pos.X + vel.X*dt
		targetZ := obj.Pos.Z + vel.Z*dt

		nextX, nextZ, blocked := s.AttemptMoveSliding(obj, targetX, targetZ, speed)
		if blocked {
			s.registry.SetVelocity(obj.ID, Vec2{})
			return
		}
		obj.Pos.X = nextX
		obj.Pos.Z = nextZ
		s.playMovement(obj.Pos, speed)

		// The facade may have rewritten the record with a contact
		// residual; decay whatever is current.
		if current, ok := s.registry.Velocity(obj.ID); ok {
			s.registry.SetVelocity(obj.ID, current.Scale(velocityDamping))
		}
	})
}

// applySubstrates eases the object toward its platform elevation and applies
// trap-door occlusion. Elevation is approached exponentially, never snapped.
func (s *Stage) applySubstrates(obj *Object) {
	rel := s.registry.Relationship(obj.ID)

	targetY := obj.RestOffset
	if rel.Platform >= 0 && rel.Platform < len(s.Platforms) {
		targetY = s.Platforms[rel.Platform].Height + obj.RestOffset
	}
	obj.Pos.Y += (targetY - obj.Pos.Y) * elevationApproachRate

	overOpenDoor := false
	if rel.TrapDoor >= 0 && rel.TrapDoor < len(s.TrapDoors) {
		overOpenDoor = s.TrapDoors[rel.TrapDoor].Open
	}
	if overOpenDoor {
		if !obj.Hidden {
			obj.Hidden = true
			obj.Visible = false
		}
	} else if obj.Hidden {
		// The hatch closed or the object left it; surface the object
		// where it stood.
		obj.Hidden = false
		obj.Visible = true
	}
}

// Push hands an object an impulse away from a point, typically a user drag
// or an actor shove. Movement itself happens during integration next frame.
func (s *Stage) Push(obj *Object, from Vec3, speed float64) {
	if s == nil || obj == nil {
		return
	}
	dir := Vec2{X: obj.Pos.X - from.X, Z: obj.Pos.Z - from.Z}.Normalized()
	if dir == (Vec2{}) {
		dir = Vec2{X: 0, Z: 1}
	}
	s.registry.SetVelocity(obj.ID, dir.Scale(speed))
}
