package stage

// AttemptMove asks the facade whether obj may occupy (targetX, targetZ) and
// reports blocked. Speed zero is a pure placement check with no push side
// effects. With positive speed the first overlapping candidate is resolved
// for momentum transfer and scanning stops there: simultaneous multi-contact
// resolves only the first discovered pair. That first-hit policy is the
// documented contract, not an oversight.
func (s *Stage) AttemptMove(obj *Object, targetX, targetZ, speed float64) bool {
	if s == nil || obj == nil {
		return false
	}
	vol := VolumeFor(obj)
	target := Vec3{X: targetX, Y: obj.Pos.Y, Z: targetZ}
	radius := vol.BoundingRadius() + queryMargin

	for _, candidate := range s.index.Query(targetX, targetZ, radius) {
		if candidate.ID == obj.ID || candidate.Hidden {
			continue
		}
		if !Intersects(vol, target, VolumeFor(candidate), candidate.Pos) {
			continue
		}
		if speed == 0 {
			return true
		}
		return s.resolveContact(obj, candidate, target, speed)
	}

	for _, panel := range s.Panels {
		if panel.Blocks(targetX, obj.Pos.Y, targetZ) {
			return true
		}
	}
	return false
}

// resolveContact applies the momentum resolver to the first discovered pair.
// The contact normal is the normalized mover-to-obstacle direction: exact
// for spheres, an approximation for everything else.
func (s *Stage) resolveContact(obj, obstacle *Object, target Vec3, speed float64) bool {
	heading := Vec2{X: target.X - obj.Pos.X, Z: target.Z - obj.Pos.Z}.Normalized()
	moverVel := heading.Scale(speed)

	res := Resolve(MassFor(obj), moverVel, MassFor(obstacle), FrictionFor(obstacle))
	if res.MoverBlocked {
		s.playCollision(obstacle.Pos, speed)
		return true
	}

	if res.ObstacleShouldMove {
		normal := Vec2{X: obstacle.Pos.X - obj.Pos.X, Z: obstacle.Pos.Z - obj.Pos.Z}.Normalized()
		if normal == (Vec2{}) {
			normal = heading
		}
		s.registry.SetVelocity(obstacle.ID, normal.Scale(res.ObstacleImpulse))
	}
	if _, moving := s.registry.Velocity(obj.ID); moving {
		s.registry.SetVelocity(obj.ID, res.MoverResidual)
	}
	s.playCollision(obstacle.Pos, speed)
	return false
}

// AttemptMoveSliding retries a blocked diagonal move per axis: X only, then
// Z only, accepting the first unblocked option. Returns the position to
// commit and whether every option blocked.
func (s *Stage) AttemptMoveSliding(obj *Object, targetX, targetZ, speed float64) (float64, float64, bool) {
	if s == nil || obj == nil {
		return targetX, targetZ, true
	}
	if !s.AttemptMove(obj, targetX, targetZ, speed) {
		return targetX, targetZ, false
	}
	if targetX != obj.Pos.X && !s.AttemptMove(obj, targetX, obj.Pos.Z, speed) {
		return targetX, obj.Pos.Z, false
	}
	if targetZ != obj.Pos.Z && !s.AttemptMove(obj, obj.Pos.X, targetZ, speed) {
		return obj.Pos.X, targetZ, false
	}
	return obj.Pos.X, obj.Pos.Z, true
}
