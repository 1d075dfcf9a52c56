package stage

// RefreshRelationship recomputes an object's substrate bindings from fixed
// proximity thresholds, replacing whatever held before. An object binds to
// at most one platform and one trap door; platform and turntable membership
// can combine.
func (s *Stage) RefreshRelationship(obj *Object) {
	if s == nil || obj == nil {
		return
	}
	rel := NoRelationship()
	for i, platform := range s.Platforms {
		if platform.Contains(obj.Pos.X, obj.Pos.Z) {
			rel.Platform = i
			break
		}
	}
	for i, door := range s.TrapDoors {
		if door.Contains(obj.Pos.X, obj.Pos.Z) {
			rel.TrapDoor = i
			break
		}
	}
	rel.OnTurntable = s.Turntable.Contains(obj.Pos.X, obj.Pos.Z)
	s.registry.SetRelationship(obj.ID, rel)
}

// RefreshAllRelationships rebuilds the whole relationship table. The loop
// calls it on a fixed frame interval; placement calls RefreshRelationship
// immediately so new objects never wait out the interval.
func (s *Stage) RefreshAllRelationships() {
	s.registry.ForEach(func(obj *Object) {
		s.RefreshRelationship(obj)
	})
}

// sweepTurntable rotates riders around the table center by the per-step
// angle and spins their yaw identically. Each rider's new spot is gated by
// the facade as a placement check; the first blocked rider forcibly clears
// the table's spin flag, as if the mechanism jammed against the obstruction.
func (s *Stage) sweepTurntable() {
	table := s.Turntable
	if table == nil || !table.Spinning || !table.Visible {
		return
	}
	jammed := false
	s.registry.ForEach(func(obj *Object) {
		if jammed || obj.Hidden {
			return
		}
		if !s.registry.Relationship(obj.ID).OnTurntable {
			return
		}
		nextX, nextZ := rotateAround(obj.Pos.X, obj.Pos.Z, table.Center.X, table.Center.Z, table.AngularStep)
		if s.AttemptMove(obj, nextX, nextZ, 0) {
			jammed = true
			return
		}
		obj.Pos.X = nextX
		obj.Pos.Z = nextZ
		obj.Yaw += table.AngularStep
	})
	if jammed {
		table.Spinning = false
	}
}
