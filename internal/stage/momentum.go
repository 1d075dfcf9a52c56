package stage

// Resolution is the outcome of a mover/obstacle contact. Impulse magnitudes
// are speeds; the facade aims them along the contact normal.
type Resolution struct {
	MoverBlocked       bool
	MoverResidual      Vec2
	ObstacleImpulse    float64
	ObstacleShouldMove bool
}

// Resolve decides what a contact does to both parties. The model is
// momentum-approximate, not energy-conserving: plausible on stage beats
// physically exact.
//
// An obstacle outweighing the mover by more than immovableMassRatio is
// treated as scenery: the mover stops and the obstacle is untouched.
// Otherwise the obstacle picks up a share of the mover's momentum scaled
// down by its surface friction, and the mover keeps an attenuated residual.
func Resolve(moverMass float64, moverVel Vec2, obstacleMass, obstacleFriction float64) Resolution {
	if moverMass <= 0 {
		moverMass = 1
	}
	if obstacleMass <= 0 {
		obstacleMass = 1
	}
	if obstacleMass > immovableMassRatio*moverMass {
		return Resolution{MoverBlocked: true}
	}

	total := moverMass + obstacleMass
	speed := moverVel.Length()
	impulse := moverMass * speed / total * (1 - obstacleFriction)

	obstacleFraction := obstacleMass / total
	residual := moverVel.Scale((1 - obstacleFraction) * obstacleFriction)

	return Resolution{
		MoverResidual:      residual,
		ObstacleImpulse:    impulse,
		ObstacleShouldMove: impulse > minPushSpeed,
	}
}
