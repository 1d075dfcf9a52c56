package stage

const (
	// DefaultCellSize is the spatial hash cell edge in stage units.
	DefaultCellSize = 5.0

	// queryMargin pads broad-phase queries beyond the mover's extent so
	// candidates straddling cell borders are not missed.
	queryMargin = 3.0

	// immovableMassRatio marks an obstacle as unpushable when it outweighs
	// the mover by this factor.
	immovableMassRatio = 5.0

	// minPushSpeed suppresses jitter pushes; impulses below it leave the
	// obstacle at rest.
	minPushSpeed = 0.5

	// velocityRestEpsilon coerces near-zero velocities to exact rest.
	velocityRestEpsilon = 0.05

	// velocityDamping is the per-frame frictional decay applied to every
	// live velocity record.
	velocityDamping = 0.86

	// RelationshipRefreshFrames is the fixed interval between full
	// relationship table rebuilds. Consumers tolerate the staleness.
	RelationshipRefreshFrames = 6

	// platformProximity and trapDoorProximity are the horizontal binding
	// thresholds for substrate relationships.
	platformProximity = 2.5
	trapDoorProximity = 1.2

	// elevationApproachRate is the per-frame exponential factor used to
	// ease objects toward their platform target height. Never snapped.
	elevationApproachRate = 0.2

	// panelBlockDepth is the Z slab a scenery panel blocks on either side
	// of its line.
	panelBlockDepth = 1.0
)
