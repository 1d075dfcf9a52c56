package stage

import "math"

// Intersects reports whether two collision volumes overlap at the given
// positions. Box tests are axis-aligned; yaw is deliberately ignored even
// when objects are visibly rotated (flagged, not a bug). No penetration
// depth or contact normal is produced here; the resolver derives its normal
// from center-to-center direction.
func Intersects(a CollisionVolume, posA Vec3, b CollisionVolume, posB Vec3) bool {
	switch {
	case a.Kind == ShapeSphere && b.Kind == ShapeSphere:
		return sphereSphereOverlap(a, posA, b, posB)
	case a.Kind == ShapeCapsule && b.Kind == ShapeCapsule:
		return capsuleCapsuleOverlap(a, posA, b, posB)
	case a.Kind == ShapeSphere && b.Kind == ShapeBox:
		return sphereBoxOverlap(a, posA, b, posB)
	case a.Kind == ShapeBox && b.Kind == ShapeSphere:
		return sphereBoxOverlap(b, posB, a, posA)
	case a.Kind == ShapeBox && b.Kind == ShapeBox:
		return boxBoxOverlap(a, posA, b, posB)
	}
	// Mixed capsule pairs degrade to a sphere test on the capsule's
	// horizontal radius. Conservative, never a false negative at the waist.
	if a.Kind == ShapeCapsule {
		return Intersects(capsuleAsSphere(a), posA, b, posB)
	}
	if b.Kind == ShapeCapsule {
		return Intersects(a, posA, capsuleAsSphere(b), posB)
	}
	return false
}

func capsuleAsSphere(v CollisionVolume) CollisionVolume {
	return CollisionVolume{
		HalfWidth:  v.HalfWidth,
		HalfDepth:  v.HalfDepth,
		HalfHeight: v.HalfWidth,
		Kind:       ShapeSphere,
	}
}

func sphereSphereOverlap(a CollisionVolume, posA Vec3, b CollisionVolume, posB Vec3) bool {
	dx := posA.X - posB.X
	dy := posA.Y - posB.Y
	dz := posA.Z - posB.Z
	sum := a.HalfWidth + b.HalfWidth
	return dx*dx+dy*dy+dz*dz < sum*sum
}

func capsuleCapsuleOverlap(a CollisionVolume, posA Vec3, b CollisionVolume, posB Vec3) bool {
	sum := a.HalfWidth + b.HalfWidth
	if horizontalDistSq(posA, posB) >= sum*sum {
		return false
	}
	// Vertical spans must overlap as well.
	return math.Abs(posA.Y-posB.Y) < a.HalfHeight+b.HalfHeight
}

func sphereBoxOverlap(sphere CollisionVolume, posSphere Vec3, box CollisionVolume, posBox Vec3) bool {
	closestX := Clamp(posSphere.X, posBox.X-box.HalfWidth, posBox.X+box.HalfWidth)
	closestY := Clamp(posSphere.Y, posBox.Y-box.HalfHeight, posBox.Y+box.HalfHeight)
	closestZ := Clamp(posSphere.Z, posBox.Z-box.HalfDepth, posBox.Z+box.HalfDepth)
	dx := posSphere.X - closestX
	dy := posSphere.Y - closestY
	dz := posSphere.Z - closestZ
	radius := sphere.HalfWidth
	return dx*dx+dy*dy+dz*dz < radius*radius
}

func boxBoxOverlap(a CollisionVolume, posA Vec3, b CollisionVolume, posB Vec3) bool {
	return math.Abs(posA.X-posB.X) < a.HalfWidth+b.HalfWidth &&
		math.Abs(posA.Y-posB.Y) < a.HalfHeight+b.HalfHeight &&
		math.Abs(posA.Z-posB.Z) < a.HalfDepth+b.HalfDepth
}
