package stage

import "math"

// Vec2 is a horizontal-plane vector. Y is up; movement happens in X/Z.
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Vec3 is a full position with elevation.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Horizontal drops the elevation component.
func (v Vec3) Horizontal() Vec2 {
	return Vec2{X: v.X, Z: v.Z}
}

// Add returns the component-wise sum.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Z: v.Z + other.Z}
}

// Scale multiplies both components by factor.
func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{X: v.X * factor, Z: v.Z * factor}
}

// Length returns the vector magnitude.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Z)
}

// Normalized returns the unit vector, or the zero vector when degenerate.
func (v Vec2) Normalized() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Z: v.Z / length}
}

// Clamp limits value to the range [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// horizontalDistSq returns the squared X/Z distance between two positions.
func horizontalDistSq(a, b Vec3) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return dx*dx + dz*dz
}

// rotateAround rotates point (x, z) around center (cx, cz) by angle radians.
func rotateAround(x, z, cx, cz, angle float64) (float64, float64) {
	sin := math.Sin(angle)
	cos := math.Cos(angle)
	dx := x - cx
	dz := z - cz
	return cx + dx*cos - dz*sin, cz + dx*sin + dz*cos
}
