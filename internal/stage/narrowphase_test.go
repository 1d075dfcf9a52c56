package stage

import "testing"

func TestIntersectsPairGrid(t *testing.T) {
	sphere := CollisionVolume{HalfWidth: 0.5, HalfDepth: 0.5, HalfHeight: 0.5, Kind: ShapeSphere}
	box := CollisionVolume{HalfWidth: 0.6, HalfDepth: 0.6, HalfHeight: 0.6, Kind: ShapeBox}
	capsule := CollisionVolume{HalfWidth: 0.35, HalfDepth: 0.35, HalfHeight: 0.9, Kind: ShapeCapsule}

	cases := []struct {
		name string
		a    CollisionVolume
		posA Vec3
		b    CollisionVolume
		posB Vec3
		want bool
	}{
		{"sphere sphere touching", sphere, Vec3{}, sphere, Vec3{X: 0.9}, true},
		{"sphere sphere apart", sphere, Vec3{}, sphere, Vec3{X: 1.1}, false},
		{"sphere sphere vertical separation", sphere, Vec3{}, sphere, Vec3{Y: 1.1}, false},
		{"box box overlap", box, Vec3{}, box, Vec3{X: 1.0, Z: 1.0}, true},
		{"box box apart on x", box, Vec3{}, box, Vec3{X: 1.3}, false},
		{"box box apart on y", box, Vec3{}, box, Vec3{Y: 1.3}, false},
		{"sphere box overlap", sphere, Vec3{X: 1.0}, box, Vec3{}, true},
		{"sphere box corner miss", sphere, Vec3{X: 1.0, Z: 1.0}, box, Vec3{}, false},
		{"box sphere argument order", box, Vec3{}, sphere, Vec3{X: 1.0}, true},
		{"capsule capsule overlap", capsule, Vec3{}, capsule, Vec3{X: 0.6}, true},
		{"capsule capsule horizontal miss", capsule, Vec3{}, capsule, Vec3{X: 0.8}, false},
		{"capsule capsule vertical miss", capsule, Vec3{}, capsule, Vec3{X: 0.6, Y: 1.9}, false},
		{"capsule box degrades to sphere", capsule, Vec3{}, box, Vec3{X: 0.9}, true},
		{"capsule box apart", capsule, Vec3{}, box, Vec3{X: 1.0}, false},
		{"capsule sphere degrades to sphere", capsule, Vec3{}, sphere, Vec3{X: 0.8}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Intersects(tc.a, tc.posA, tc.b, tc.posB); got != tc.want {
				t.Fatalf("Intersects = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIntersectsIgnoresYawForBoxes(t *testing.T) {
	box := CollisionVolume{HalfWidth: 1.1, HalfDepth: 0.2, HalfHeight: 0.5, Kind: ShapeBox}
	other := CollisionVolume{HalfWidth: 0.5, HalfDepth: 0.5, HalfHeight: 0.5, Kind: ShapeBox}
	// The overlap test has no yaw input at all; a rotated table still
	// collides on its unrotated extents.
	if !Intersects(box, Vec3{}, other, Vec3{X: 1.5}) {
		t.Fatalf("expected axis-aligned extents to overlap regardless of visual rotation")
	}
}
