package stage

import (
	"fmt"
	"math"
	"testing"
)

func indexedObject(id string, x, z float64) *Object {
	return &Object{
		ID:      ObjectID(id),
		Subtype: "crate",
		Pos:     Vec3{X: x, Y: 0.6, Z: z},
		Visible: true,
	}
}

func TestSpatialIndexQueryNeverMissesNearbyObjects(t *testing.T) {
	idx := NewSpatialIndex(DefaultCellSize)
	var objects []*Object
	for i := 0; i < 40; i++ {
		x := float64(i%8)*3.5 - 14
		z := float64(i/8)*3.5 - 9
		obj := indexedObject(fmt.Sprintf("obj-%d", i), x, z)
		objects = append(objects, obj)
		idx.Insert(obj)
	}

	windows := []struct {
		x, z, radius float64
	}{
		{0, 0, 4},
		{-14, -9, 2},
		{10, 5, 6},
		{2.5, -2.5, 0.5},
	}
	for _, w := range windows {
		got := idx.Query(w.x, w.z, w.radius)
		found := make(map[ObjectID]struct{}, len(got))
		for _, obj := range got {
			found[obj.ID] = struct{}{}
		}
		for _, obj := range objects {
			reach := w.radius + VolumeFor(obj).BoundingRadius()
			if math.Abs(obj.Pos.X-w.x) > reach || math.Abs(obj.Pos.Z-w.z) > reach {
				continue
			}
			if _, ok := found[obj.ID]; !ok {
				t.Fatalf("query (%v,%v,r=%v) missed %s at (%v,%v)", w.x, w.z, w.radius, obj.ID, obj.Pos.X, obj.Pos.Z)
			}
		}
	}
}

func TestSpatialIndexDeduplicatesSpanningObjects(t *testing.T) {
	idx := NewSpatialIndex(1)
	// A table is wide enough to cover several one-unit cells.
	obj := &Object{ID: "table-1", Subtype: "table", Pos: Vec3{X: 0, Z: 0}, Visible: true}
	idx.Insert(obj)

	got := idx.Query(0, 0, 3)
	if len(got) != 1 {
		t.Fatalf("expected one deduplicated result, got %d", len(got))
	}
	if got[0].ID != obj.ID {
		t.Fatalf("expected %s, got %s", obj.ID, got[0].ID)
	}
}

func TestSpatialIndexEmptyGridReturnsNil(t *testing.T) {
	idx := NewSpatialIndex(DefaultCellSize)
	if got := idx.Query(0, 0, 100); got != nil {
		t.Fatalf("expected nil from empty grid, got %d results", len(got))
	}
}

func TestSpatialIndexClearDropsOccupancy(t *testing.T) {
	idx := NewSpatialIndex(DefaultCellSize)
	idx.Insert(indexedObject("obj-1", 0, 0))
	if got := idx.Query(0, 0, 2); len(got) != 1 {
		t.Fatalf("expected one result before clear, got %d", len(got))
	}
	idx.Clear()
	if got := idx.Query(0, 0, 2); got != nil {
		t.Fatalf("expected nil after clear, got %d results", len(got))
	}
}

func TestSpatialIndexRemoveVacatesEveryCell(t *testing.T) {
	idx := NewSpatialIndex(1)
	spanning := indexedObject("obj-1", 0, 0)
	neighbor := indexedObject("obj-2", 0.5, 0.5)
	idx.Insert(spanning)
	idx.Insert(neighbor)

	idx.Remove(spanning.ID)

	got := idx.Query(0, 0, 3)
	if len(got) != 1 {
		t.Fatalf("expected one survivor after remove, got %d", len(got))
	}
	if got[0].ID != neighbor.ID {
		t.Fatalf("expected %s to survive, got %s", neighbor.ID, got[0].ID)
	}
}

func TestSpatialIndexDefaultsInvalidCellSize(t *testing.T) {
	idx := NewSpatialIndex(-3)
	if idx.cellSize != DefaultCellSize {
		t.Fatalf("expected fallback cell size %v, got %v", DefaultCellSize, idx.cellSize)
	}
	idx.Insert(indexedObject("obj-1", -2, -2))
	if got := idx.Query(-2, -2, 1); len(got) != 1 {
		t.Fatalf("expected one result, got %d", len(got))
	}
}
