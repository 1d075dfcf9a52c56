package stage

import "math"

type cellKey struct {
	X int
	Z int
}

// SpatialIndex is a uniform grid over the stage floor. It is cleared and
// rebuilt at the top of every frame, and journaled edits between frames keep
// it current with Insert and Remove so a placement check sees occupancy from
// its own command batch, not just the last rebuild. Objects near cell
// borders are appended to every covered cell so border queries cannot miss
// them.
type SpatialIndex struct {
	cellSize    float64
	invCellSize float64
	cells       map[cellKey][]*Object
}

// NewSpatialIndex builds an index with the given cell edge length. Values
// at or below zero fall back to DefaultCellSize.
func NewSpatialIndex(cellSize float64) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialIndex{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cells:       make(map[cellKey][]*Object),
	}
}

// Clear drops every cell. Skipping this between frames grows the index
// without bound and leaves stale occupancy behind.
func (idx *SpatialIndex) Clear() {
	if idx == nil {
		return
	}
	if len(idx.cells) == 0 {
		return
	}
	idx.cells = make(map[cellKey][]*Object)
}

// Insert appends the object to every cell its bounding square covers.
func (idx *SpatialIndex) Insert(obj *Object) {
	if idx == nil || obj == nil {
		return
	}
	radius := VolumeFor(obj).BoundingRadius()
	minX := idx.coordToCell(obj.Pos.X - radius)
	maxX := idx.coordToCell(obj.Pos.X + radius)
	minZ := idx.coordToCell(obj.Pos.Z - radius)
	maxZ := idx.coordToCell(obj.Pos.Z + radius)
	for row := minZ; row <= maxZ; row++ {
		for col := minX; col <= maxX; col++ {
			key := cellKey{X: col, Z: row}
			idx.cells[key] = append(idx.cells[key], obj)
		}
	}
}

// Remove drops one object from every cell holding it. The scan covers the
// whole grid because the object may have moved since it was indexed.
func (idx *SpatialIndex) Remove(id ObjectID) {
	if idx == nil || id == "" {
		return
	}
	for key, objects := range idx.cells {
		kept := objects[:0]
		for _, obj := range objects {
			if obj.ID != id {
				kept = append(kept, obj)
			}
		}
		if len(kept) == 0 {
			delete(idx.cells, key)
		} else {
			idx.cells[key] = kept
		}
	}
}

// Query returns the deduplicated union of all cells covering the window
// centered at (x, z) with the given radius. An empty grid yields nil.
func (idx *SpatialIndex) Query(x, z, radius float64) []*Object {
	if idx == nil || len(idx.cells) == 0 {
		return nil
	}
	if radius < 0 {
		radius = 0
	}
	minX := idx.coordToCell(x - radius)
	maxX := idx.coordToCell(x + radius)
	minZ := idx.coordToCell(z - radius)
	maxZ := idx.coordToCell(z + radius)

	var results []*Object
	seen := make(map[ObjectID]struct{})
	for row := minZ; row <= maxZ; row++ {
		for col := minX; col <= maxX; col++ {
			for _, obj := range idx.cells[cellKey{X: col, Z: row}] {
				if _, dup := seen[obj.ID]; dup {
					continue
				}
				seen[obj.ID] = struct{}{}
				results = append(results, obj)
			}
		}
	}
	return results
}

func (idx *SpatialIndex) coordToCell(value float64) int {
	return int(math.Floor(value * idx.invCellSize))
}
