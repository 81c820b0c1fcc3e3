package ink

import (
	"log/slog"
	"math"
	"sort"
)

// DefaultCellSize is the grid cell edge length of the spatial index,
// in document units.
const DefaultCellSize = 100.0

// gridCell addresses one bucket of the uniform grid.
type gridCell struct {
	X, Y int
}

// SpatialIndex is a uniform grid over stroke bounding boxes, used to
// prune erase hit-test candidates. A uniform grid gives O(1) average
// insert and query for whiteboard-scale stroke counts without any
// rebalancing cost.
//
// The index is a conservative superset: a stroke whose bounding box
// intersects a cell is always present in that cell's bucket, but
// buckets may hold stale indices right after a soft delete. Callers
// resolve candidates with an exact geometry test and Rebuild the index
// at gesture end.
type SpatialIndex struct {
	cellSize float64
	cells    map[gridCell][]int
}

// NewSpatialIndex creates an empty index. A cellSize <= 0 selects
// DefaultCellSize.
func NewSpatialIndex(cellSize float64) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialIndex{
		cellSize: cellSize,
		cells:    make(map[gridCell][]int),
	}
}

// cellAt returns the cell containing p.
func (si *SpatialIndex) cellAt(p Point) gridCell {
	return gridCell{
		X: int(math.Floor(p.X / si.cellSize)),
		Y: int(math.Floor(p.Y / si.cellSize)),
	}
}

// Rebuild clears the index and reinserts every non-empty stroke under
// all grid cells its path bounding box spans.
func (si *SpatialIndex) Rebuild(strokes []*Stroke) {
	clear(si.cells)

	for idx, s := range strokes {
		if s.Len() == 0 {
			continue
		}
		b := s.Bounds()
		lo := si.cellAt(b.Min)
		hi := si.cellAt(b.Max)
		for cx := lo.X; cx <= hi.X; cx++ {
			for cy := lo.Y; cy <= hi.Y; cy++ {
				cell := gridCell{X: cx, Y: cy}
				si.cells[cell] = append(si.cells[cell], idx)
			}
		}
	}
	Logger().Debug("spatial index rebuilt",
		slog.Int("strokes", len(strokes)), slog.Int("cells", len(si.cells)))
}

// QueryNear returns the deduplicated union of stroke indices stored in
// the 3x3 cell neighborhood around p, in ascending order. The
// neighborhood covers strokes whose bounding box straddles a cell
// boundary next to the query point.
func (si *SpatialIndex) QueryNear(p Point) []int {
	center := si.cellAt(p)
	seen := make(map[int]struct{})
	var result []int
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			cell := gridCell{X: center.X + dx, Y: center.Y + dy}
			for _, idx := range si.cells[cell] {
				if _, ok := seen[idx]; ok {
					continue
				}
				seen[idx] = struct{}{}
				result = append(result, idx)
			}
		}
	}
	sort.Ints(result)
	return result
}
