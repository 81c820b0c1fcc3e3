package ink

import "log/slog"

// DefaultEraseRadius is the half-extent of the square erase probe in
// document units.
const DefaultEraseRadius = 10.0

// shapeHitWidth is the tolerance band around a shape outline for the
// shape eraser, in document units.
const shapeHitWidth = 8.0

// eraser implements the two-phase erase gesture over a page's strokes.
//
// During the marking phase (pointer moves) probes only flip Deleted
// flags; no structural mutation happens and the spatial index is left
// stale on purpose, trading accuracy for not paying an O(n) rebuild on
// every pointer tick. The committing phase (gesture end) removes all
// flagged strokes in one pass and yields a single batched undo action.
type eraser struct {
	marking bool
}

// begin starts the marking phase.
func (e *eraser) begin() {
	e.marking = true
}

// active reports whether a gesture is in progress.
func (e *eraser) active() bool {
	return e.marking
}

// probeRect builds the square probe around p.
func probeRect(p Point, radius float64) Rect {
	return Rect{
		Min: Point{X: p.X - radius, Y: p.Y - radius},
		Max: Point{X: p.X + radius, Y: p.Y + radius},
	}
}

// eraseAt marks at most one stroke near p as deleted and reports
// whether one was hit. Bounding the work to a single stroke keeps the
// per-event cost flat under high-frequency pointer input; a held
// eraser revisits the same spot on the next event anyway.
//
// Candidates come from the spatial index and are visited in descending
// index order so the loop tolerates index shifts if a caller ever
// mutates the list mid-gesture. Already-marked strokes are skipped,
// which also makes repeated hits within one gesture idempotent.
func (e *eraser) eraseAt(p *Page, index *SpatialIndex, at Point, radius float64) bool {
	if radius <= 0 {
		radius = DefaultEraseRadius
	}
	probe := probeRect(at, radius)

	candidates := index.QueryNear(at)
	for i := len(candidates) - 1; i >= 0; i-- {
		idx := candidates[i]
		if idx >= len(p.Strokes) {
			continue // stale entry, list shrank since the last rebuild
		}
		s := p.Strokes[idx]
		if s.Deleted {
			continue
		}
		if !probe.Intersects(s.Bounds()) {
			continue
		}
		if !s.Path().IntersectsRect(probe) {
			continue
		}
		s.Deleted = true
		return true
	}
	return false
}

// commit removes every stroke marked during the gesture in one pass
// and returns the batched undo action, or nil when nothing was marked.
// Stored indices are the strokes' positions immediately before this
// removal; the Deleted flags are reset because removal is structural
// from here on.
func (e *eraser) commit(p *Page) Action {
	e.marking = false

	var removed []IndexedStroke
	kept := p.Strokes[:0]
	for idx, s := range p.Strokes {
		if !s.Deleted {
			kept = append(kept, s)
			continue
		}
		s.Deleted = false
		removed = append(removed, IndexedStroke{Index: idx, Stroke: s})
	}
	if len(removed) == 0 {
		return nil
	}
	p.Strokes = kept

	Logger().Debug("erase gesture committed", slog.Int("strokes", len(removed)))
	return EraseStrokes{Strokes: removed}
}

// eraseShapeAt removes the first shape whose outline passes within
// shapeHitWidth of p and returns it with its former index, or -1.
//
// Shapes skip the soft-delete machinery: a page holds few shapes, so a
// linear scan with immediate removal is cheaper than maintaining a
// second index and batch phase for them.
func eraseShapeAt(p *Page, at Point, radius float64) (*Shape, int) {
	if radius <= 0 {
		radius = DefaultEraseRadius
	}
	// Inflating the probe by half the hit width is a conservative
	// approximation of stroking the outline to shapeHitWidth: the
	// dilated square over-accepts slightly at its corners compared to
	// the rounded sweep.
	probe := probeRect(at, radius).Inset(-shapeHitWidth / 2)

	for i := len(p.Shapes) - 1; i >= 0; i-- {
		s := p.Shapes[i]
		if !probe.Intersects(s.Bounds()) {
			continue
		}
		if !s.Outline().IntersectsRect(probe) {
			continue
		}
		p.removeShape(i)
		return s, i
	}
	return nil, -1
}
