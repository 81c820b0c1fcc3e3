package ink

// MinResizeSize is the smallest width/height a resize can shrink an
// item to, in document units.
const MinResizeSize = 10.0

// Handle identifies one of the eight resize handles on a selection's
// bounding rectangle: four corners and four edge midpoints.
type Handle uint8

// Resize handles, clockwise from the top-left corner.
const (
	HandleTopLeft Handle = iota
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

// moves reports which edges of the bounding rect this handle drags.
func (h Handle) moves() (left, top, right, bottom bool) {
	switch h {
	case HandleTopLeft:
		return true, true, false, false
	case HandleTop:
		return false, true, false, false
	case HandleTopRight:
		return false, true, true, false
	case HandleRight:
		return false, false, true, false
	case HandleBottomRight:
		return false, false, true, true
	case HandleBottom:
		return false, false, false, true
	case HandleBottomLeft:
		return true, false, false, true
	default: // HandleLeft
		return true, false, false, false
	}
}

// Selection is the rectangle-driven selection state of a canvas. It
// stores index sets into the page's canonical stroke/shape/image
// slices; it never copies items, so every transform mutates page data
// in place and the owner is responsible for render-cache invalidation
// and the index rebuild at gesture end.
type Selection struct {
	rect Rect

	Strokes []int
	Shapes  []int
	Images  []int
}

// Rect returns the selection rectangle of the last Update.
func (sel *Selection) Rect() Rect {
	return sel.rect
}

// Empty reports whether nothing is selected.
func (sel *Selection) Empty() bool {
	return len(sel.Strokes) == 0 && len(sel.Shapes) == 0 && len(sel.Images) == 0
}

// Clear drops the selection without touching any page data.
func (sel *Selection) Clear() {
	sel.rect = Rect{}
	sel.Strokes = sel.Strokes[:0]
	sel.Shapes = sel.Shapes[:0]
	sel.Images = sel.Images[:0]
}

// Update recomputes the three index sets for rect: a stroke is
// selected when at least one of its samples lies inside, shapes and
// images when their bounding box intersects.
func (sel *Selection) Update(p *Page, rect Rect) {
	sel.Clear()
	sel.rect = rect

	for i, s := range p.Strokes {
		if s.Deleted {
			continue
		}
		for _, pt := range s.Points() {
			if rect.Contains(pt.Point()) {
				sel.Strokes = append(sel.Strokes, i)
				break
			}
		}
	}
	for i, s := range p.Shapes {
		if s.Bounds().Intersects(rect) {
			sel.Shapes = append(sel.Shapes, i)
		}
	}
	for i, img := range p.Images {
		if img.Bounds().Intersects(rect) {
			sel.Images = append(sel.Images, i)
		}
	}
}

// Move translates every selected item by delta, invalidating stroke
// caches as it goes. The spatial index is left stale on purpose; the
// owner rebuilds it once the move gesture ends.
func (sel *Selection) Move(p *Page, delta Point) {
	for _, i := range sel.Strokes {
		p.Strokes[i].Translate(delta)
	}
	for _, i := range sel.Shapes {
		p.Shapes[i].Translate(delta)
	}
	for _, i := range sel.Images {
		p.Images[i].Translate(delta)
	}
	sel.rect = sel.rect.Translate(delta)
}

// resizable returns the bounding rect of the single selected shape or
// image, or ok=false when the selection has any other cardinality.
func (sel *Selection) resizable(p *Page) (Rect, bool) {
	if len(sel.Strokes) != 0 {
		return Rect{}, false
	}
	switch {
	case len(sel.Shapes) == 1 && len(sel.Images) == 0:
		return p.Shapes[sel.Shapes[0]].Bounds(), true
	case len(sel.Images) == 1 && len(sel.Shapes) == 0:
		return p.Images[sel.Images[0]].Bounds(), true
	}
	return Rect{}, false
}

// Resize drags one handle of the selected item's bounding rect toward
// proposed, moving only the edges the handle controls and clamping so
// neither dimension falls below MinResizeSize.
//
// Resize is only valid for a selection holding exactly one shape or
// exactly one image; any other selection is refused and the call
// returns false. Resizing a line or arrow maps it onto the new rect's
// main diagonal.
func (sel *Selection) Resize(p *Page, handle Handle, proposed Rect) bool {
	cur, ok := sel.resizable(p)
	if !ok {
		return false
	}

	r := cur
	left, top, right, bottom := handle.moves()
	if left {
		r.Min.X = min(proposed.Min.X, r.Max.X-MinResizeSize)
	}
	if top {
		r.Min.Y = min(proposed.Min.Y, r.Max.Y-MinResizeSize)
	}
	if right {
		r.Max.X = max(proposed.Max.X, r.Min.X+MinResizeSize)
	}
	if bottom {
		r.Max.Y = max(proposed.Max.Y, r.Min.Y+MinResizeSize)
	}

	if len(sel.Shapes) == 1 {
		p.Shapes[sel.Shapes[0]].SetRect(r)
	} else {
		p.Images[sel.Images[0]].SetRect(r)
	}
	sel.rect = r
	return true
}

// SplitRegion cuts the page's content at rect's boundary.
//
// Every stroke crossing the boundary is replaced by one new stroke per
// maximal run of samples that are all inside or all outside rect (runs
// shorter than two samples are discarded); sample order is preserved,
// so the surviving runs concatenate back to the original sequence.
// Strokes fully inside or fully outside are left alone.
//
// Every image intersecting but not contained in rect has the covered
// sub-region cropped into a new Image while the source pixels are
// cleared to transparency, so both pieces together still tile the
// original extent.
func (sel *Selection) SplitRegion(p *Page, rect Rect) {
	if rect.Empty() {
		return
	}

	var strokes []*Stroke
	for _, s := range p.Strokes {
		if s.Deleted || !s.Bounds().Intersects(rect) {
			strokes = append(strokes, s)
			continue
		}
		parts, crossed := splitSamples(s.Points(), rect)
		if !crossed {
			strokes = append(strokes, s)
			continue
		}
		for _, run := range parts {
			if len(run) < 2 {
				continue
			}
			strokes = append(strokes, s.derive(run))
		}
	}
	p.Strokes = strokes

	for _, i := range sel.imagesCrossing(p, rect) {
		if piece := p.Images[i].Crop(rect); piece != nil {
			p.Images = append(p.Images, piece)
		}
	}

	// Index sets are positions into lists that were just rewritten.
	sel.Clear()
}

// imagesCrossing returns indices of images that intersect rect without
// being fully contained in it, in ascending order.
func (sel *Selection) imagesCrossing(p *Page, rect Rect) []int {
	var out []int
	for i, img := range p.Images {
		b := img.Bounds()
		if b.Intersects(rect) && !rect.ContainsRect(b) {
			out = append(out, i)
		}
	}
	return out
}

// splitSamples partitions points into maximal runs that are uniformly
// inside or outside rect. crossed is false when no boundary crossing
// occurred (all samples on one side), in which case the caller keeps
// the original stroke untouched.
func splitSamples(points []Sample, rect Rect) (runs [][]Sample, crossed bool) {
	if len(points) == 0 {
		return nil, false
	}

	start := 0
	inside := rect.Contains(points[0].Point())
	for i := 1; i < len(points); i++ {
		in := rect.Contains(points[i].Point())
		if in == inside {
			continue
		}
		runs = append(runs, points[start:i:i])
		start = i
		inside = in
		crossed = true
	}
	runs = append(runs, points[start:])
	return runs, crossed
}
