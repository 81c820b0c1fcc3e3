package ink

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path represents a vector path. Stroke smoothing emits move/quad/line
// sequences; shape outlines additionally use cubics and closed subpaths.
type Path struct {
	elements []PathElement
	start    Point // Starting point of current subpath
	current  Point // Current point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	ctrl := Pt(cx, cy)
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: ctrl, Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	ctrl1 := Pt(c1x, c1y)
	ctrl2 := Pt(c2x, c2y)
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: ctrl1,
		Control2: ctrl2,
		Point:    pt,
	})
	p.current = pt
}

// ClosePath closes the current subpath by drawing a line to the start point.
func (p *Path) ClosePath() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Empty returns true if the path has no elements.
func (p *Path) Empty() bool {
	return len(p.elements) == 0
}

// Rectangle adds a rectangle to the path.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.ClosePath()
}

// Ellipse adds an ellipse to the path using cubic Bezier curves.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	// Magic constant for circle approximation with cubic Beziers
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	ox := rx * k
	oy := ry * k

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.ClosePath()
}

// Transform returns a copy of the path with m applied to all points.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case QuadTo:
			ctrl := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			result.QuadraticTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
		case CubicTo:
			ctrl1 := m.TransformPoint(e.Control1)
			ctrl2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			result.CubicTo(ctrl1.X, ctrl1.Y, ctrl2.X, ctrl2.Y, pt.X, pt.Y)
		case Close:
			result.ClosePath()
		}
	}
	return result
}

// Bounds returns the control-point bounding box of the path.
// Curve control points are included, so the box is conservative: it may
// be larger than the tight curve extent but never smaller. The spatial
// index relies on exactly that property.
func (p *Path) Bounds() Rect {
	if len(p.elements) == 0 {
		return Rect{}
	}

	first := true
	var bbox Rect
	expand := func(pt Point) {
		if first {
			bbox = Rect{Min: pt, Max: pt}
			first = false
			return
		}
		bbox = expandRect(bbox, pt)
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			expand(e.Point)
		case LineTo:
			expand(e.Point)
		case QuadTo:
			expand(e.Control)
			expand(e.Point)
		case CubicTo:
			expand(e.Control1)
			expand(e.Control2)
			expand(e.Point)
		}
	}
	return bbox
}

// FlattenCallback converts all curves to line segments within tolerance
// and calls fn for each resulting point. A MoveTo after the first one
// starts a new polyline; fn receives start=true for such points.
func (p *Path) FlattenCallback(tolerance float64, fn func(pt Point, start bool)) {
	if tolerance <= 0 {
		tolerance = 0.1 // Default tolerance
	}

	var current, start Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			fn(e.Point, true)
			start = e.Point
			current = e.Point
		case LineTo:
			fn(e.Point, false)
			current = e.Point
		case QuadTo:
			flattenQuad(current, e.Control, e.Point, tolerance, fn)
			current = e.Point
		case CubicTo:
			flattenCubic(current, e.Control1, e.Control2, e.Point, tolerance, fn)
			current = e.Point
		case Close:
			if current != start {
				fn(start, false)
			}
			current = start
		}
	}
}

// Flatten converts all curves to line segments with given tolerance.
// tolerance is the maximum distance from the curve.
func (p *Path) Flatten(tolerance float64) []Point {
	if len(p.elements) == 0 {
		return nil
	}

	points := make([]Point, 0, len(p.elements)*4)
	p.FlattenCallback(tolerance, func(pt Point, _ bool) {
		points = append(points, pt)
	})
	return points
}

// flattenQuad recursively subdivides a quadratic Bezier until the
// control point is within tolerance of the chord midpoint.
func flattenQuad(p0, p1, p2 Point, tolerance float64, fn func(pt Point, start bool)) {
	mid := p0.Lerp(p2, 0.5)
	d := p1.Sub(mid)
	if d.Dot(d) <= tolerance*tolerance {
		fn(p2, false)
		return
	}

	q01 := p0.Lerp(p1, 0.5)
	q12 := p1.Lerp(p2, 0.5)
	m := q01.Lerp(q12, 0.5)
	flattenQuad(p0, q01, m, tolerance, fn)
	flattenQuad(m, q12, p2, tolerance, fn)
}

// flattenCubic recursively subdivides a cubic Bezier until both control
// points are within tolerance of the chord.
func flattenCubic(p0, p1, p2, p3 Point, tolerance float64, fn func(pt Point, start bool)) {
	d1 := p1.Sub(p0.Lerp(p3, 1.0/3))
	d2 := p2.Sub(p0.Lerp(p3, 2.0/3))
	if d1.Dot(d1) <= tolerance*tolerance && d2.Dot(d2) <= tolerance*tolerance {
		fn(p3, false)
		return
	}

	// De Casteljau subdivision at t=0.5
	p01 := p0.Lerp(p1, 0.5)
	p12 := p1.Lerp(p2, 0.5)
	p23 := p2.Lerp(p3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	flattenCubic(p0, p01, p012, mid, tolerance, fn)
	flattenCubic(mid, p123, p23, p3, tolerance, fn)
}

// hitTolerance is the flattening tolerance used for hit-testing.
// Erase probes are several units wide, so sub-unit accuracy is enough.
const hitTolerance = 0.5

// IntersectsRect reports whether any flattened segment of the path
// touches r. Single-point subpaths count when the point lies inside r.
func (p *Path) IntersectsRect(r Rect) bool {
	var prev Point
	started := false
	hit := false
	p.FlattenCallback(hitTolerance, func(pt Point, start bool) {
		if hit {
			return
		}
		if start || !started {
			prev = pt
			started = true
			if r.Contains(pt) {
				hit = true
			}
			return
		}
		if segmentIntersectsRect(prev, pt, r) {
			hit = true
		}
		prev = pt
	})
	return hit
}

// segmentIntersectsRect reports whether the segment ab touches r.
func segmentIntersectsRect(a, b Point, r Rect) bool {
	if r.Contains(a) || r.Contains(b) {
		return true
	}
	// Both endpoints outside: the segment hits the rectangle only if it
	// crosses one of its edges.
	corners := [4]Point{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
	}
	for i := 0; i < 4; i++ {
		if segmentsIntersect(a, b, corners[i], corners[(i+1)%4]) {
			return true
		}
	}
	return false
}

// segmentsIntersect reports whether segments ab and cd intersect.
func segmentsIntersect(a, b, c, d Point) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(c, d, a)) ||
		(d2 == 0 && onSegment(c, d, b)) ||
		(d3 == 0 && onSegment(a, b, c)) ||
		(d4 == 0 && onSegment(a, b, d))
}

// cross returns the z component of (b-a) x (p-a).
func cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// onSegment reports whether p, known collinear with ab, lies on ab.
func onSegment(a, b, p Point) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}
