package ink

import (
	"math"

	"github.com/google/uuid"
)

// ShapeKind identifies a parametric shape primitive.
type ShapeKind uint8

// Available shape kinds.
const (
	ShapeLine ShapeKind = iota
	ShapeRectangle
	ShapeCircle
	ShapeArrow
	ShapeDoubleArrow
)

// String returns the serialized name of the shape kind.
func (k ShapeKind) String() string {
	switch k {
	case ShapeLine:
		return "line"
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	case ShapeArrow:
		return "arrow"
	case ShapeDoubleArrow:
		return "double_arrow"
	default:
		return "line"
	}
}

// ParseShapeKind maps a serialized shape name back to a ShapeKind.
// Unknown names fall back to ShapeLine.
func ParseShapeKind(s string) ShapeKind {
	switch s {
	case "rectangle":
		return ShapeRectangle
	case "circle":
		return ShapeCircle
	case "arrow":
		return ShapeArrow
	case "double_arrow":
		return ShapeDoubleArrow
	default:
		return ShapeLine
	}
}

// Shape is a parametric geometric primitive spanned between two anchor
// points. Geometry is derived on demand from Start/End; shapes carry no
// caches, so they can be mutated freely.
type Shape struct {
	ID    string
	Kind  ShapeKind
	Start Point
	End   Point
	Color RGBA
	Width float64
}

// NewShape creates a shape with both anchors at the given point.
func NewShape(kind ShapeKind, at Point, color RGBA, width float64) *Shape {
	return &Shape{
		ID:    uuid.NewString(),
		Kind:  kind,
		Start: at,
		End:   at,
		Color: color,
		Width: width,
	}
}

// arrowHeadLength returns the arrowhead size for a shape, derived from
// its line width with a floor so thin arrows stay legible.
func (s *Shape) arrowHeadLength() float64 {
	return math.Max(s.Width*4, 12)
}

// Outline builds the shape's vector outline.
func (s *Shape) Outline() *Path {
	path := NewPath()
	switch s.Kind {
	case ShapeRectangle:
		r := NewRect(s.Start, s.End)
		path.Rectangle(r.Min.X, r.Min.Y, r.Width(), r.Height())
	case ShapeCircle:
		r := NewRect(s.Start, s.End)
		c := r.Center()
		path.Ellipse(c.X, c.Y, r.Width()/2, r.Height()/2)
	case ShapeArrow:
		path.MoveTo(s.Start.X, s.Start.Y)
		path.LineTo(s.End.X, s.End.Y)
		s.addArrowHead(path, s.Start, s.End)
	case ShapeDoubleArrow:
		path.MoveTo(s.Start.X, s.Start.Y)
		path.LineTo(s.End.X, s.End.Y)
		s.addArrowHead(path, s.Start, s.End)
		s.addArrowHead(path, s.End, s.Start)
	default: // ShapeLine
		path.MoveTo(s.Start.X, s.Start.Y)
		path.LineTo(s.End.X, s.End.Y)
	}
	return path
}

// addArrowHead appends the two barbs of an arrowhead at tip, pointing
// away from from.
func (s *Shape) addArrowHead(path *Path, from, tip Point) {
	dir := tip.Sub(from)
	if dir.Length() == 0 {
		return
	}
	dir = dir.Normalize()

	const barbAngle = math.Pi / 6 // 30 degrees off the shaft
	length := s.arrowHeadLength()
	cos, sin := math.Cos(barbAngle), math.Sin(barbAngle)
	left := Point{
		X: tip.X - length*(dir.X*cos-dir.Y*sin),
		Y: tip.Y - length*(dir.X*sin+dir.Y*cos),
	}
	right := Point{
		X: tip.X - length*(dir.X*cos+dir.Y*sin),
		Y: tip.Y - length*(-dir.X*sin+dir.Y*cos),
	}

	path.MoveTo(left.X, left.Y)
	path.LineTo(tip.X, tip.Y)
	path.LineTo(right.X, right.Y)
}

// Bounds returns the axis-aligned bounding box of the shape. Arrow
// kinds are padded by the arrowhead length so the barbs stay inside.
func (s *Shape) Bounds() Rect {
	r := NewRect(s.Start, s.End)
	switch s.Kind {
	case ShapeArrow, ShapeDoubleArrow:
		return r.Inset(-s.arrowHeadLength())
	default:
		return r
	}
}

// Translate shifts both anchors by delta.
func (s *Shape) Translate(delta Point) {
	s.Start = s.Start.Add(delta)
	s.End = s.End.Add(delta)
}

// SetRect moves the shape's anchors to the corners of r. For line and
// arrow kinds this maps the shape onto r's main diagonal.
func (s *Shape) SetRect(r Rect) {
	s.Start = r.Min
	s.End = r.Max
}
