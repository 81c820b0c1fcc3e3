package ink

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// Tool identifies the drawing instrument a stroke was made with.
// The tool affects how the renderer styles the stroke; ToolEraser
// strokes clear content instead of adding it.
type Tool uint8

// Available tools.
const (
	ToolPen Tool = iota
	ToolBallpoint
	ToolMarker
	ToolPencil
	ToolHighlighter
	ToolEraser
)

// String returns the serialized name of the tool.
func (t Tool) String() string {
	switch t {
	case ToolPen:
		return "pen"
	case ToolBallpoint:
		return "ballpoint"
	case ToolMarker:
		return "marker"
	case ToolPencil:
		return "pencil"
	case ToolHighlighter:
		return "highlighter"
	case ToolEraser:
		return "eraser"
	default:
		return "pen"
	}
}

// ParseTool maps a serialized tool name back to a Tool.
// Unknown names fall back to ToolPen.
func ParseTool(s string) Tool {
	switch s {
	case "ballpoint":
		return ToolBallpoint
	case "marker":
		return ToolMarker
	case "pencil":
		return ToolPencil
	case "highlighter":
		return ToolHighlighter
	case "eraser":
		return ToolEraser
	default:
		return ToolPen
	}
}

// Sample is a single pointer-input sample of a stroke.
type Sample struct {
	X, Y     float64
	Pressure float64
}

// Point returns the sample position.
func (s Sample) Point() Point {
	return Point{X: s.X, Y: s.Y}
}

// Style bundles the visual attributes applied to a new stroke.
type Style struct {
	Color      RGBA
	Width      float64
	Tool       Tool
	Opacity    float64
	Smoothness int
}

// DefaultStyle returns the stock style for a tool.
func DefaultStyle(tool Tool) Style {
	s := Style{
		Color:      Black,
		Width:      2.0,
		Tool:       tool,
		Opacity:    1.0,
		Smoothness: 2,
	}
	switch tool {
	case ToolMarker:
		s.Width = 4.0
	case ToolHighlighter:
		s.Width = 12.0
		s.Opacity = 0.4
	case ToolEraser:
		s.Width = 20.0
	}
	return s
}

// WithColor returns a copy of the Style with the given color.
func (s Style) WithColor(c RGBA) Style {
	s.Color = c
	return s
}

// WithWidth returns a copy of the Style with the given width.
func (s Style) WithWidth(w float64) Style {
	s.Width = w
	return s
}

// WithSmoothness returns a copy of the Style with the given smoothness.
func (s Style) WithSmoothness(n int) Style {
	s.Smoothness = n
	return s
}

// Stroke is a freehand ink path: an append-only sequence of
// pressure-tagged samples plus the style it was drawn with.
//
// A stroke lazily derives two caches from its samples: the smoothed
// sample sequence and the vector path built from it. Both are dropped
// together by Invalidate; AddSample invalidates implicitly. Code that
// mutates the slice returned by Points must call Invalidate itself.
type Stroke struct {
	ID         string
	Color      RGBA
	Width      float64
	Tool       Tool
	Opacity    float64
	Smoothness int

	// Deleted marks the stroke as erased without removing it from its
	// page. The erase gesture flips this during its marking phase and
	// removes flagged strokes in bulk on commit.
	Deleted bool

	points      []Sample
	smoothCache []Sample
	pathCache   *Path
	boundsCache *Rect
}

// NewStroke creates an empty stroke with the given style.
func NewStroke(style Style) *Stroke {
	return &Stroke{
		ID:         uuid.NewString(),
		Color:      style.Color,
		Width:      style.Width,
		Tool:       style.Tool,
		Opacity:    style.Opacity,
		Smoothness: style.Smoothness,
	}
}

// AddSample appends an input sample and invalidates the caches.
func (s *Stroke) AddSample(x, y, pressure float64) {
	s.points = append(s.points, Sample{X: x, Y: y, Pressure: pressure})
	s.Invalidate()
}

// Points returns the raw sample sequence. The slice aliases the
// stroke's own storage: after mutating it, call Invalidate.
func (s *Stroke) Points() []Sample {
	return s.points
}

// Len returns the number of raw samples.
func (s *Stroke) Len() int {
	return len(s.points)
}

// SetPoints replaces the sample sequence and invalidates the caches.
func (s *Stroke) SetPoints(points []Sample) {
	s.points = points
	s.Invalidate()
}

// Invalidate drops the smoothed-sample and path caches. Any mutation
// of the sample data must be followed by a call to Invalidate; the
// caches are otherwise assumed consistent with the current samples.
func (s *Stroke) Invalidate() {
	s.smoothCache = nil
	s.pathCache = nil
	s.boundsCache = nil
}

// Smoothed returns the smoothed sample sequence, computing and caching
// it if needed.
//
// With Smoothness == 0 or fewer than 3 samples the raw samples are
// returned unchanged. Otherwise every output position is the boxcar
// mean of a symmetric window of 2*Smoothness+1 samples, clamped at the
// sequence boundaries; pressure is taken unchanged from the window
// center.
func (s *Stroke) Smoothed() []Sample {
	if s.Smoothness <= 0 || len(s.points) < 3 {
		return s.points
	}
	if s.smoothCache != nil {
		return s.smoothCache
	}

	n := len(s.points)
	w := s.Smoothness
	out := make([]Sample, n)
	xs := make([]float64, 0, 2*w+1)
	ys := make([]float64, 0, 2*w+1)
	for i := 0; i < n; i++ {
		lo := max(i-w, 0)
		hi := min(i+w, n-1)
		xs, ys = xs[:0], ys[:0]
		for j := lo; j <= hi; j++ {
			xs = append(xs, s.points[j].X)
			ys = append(ys, s.points[j].Y)
		}
		out[i] = Sample{
			X:        stat.Mean(xs, nil),
			Y:        stat.Mean(ys, nil),
			Pressure: s.points[i].Pressure,
		}
	}
	s.smoothCache = out
	return out
}

// Path returns the stroke's vector path, computing and caching it if
// needed.
//
// The path starts with a move to the first smoothed point; every
// interior point becomes the control point of a quadratic curve ending
// at the midpoint between it and its successor, which keeps the curve
// continuously differentiable without explicit spline fitting. The
// last point is joined with a straight segment.
func (s *Stroke) Path() *Path {
	if s.pathCache != nil {
		return s.pathCache
	}

	pts := s.Smoothed()
	path := NewPath()
	switch len(pts) {
	case 0:
		s.pathCache = path
		return path
	case 1:
		path.MoveTo(pts[0].X, pts[0].Y)
		path.LineTo(pts[0].X, pts[0].Y)
		s.pathCache = path
		return path
	}

	path.MoveTo(pts[0].X, pts[0].Y)
	for i := 1; i < len(pts)-1; i++ {
		mid := pts[i].Point().Midpoint(pts[i+1].Point())
		path.QuadraticTo(pts[i].X, pts[i].Y, mid.X, mid.Y)
	}
	last := pts[len(pts)-1]
	path.LineTo(last.X, last.Y)

	s.pathCache = path
	return path
}

// Bounds returns the bounding rectangle of the stroke's path, cached
// alongside the path itself.
func (s *Stroke) Bounds() Rect {
	if s.boundsCache != nil {
		return *s.boundsCache
	}
	b := s.Path().Bounds()
	s.boundsCache = &b
	return b
}

// Translate shifts every sample by delta and invalidates the caches.
func (s *Stroke) Translate(delta Point) {
	for i := range s.points {
		s.points[i].X += delta.X
		s.points[i].Y += delta.Y
	}
	s.Invalidate()
}

// derive creates a new stroke with the same style but its own identity
// and the given sample sequence. Region splitting uses it to turn each
// sub-sequence of a cut stroke into a standalone stroke.
func (s *Stroke) derive(points []Sample) *Stroke {
	return &Stroke{
		ID:         uuid.NewString(),
		Color:      s.Color,
		Width:      s.Width,
		Tool:       s.Tool,
		Opacity:    s.Opacity,
		Smoothness: s.Smoothness,
		points:     points,
	}
}
