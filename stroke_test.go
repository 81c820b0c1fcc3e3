package ink

import (
	"math"
	"testing"
)

func samplesEqual(s1, s2 []Sample, eps float64) bool {
	if len(s1) != len(s2) {
		return false
	}
	for i := range s1 {
		if math.Abs(s1[i].X-s2[i].X) > eps ||
			math.Abs(s1[i].Y-s2[i].Y) > eps ||
			math.Abs(s1[i].Pressure-s2[i].Pressure) > eps {
			return false
		}
	}
	return true
}

func TestTool_StringRoundTrip(t *testing.T) {
	tools := []Tool{ToolPen, ToolBallpoint, ToolMarker, ToolPencil, ToolHighlighter, ToolEraser}
	for _, tool := range tools {
		if got := ParseTool(tool.String()); got != tool {
			t.Errorf("ParseTool(%q) = %v, want %v", tool.String(), got, tool)
		}
	}
	if got := ParseTool("felt-tip"); got != ToolPen {
		t.Errorf("unknown tool = %v, want ToolPen", got)
	}
}

func TestDefaultStyle(t *testing.T) {
	pen := DefaultStyle(ToolPen)
	if pen.Width != 2 || pen.Opacity != 1 {
		t.Errorf("pen style = %+v", pen)
	}
	hl := DefaultStyle(ToolHighlighter)
	if hl.Width != 12 || hl.Opacity != 0.4 {
		t.Errorf("highlighter style = %+v", hl)
	}
	if er := DefaultStyle(ToolEraser); er.Width != 20 {
		t.Errorf("eraser width = %v", er.Width)
	}
}

func TestStroke_SmoothedPassthrough(t *testing.T) {
	t.Run("smoothness zero", func(t *testing.T) {
		s := NewStroke(DefaultStyle(ToolPen).WithSmoothness(0))
		s.AddSample(0, 0, 1)
		s.AddSample(10, 5, 0.8)
		s.AddSample(20, 0, 0.6)
		if !samplesEqual(s.Smoothed(), s.Points(), epsilon) {
			t.Error("smoothness 0 should pass samples through unchanged")
		}
	})

	t.Run("fewer than three samples", func(t *testing.T) {
		s := NewStroke(DefaultStyle(ToolPen).WithSmoothness(3))
		s.AddSample(0, 0, 1)
		s.AddSample(100, 100, 1)
		if !samplesEqual(s.Smoothed(), s.Points(), epsilon) {
			t.Error("short strokes should not be smoothed")
		}
	})
}

func TestStroke_SmoothedWindowMeans(t *testing.T) {
	s := NewStroke(DefaultStyle(ToolPen).WithSmoothness(1))
	s.AddSample(0, 0, 1.0)
	s.AddSample(10, 0, 0.9)
	s.AddSample(20, 30, 0.8)
	s.AddSample(30, 0, 0.7)
	s.AddSample(40, 0, 0.6)

	got := s.Smoothed()
	want := []Sample{
		{X: 5, Y: 0, Pressure: 1.0},   // clamped window [0,1]
		{X: 10, Y: 10, Pressure: 0.9}, // window [0,2]
		{X: 20, Y: 10, Pressure: 0.8}, // window [1,3]
		{X: 30, Y: 10, Pressure: 0.7}, // window [2,4]
		{X: 35, Y: 0, Pressure: 0.6},  // clamped window [3,4]
	}
	if !samplesEqual(got, want, epsilon) {
		t.Errorf("Smoothed = %v, want %v", got, want)
	}

	// A large window clamps to the full sequence everywhere, collapsing
	// the interior toward the global mean.
	s2 := NewStroke(DefaultStyle(ToolPen).WithSmoothness(100))
	for _, p := range s.Points() {
		s2.AddSample(p.X, p.Y, p.Pressure)
	}
	for _, sm := range s2.Smoothed() {
		if math.Abs(sm.X-20) > epsilon || math.Abs(sm.Y-6) > epsilon {
			t.Errorf("oversized window sample = %v, want global mean (20, 6)", sm)
		}
	}
}

func TestStroke_Path(t *testing.T) {
	t.Run("three points", func(t *testing.T) {
		s := NewStroke(DefaultStyle(ToolPen).WithSmoothness(0))
		s.AddSample(0, 0, 1)
		s.AddSample(50, 20, 1)
		s.AddSample(100, 0, 1)

		elems := s.Path().Elements()
		if len(elems) != 3 {
			t.Fatalf("got %d elements, want 3", len(elems))
		}
		m := elems[0].(MoveTo)
		if !pointsEqual(m.Point, Pt(0, 0), epsilon) {
			t.Errorf("MoveTo = %v", m.Point)
		}
		q := elems[1].(QuadTo)
		if !pointsEqual(q.Control, Pt(50, 20), epsilon) {
			t.Errorf("control = %v, want the interior sample", q.Control)
		}
		if !pointsEqual(q.Point, Pt(75, 10), epsilon) {
			t.Errorf("quad end = %v, want the midpoint to the last sample", q.Point)
		}
		l := elems[2].(LineTo)
		if !pointsEqual(l.Point, Pt(100, 0), epsilon) {
			t.Errorf("LineTo = %v", l.Point)
		}
	})

	t.Run("single point", func(t *testing.T) {
		s := NewStroke(DefaultStyle(ToolPen))
		s.AddSample(5, 5, 1)
		elems := s.Path().Elements()
		if len(elems) != 2 {
			t.Fatalf("got %d elements, want 2", len(elems))
		}
		if l, ok := elems[1].(LineTo); !ok || !pointsEqual(l.Point, Pt(5, 5), epsilon) {
			t.Errorf("dot stroke should end with a zero-length line, got %v", elems[1])
		}
	})

	t.Run("empty", func(t *testing.T) {
		s := NewStroke(DefaultStyle(ToolPen))
		if !s.Path().Empty() {
			t.Error("empty stroke should yield an empty path")
		}
	})
}

func TestStroke_CacheInvalidation(t *testing.T) {
	s := NewStroke(DefaultStyle(ToolPen).WithSmoothness(0))
	s.AddSample(0, 0, 1)
	s.AddSample(10, 0, 1)

	p1 := s.Path()
	if p2 := s.Path(); p1 != p2 {
		t.Error("repeated Path calls should return the cached path")
	}
	b1 := s.Bounds()

	s.AddSample(10, 50, 1)
	if p3 := s.Path(); p3 == p1 {
		t.Error("AddSample should invalidate the path cache")
	}
	if b2 := s.Bounds(); b2 == b1 {
		t.Error("AddSample should invalidate the bounds cache")
	}

	pts := s.Points()
	pts[0].X = -100
	s.Invalidate()
	if got := s.Bounds(); math.Abs(got.Min.X-(-100)) > epsilon {
		t.Errorf("bounds after manual mutation = %v", got)
	}
}

func TestStroke_Translate(t *testing.T) {
	s := NewStroke(DefaultStyle(ToolPen).WithSmoothness(0))
	s.AddSample(0, 0, 1)
	s.AddSample(10, 10, 0.5)
	s.Translate(Pt(5, -5))

	want := []Sample{{X: 5, Y: -5, Pressure: 1}, {X: 15, Y: 5, Pressure: 0.5}}
	if !samplesEqual(s.Points(), want, epsilon) {
		t.Errorf("Points = %v, want %v", s.Points(), want)
	}
}

func TestStroke_Derive(t *testing.T) {
	base := NewStroke(DefaultStyle(ToolMarker).WithColor(RGB(1, 0, 0)))
	sub := base.derive([]Sample{{X: 1, Y: 2, Pressure: 1}})
	if sub.ID == base.ID {
		t.Error("derived stroke must get its own identity")
	}
	if sub.Color != base.Color || sub.Width != base.Width || sub.Tool != base.Tool {
		t.Error("derived stroke must keep the source style")
	}
	if sub.Len() != 1 {
		t.Errorf("derived Len = %d", sub.Len())
	}
}
