package ink

import (
	"testing"
)

func TestShapeKind_StringRoundTrip(t *testing.T) {
	kinds := []ShapeKind{ShapeLine, ShapeRectangle, ShapeCircle, ShapeArrow, ShapeDoubleArrow}
	for _, k := range kinds {
		if got := ParseShapeKind(k.String()); got != k {
			t.Errorf("ParseShapeKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if got := ParseShapeKind("triangle"); got != ShapeLine {
		t.Errorf("unknown kind = %v, want ShapeLine", got)
	}
}

func TestShape_Outline(t *testing.T) {
	t.Run("line", func(t *testing.T) {
		s := NewShape(ShapeLine, Pt(0, 0), Black, 2)
		s.End = Pt(100, 50)
		elems := s.Outline().Elements()
		if len(elems) != 2 {
			t.Fatalf("line outline has %d elements, want 2", len(elems))
		}
		if l := elems[1].(LineTo); !pointsEqual(l.Point, Pt(100, 50), epsilon) {
			t.Errorf("line end = %v", l.Point)
		}
	})

	t.Run("rectangle normalizes anchors", func(t *testing.T) {
		s := NewShape(ShapeRectangle, Pt(50, 50), Black, 2)
		s.End = Pt(10, 10)
		b := s.Outline().Bounds()
		want := RectWH(10, 10, 40, 40)
		if !pointsEqual(b.Min, want.Min, epsilon) || !pointsEqual(b.Max, want.Max, epsilon) {
			t.Errorf("outline bounds = %v, want %v", b, want)
		}
	})

	t.Run("circle fits the anchor rect", func(t *testing.T) {
		s := NewShape(ShapeCircle, Pt(0, 0), Black, 2)
		s.End = Pt(100, 60)
		// An ellipse outline touches the sides of its anchor rect; the
		// control-point box never exceeds it.
		b := s.Outline().Bounds()
		if !RectWH(0, 0, 100, 60).Inset(-epsilon).ContainsRect(b) {
			t.Errorf("circle outline bounds %v exceed anchor rect", b)
		}
	})

	t.Run("arrow gets one extra head", func(t *testing.T) {
		plain := NewShape(ShapeLine, Pt(0, 0), Black, 2)
		plain.End = Pt(100, 0)
		arrow := NewShape(ShapeArrow, Pt(0, 0), Black, 2)
		arrow.End = Pt(100, 0)
		double := NewShape(ShapeDoubleArrow, Pt(0, 0), Black, 2)
		double.End = Pt(100, 0)

		n0 := len(plain.Outline().Elements())
		n1 := len(arrow.Outline().Elements())
		n2 := len(double.Outline().Elements())
		if n1 <= n0 || n2 <= n1 {
			t.Errorf("element counts line=%d arrow=%d double=%d, want strictly increasing", n0, n1, n2)
		}
	})

	t.Run("degenerate arrow has no head", func(t *testing.T) {
		s := NewShape(ShapeArrow, Pt(5, 5), Black, 2)
		if n := len(s.Outline().Elements()); n != 2 {
			t.Errorf("zero-length arrow outline has %d elements, want 2", n)
		}
	})
}

func TestShape_Bounds(t *testing.T) {
	s := NewShape(ShapeRectangle, Pt(10, 10), Black, 2)
	s.End = Pt(30, 40)
	if got := s.Bounds(); got != RectWH(10, 10, 20, 30) {
		t.Errorf("Bounds = %v", got)
	}

	a := NewShape(ShapeArrow, Pt(0, 0), Black, 2)
	a.End = Pt(100, 0)
	got := a.Bounds()
	if got.Min.X >= 0 || got.Max.Y <= 0 {
		t.Errorf("arrow bounds %v should be padded for the head", got)
	}
}

func TestShape_TranslateSetRect(t *testing.T) {
	s := NewShape(ShapeLine, Pt(0, 0), Black, 2)
	s.End = Pt(10, 10)
	s.Translate(Pt(5, 5))
	if !pointsEqual(s.Start, Pt(5, 5), epsilon) || !pointsEqual(s.End, Pt(15, 15), epsilon) {
		t.Errorf("after Translate: start %v end %v", s.Start, s.End)
	}

	s.SetRect(RectWH(20, 20, 30, 10))
	if !pointsEqual(s.Start, Pt(20, 20), epsilon) || !pointsEqual(s.End, Pt(50, 30), epsilon) {
		t.Errorf("after SetRect: start %v end %v", s.Start, s.End)
	}
}
