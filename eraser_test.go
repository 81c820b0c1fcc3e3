package ink

import (
	"testing"
)

func eraserFixture() (*Page, *SpatialIndex) {
	p := NewPage("p")
	p.Strokes = append(p.Strokes,
		lineStroke(Pt(0, 0), Pt(100, 0)),       // 0: horizontal
		lineStroke(Pt(0, 50), Pt(100, 50)),     // 1: horizontal, lower
		lineStroke(Pt(300, 300), Pt(310, 310)), // 2: far away
	)
	si := NewSpatialIndex(DefaultCellSize)
	si.Rebuild(p.Strokes)
	return p, si
}

func TestEraser_MarkAndCommit(t *testing.T) {
	p, si := eraserFixture()
	var e eraser
	e.begin()

	if !e.eraseAt(p, si, Pt(50, 0), DefaultEraseRadius) {
		t.Fatal("probe on the stroke should hit")
	}
	if !p.Strokes[0].Deleted {
		t.Fatal("hit stroke should be soft-deleted")
	}
	if p.Strokes[1].Deleted || p.Strokes[2].Deleted {
		t.Fatal("other strokes must stay")
	}

	// Hitting the same stroke again within the gesture is idempotent.
	if e.eraseAt(p, si, Pt(50, 0), DefaultEraseRadius) {
		t.Error("re-probing a marked stroke should miss")
	}

	act := e.commit(p)
	if act == nil {
		t.Fatal("commit should produce an action")
	}
	es, ok := act.(EraseStrokes)
	if !ok {
		t.Fatalf("commit returned %T", act)
	}
	if len(es.Strokes) != 1 || es.Strokes[0].Index != 0 {
		t.Errorf("action = %+v", es)
	}
	if es.Strokes[0].Stroke.Deleted {
		t.Error("commit must reset the Deleted flag")
	}
	if len(p.Strokes) != 2 {
		t.Errorf("page has %d strokes after commit", len(p.Strokes))
	}
	if e.active() {
		t.Error("commit must end the gesture")
	}
}

func TestEraser_MissReturnsFalse(t *testing.T) {
	p, si := eraserFixture()
	var e eraser
	e.begin()

	// Inside stroke 0's cell neighborhood but off its geometry.
	if e.eraseAt(p, si, Pt(50, 25), DefaultEraseRadius) {
		t.Error("probe between the strokes should miss")
	}
	if act := e.commit(p); act != nil {
		t.Errorf("commit after a miss = %v, want nil", act)
	}
	if len(p.Strokes) != 3 {
		t.Errorf("page has %d strokes", len(p.Strokes))
	}
}

func TestEraser_OneStrokePerProbe(t *testing.T) {
	p := NewPage("p")
	// Two strokes through the same point.
	p.Strokes = append(p.Strokes,
		lineStroke(Pt(0, 0), Pt(100, 100)),
		lineStroke(Pt(0, 100), Pt(100, 0)),
	)
	si := NewSpatialIndex(DefaultCellSize)
	si.Rebuild(p.Strokes)

	var e eraser
	e.begin()
	e.eraseAt(p, si, Pt(50, 50), 5)

	marked := 0
	for _, s := range p.Strokes {
		if s.Deleted {
			marked++
		}
	}
	if marked != 1 {
		t.Errorf("one probe marked %d strokes, want 1", marked)
	}

	// The second probe at the same spot takes the remaining stroke,
	// and a third finds nothing new.
	e.eraseAt(p, si, Pt(50, 50), 5)
	if e.eraseAt(p, si, Pt(50, 50), 5) {
		t.Error("third probe should find nothing")
	}

	act := e.commit(p).(EraseStrokes)
	if len(act.Strokes) != 2 {
		t.Errorf("gesture removed %d strokes, want 2", len(act.Strokes))
	}
}

func TestEraser_BatchIndicesAscending(t *testing.T) {
	p, si := eraserFixture()
	var e eraser
	e.begin()
	e.eraseAt(p, si, Pt(50, 50), 5) // stroke 1
	e.eraseAt(p, si, Pt(50, 0), 5)  // stroke 0

	act := e.commit(p).(EraseStrokes)
	if len(act.Strokes) != 2 {
		t.Fatalf("removed %d strokes", len(act.Strokes))
	}
	if act.Strokes[0].Index != 0 || act.Strokes[1].Index != 1 {
		t.Errorf("indices = %d, %d; want ascending 0, 1",
			act.Strokes[0].Index, act.Strokes[1].Index)
	}
}

func TestEraser_StaleIndexTolerated(t *testing.T) {
	p, si := eraserFixture()

	// The list shrinks without a rebuild; stale bucket entries now point
	// past the end.
	p.Strokes = p.Strokes[:1]

	var e eraser
	e.begin()
	if !e.eraseAt(p, si, Pt(50, 0), DefaultEraseRadius) {
		t.Error("surviving stroke should still be hit")
	}
}

func TestEraseShapeAt(t *testing.T) {
	p := NewPage("p")
	shape := NewShape(ShapeLine, Pt(0, 0), Black, 2)
	shape.End = Pt(100, 0)
	p.Shapes = append(p.Shapes, shape)

	t.Run("miss leaves the shape", func(t *testing.T) {
		got, idx := eraseShapeAt(p, Pt(50, 200), DefaultEraseRadius)
		if got != nil || idx != -1 {
			t.Errorf("eraseShapeAt = %v, %d", got, idx)
		}
		if len(p.Shapes) != 1 {
			t.Error("miss must not remove anything")
		}
	})

	t.Run("hit removes immediately", func(t *testing.T) {
		got, idx := eraseShapeAt(p, Pt(50, 5), DefaultEraseRadius)
		if got != shape || idx != 0 {
			t.Errorf("eraseShapeAt = %v, %d", got, idx)
		}
		if len(p.Shapes) != 0 {
			t.Error("hit shape should be gone")
		}
	})
}
