package ink

import "testing"

func TestDocument_Pages(t *testing.T) {
	d := NewDocument()
	if len(d.Pages) != 1 || d.CurrentPage != 0 {
		t.Fatalf("new document: %d pages, current %d", len(d.Pages), d.CurrentPage)
	}

	p2 := d.AddPage("Page 2")
	if d.CurrentPage != 1 || d.Page() != p2 {
		t.Errorf("AddPage should switch to the new page")
	}

	d.SetCurrentPage(-3)
	if d.CurrentPage != 0 {
		t.Errorf("negative index clamped to %d, want 0", d.CurrentPage)
	}
	d.SetCurrentPage(99)
	if d.CurrentPage != 1 {
		t.Errorf("oversized index clamped to %d, want 1", d.CurrentPage)
	}

	d.RemovePage(1)
	if len(d.Pages) != 1 || d.CurrentPage != 0 {
		t.Errorf("after remove: %d pages, current %d", len(d.Pages), d.CurrentPage)
	}

	// The last page is never removed.
	d.RemovePage(0)
	if len(d.Pages) != 1 {
		t.Error("last page was removed")
	}

	// Out-of-range removals are ignored.
	d.RemovePage(5)
	d.RemovePage(-1)
	if len(d.Pages) != 1 {
		t.Error("out-of-range removal mutated the document")
	}
}

func TestPage_ContentBounds(t *testing.T) {
	p := NewPage("p")

	if _, ok := p.ContentBounds(); ok {
		t.Error("empty page should report no content")
	}

	p.Strokes = append(p.Strokes, lineStroke(Pt(0, 0), Pt(100, 0)))
	shape := NewShape(ShapeRectangle, Pt(50, 50), Black, 2)
	shape.End = Pt(150, 150)
	p.Shapes = append(p.Shapes, shape)
	p.Images = append(p.Images, NewImage(solidRGBA(4, 4, opaqueRed), Pt(-20, -20), Pt(10, 10)))

	box, ok := p.ContentBounds()
	if !ok {
		t.Fatal("page with content reported none")
	}
	want := NewRect(Pt(-20, -20), Pt(150, 150))
	if box != want {
		t.Errorf("ContentBounds = %v, want %v", box, want)
	}

	// Soft-deleted strokes do not contribute.
	p2 := NewPage("p")
	gone := lineStroke(Pt(0, 0), Pt(500, 500))
	gone.Deleted = true
	p2.Strokes = append(p2.Strokes, gone, lineStroke(Pt(0, 0), Pt(10, 10)))
	box, _ = p2.ContentBounds()
	if box != RectWH(0, 0, 10, 10) {
		t.Errorf("ContentBounds with soft delete = %v", box)
	}
}

func TestPage_InsertRemoveStroke(t *testing.T) {
	p := NewPage("p")
	a := lineStroke(Pt(0, 0), Pt(1, 1))
	b := lineStroke(Pt(2, 2), Pt(3, 3))
	c := lineStroke(Pt(4, 4), Pt(5, 5))
	p.Strokes = append(p.Strokes, a, c)

	p.insertStroke(1, b)
	if p.Strokes[0] != a || p.Strokes[1] != b || p.Strokes[2] != c {
		t.Errorf("insert order: %v", p.Strokes)
	}

	p.removeStroke(1)
	if len(p.Strokes) != 2 || p.Strokes[1] != c {
		t.Errorf("remove order: %v", p.Strokes)
	}

	// Out-of-range insert clamps to append.
	d := lineStroke(Pt(6, 6), Pt(7, 7))
	p.insertStroke(99, d)
	if p.Strokes[len(p.Strokes)-1] != d {
		t.Error("clamped insert should append")
	}
}
