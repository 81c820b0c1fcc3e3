package ink

import (
	"bytes"
	"encoding/json"
	"testing"
)

func buildTestDocument(t *testing.T) *Document {
	t.Helper()
	d := NewDocument()
	p := d.Page()
	p.Name = "Sketches"
	p.Section = "Work"
	p.Background = BackgroundGrid
	p.BackgroundColor = Hex("#fafafa")

	s := NewStroke(DefaultStyle(ToolMarker).WithColor(Hex("#336699")))
	s.AddSample(0, 0, 1)
	s.AddSample(10.5, 20.25, 0.5)
	s.AddSample(30, 40, 0.75)
	p.Strokes = append(p.Strokes, s)

	shape := NewShape(ShapeArrow, Pt(5, 5), Hex("#ff0000"), 3)
	shape.End = Pt(105, 55)
	p.Shapes = append(p.Shapes, shape)

	p.Images = append(p.Images, NewImage(solidRGBA(4, 4, opaqueRed), Pt(50, 60), Pt(40, 40)))

	second := NewPage("Page 2")
	second.Background = BackgroundLinesMargin
	d.Pages = append(d.Pages, second)
	d.CurrentPage = 1
	return d
}

func TestCodec_RoundTrip(t *testing.T) {
	d := buildTestDocument(t)

	data, err := EncodeDocument(d)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	got, err := DecodeDocument(data)
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}

	if got.Version != d.Version || got.CurrentPage != 1 || len(got.Pages) != 2 {
		t.Fatalf("document header = v%d page %d/%d", got.Version, got.CurrentPage, len(got.Pages))
	}

	p := got.Pages[0]
	if p.Name != "Sketches" || p.Section != "Work" {
		t.Errorf("page meta = %q / %q", p.Name, p.Section)
	}
	if p.Background != BackgroundGrid || p.BackgroundColor.HexString() != "#fafafa" {
		t.Errorf("background = %v %v", p.Background, p.BackgroundColor)
	}

	if len(p.Strokes) != 1 {
		t.Fatalf("got %d strokes", len(p.Strokes))
	}
	s := p.Strokes[0]
	orig := d.Pages[0].Strokes[0]
	if !samplesEqual(s.Points(), orig.Points(), epsilon) {
		t.Errorf("stroke points = %v", s.Points())
	}
	if s.Tool != ToolMarker || s.Width != orig.Width || s.Opacity != orig.Opacity || s.Smoothness != orig.Smoothness {
		t.Errorf("stroke style = %+v", s)
	}
	if s.Color.HexString() != "#336699" {
		t.Errorf("stroke color = %v", s.Color.HexString())
	}
	if s.ID == orig.ID {
		t.Error("decoding must assign fresh stroke identity")
	}

	if len(p.Shapes) != 1 {
		t.Fatalf("got %d shapes", len(p.Shapes))
	}
	shape := p.Shapes[0]
	if shape.Kind != ShapeArrow || !pointsEqual(shape.Start, Pt(5, 5), epsilon) || !pointsEqual(shape.End, Pt(105, 55), epsilon) {
		t.Errorf("shape = %+v", shape)
	}

	if len(p.Images) != 1 {
		t.Fatalf("got %d images", len(p.Images))
	}
	img := p.Images[0]
	if img.Bounds() != RectWH(50, 60, 40, 40) {
		t.Errorf("image bounds = %v", img.Bounds())
	}
	if px := img.Bitmap.RGBAAt(1, 1); px != opaqueRed {
		t.Errorf("image pixel = %v, want red", px)
	}

	if got.Pages[1].Background != BackgroundLinesMargin {
		t.Errorf("second page background = %v", got.Pages[1].Background)
	}
}

func TestCodec_ReEncodeStable(t *testing.T) {
	d := buildTestDocument(t)

	first, err := EncodeDocument(d)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	decoded, err := DecodeDocument(first)
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	second, err := EncodeDocument(decoded)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("encode/decode/encode must be byte stable")
	}
}

func TestCodec_SkipsSoftDeletedStrokes(t *testing.T) {
	d := NewDocument()
	kept := NewStroke(DefaultStyle(ToolPen))
	kept.AddSample(0, 0, 1)
	gone := NewStroke(DefaultStyle(ToolPen))
	gone.AddSample(9, 9, 1)
	gone.Deleted = true
	d.Page().Strokes = append(d.Page().Strokes, kept, gone)

	data, err := EncodeDocument(d)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	got, err := DecodeDocument(data)
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	if n := len(got.Page().Strokes); n != 1 {
		t.Errorf("got %d strokes, want 1", n)
	}
}

func TestDecodeDocument_Malformed(t *testing.T) {
	if _, err := DecodeDocument([]byte("{broken")); err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestDecodeDocument_Repairs(t *testing.T) {
	t.Run("no pages", func(t *testing.T) {
		d, err := DecodeDocument([]byte(`{"version":1,"pages":[],"current_page":3}`))
		if err != nil {
			t.Fatalf("DecodeDocument: %v", err)
		}
		if len(d.Pages) != 1 || d.CurrentPage != 0 {
			t.Errorf("got %d pages, current %d", len(d.Pages), d.CurrentPage)
		}
	})

	t.Run("out of range current page", func(t *testing.T) {
		raw, _ := json.Marshal(documentJSON{
			Version:     DocumentVersion,
			Pages:       []pageJSON{{Name: "only"}},
			CurrentPage: 7,
		})
		d, err := DecodeDocument(raw)
		if err != nil {
			t.Fatalf("DecodeDocument: %v", err)
		}
		if d.CurrentPage != 0 {
			t.Errorf("CurrentPage = %d, want 0", d.CurrentPage)
		}
	})

	t.Run("undecodable image dropped", func(t *testing.T) {
		raw := []byte(`{
			"version": 1,
			"pages": [{
				"name": "p",
				"section": "",
				"strokes": [],
				"shapes": [],
				"images": [{"image_data": "!!!not base64!!!", "position": [0,0], "size": [10,10]}],
				"background_type": "plain",
				"background_color": "#ffffff"
			}],
			"current_page": 0
		}`)
		d, err := DecodeDocument(raw)
		if err != nil {
			t.Fatalf("DecodeDocument: %v", err)
		}
		if n := len(d.Page().Images); n != 0 {
			t.Errorf("got %d images, want 0", n)
		}
	})
}
