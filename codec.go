package ink

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"log/slog"
)

// Wire format. The document is plain JSON; images travel as base64
// PNG so the raster round-trips losslessly. Element IDs are runtime
// identity only and deliberately stay out of the format: decoding
// assigns fresh ones.
type documentJSON struct {
	Version     int        `json:"version"`
	Pages       []pageJSON `json:"pages"`
	CurrentPage int        `json:"current_page"`
}

type pageJSON struct {
	Name            string       `json:"name"`
	Section         string       `json:"section"`
	Strokes         []strokeJSON `json:"strokes"`
	Shapes          []shapeJSON  `json:"shapes"`
	Images          []imageJSON  `json:"images"`
	BackgroundType  string       `json:"background_type"`
	BackgroundColor string       `json:"background_color"`
}

type strokeJSON struct {
	Points     [][3]float64 `json:"points"`
	Color      string       `json:"color"`
	Width      float64      `json:"width"`
	Tool       string       `json:"tool"`
	Opacity    float64      `json:"opacity"`
	Smoothness int          `json:"smoothness"`
}

type shapeJSON struct {
	ShapeType string     `json:"shape_type"`
	Start     [2]float64 `json:"start"`
	End       [2]float64 `json:"end"`
	Color     string     `json:"color"`
	Width     float64    `json:"width"`
}

type imageJSON struct {
	ImageData string     `json:"image_data"`
	Position  [2]float64 `json:"position"`
	Size      [2]float64 `json:"size"`
}

// EncodeDocument serializes a document to JSON. Strokes still flagged
// as soft-deleted are omitted: they are already erased from the user's
// point of view, only the gesture commit has not run yet.
func EncodeDocument(d *Document) ([]byte, error) {
	out := documentJSON{
		Version:     d.Version,
		Pages:       make([]pageJSON, 0, len(d.Pages)),
		CurrentPage: d.CurrentPage,
	}
	for _, p := range d.Pages {
		pj, err := encodePage(p)
		if err != nil {
			return nil, err
		}
		out.Pages = append(out.Pages, pj)
	}
	return json.Marshal(out)
}

// DecodeDocument deserializes a document from JSON. Images whose data
// does not decode are dropped with a warning; everything else loads.
func DecodeDocument(data []byte) (*Document, error) {
	var in documentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("ink: decode document: %w", err)
	}

	d := &Document{
		Version:     in.Version,
		Pages:       make([]*Page, 0, len(in.Pages)),
		CurrentPage: in.CurrentPage,
	}
	for _, pj := range in.Pages {
		d.Pages = append(d.Pages, decodePage(pj))
	}
	if len(d.Pages) == 0 {
		d.Pages = []*Page{NewPage("Page 1")}
	}
	if d.CurrentPage < 0 || d.CurrentPage >= len(d.Pages) {
		d.CurrentPage = 0
	}
	return d, nil
}

func encodePage(p *Page) (pageJSON, error) {
	pj := pageJSON{
		Name:            p.Name,
		Section:         p.Section,
		Strokes:         make([]strokeJSON, 0, len(p.Strokes)),
		Shapes:          make([]shapeJSON, 0, len(p.Shapes)),
		Images:          make([]imageJSON, 0, len(p.Images)),
		BackgroundType:  p.Background.String(),
		BackgroundColor: p.BackgroundColor.HexString(),
	}

	for _, s := range p.Strokes {
		if s.Deleted {
			continue
		}
		pj.Strokes = append(pj.Strokes, encodeStroke(s))
	}
	for _, s := range p.Shapes {
		pj.Shapes = append(pj.Shapes, shapeJSON{
			ShapeType: s.Kind.String(),
			Start:     [2]float64{s.Start.X, s.Start.Y},
			End:       [2]float64{s.End.X, s.End.Y},
			Color:     s.Color.HexString(),
			Width:     s.Width,
		})
	}
	for _, img := range p.Images {
		ij, err := encodeImage(img)
		if err != nil {
			return pageJSON{}, err
		}
		pj.Images = append(pj.Images, ij)
	}
	return pj, nil
}

func decodePage(pj pageJSON) *Page {
	p := &Page{
		Name:            pj.Name,
		Section:         pj.Section,
		Background:      ParseBackgroundKind(pj.BackgroundType),
		BackgroundColor: Hex(pj.BackgroundColor),
	}

	for _, sj := range pj.Strokes {
		p.Strokes = append(p.Strokes, decodeStroke(sj))
	}
	for _, sj := range pj.Shapes {
		shape := NewShape(ParseShapeKind(sj.ShapeType), Pt(sj.Start[0], sj.Start[1]), Hex(sj.Color), sj.Width)
		shape.End = Pt(sj.End[0], sj.End[1])
		p.Shapes = append(p.Shapes, shape)
	}
	for _, ij := range pj.Images {
		img, err := decodeImage(ij)
		if err != nil {
			Logger().Warn("dropping undecodable image", slog.String("err", err.Error()))
			continue
		}
		p.Images = append(p.Images, img)
	}
	return p
}

func encodeStroke(s *Stroke) strokeJSON {
	sj := strokeJSON{
		Points:     make([][3]float64, 0, s.Len()),
		Color:      s.Color.HexString(),
		Width:      s.Width,
		Tool:       s.Tool.String(),
		Opacity:    s.Opacity,
		Smoothness: s.Smoothness,
	}
	for _, pt := range s.Points() {
		sj.Points = append(sj.Points, [3]float64{pt.X, pt.Y, pt.Pressure})
	}
	return sj
}

func decodeStroke(sj strokeJSON) *Stroke {
	s := NewStroke(Style{
		Color:      Hex(sj.Color),
		Width:      sj.Width,
		Tool:       ParseTool(sj.Tool),
		Opacity:    sj.Opacity,
		Smoothness: sj.Smoothness,
	})
	points := make([]Sample, 0, len(sj.Points))
	for _, pt := range sj.Points {
		points = append(points, Sample{X: pt[0], Y: pt[1], Pressure: pt[2]})
	}
	s.SetPoints(points)
	return s
}

func encodeImage(img *Image) (imageJSON, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Bitmap); err != nil {
		return imageJSON{}, fmt.Errorf("ink: encode image: %w", err)
	}
	return imageJSON{
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Position:  [2]float64{img.Position.X, img.Position.Y},
		Size:      [2]float64{img.Size.X, img.Size.Y},
	}, nil
}

func decodeImage(ij imageJSON) (*Image, error) {
	raw, err := base64.StdEncoding.DecodeString(ij.ImageData)
	if err != nil {
		return nil, fmt.Errorf("ink: decode image data: %w", err)
	}
	return DecodeImage(raw, Pt(ij.Position[0], ij.Position[1]), Pt(ij.Size[0], ij.Size[1]))
}
