package ink

// BackgroundKind identifies the pattern drawn behind a page's content.
type BackgroundKind uint8

// Available background patterns.
const (
	BackgroundPlain BackgroundKind = iota
	BackgroundDots
	BackgroundGrid
	BackgroundLines
	BackgroundLinesMargin
	BackgroundGraph
)

// String returns the serialized name of the background kind.
func (k BackgroundKind) String() string {
	switch k {
	case BackgroundDots:
		return "dots"
	case BackgroundGrid:
		return "grid"
	case BackgroundLines:
		return "lines"
	case BackgroundLinesMargin:
		return "lines_with_margin"
	case BackgroundGraph:
		return "graph"
	default:
		return "plain"
	}
}

// ParseBackgroundKind maps a serialized background name back to a
// BackgroundKind. Unknown names fall back to BackgroundPlain.
func ParseBackgroundKind(s string) BackgroundKind {
	switch s {
	case "dots":
		return BackgroundDots
	case "grid":
		return BackgroundGrid
	case "lines":
		return BackgroundLines
	case "lines_with_margin":
		return BackgroundLinesMargin
	case "graph":
		return BackgroundGraph
	default:
		return BackgroundPlain
	}
}

// Page aggregates the drawable content of a single canvas page.
// The three slices are the canonical storage for strokes, shapes and
// images; every other component (index, selection, renderer, history)
// works with indices into them rather than private copies, which keeps
// the invalidation rules in one place. Slice order is z-order: later
// entries draw on top.
type Page struct {
	Name    string
	Section string

	Strokes []*Stroke
	Shapes  []*Shape
	Images  []*Image

	Background      BackgroundKind
	BackgroundColor RGBA
}

// NewPage creates an empty page with a plain white background.
func NewPage(name string) *Page {
	return &Page{
		Name:            name,
		Background:      BackgroundPlain,
		BackgroundColor: White,
	}
}

// ContentBounds returns the union bounding box of all strokes, shapes
// and images on the page. Soft-deleted strokes are skipped. The second
// return value is false when the page has no content.
func (p *Page) ContentBounds() (Rect, bool) {
	var bounds Rect
	have := false
	add := func(r Rect) {
		if !have {
			bounds = r
			have = true
			return
		}
		bounds = bounds.Union(r)
	}

	for _, s := range p.Strokes {
		if s.Deleted || s.Len() == 0 {
			continue
		}
		add(s.Bounds())
	}
	for _, s := range p.Shapes {
		add(s.Bounds())
	}
	for _, img := range p.Images {
		add(img.Bounds())
	}
	return bounds, have
}

// removeStroke deletes the stroke at index idx, preserving order.
func (p *Page) removeStroke(idx int) {
	p.Strokes = append(p.Strokes[:idx], p.Strokes[idx+1:]...)
}

// insertStroke inserts s at index idx, clamped to the current length.
func (p *Page) insertStroke(idx int, s *Stroke) {
	if idx > len(p.Strokes) {
		idx = len(p.Strokes)
	}
	p.Strokes = append(p.Strokes, nil)
	copy(p.Strokes[idx+1:], p.Strokes[idx:])
	p.Strokes[idx] = s
}

// removeShape deletes the shape at index idx, preserving order.
func (p *Page) removeShape(idx int) {
	p.Shapes = append(p.Shapes[:idx], p.Shapes[idx+1:]...)
}

// removeImage deletes the image at index idx, preserving order.
func (p *Page) removeImage(idx int) {
	p.Images = append(p.Images[:idx], p.Images[idx+1:]...)
}
