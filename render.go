package ink

import (
	"image"
	"log/slog"
	"math"

	xdraw "golang.org/x/image/draw"
)

// ExportPadding is the document-space margin added around the content
// bounding box by RenderHighRes.
const ExportPadding = 20.0

// RendererOption configures a Renderer during creation.
type RendererOption func(*Renderer)

// WithPatternSpacing sets the background pattern spacing in document
// units.
func WithPatternSpacing(spacing float64) RendererOption {
	return func(r *Renderer) {
		r.spacing = spacing
	}
}

// WithScaler sets the interpolator used when drawing images at
// display rate. The default is the fast bilinear approximation.
func WithScaler(s xdraw.Scaler) RendererOption {
	return func(r *Renderer) {
		r.scaler = s
	}
}

// WithExportScaler sets the interpolator used by RenderHighRes, where
// quality matters more than speed. The default is Catmull-Rom.
func WithExportScaler(s xdraw.Scaler) RendererOption {
	return func(r *Renderer) {
		r.exportScaler = s
	}
}

// Renderer rasterizes pages through a two-layer composite:
//
//  1. The background layer carries the page fill color and pattern.
//  2. The content layer starts fully transparent and receives images,
//     then shapes, then strokes in z-order. Eraser-tool strokes are
//     applied to this layer as a clear operation, which is what lets
//     erasing remove ink while the background pattern underneath stays
//     intact.
//
// The layers are composited background-under-content into the result.
// Export consumers call Render or RenderHighRes and must not
// re-implement the compositing themselves.
type Renderer struct {
	spacing      float64
	scaler       xdraw.Scaler
	exportScaler xdraw.Scaler
}

// NewRenderer creates a renderer with default settings.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		spacing:      DefaultPatternSpacing,
		scaler:       xdraw.ApproxBiLinear,
		exportScaler: xdraw.CatmullRom,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render rasterizes a page into a width x height RGBA image.
//
// With a nil clip the viewport is the document rectangle
// (0,0)-(width,height) at 1:1 scale. With a clip the clip rectangle is
// mapped onto the target, scaled uniformly so the clip width fills the
// target width.
func (r *Renderer) Render(p *Page, width, height int, clip *Rect) *image.RGBA {
	return r.render(p, width, height, clip, r.scaler)
}

func (r *Renderer) render(p *Page, width, height int, clip *Rect, scaler xdraw.Scaler) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}

	view := RectWH(0, 0, float64(width), float64(height))
	scale := 1.0
	if clip != nil && !clip.Empty() {
		view = *clip
		scale = float64(width) / clip.Width()
	}

	background := image.NewRGBA(image.Rect(0, 0, width, height))
	drawBackground(background, p, view, scale, r.spacing)

	content := image.NewRGBA(image.Rect(0, 0, width, height))
	r.drawContent(content, p, view, scale, scaler)

	xdraw.Draw(background, background.Bounds(), content, image.Point{}, xdraw.Over)
	return background
}

// drawContent renders images, shapes and strokes in z-order into the
// transparent content layer.
func (r *Renderer) drawContent(content *image.RGBA, p *Page, view Rect, scale float64, scaler xdraw.Scaler) {
	m := Scale(scale, scale).Multiply(Translate(-view.Min.X, -view.Min.Y))
	ras := newRasterizer(content)

	for _, img := range p.Images {
		dst := imageRect(img.Bounds(), m)
		if dst.Empty() {
			continue
		}
		scaler.Scale(content, dst, img.Bitmap, img.Bitmap.Bounds(), xdraw.Over, nil)
	}

	for _, s := range p.Shapes {
		ras.strokePath(s.Outline().Transform(m), s.Color, s.Width*scale)
	}

	// mask is allocated lazily: only pages with eraser strokes pay for it.
	var mask *image.RGBA
	for _, s := range p.Strokes {
		if s.Deleted || s.Len() == 0 {
			continue
		}
		path := s.Path().Transform(m)
		if s.Tool == ToolEraser {
			if mask == nil {
				mask = image.NewRGBA(content.Bounds())
			} else {
				clearImage(mask)
			}
			newRasterizer(mask).strokePath(path, White, s.Width*scale)
			punchOut(content, mask)
			continue
		}
		c, w := toolPaint(s)
		ras.strokePath(path, c, w*scale)
	}
}

// toolPaint returns the effective color and width for a stroke's tool.
func toolPaint(s *Stroke) (RGBA, float64) {
	c := s.Color.WithAlpha(s.Opacity)
	w := s.Width
	switch s.Tool {
	case ToolMarker:
		w *= 1.25
	case ToolPencil:
		c = c.WithAlpha(0.85)
	case ToolHighlighter:
		c.A = math.Min(c.A, 0.4)
	}
	return c, w
}

// imageRect maps a document rectangle through m to integer pixels.
func imageRect(r Rect, m Matrix) image.Rectangle {
	lo := m.TransformPoint(r.Min)
	hi := m.TransformPoint(r.Max)
	return image.Rect(
		int(math.Round(lo.X)), int(math.Round(lo.Y)),
		int(math.Round(hi.X)), int(math.Round(hi.Y)),
	)
}

// clearImage zeroes all pixels of img.
func clearImage(img *image.RGBA) {
	clear(img.Pix)
}

// punchOut applies a Porter-Duff clear of mask against dst: wherever
// the mask has coverage, dst's pixels are knocked out proportionally.
// Anti-aliased mask edges produce partially erased pixels.
func punchOut(dst, mask *image.RGBA) {
	for i := 3; i < len(mask.Pix); i += 4 {
		a := uint32(mask.Pix[i])
		if a == 0 {
			continue
		}
		inv := 255 - a
		dst.Pix[i-3] = uint8(uint32(dst.Pix[i-3]) * inv / 255)
		dst.Pix[i-2] = uint8(uint32(dst.Pix[i-2]) * inv / 255)
		dst.Pix[i-1] = uint8(uint32(dst.Pix[i-1]) * inv / 255)
		dst.Pix[i] = uint8(uint32(dst.Pix[i]) * inv / 255)
	}
}

// RenderHighRes rasterizes the page's content bounding box (plus
// ExportPadding) at export resolution: the scale factor makes the box
// width reach targetWidthHint without ever shrinking below 1:1, and
// both output dimensions are clamped to maxDimension with the scale
// re-derived proportionally when the clamp bites.
func (r *Renderer) RenderHighRes(p *Page, targetWidthHint, maxDimension int) *image.RGBA {
	box, ok := p.ContentBounds()
	if !ok {
		// Blank page: emit the background at the hinted width in 4:3.
		w := targetWidthHint
		h := targetWidthHint * 3 / 4
		return r.render(p, w, h, nil, r.exportScaler)
	}
	box = box.Inset(-ExportPadding)

	scale := float64(targetWidthHint) / box.Width()
	if scale < 1 {
		scale = 1
	}
	w := box.Width() * scale
	h := box.Height() * scale
	if maxDimension > 0 {
		maxDim := float64(maxDimension)
		if w > maxDim || h > maxDim {
			scale *= maxDim / math.Max(w, h)
			w = box.Width() * scale
			h = box.Height() * scale
		}
	}

	Logger().Debug("high-res export",
		slog.Float64("scale", scale),
		slog.Int("width", int(w)), slog.Int("height", int(h)))
	return r.render(p, int(math.Round(w)), int(math.Round(h)), &box, r.exportScaler)
}
