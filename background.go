package ink

import (
	"image"
	"image/draw"
	"math"
)

// DefaultPatternSpacing is the distance between background pattern
// elements (dots, rules, grid lines) in document units.
const DefaultPatternSpacing = 40.0

// Pattern element colors. The rules of a page are furniture, not
// content, so they stay fixed rather than deriving from the ink color.
var (
	patternGray   = RGBA{R: 0.72, G: 0.72, B: 0.72, A: 1}
	patternFine   = RGBA{R: 0.85, G: 0.85, B: 0.85, A: 1}
	patternBlue   = RGBA{R: 0.63, G: 0.72, B: 0.86, A: 1}
	patternMargin = RGBA{R: 0.89, G: 0.45, B: 0.45, A: 1}
)

// marginOffset is where the vertical margin rule of the lines_with_margin
// background sits, in document units from the left page edge.
const marginOffset = 3 * DefaultPatternSpacing / 2

// drawBackground renders the page background into dst: the fill color
// first, then the pattern for the page's background kind. view is the
// document-space rectangle mapped onto dst and scale the resulting
// units-to-pixels factor.
//
// BackgroundPlain draws the fill only, regardless of spacing.
func drawBackground(dst *image.RGBA, p *Page, view Rect, scale float64, spacing float64) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(p.BackgroundColor.Color()), image.Point{}, draw.Src)
	if p.Background == BackgroundPlain {
		return
	}
	if spacing <= 0 {
		spacing = DefaultPatternSpacing
	}
	// A view whose aspect ratio does not match dst covers only part of
	// the target after uniform scaling. Extend it to dst's full extent
	// in document space so no band is left unpatterned.
	view.Max.X = view.Min.X + float64(dst.Bounds().Dx())/scale
	view.Max.Y = view.Min.Y + float64(dst.Bounds().Dy())/scale

	r := newRasterizer(dst)
	switch p.Background {
	case BackgroundDots:
		drawDots(r, view, scale, spacing)
	case BackgroundGrid:
		drawGrid(r, view, scale, spacing, patternGray, 1)
	case BackgroundGraph:
		// Graph paper: a fine grid with a heavier rule every fifth line.
		drawGrid(r, view, scale, spacing/4, patternFine, 0.7)
		drawGrid(r, view, scale, spacing/4*5, patternGray, 1.2)
	case BackgroundLines:
		drawRules(r, view, scale, spacing)
	case BackgroundLinesMargin:
		drawRules(r, view, scale, spacing)
		drawMargin(r, view, scale)
	}
}

// gridSteps calls fn with the pixel coordinate of every pattern step
// covering [lo, hi) in document space.
func gridSteps(lo, hi, origin, spacing, scale float64, fn func(px float64)) {
	first := math.Ceil(lo/spacing) * spacing
	for v := first; v <= hi; v += spacing {
		fn((v - origin) * scale)
	}
}

func drawDots(r *rasterizer, view Rect, scale, spacing float64) {
	radius := math.Max(1.2*scale, 1)
	gridSteps(view.Min.X, view.Max.X, view.Min.X, spacing, scale, func(px float64) {
		gridSteps(view.Min.Y, view.Max.Y, view.Min.Y, spacing, scale, func(py float64) {
			dot := NewPath()
			dot.Ellipse(px, py, radius, radius)
			r.fillPath(dot, patternGray)
		})
	})
}

func drawGrid(r *rasterizer, view Rect, scale, spacing float64, c RGBA, width float64) {
	w := view.Width() * scale
	h := view.Height() * scale
	path := NewPath()
	gridSteps(view.Min.X, view.Max.X, view.Min.X, spacing, scale, func(px float64) {
		path.MoveTo(px, 0)
		path.LineTo(px, h)
	})
	gridSteps(view.Min.Y, view.Max.Y, view.Min.Y, spacing, scale, func(py float64) {
		path.MoveTo(0, py)
		path.LineTo(w, py)
	})
	r.strokePath(path, c, math.Max(width*scale, 0.7))
}

func drawRules(r *rasterizer, view Rect, scale, spacing float64) {
	w := view.Width() * scale
	path := NewPath()
	gridSteps(view.Min.Y, view.Max.Y, view.Min.Y, spacing, scale, func(py float64) {
		path.MoveTo(0, py)
		path.LineTo(w, py)
	})
	r.strokePath(path, patternBlue, math.Max(scale, 0.8))
}

func drawMargin(r *rasterizer, view Rect, scale float64) {
	px := (marginOffset - view.Min.X) * scale
	path := NewPath()
	path.MoveTo(px, 0)
	path.LineTo(px, view.Height()*scale)
	r.strokePath(path, patternMargin, math.Max(scale, 0.8))
}
