package ink

import (
	"image"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// rasterizer wraps rasterx for drawing paths into an RGBA layer.
// Filling and stroking keep separate scanner instances so their state
// never bleeds into each other.
type rasterizer struct {
	fillScanner   rasterx.Scanner
	strokeScanner rasterx.Scanner
	filler        *rasterx.Filler
	dasher        *rasterx.Dasher
}

// newRasterizer creates a rasterizer bound to dst.
func newRasterizer(dst *image.RGBA) *rasterizer {
	w := dst.Bounds().Dx()
	h := dst.Bounds().Dy()
	fillScanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	strokeScanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	return &rasterizer{
		fillScanner:   fillScanner,
		strokeScanner: strokeScanner,
		filler:        rasterx.NewFiller(w, h, fillScanner),
		dasher:        rasterx.NewDasher(w, h, strokeScanner),
	}
}

// toFixed converts a document point to rasterx's 26.6 fixed format.
func toFixed(p Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(p.X * 64),
		Y: fixed.Int26_6(p.Y * 64),
	}
}

// replay feeds a path into a rasterx adder.
func replay(path *Path, adder rasterx.Adder) {
	open := false
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			if open {
				adder.Stop(false)
			}
			adder.Start(toFixed(e.Point))
			open = true
		case LineTo:
			adder.Line(toFixed(e.Point))
		case QuadTo:
			adder.QuadBezier(toFixed(e.Control), toFixed(e.Point))
		case CubicTo:
			adder.CubeBezier(toFixed(e.Control1), toFixed(e.Control2), toFixed(e.Point))
		case Close:
			adder.Stop(true)
			open = false
		}
	}
	if open {
		adder.Stop(false)
	}
}

// strokePath strokes a path with round caps and joins. An undashed
// Dasher behaves as a plain stroker.
func (r *rasterizer) strokePath(path *Path, c RGBA, width float64) {
	if path.Empty() || width <= 0 {
		return
	}
	r.dasher.SetStroke(
		fixed.Int26_6(width*64), fixed.Int26_6(4*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round,
		nil, 0,
	)
	r.strokeScanner.SetColor(c.Color())
	replay(path, r.dasher)
	r.dasher.Draw()
	r.dasher.Clear()
}

// fillPath fills a path using the non-zero winding rule.
func (r *rasterizer) fillPath(path *Path, c RGBA) {
	if path.Empty() {
		return
	}
	r.fillScanner.SetColor(c.Color())
	replay(path, r.filler)
	r.filler.Draw()
	r.filler.Clear()
}
