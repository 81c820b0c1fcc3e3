package ink

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"math"

	"github.com/google/uuid"

	// Raster formats accepted by DecodeImage. Documents are written
	// back as PNG regardless of the source format.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ErrEmptyImage is returned when image data decodes to a zero-sized
// bitmap.
var ErrEmptyImage = errors.New("ink: image has no pixels")

// Image is a positioned raster image on a page. The bitmap is owned by
// the Image; Size is the display extent in document units and is
// independent of the bitmap's pixel dimensions, so images scale freely.
type Image struct {
	ID       string
	Bitmap   *image.RGBA
	Position Point
	Size     Point
}

// NewImage creates an image from an already decoded bitmap. The pixels
// are copied into an owned RGBA buffer. A zero size displays the image
// at its native pixel dimensions.
func NewImage(src image.Image, pos Point, size Point) *Image {
	b := src.Bounds()
	bitmap := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(bitmap, bitmap.Bounds(), src, b.Min, draw.Src)

	if size.X <= 0 || size.Y <= 0 {
		size = Pt(float64(b.Dx()), float64(b.Dy()))
	}
	return &Image{
		ID:       uuid.NewString(),
		Bitmap:   bitmap,
		Position: pos,
		Size:     size,
	}
}

// DecodeImage decodes raster data and wraps it in an Image. Malformed
// data yields an error; callers drop the image and continue, the rest
// of the document is unaffected.
func DecodeImage(data []byte, pos Point, size Point) (*Image, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ink: decode image: %w", err)
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrEmptyImage
	}
	Logger().Debug("image decoded", slog.String("format", format),
		slog.Int("width", b.Dx()), slog.Int("height", b.Dy()))
	return NewImage(src, pos, size), nil
}

// Bounds returns the display rectangle of the image in document space.
func (i *Image) Bounds() Rect {
	return Rect{Min: i.Position, Max: i.Position.Add(i.Size)}
}

// Translate shifts the image by delta.
func (i *Image) Translate(delta Point) {
	i.Position = i.Position.Add(delta)
}

// SetRect moves and resizes the image to fill r.
func (i *Image) SetRect(r Rect) {
	i.Position = r.Min
	i.Size = Pt(r.Width(), r.Height())
}

// pixelRect maps a document-space rectangle to the corresponding pixel
// rectangle of the bitmap, clamped to the bitmap bounds.
func (i *Image) pixelRect(r Rect) image.Rectangle {
	bw := float64(i.Bitmap.Bounds().Dx())
	bh := float64(i.Bitmap.Bounds().Dy())
	sx := bw / i.Size.X
	sy := bh / i.Size.Y

	px := image.Rect(
		int(math.Floor((r.Min.X-i.Position.X)*sx)),
		int(math.Floor((r.Min.Y-i.Position.Y)*sy)),
		int(math.Ceil((r.Max.X-i.Position.X)*sx)),
		int(math.Ceil((r.Max.Y-i.Position.Y)*sy)),
	)
	return px.Intersect(i.Bitmap.Bounds())
}

// Crop cuts the part of the image covered by r into a new Image and
// clears the corresponding pixels of the receiver to transparency. The
// original and the returned piece together still tile the image's
// former extent with no content lost or duplicated.
//
// Crop returns nil when r does not overlap the image, or covers it
// entirely; those are no-ops for region splitting.
func (i *Image) Crop(r Rect) *Image {
	clip := r.Intersect(i.Bounds())
	if clip.Empty() || clip == i.Bounds() {
		return nil
	}
	px := i.pixelRect(clip)
	if px.Empty() {
		return nil
	}

	piece := image.NewRGBA(image.Rect(0, 0, px.Dx(), px.Dy()))
	draw.Draw(piece, piece.Bounds(), i.Bitmap, px.Min, draw.Src)
	draw.Draw(i.Bitmap, px, image.Transparent, image.Point{}, draw.Src)

	return &Image{
		ID:       uuid.NewString(),
		Bitmap:   piece,
		Position: clip.Min,
		Size:     Pt(clip.Width(), clip.Height()),
	}
}
