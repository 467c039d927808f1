// Float-domain RGB raster used by the compositing pipeline
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	// ErrInvalidImage reports a zero-sized or malformed raster. Invoking the
	// pipeline on such a raster is a programmer error, not a retryable one.
	ErrInvalidImage = errors.New("raster: invalid image")

	// ErrOutOfResources reports a raster too large to process; callers may
	// retry at a reduced working resolution.
	ErrOutOfResources = errors.New("raster: image too large")
)

const (
	maxDimension = 16384
	maxPixels    = 1 << 26 // ~64M pixels, ~768 MB of float planes
)

// Image is a width x height x 3 raster with float32 channel values.
// Values are nominally in [0, 1]; intermediate arithmetic may leave the
// range and is only clamped when converting back to 8-bit.
type Image struct {
	W, H int
	Pix  []float32 // packed RGB, len = 3*W*H
}

// New allocates a zeroed raster of the given dimensions.
func New(w, h int) (*Image, error) {
	if err := checkDimensions(w, h); err != nil {
		return nil, err
	}
	return &Image{W: w, H: h, Pix: make([]float32, 3*w*h)}, nil
}

func checkDimensions(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, w, h)
	}
	if w > maxDimension || h > maxDimension || w*h > maxPixels {
		return fmt.Errorf("%w: dimensions %dx%d", ErrOutOfResources, w, h)
	}
	return nil
}

// Validate checks that the raster has usable dimensions and a consistent
// backing slice.
func (p *Image) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil raster", ErrInvalidImage)
	}
	if err := checkDimensions(p.W, p.H); err != nil {
		return err
	}
	if len(p.Pix) != 3*p.W*p.H {
		return fmt.Errorf("%w: pixel buffer length %d for %dx%d", ErrInvalidImage, len(p.Pix), p.W, p.H)
	}
	return nil
}

// Clone returns an independent copy.
func (p *Image) Clone() *Image {
	out := &Image{W: p.W, H: p.H, Pix: make([]float32, len(p.Pix))}
	copy(out.Pix, p.Pix)
	return out
}

// At returns the channel values at (x, y). The caller keeps coordinates
// in range.
func (p *Image) At(x, y int) (r, g, b float32) {
	i := 3 * (y*p.W + x)
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2]
}

// Set stores the channel values at (x, y).
func (p *Image) Set(x, y int, r, g, b float32) {
	i := 3 * (y*p.W + x)
	p.Pix[i], p.Pix[i+1], p.Pix[i+2] = r, g, b
}

// Fill sets every pixel to the given color.
func (p *Image) Fill(r, g, b float32) {
	for i := 0; i < len(p.Pix); i += 3 {
		p.Pix[i], p.Pix[i+1], p.Pix[i+2] = r, g, b
	}
}

// FromImage converts a decoded image into a float raster, alpha ignored.
func FromImage(src image.Image) (*Image, error) {
	bounds := src.Bounds()
	out, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			out.Pix[i] = float32(r) / 65535
			out.Pix[i+1] = float32(g) / 65535
			out.Pix[i+2] = float32(b) / 65535
			i += 3
		}
	}
	return out, nil
}

// ToImage converts the raster to an 8-bit RGBA image, clamping every
// channel to [0, 1] at this final step.
func (p *Image) ToImage() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, p.W, p.H))
	i := 0
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			out.SetRGBA(x, y, color.RGBA{
				R: toByte(p.Pix[i]),
				G: toByte(p.Pix[i+1]),
				B: toByte(p.Pix[i+2]),
				A: 255,
			})
			i += 3
		}
	}
	return out
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
