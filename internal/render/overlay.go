// Overlay renderer: region outlines, resize handles and labels
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"privacy-image-editor/internal/region"
)

// Transform maps raster-space coordinates into overlay (display) space.
// The same scale correction used for input events in reverse.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Identity is the no-op transform for raster-resolution overlays.
var Identity = Transform{Scale: 1}

// Apply maps a raster point to overlay space.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.Scale + t.OffsetX, y*t.Scale + t.OffsetY
}

var (
	outlineColor  = color.RGBA{R: 255, G: 64, B: 64, A: 200}
	selectedColor = color.RGBA{R: 64, G: 255, B: 64, A: 230}
	handleFill    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	labelColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// handleSide is the drawn size of a resize handle square in overlay px.
const handleSide = 7

// Overlay renders the full selection overlay from scratch: every region's
// outline, the selected region's eight resize handles, and a size and
// intensity label per region. It is a pure function of its arguments;
// callers re-render on every state change rather than patching.
func Overlay(w, h int, regions region.Set, selected int, tr Transform) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for i, r := range regions {
		col := outlineColor
		if i == selected {
			col = selectedColor
		}
		drawOutline(img, r, col, tr)
		drawLabel(img, r, tr)
	}

	if selected >= 0 && selected < len(regions) {
		for _, hd := range region.Handles(regions[selected]) {
			x, y := tr.Apply(hd.X, hd.Y)
			drawHandle(img, int(x), int(y))
		}
	}
	return img
}

func drawOutline(img *image.RGBA, r region.Region, col color.RGBA, tr Transform) {
	a := r.Shared()
	switch s := r.(type) {
	case region.Rectangle:
		x0, y0 := tr.Apply(a.CenterX-s.Width/2, a.CenterY-s.Height/2)
		x1, y1 := tr.Apply(a.CenterX+s.Width/2, a.CenterY+s.Height/2)
		drawLine(img, int(x0), int(y0), int(x1), int(y0), col)
		drawLine(img, int(x1), int(y0), int(x1), int(y1), col)
		drawLine(img, int(x1), int(y1), int(x0), int(y1), col)
		drawLine(img, int(x0), int(y1), int(x0), int(y0), col)
	case region.Circle:
		drawEllipseOutline(img, a.CenterX, a.CenterY, s.Radius, s.Radius, col, tr)
	case region.Ellipse:
		drawEllipseOutline(img, a.CenterX, a.CenterY, s.RadiusX, s.RadiusY, col, tr)
	}
}

// drawEllipseOutline samples the boundary densely enough that adjacent
// samples land on neighboring pixels.
func drawEllipseOutline(img *image.RGBA, cx, cy, rx, ry float64, col color.RGBA, tr Transform) {
	perimeter := 2 * math.Pi * math.Max(rx, ry) * math.Max(tr.Scale, 1)
	steps := int(math.Max(64, perimeter*2))
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		x, y := tr.Apply(cx+rx*math.Cos(angle), cy+ry*math.Sin(angle))
		setPixel(img, int(x), int(y), col)
	}
}

// drawLine is Bresenham's algorithm with bounds clipping.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	x, y := x0, y0
	for {
		setPixel(img, x, y, col)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func drawHandle(img *image.RGBA, cx, cy int) {
	half := handleSide / 2
	for y := cy - half; y <= cy+half; y++ {
		for x := cx - half; x <= cx+half; x++ {
			setPixel(img, x, y, handleFill)
		}
	}
}

// drawLabel renders "size intensity%" just above the region.
func drawLabel(img *image.RGBA, r region.Region, tr Transform) {
	a := r.Shared()
	hx, hy := region.HalfExtent(r)

	var size string
	switch s := r.(type) {
	case region.Circle:
		size = fmt.Sprintf("r=%d", int(s.Radius))
	case region.Rectangle:
		size = fmt.Sprintf("%dx%d", int(s.Width), int(s.Height))
	case region.Ellipse:
		size = fmt.Sprintf("%dx%d", int(s.RadiusX), int(s.RadiusY))
	}
	text := fmt.Sprintf("%s %d%%", size, a.Intensity)

	x, y := tr.Apply(a.CenterX-hx, a.CenterY-hy)
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(x), int(y)-4),
	}
	d.DrawString(text)
}

func setPixel(img *image.RGBA, x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
		return
	}
	img.SetRGBA(x, y, col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
