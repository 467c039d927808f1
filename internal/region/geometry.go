// Geometry kernel: pure point-in-shape, handle and resize math
package region

import (
	"fmt"
	"math"
)

// diagScale places diagonal handles at 45 degrees on the shape boundary.
const diagScale = 0.70711

// HandleID names one of the eight resize handles.
type HandleID int

const (
	HandleN HandleID = iota
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
	HandleNW
)

func (h HandleID) String() string {
	names := [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	if h < 0 || int(h) >= len(names) {
		return fmt.Sprintf("handle(%d)", int(h))
	}
	return names[h]
}

// isCorner reports whether the handle is one of the four diagonals.
func (h HandleID) isCorner() bool {
	return h == HandleNE || h == HandleSE || h == HandleSW || h == HandleNW
}

// Handle is a resize handle position in raster space.
type Handle struct {
	ID HandleID
	X  float64
	Y  float64
}

// Contains reports whether the point (x, y) lies inside the region.
func Contains(r Region, x, y float64) bool {
	a := r.Shared()
	dx := x - a.CenterX
	dy := y - a.CenterY

	switch s := r.(type) {
	case Circle:
		return dx*dx+dy*dy <= s.Radius*s.Radius
	case Rectangle:
		return math.Abs(dx) <= s.Width/2 && math.Abs(dy) <= s.Height/2
	case Ellipse:
		nx := dx / s.RadiusX
		ny := dy / s.RadiusY
		return nx*nx+ny*ny <= 1
	}
	panic(fmt.Sprintf("region: unhandled shape kind %v", r.Kind()))
}

// Handles returns the eight resize handle positions for the region:
// cardinal handles on the boundary along each axis, diagonal handles at
// 45 degrees (rectangle corners sit on the actual corners).
func Handles(r Region) []Handle {
	a := r.Shared()
	cx, cy := a.CenterX, a.CenterY

	// Cardinal extents and diagonal offsets per shape.
	var ex, ey, dx, dy float64
	switch s := r.(type) {
	case Circle:
		ex, ey = s.Radius, s.Radius
		dx, dy = s.Radius*diagScale, s.Radius*diagScale
	case Rectangle:
		ex, ey = s.Width/2, s.Height/2
		dx, dy = ex, ey
	case Ellipse:
		ex, ey = s.RadiusX, s.RadiusY
		dx, dy = s.RadiusX*diagScale, s.RadiusY*diagScale
	default:
		panic(fmt.Sprintf("region: unhandled shape kind %v", r.Kind()))
	}

	return []Handle{
		{HandleN, cx, cy - ey},
		{HandleNE, cx + dx, cy - dy},
		{HandleE, cx + ex, cy},
		{HandleSE, cx + dx, cy + dy},
		{HandleS, cx, cy + ey},
		{HandleSW, cx - dx, cy + dy},
		{HandleW, cx - ex, cy},
		{HandleNW, cx - dx, cy - dy},
	}
}

// HitHandle returns the nearest handle within hitRadius of (x, y).
// The bool result is false when no handle is close enough.
func HitHandle(r Region, x, y, hitRadius float64) (HandleID, bool) {
	best := HandleID(-1)
	bestDist := hitRadius
	for _, h := range Handles(r) {
		d := math.Hypot(h.X-x, h.Y-y)
		if d <= bestDist {
			best = h.ID
			bestDist = d
		}
	}
	return best, best >= 0
}

// ResizeTo resizes the region so that the given handle tracks the pointer
// at (px, py). Cardinal handles adjust one dimension, corner handles both;
// all size fields are clamped to lim. The center never moves.
func ResizeTo(r Region, h HandleID, px, py float64, lim Limits) Region {
	a := r.Shared()
	dx := px - a.CenterX
	dy := py - a.CenterY

	switch s := r.(type) {
	case Circle:
		// Any handle: the radius chases the pointer.
		s.Radius = lim.Clamp(math.Hypot(dx, dy))
		return s

	case Rectangle:
		if h.isCorner() {
			s.Width = lim.Clamp(2 * math.Abs(dx))
			s.Height = lim.Clamp(2 * math.Abs(dy))
			return s
		}
		// Cardinal: signed offset along the handle's axis, so dragging
		// through the center collapses to the minimum instead of flipping.
		switch h {
		case HandleE:
			s.Width = lim.Clamp(2 * dx)
		case HandleW:
			s.Width = lim.Clamp(-2 * dx)
		case HandleS:
			s.Height = lim.Clamp(2 * dy)
		case HandleN:
			s.Height = lim.Clamp(-2 * dy)
		}
		return s

	case Ellipse:
		if h.isCorner() {
			// The corner handle sits at diagScale*(rx, ry); invert that
			// scale so the pointer stays on the ellipse at 45 degrees.
			s.RadiusX = lim.Clamp(math.Abs(dx) / diagScale)
			s.RadiusY = lim.Clamp(math.Abs(dy) / diagScale)
			return s
		}
		switch h {
		case HandleE, HandleW:
			s.RadiusX = lim.Clamp(math.Abs(dx))
		case HandleN, HandleS:
			s.RadiusY = lim.Clamp(math.Abs(dy))
		}
		return s
	}
	panic(fmt.Sprintf("region: unhandled shape kind %v", r.Kind()))
}

// HalfExtent returns the region's half-size along each axis.
func HalfExtent(r Region) (hx, hy float64) {
	switch s := r.(type) {
	case Circle:
		return s.Radius, s.Radius
	case Rectangle:
		return s.Width / 2, s.Height / 2
	case Ellipse:
		return s.RadiusX, s.RadiusY
	}
	panic(fmt.Sprintf("region: unhandled shape kind %v", r.Kind()))
}

// TranslateBy moves the region center by (dx, dy) and then clamps the
// center so the region's extent stays fully inside the rasterW x rasterH
// bounds (half-size margin from every edge).
func TranslateBy(r Region, dx, dy float64, rasterW, rasterH int) Region {
	a := r.Shared()
	hx, hy := HalfExtent(r)
	cx := clampRange(a.CenterX+dx, hx, float64(rasterW)-hx)
	cy := clampRange(a.CenterY+dy, hy, float64(rasterH)-hy)
	return WithCenter(r, cx, cy)
}

// clampRange forces v into [lo, hi], splitting the difference when the
// interval is inverted (region wider than the raster).
func clampRange(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(v, hi))
}

// CharacteristicSize is the feathering length scale of a shape: the radius
// for a circle, half the smaller side for a rectangle, the smaller radius
// for an ellipse.
func CharacteristicSize(r Region) float64 {
	switch s := r.(type) {
	case Circle:
		return s.Radius
	case Rectangle:
		return math.Min(s.Width, s.Height) / 2
	case Ellipse:
		return math.Min(s.RadiusX, s.RadiusY)
	}
	panic(fmt.Sprintf("region: unhandled shape kind %v", r.Kind()))
}

// BoundaryDistance returns a signed distance-like value to the region
// boundary: negative inside, zero on the boundary, positive outside.
// For the ellipse it is the normalized radial excess scaled by the smaller
// radius, which is exact on the axes and a close approximation elsewhere.
func BoundaryDistance(r Region, x, y float64) float64 {
	a := r.Shared()
	dx := x - a.CenterX
	dy := y - a.CenterY

	switch s := r.(type) {
	case Circle:
		return math.Hypot(dx, dy) - s.Radius
	case Rectangle:
		return math.Max(math.Abs(dx)-s.Width/2, math.Abs(dy)-s.Height/2)
	case Ellipse:
		nx := dx / s.RadiusX
		ny := dy / s.RadiusY
		return (math.Hypot(nx, ny) - 1) * math.Min(s.RadiusX, s.RadiusY)
	}
	panic(fmt.Sprintf("region: unhandled shape kind %v", r.Kind()))
}
