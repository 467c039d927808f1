// Region model: tagged union over the three privacy shape kinds
package region

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies the shape variant of a Region.
type Kind int

const (
	KindCircle Kind = iota
	KindRectangle
	KindEllipse
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindRectangle:
		return "rectangle"
	case KindEllipse:
		return "ellipse"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Attrs holds the fields shared by every shape kind. Coordinates are
// raster-space floating point; Intensity is the per-region transform
// strength in [0, 100].
type Attrs struct {
	ID        string
	CenterX   float64
	CenterY   float64
	Intensity int
}

// Region is the closed sum over circle, rectangle and ellipse. Concrete
// values are plain structs, so copying a Region copies the whole record;
// callers never share mutable state through one.
type Region interface {
	Kind() Kind
	Shared() Attrs

	// withAttrs returns a copy with replaced shared fields. Unexported so
	// the union stays closed to the three kinds in this package.
	withAttrs(a Attrs) Region
}

// Circle is a circular region with a single radius.
type Circle struct {
	Attrs
	Radius float64
}

// Rectangle is an axis-aligned rectangular region spanning
// [CenterX-Width/2, CenterX+Width/2] x [CenterY-Height/2, CenterY+Height/2].
type Rectangle struct {
	Attrs
	Width  float64
	Height float64
}

// Ellipse is an axis-aligned elliptical region.
type Ellipse struct {
	Attrs
	RadiusX float64
	RadiusY float64
}

func (c Circle) Kind() Kind    { return KindCircle }
func (r Rectangle) Kind() Kind { return KindRectangle }
func (e Ellipse) Kind() Kind   { return KindEllipse }

func (c Circle) Shared() Attrs    { return c.Attrs }
func (r Rectangle) Shared() Attrs { return r.Attrs }
func (e Ellipse) Shared() Attrs   { return e.Attrs }

func (c Circle) withAttrs(a Attrs) Region    { c.Attrs = a; return c }
func (r Rectangle) withAttrs(a Attrs) Region { r.Attrs = a; return r }
func (e Ellipse) withAttrs(a Attrs) Region   { e.Attrs = a; return e }

// NewCircle creates a circle with a fresh unique ID.
func NewCircle(cx, cy, radius float64, intensity int) Circle {
	return Circle{
		Attrs:  newAttrs(cx, cy, intensity),
		Radius: radius,
	}
}

// NewRectangle creates a rectangle with a fresh unique ID.
func NewRectangle(cx, cy, width, height float64, intensity int) Rectangle {
	return Rectangle{
		Attrs:  newAttrs(cx, cy, intensity),
		Width:  width,
		Height: height,
	}
}

// NewEllipse creates an ellipse with a fresh unique ID.
func NewEllipse(cx, cy, rx, ry float64, intensity int) Ellipse {
	return Ellipse{
		Attrs:   newAttrs(cx, cy, intensity),
		RadiusX: rx,
		RadiusY: ry,
	}
}

func newAttrs(cx, cy float64, intensity int) Attrs {
	return Attrs{
		ID:        uuid.NewString(),
		CenterX:   cx,
		CenterY:   cy,
		Intensity: clampIntensity(intensity),
	}
}

// New creates a region of the given kind with symmetric default extents:
// halfSize is the radius for circles and ellipses and half the side length
// for rectangles.
func New(kind Kind, cx, cy, halfSize float64, intensity int) Region {
	switch kind {
	case KindCircle:
		return NewCircle(cx, cy, halfSize, intensity)
	case KindRectangle:
		return NewRectangle(cx, cy, 2*halfSize, 2*halfSize, intensity)
	case KindEllipse:
		return NewEllipse(cx, cy, halfSize, halfSize, intensity)
	}
	panic(fmt.Sprintf("region: unhandled shape kind %v", kind))
}

// WithIntensity returns a copy of r with the intensity set, clamped to [0, 100].
func WithIntensity(r Region, intensity int) Region {
	a := r.Shared()
	a.Intensity = clampIntensity(intensity)
	return r.withAttrs(a)
}

// WithCenter returns a copy of r recentered at (cx, cy).
func WithCenter(r Region, cx, cy float64) Region {
	a := r.Shared()
	a.CenterX = cx
	a.CenterY = cy
	return r.withAttrs(a)
}

func clampIntensity(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Limits bounds the size fields of a region. Min depends on the input
// device; Max is derived from the raster so a region can never swallow
// the whole canvas.
type Limits struct {
	Min float64
	Max float64
}

// LimitsFor returns size limits for a raster of the given dimensions:
// the maximum size is half the smaller raster dimension.
func LimitsFor(minSize float64, rasterW, rasterH int) Limits {
	smaller := rasterW
	if rasterH < rasterW {
		smaller = rasterH
	}
	max := float64(smaller) / 2
	if max < minSize {
		max = minSize
	}
	return Limits{Min: minSize, Max: max}
}

// Clamp forces v into [l.Min, l.Max].
func (l Limits) Clamp(v float64) float64 {
	if v < l.Min {
		return l.Min
	}
	if v > l.Max {
		return l.Max
	}
	return v
}

// ClampSizes returns a copy of r with every size field clamped to l.
func ClampSizes(r Region, l Limits) Region {
	switch s := r.(type) {
	case Circle:
		s.Radius = l.Clamp(s.Radius)
		return s
	case Rectangle:
		s.Width = l.Clamp(s.Width)
		s.Height = l.Clamp(s.Height)
		return s
	case Ellipse:
		s.RadiusX = l.Clamp(s.RadiusX)
		s.RadiusY = l.Clamp(s.RadiusY)
		return s
	}
	panic(fmt.Sprintf("region: unhandled shape kind %v", r.Kind()))
}
