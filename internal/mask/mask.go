// Per-region opacity masks, hard-edged or feathered
package mask

import (
	"fmt"
	"math"

	"privacy-image-editor/internal/raster"
	"privacy-image-editor/internal/region"
)

// Mask is a single-channel opacity raster in [0, 1]: 1 means "fully apply
// the effect", 0 means "keep the original pixel".
type Mask struct {
	W, H int
	Pix  []float32
}

// At returns the opacity at (x, y).
func (m *Mask) At(x, y int) float32 {
	return m.Pix[y*m.W+x]
}

// FeatherWidth is the width of the soft transition band for a region:
// one tenth of the characteristic size, never below 3 px.
func FeatherWidth(r region.Region) float64 {
	return math.Max(3, 0.1*region.CharacteristicSize(r))
}

// Build renders the opacity mask for one region over a w x h raster.
//
// Hard-edged masks are 1 exactly where the geometry kernel reports
// containment and 0 elsewhere. Feathered masks ramp linearly across a band
// centered on the shape boundary, so the mask is 0.5 on the boundary
// itself and falls off monotonically outward. The gradient follows the
// shape: radial for circles and ellipses, per-edge for rectangles.
func Build(r region.Region, w, h int, feather bool) (*Mask, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: mask dimensions %dx%d", raster.ErrInvalidImage, w, h)
	}

	m := &Mask{W: w, H: h, Pix: make([]float32, w*h)}

	// Pixels beyond the region extent plus the feather band stay 0;
	// restricting the loop keeps mask generation proportional to the
	// region, not the frame.
	fw := 0.0
	if feather {
		fw = FeatherWidth(r)
	}
	a := r.Shared()
	hx, hy := region.HalfExtent(r)
	x0 := clampInt(int(math.Floor(a.CenterX-hx-fw))-1, 0, w)
	x1 := clampInt(int(math.Ceil(a.CenterX+hx+fw))+2, 0, w)
	y0 := clampInt(int(math.Floor(a.CenterY-hy-fw))-1, 0, h)
	y1 := clampInt(int(math.Ceil(a.CenterY+hy+fw))+2, 0, h)

	for y := y0; y < y1; y++ {
		row := y * w
		for x := x0; x < x1; x++ {
			d := region.BoundaryDistance(r, float64(x), float64(y))
			if feather {
				m.Pix[row+x] = ramp(d, fw)
			} else if d <= 0 {
				m.Pix[row+x] = 1
			}
		}
	}
	return m, nil
}

// ramp maps a signed boundary distance to opacity: 1 at fw/2 inside the
// boundary, 0.5 on it, 0 at fw/2 outside.
func ramp(d, fw float64) float32 {
	v := 0.5 - d/fw
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return float32(v)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
