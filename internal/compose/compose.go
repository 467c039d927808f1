// Compositor: per-region masked privacy transforms over a float raster
package compose

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"privacy-image-editor/internal/mask"
	"privacy-image-editor/internal/raster"
	"privacy-image-editor/internal/region"
)

// Mode selects the privacy transform applied inside each region.
type Mode int

const (
	// ModeBlur applies a Gaussian blur whose strength follows the
	// region's intensity (sigma = intensity / 10).
	ModeBlur Mode = iota
	// ModeHide paints the region with a solid fill color.
	ModeHide
)

func (m Mode) String() string {
	if m == ModeHide {
		return "hide"
	}
	return "blur"
}

// FillColor is the hide-mode fill, channels in [0, 1].
type FillColor struct {
	R, G, B float32
}

// Options configures one compositing pass.
type Options struct {
	Mode    Mode
	Fill    FillColor
	Feather bool
}

// Compositor applies per-region transforms and blends them back through
// feathered masks. It owns the Gaussian kernel cache; one Compositor must
// not be driven concurrently from two call sites.
type Compositor struct {
	kernels *kernelCache
	logger  *logrus.Logger
}

// New creates a Compositor.
func New(logger *logrus.Logger) *Compositor {
	return &Compositor{
		kernels: newKernelCache(),
		logger:  logger,
	}
}

// Composite produces a new raster with every region's transform applied.
//
// Regions are processed in paint order: for each one the whole current
// frame is transformed (blurred at the region's own sigma, or filled),
// then blended against the running result through that region's mask, so
// later regions layer over earlier ones in overlaps. The input raster is
// never mutated and the output has identical dimensions. An empty region
// set returns an untouched copy.
func (c *Compositor) Composite(img *raster.Image, regions region.Set, opts Options) (*raster.Image, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}

	result := img.Clone()
	if len(regions) == 0 {
		return result, nil
	}

	c.logger.WithFields(logrus.Fields{
		"regions": len(regions),
		"mode":    opts.Mode.String(),
		"size":    fmt.Sprintf("%dx%d", img.W, img.H),
	}).Debug("Compositing regions")

	for i, r := range regions {
		transformed, err := c.transform(result, r, opts)
		if err != nil {
			return nil, fmt.Errorf("composite: region %d: %w", i, err)
		}
		if transformed == nil {
			// Identity transform (blur at sigma ~0): blending would be
			// a no-op, skip the mask entirely.
			continue
		}

		m, err := mask.Build(r, img.W, img.H, opts.Feather)
		if err != nil {
			return nil, fmt.Errorf("composite: region %d: %w", i, err)
		}
		blend(result, transformed, m)
	}
	return result, nil
}

// transform computes the whole-frame transformed image for one region.
// A nil result (with nil error) signals the identity transform.
func (c *Compositor) transform(current *raster.Image, r region.Region, opts Options) (*raster.Image, error) {
	switch opts.Mode {
	case ModeBlur:
		sigma := float64(r.Shared().Intensity) / 10
		if sigma < identitySigma {
			return nil, nil
		}
		return blur(current, c.kernels.get(sigma)), nil
	case ModeHide:
		filled := &raster.Image{W: current.W, H: current.H, Pix: make([]float32, len(current.Pix))}
		filled.Fill(opts.Fill.R, opts.Fill.G, opts.Fill.B)
		return filled, nil
	}
	return nil, fmt.Errorf("unknown compositing mode %d", opts.Mode)
}

// blend overwrites result with result*(1-m) + transformed*m per channel.
// Written as result + m*(transformed-result) so a zero mask leaves pixels
// bit-identical.
func blend(result, transformed *raster.Image, m *mask.Mask) {
	for p, mv := range m.Pix {
		if mv == 0 {
			continue
		}
		i := 3 * p
		if mv == 1 {
			// Full opacity takes the transformed pixel exactly.
			result.Pix[i] = transformed.Pix[i]
			result.Pix[i+1] = transformed.Pix[i+1]
			result.Pix[i+2] = transformed.Pix[i+2]
			continue
		}
		result.Pix[i] += mv * (transformed.Pix[i] - result.Pix[i])
		result.Pix[i+1] += mv * (transformed.Pix[i+1] - result.Pix[i+1])
		result.Pix[i+2] += mv * (transformed.Pix[i+2] - result.Pix[i+2])
	}
}
