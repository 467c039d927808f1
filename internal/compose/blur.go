// Two-pass separable Gaussian blur over the float raster
package compose

import "privacy-image-editor/internal/raster"

// blur returns a Gaussian-blurred copy of src using the given 1-D kernel
// horizontally then vertically. Samples beyond the frame clamp to the edge
// pixel, so no border ring of artifacts appears.
func blur(src *raster.Image, kernel []float32) *raster.Image {
	w, h := src.W, src.H
	radius := len(kernel) / 2

	tmp := &raster.Image{W: w, H: h, Pix: make([]float32, len(src.Pix))}
	out := &raster.Image{W: w, H: h, Pix: make([]float32, len(src.Pix))}

	// Horizontal pass: src -> tmp.
	for y := 0; y < h; y++ {
		row := 3 * y * w
		for x := 0; x < w; x++ {
			var r, g, b float32
			for k, kw := range kernel {
				sx := clampIndex(x+k-radius, w)
				i := row + 3*sx
				r += kw * src.Pix[i]
				g += kw * src.Pix[i+1]
				b += kw * src.Pix[i+2]
			}
			i := row + 3*x
			tmp.Pix[i], tmp.Pix[i+1], tmp.Pix[i+2] = r, g, b
		}
	}

	// Vertical pass: tmp -> out.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b float32
			for k, kw := range kernel {
				sy := clampIndex(y+k-radius, h)
				i := 3 * (sy*w + x)
				r += kw * tmp.Pix[i]
				g += kw * tmp.Pix[i+1]
				b += kw * tmp.Pix[i+2]
			}
			i := 3 * (y*w + x)
			out.Pix[i], out.Pix[i+1], out.Pix[i+2] = r, g, b
		}
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
