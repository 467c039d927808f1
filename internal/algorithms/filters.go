// Built-in prefilters: grayscale, pixelate, smooth
package algorithms

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

func init() {
	Register("grayscale", &GrayscaleFilter{})
	Register("pixelate", &PixelateFilter{})
	Register("smooth", &SmoothFilter{})
}

// GrayscaleFilter drops chroma while keeping a 3-channel frame so the
// rest of the pipeline stays format-agnostic.
type GrayscaleFilter struct{}

func (f *GrayscaleFilter) Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(input, &gray, gocv.ColorBGRToGray)

	result := gocv.NewMat()
	gocv.CvtColor(gray, &result, gocv.ColorGrayToBGR)
	return result, nil
}

func (f *GrayscaleFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{}
}

func (f *GrayscaleFilter) GetName() string {
	return "Grayscale"
}

func (f *GrayscaleFilter) GetDescription() string {
	return "Convert the frame to grayscale"
}

func (f *GrayscaleFilter) Validate(params map[string]interface{}) error {
	return nil
}

func (f *GrayscaleFilter) GetParameterInfo() []ParameterInfo {
	return nil
}

// PixelateFilter downsamples and re-expands with nearest-neighbor
// interpolation, producing uniform blocks of the given size.
type PixelateFilter struct{}

func (f *PixelateFilter) Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	block := intParam(params, "block_size", 8)

	w, h := input.Cols(), input.Rows()
	smallW := max(1, w/block)
	smallH := max(1, h/block)

	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(input, &small, image.Pt(smallW, smallH), 0, 0, gocv.InterpolationArea)

	result := gocv.NewMat()
	gocv.Resize(small, &result, image.Pt(w, h), 0, 0, gocv.InterpolationNearestNeighbor)
	return result, nil
}

func (f *PixelateFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"block_size": 8,
	}
}

func (f *PixelateFilter) GetName() string {
	return "Pixelate"
}

func (f *PixelateFilter) GetDescription() string {
	return "Reduce the frame to uniform color blocks"
}

func (f *PixelateFilter) Validate(params map[string]interface{}) error {
	block := intParam(params, "block_size", 8)
	if block < 2 || block > 64 {
		return fmt.Errorf("block_size must be between 2 and 64, got %d", block)
	}
	return nil
}

func (f *PixelateFilter) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "block_size",
			Type:        "int",
			Min:         2,
			Max:         64,
			Default:     8,
			Description: "Side length of each pixel block",
		},
	}
}

// SmoothFilter applies edge-preserving median smoothing, useful for
// taking sensor noise out of a frame before redaction.
type SmoothFilter struct{}

func (f *SmoothFilter) Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	ksize := intParam(params, "kernel_size", 5)

	result := gocv.NewMat()
	gocv.MedianBlur(input, &result, ksize)
	return result, nil
}

func (f *SmoothFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"kernel_size": 5,
	}
}

func (f *SmoothFilter) GetName() string {
	return "Smooth"
}

func (f *SmoothFilter) GetDescription() string {
	return "Median smoothing to suppress noise"
}

func (f *SmoothFilter) Validate(params map[string]interface{}) error {
	ksize := intParam(params, "kernel_size", 5)
	if ksize < 3 || ksize > 15 {
		return fmt.Errorf("kernel_size must be between 3 and 15, got %d", ksize)
	}
	if ksize%2 == 0 {
		return fmt.Errorf("kernel_size must be odd, got %d", ksize)
	}
	return nil
}

func (f *SmoothFilter) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "kernel_size",
			Type:        "int",
			Min:         3,
			Max:         15,
			Default:     5,
			Description: "Median window size, odd values only",
		},
	}
}
