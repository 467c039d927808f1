// Registry of whole-image prefilters applied before regional privacy effects
package algorithms

import (
	"fmt"
	"image"
	"sort"

	"gocv.io/x/gocv"
)

// Prefilter transforms the whole frame before regions are composited.
// Implementations must return a new Mat and leave the input untouched.
type Prefilter interface {
	Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error)
	GetDefaultParams() map[string]interface{}
	GetName() string
	GetDescription() string
	Validate(params map[string]interface{}) error
	GetParameterInfo() []ParameterInfo
}

// ParameterInfo describes a parameter for UI generation
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "int", "float", "bool"
	Min         interface{} `json:"min,omitempty"`
	Max         interface{} `json:"max,omitempty"`
	Default     interface{} `json:"default"`
	Description string      `json:"description"`
}

var prefilters = make(map[string]Prefilter)

func Register(name string, filter Prefilter) {
	prefilters[name] = filter
}

func Get(name string) (Prefilter, bool) {
	filter, exists := prefilters[name]
	return filter, exists
}

// Names lists the registered prefilters in stable order for menus.
func Names() []string {
	names := make([]string, 0, len(prefilters))
	for name := range prefilters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Apply(name string, input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	filter, exists := prefilters[name]
	if !exists {
		return gocv.NewMat(), fmt.Errorf("prefilter not found: %s", name)
	}
	if err := filter.Validate(params); err != nil {
		return gocv.NewMat(), fmt.Errorf("prefilter %s: %w", name, err)
	}
	return filter.Apply(input, params)
}

// ApplyToImage runs a registered prefilter on a plain image.Image so
// callers outside the pipeline never touch Mats directly.
func ApplyToImage(name string, img image.Image, params map[string]interface{}) (image.Image, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("prefilter %s: convert input: %w", name, err)
	}
	defer mat.Close()

	out, err := Apply(name, mat, params)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	result, err := out.ToImage()
	if err != nil {
		return nil, fmt.Errorf("prefilter %s: convert result: %w", name, err)
	}
	return result, nil
}

func intParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		}
	}
	return def
}
