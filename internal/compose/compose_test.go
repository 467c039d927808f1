package compose

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"

	"privacy-image-editor/internal/raster"
	"privacy-image-editor/internal/region"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// grayImage returns a w x h raster with every channel set to v/255.
func grayImage(w, h int, v float32) *raster.Image {
	img, err := raster.New(w, h)
	if err != nil {
		panic(err)
	}
	img.Fill(v/255, v/255, v/255)
	return img
}

// gradientImage returns a raster with spatially varying channels so that
// blurring actually changes pixel values.
func gradientImage(w, h int) *raster.Image {
	img, err := raster.New(w, h)
	if err != nil {
		panic(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, float32(x%16)/16, float32(y%16)/16, float32((x+y)%16)/16)
		}
	}
	return img
}

func samePixels(a, b *raster.Image) bool {
	if a.W != b.W || a.H != b.H {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

func TestCompositeRejectsInvalidRaster(t *testing.T) {
	c := New(testLogger())
	_, err := c.Composite(&raster.Image{}, nil, Options{})
	if !errors.Is(err, raster.ErrInvalidImage) {
		t.Fatalf("error = %v, want ErrInvalidImage", err)
	}
}

func TestCompositeEmptySelectionIsIdentity(t *testing.T) {
	c := New(testLogger())
	img := gradientImage(64, 48)

	out, err := c.Composite(img, nil, Options{Mode: ModeBlur, Feather: true})
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if !samePixels(img, out) {
		t.Fatal("empty selection changed the image")
	}
	if out == img {
		t.Fatal("Composite returned the input raster instead of a copy")
	}
}

func TestCompositeHideFillsRegionCenter(t *testing.T) {
	// 100x100 solid gray, one circle r=20 at (50,50), hide with black.
	c := New(testLogger())
	img := grayImage(100, 100, 128)
	regions := region.Set{region.NewCircle(50, 50, 20, 100)}

	out, err := c.Composite(img, regions, Options{Mode: ModeHide, Fill: FillColor{0, 0, 0}, Feather: true})
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}

	if r, g, b := out.At(50, 50); r != 0 || g != 0 || b != 0 {
		t.Fatalf("center pixel = (%v,%v,%v), want (0,0,0)", r, g, b)
	}
	wr, _, _ := img.At(5, 5)
	if r, _, _ := out.At(5, 5); r != wr {
		t.Fatalf("far pixel changed from %v to %v", wr, r)
	}
}

func TestCompositeBlurZeroIntensityIsIdentity(t *testing.T) {
	c := New(testLogger())
	img := gradientImage(100, 100)
	regions := region.Set{region.NewCircle(50, 50, 20, 0)}

	out, err := c.Composite(img, regions, Options{Mode: ModeBlur, Feather: true})
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if !samePixels(img, out) {
		t.Fatal("blur at intensity 0 changed the image")
	}
}

func TestCompositeLocalityHardMask(t *testing.T) {
	c := New(testLogger())
	img := gradientImage(100, 100)
	circ := region.NewCircle(50, 50, 15, 80)
	regions := region.Set{circ}

	out, err := c.Composite(img, regions, Options{Mode: ModeBlur, Feather: false})
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}

	changed := false
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			inside := region.Contains(circ, float64(x), float64(y))
			ir, ig, ib := img.At(x, y)
			or, og, ob := out.At(x, y)
			if !inside && (ir != or || ig != og || ib != ob) {
				t.Fatalf("pixel (%d,%d) outside the region changed", x, y)
			}
			if inside && (ir != or || ig != og || ib != ob) {
				changed = true
			}
		}
	}
	if !changed {
		t.Fatal("no pixel inside the region changed")
	}
}

func TestCompositePaintOrderDominance(t *testing.T) {
	c := New(testLogger())
	img := gradientImage(100, 100)
	a := region.NewCircle(45, 50, 18, 20)
	b := region.NewCircle(55, 50, 18, 90)

	ab, err := c.Composite(img, region.Set{a, b}, Options{Mode: ModeBlur, Feather: true})
	if err != nil {
		t.Fatalf("Composite(a,b): %v", err)
	}
	ba, err := c.Composite(img, region.Set{b, a}, Options{Mode: ModeBlur, Feather: true})
	if err != nil {
		t.Fatalf("Composite(b,a): %v", err)
	}

	// Overlap center: the later region's blur strength dominates, so the
	// two orders disagree there.
	if r1, g1, b1 := ab.At(50, 50); func() bool {
		r2, g2, b2 := ba.At(50, 50)
		return r1 == r2 && g1 == g2 && b1 == b2
	}() {
		t.Fatal("swapping paint order did not change the overlap")
	}

	// Deterministic: the same order reproduces bit-identical output.
	ab2, err := c.Composite(img, region.Set{a, b}, Options{Mode: ModeBlur, Feather: true})
	if err != nil {
		t.Fatalf("Composite(a,b) repeat: %v", err)
	}
	if !samePixels(ab, ab2) {
		t.Fatal("repeated compositing produced different output")
	}
}

func TestCompositeDisjointRegionsAreIndependent(t *testing.T) {
	c := New(testLogger())
	img := gradientImage(200, 100)
	left := region.NewCircle(40, 50, 15, 30)
	right := region.NewCircle(160, 50, 15, 90)

	both, err := c.Composite(img, region.Set{left, right}, Options{Mode: ModeBlur, Feather: true})
	if err != nil {
		t.Fatalf("Composite(both): %v", err)
	}
	onlyLeft, err := c.Composite(img, region.Set{left}, Options{Mode: ModeBlur, Feather: true})
	if err != nil {
		t.Fatalf("Composite(left): %v", err)
	}
	onlyRight, err := c.Composite(img, region.Set{right}, Options{Mode: ModeBlur, Feather: true})
	if err != nil {
		t.Fatalf("Composite(right): %v", err)
	}

	// Pixels far from both regions are untouched.
	for _, p := range [][2]int{{100, 10}, {5, 5}, {195, 95}} {
		ir, ig, ib := img.At(p[0], p[1])
		or, og, ob := both.At(p[0], p[1])
		if ir != or || ig != og || ib != ob {
			t.Fatalf("pixel (%d,%d) far from both regions changed", p[0], p[1])
		}
	}

	// Each region's interior matches compositing it alone: the regions are
	// far enough apart that neither transform reaches the other.
	const tol = 1e-6
	for _, tc := range []struct {
		r     region.Region
		alone *raster.Image
	}{{left, onlyLeft}, {right, onlyRight}} {
		a := tc.r.Shared()
		for dy := -10; dy <= 10; dy++ {
			for dx := -10; dx <= 10; dx++ {
				x, y := int(a.CenterX)+dx, int(a.CenterY)+dy
				br, bg, bb := both.At(x, y)
				ar, ag, ab := tc.alone.At(x, y)
				if math.Abs(float64(br-ar)) > tol || math.Abs(float64(bg-ag)) > tol || math.Abs(float64(bb-ab)) > tol {
					t.Fatalf("pixel (%d,%d): combined %v,%v,%v vs isolated %v,%v,%v",
						x, y, br, bg, bb, ar, ag, ab)
				}
			}
		}
	}
}

func TestKernelSizeLaw(t *testing.T) {
	cases := []struct {
		sigma float64
		want  int
	}{
		{0.5, 3},
		{1, 3},
		{2, 7}, // floor(6) bumped to odd
		{3, 9},
		{10, 31},
	}
	for _, tc := range cases {
		if got := kernelSize(tc.sigma); got != tc.want {
			t.Errorf("kernelSize(%v) = %d, want %d", tc.sigma, got, tc.want)
		}
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	for _, sigma := range []float64{0.5, 1, 2.5, 10} {
		k := gaussianKernel(sigma)
		if len(k)%2 != 1 {
			t.Errorf("sigma %v: kernel size %d is even", sigma, len(k))
		}
		sum := 0.0
		for _, v := range k {
			sum += float64(v)
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Errorf("sigma %v: kernel sum = %v, want 1", sigma, sum)
		}
		// Symmetric around the center tap.
		for i := 0; i < len(k)/2; i++ {
			if k[i] != k[len(k)-1-i] {
				t.Errorf("sigma %v: kernel asymmetric at tap %d", sigma, i)
			}
		}
	}
}

func TestKernelCacheReusesQuantizedSigma(t *testing.T) {
	kc := newKernelCache()
	a := kc.get(2.5)
	b := kc.get(2.501) // quantizes to the same key
	if &a[0] != &b[0] {
		t.Fatal("near-identical sigmas did not share a cached kernel")
	}
	c := kc.get(3.0)
	if &a[0] == &c[0] {
		t.Fatal("distinct sigmas shared a kernel")
	}
}

func TestBlurPreservesConstantImage(t *testing.T) {
	img := grayImage(32, 32, 128)
	out := blur(img, gaussianKernel(5))
	for i, v := range out.Pix {
		if math.Abs(float64(v-img.Pix[i])) > 1e-5 {
			t.Fatalf("constant image changed at %d: %v -> %v", i, img.Pix[i], v)
		}
	}
}
