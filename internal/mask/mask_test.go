package mask

import (
	"errors"
	"math"
	"testing"

	"privacy-image-editor/internal/raster"
	"privacy-image-editor/internal/region"
)

func TestBuildRejectsEmptyRaster(t *testing.T) {
	if _, err := Build(region.NewCircle(0, 0, 5, 0), 0, 10, false); !errors.Is(err, raster.ErrInvalidImage) {
		t.Fatalf("error = %v, want ErrInvalidImage", err)
	}
}

func TestHardMaskAgreesWithContainment(t *testing.T) {
	regions := []region.Region{
		region.NewCircle(50, 50, 20, 0),
		region.NewRectangle(50, 50, 30, 12, 0),
		region.NewEllipse(50, 50, 24, 14, 0),
	}
	for _, r := range regions {
		m, err := Build(r, 100, 100, false)
		if err != nil {
			t.Fatalf("%v: Build: %v", r.Kind(), err)
		}
		for y := 0; y < 100; y++ {
			for x := 0; x < 100; x++ {
				inside := region.Contains(r, float64(x), float64(y))
				v := m.At(x, y)
				if inside && v != 1 {
					t.Fatalf("%v: mask %v at interior point (%d,%d)", r.Kind(), v, x, y)
				}
				if !inside && v != 0 {
					t.Fatalf("%v: mask %v at exterior point (%d,%d)", r.Kind(), v, x, y)
				}
			}
		}
	}
}

func TestHardMaskAreaMatchesAnalyticArea(t *testing.T) {
	cases := []struct {
		r         region.Region
		area      float64
		perimeter float64
	}{
		{region.NewCircle(50, 50, 20, 0), math.Pi * 400, 2 * math.Pi * 20},
		{region.NewRectangle(50, 50, 30, 12, 0), 360, 84},
		{region.NewEllipse(50, 50, 24, 14, 0), math.Pi * 24 * 14, 2 * math.Pi * 19},
	}
	for _, tc := range cases {
		m, err := Build(tc.r, 100, 100, false)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		sum := 0.0
		for _, v := range m.Pix {
			sum += float64(v)
		}
		// Discretization error is on the order of the perimeter.
		if diff := math.Abs(sum - tc.area); diff > tc.perimeter {
			t.Errorf("%v: mask area %v vs analytic %v (diff %v > perimeter %v)",
				tc.r.Kind(), sum, tc.area, diff, tc.perimeter)
		}
	}
}

func TestFeatheredMaskIsHalfAtBoundary(t *testing.T) {
	c := region.NewCircle(50, 50, 20, 0)
	m, err := Build(c, 100, 100, true)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// (70, 50) sits exactly on the circle boundary.
	if v := m.At(70, 50); math.Abs(float64(v)-0.5) > 0.01 {
		t.Fatalf("mask at boundary = %v, want ~0.5", v)
	}
}

func TestFeatheredMaskMonotoneAlongRay(t *testing.T) {
	c := region.NewCircle(50, 50, 20, 0)
	m, err := Build(c, 100, 100, true)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	prev := float32(2)
	for x := 50; x < 100; x++ {
		v := m.At(x, 50)
		if v > prev {
			t.Fatalf("mask increased from %v to %v moving outward at x=%d", prev, v, x)
		}
		prev = v
	}
	if m.At(50, 50) != 1 {
		t.Fatalf("mask at center = %v, want 1", m.At(50, 50))
	}
	if m.At(99, 50) != 0 {
		t.Fatalf("mask far outside = %v, want 0", m.At(99, 50))
	}
}

func TestFeatherWidthFloorsAtThree(t *testing.T) {
	small := region.NewCircle(0, 0, 10, 0)
	if got := FeatherWidth(small); got != 3 {
		t.Errorf("feather width = %v for r=10, want floor of 3", got)
	}
	big := region.NewCircle(0, 0, 80, 0)
	if got := FeatherWidth(big); got != 8 {
		t.Errorf("feather width = %v for r=80, want 8", got)
	}
}

func TestFeatheredRectangleRampsPerEdge(t *testing.T) {
	r := region.NewRectangle(50, 50, 40, 40, 0)
	m, err := Build(r, 100, 100, true)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Edge midpoints sit on the boundary on all four sides.
	for _, p := range [][2]int{{70, 50}, {30, 50}, {50, 70}, {50, 30}} {
		if v := m.At(p[0], p[1]); math.Abs(float64(v)-0.5) > 0.01 {
			t.Errorf("mask at edge (%d,%d) = %v, want ~0.5", p[0], p[1], v)
		}
	}
	// Deep interior is fully opaque.
	if v := m.At(50, 50); v != 1 {
		t.Errorf("mask at center = %v, want 1", v)
	}
}
