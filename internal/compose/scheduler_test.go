package compose

import (
	"errors"
	"sync"
	"testing"
	"time"

	"privacy-image-editor/internal/raster"
	"privacy-image-editor/internal/region"
)

// collector records delivered results and errors.
type collector struct {
	mu      sync.Mutex
	results []*raster.Image
	errs    []error
}

func (c *collector) onResult(img *raster.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, img)
}

func (c *collector) onError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
}

func (c *collector) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results), len(c.errs)
}

func TestSchedulerBurstDeliversOnlyFinalResult(t *testing.T) {
	s := NewScheduler(New(testLogger()), testLogger(), 30*time.Millisecond, nil)
	defer s.Stop()

	col := &collector{}
	s.SetCallbacks(col.onResult, col.onError)

	img := grayImage(40, 40, 128)
	regions := region.Set{region.NewCircle(20, 20, 10, 100)}

	// A slider-drag style burst: five submissions inside one debounce
	// window, each with a different fill.
	for i := 0; i < 5; i++ {
		fill := float32(i) * 0.2
		s.Submit(Request{
			Image:   img,
			Regions: regions,
			Opts:    Options{Mode: ModeHide, Fill: FillColor{fill, fill, fill}, Feather: true},
		})
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if n, _ := col.counts(); n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	nResults, nErrs := col.counts()
	if nErrs != 0 {
		t.Fatalf("got %d errors: %v", nErrs, col.errs)
	}
	if nResults != 1 {
		t.Fatalf("got %d results, want only the final one", nResults)
	}

	// The delivered frame reflects the last submission's fill (0.8).
	r, _, _ := col.results[0].At(20, 20)
	if r != 0.8 {
		t.Fatalf("center fill = %v, want 0.8 from the final request", r)
	}
}

func TestSchedulerReportsCompositingErrors(t *testing.T) {
	s := NewScheduler(New(testLogger()), testLogger(), time.Millisecond, nil)
	defer s.Stop()

	col := &collector{}
	s.SetCallbacks(col.onResult, col.onError)

	s.Submit(Request{Image: &raster.Image{}, Opts: Options{Mode: ModeBlur}})

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, n := col.counts(); n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, n := col.counts(); n != 1 {
		t.Fatalf("got %d errors, want 1", n)
	}
	if !errors.Is(col.errs[0], raster.ErrInvalidImage) {
		t.Fatalf("error = %v, want ErrInvalidImage", col.errs[0])
	}
	if n, _ := col.counts(); n != 0 {
		t.Fatal("a failed pass also delivered a result")
	}
}

func TestSchedulerStopRejectsFurtherWork(t *testing.T) {
	s := NewScheduler(New(testLogger()), testLogger(), time.Millisecond, nil)

	col := &collector{}
	s.SetCallbacks(col.onResult, col.onError)

	s.Stop()
	s.Submit(Request{Image: grayImage(8, 8, 10), Opts: Options{Mode: ModeBlur}})

	time.Sleep(50 * time.Millisecond)
	if n, e := col.counts(); n != 0 || e != 0 {
		t.Fatalf("stopped scheduler delivered results=%d errors=%d", n, e)
	}
}
