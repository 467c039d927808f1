// Debounced latest-wins scheduler for compositing requests
package compose

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"privacy-image-editor/internal/raster"
	"privacy-image-editor/internal/region"
)

// Request is one compositing job: an input raster, the region set at the
// time of submission, and the pass options.
type Request struct {
	Image   *raster.Image
	Regions region.Set
	Opts    Options
}

// Scheduler serializes compositing onto a single worker with a one-slot
// queue: a rapid burst of submissions (an intensity slider drag, say)
// produces only the final result. Stale requests are dropped, never
// queued, and a dropped request has no observable side effects.
type Scheduler struct {
	comp     *Compositor
	logger   *logrus.Logger
	delay    time.Duration
	dispatch func(func())

	onResult func(*raster.Image)
	onError  func(error)

	mu      sync.Mutex
	pending *Request
	running bool
	stopped bool
	timer   *time.Timer
	idle    sync.WaitGroup
}

// NewScheduler creates a scheduler. delay is the debounce window;
// dispatch runs result callbacks (a UI thread trampoline, typically) and
// may be nil to invoke them inline.
func NewScheduler(comp *Compositor, logger *logrus.Logger, delay time.Duration, dispatch func(func())) *Scheduler {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	return &Scheduler{
		comp:     comp,
		logger:   logger,
		delay:    delay,
		dispatch: dispatch,
	}
}

// SetCallbacks installs the result and error callbacks. Both run through
// the dispatch function.
func (s *Scheduler) SetCallbacks(onResult func(*raster.Image), onError func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResult = onResult
	s.onError = onError
}

// Submit schedules a compositing pass, replacing any not-yet-started one.
func (s *Scheduler) Submit(req Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	s.pending = &req
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// fire moves the pending request to the worker unless one is running;
// a running worker picks the pending request up when it finishes.
func (s *Scheduler) fire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.running || s.pending == nil {
		return
	}
	req := s.pending
	s.pending = nil
	s.running = true
	s.idle.Add(1)
	go s.run(req)
}

func (s *Scheduler) run(req *Request) {
	defer s.idle.Done()
	for req != nil {
		result, err := s.comp.Composite(req.Image, req.Regions, req.Opts)

		s.mu.Lock()
		onResult, onError := s.onResult, s.onError
		superseded := s.pending != nil
		s.mu.Unlock()

		if superseded {
			// A newer request arrived while compositing; this result is
			// stale, discard it without delivery.
			s.logger.Debug("Discarding superseded compositing result")
		} else if err != nil {
			s.logger.WithError(err).Error("Compositing failed")
			if onError != nil {
				s.dispatch(func() { onError(err) })
			}
		} else if onResult != nil {
			s.dispatch(func() { onResult(result) })
		}

		s.mu.Lock()
		req = s.pending
		s.pending = nil
		if req == nil {
			s.running = false
		}
		s.mu.Unlock()
	}
}

// Stop rejects further submissions and waits for the worker to drain.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	s.idle.Wait()
}
