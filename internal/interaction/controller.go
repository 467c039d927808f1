// Pointer/touch state machine driving region creation, moves and resizes
package interaction

import (
	"github.com/sirupsen/logrus"

	"privacy-image-editor/internal/region"
)

// Device distinguishes pointer precision classes. It changes default sizes
// and hit-test tolerances only, never algorithmic behavior.
type Device int

const (
	DeviceMouse Device = iota
	DeviceTouch
)

// tuning per device class, in raster pixels.
type tuning struct {
	minSize         float64
	handleHitRadius float64
	defaultHalfSize float64
}

func tuningFor(d Device) tuning {
	if d == DeviceTouch {
		return tuning{minSize: 20, handleHitRadius: 15, defaultHalfSize: 50}
	}
	return tuning{minSize: 10, handleHitRadius: 10, defaultHalfSize: 40}
}

// Mode is the gesture state. Illegal combinations (dragging while
// resizing) are unrepresentable: one mode value, one active handle.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeResizing
)

// DefaultIntensity is assigned to newly created regions.
const DefaultIntensity = 50

// Controller turns a serial stream of pointer events into selection-set
// mutations. It never mutates an input set; every change produces a fresh
// set. All gesture state is private to the controller.
type Controller struct {
	device  Device
	tune    tuning
	logger  *logrus.Logger
	rasterW int
	rasterH int

	selected int
	mode     Mode
	handle   region.HandleID
	anchorX  float64
	anchorY  float64
}

// NewController creates a controller for the given device class and
// raster dimensions.
func NewController(device Device, rasterW, rasterH int, logger *logrus.Logger) *Controller {
	return &Controller{
		device:   device,
		tune:     tuningFor(device),
		logger:   logger,
		rasterW:  rasterW,
		rasterH:  rasterH,
		selected: -1,
	}
}

// Reset clears all gesture state and adopts new raster dimensions; called
// whenever a new image is loaded.
func (c *Controller) Reset(rasterW, rasterH int) {
	c.rasterW = rasterW
	c.rasterH = rasterH
	c.selected = -1
	c.mode = ModeIdle
}

// SelectedIndex returns the index of the selected region, or -1.
func (c *Controller) SelectedIndex() int { return c.selected }

// Mode returns the current gesture mode.
func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) limits() region.Limits {
	return region.LimitsFor(c.tune.minSize, c.rasterW, c.rasterH)
}

// PointerDown handles a press at raster-space (x, y). Exactly one of three
// things happens: a resize begins on the selected region's handle, an
// existing region is selected (topmost first), or a new region of the
// given kind is created, appended and selected.
func (c *Controller) PointerDown(set region.Set, x, y float64, kind region.Kind) region.Set {
	c.anchorX, c.anchorY = x, y

	// Handles of the already-selected region always win over selecting or
	// creating, so a resize grip near another shape stays grabbable.
	if c.selected >= 0 && c.selected < len(set) {
		if h, ok := region.HitHandle(set[c.selected], x, y, c.tune.handleHitRadius); ok {
			c.mode = ModeResizing
			c.handle = h
			c.logger.WithFields(logrus.Fields{
				"index":  c.selected,
				"handle": h.String(),
			}).Debug("Resize gesture started")
			return set
		}
	}

	if i, ok := set.TopmostAt(x, y); ok {
		c.selected = i
		c.mode = ModeDragging
		c.logger.WithFields(logrus.Fields{
			"index": i,
			"id":    set[i].Shared().ID,
		}).Debug("Region selected")
		return set
	}

	r := region.New(kind, x, y, c.tune.defaultHalfSize, DefaultIntensity)
	r = region.ClampSizes(r, c.limits())
	r = region.TranslateBy(r, 0, 0, c.rasterW, c.rasterH)

	out := set.Append(r)
	c.selected = len(out) - 1
	c.mode = ModeDragging
	c.logger.WithFields(logrus.Fields{
		"kind": kind.String(),
		"id":   r.Shared().ID,
		"x":    x,
		"y":    y,
	}).Debug("Region created")
	return out
}

// PointerMove handles pointer motion. Idle moves are no-ops; dragging
// translates the selected region by the delta since the last event with
// boundary clamping; resizing routes through the geometry kernel.
func (c *Controller) PointerMove(set region.Set, x, y float64) region.Set {
	if c.mode == ModeIdle || c.selected < 0 || c.selected >= len(set) {
		return set
	}

	var updated region.Region
	switch c.mode {
	case ModeDragging:
		dx, dy := x-c.anchorX, y-c.anchorY
		updated = region.TranslateBy(set[c.selected], dx, dy, c.rasterW, c.rasterH)
	case ModeResizing:
		updated = region.ResizeTo(set[c.selected], c.handle, x, y, c.limits())
	default:
		return set
	}

	c.anchorX, c.anchorY = x, y
	return set.Replace(c.selected, updated)
}

// PointerUp ends the active gesture. The set is never altered on release.
func (c *Controller) PointerUp() {
	c.mode = ModeIdle
}

// DeleteSelected removes the selected region; a silent no-op when nothing
// is selected.
func (c *Controller) DeleteSelected(set region.Set) region.Set {
	if c.selected < 0 || c.selected >= len(set) {
		return set
	}
	out := set.Remove(c.selected)
	c.logger.WithField("id", set[c.selected].Shared().ID).Debug("Region deleted")
	c.selected = -1
	c.mode = ModeIdle
	return out
}

// SetIntensity sets the transform strength (clamped to [0, 100]) on the
// selected region only; a silent no-op when nothing is selected.
func (c *Controller) SetIntensity(set region.Set, v int) region.Set {
	if c.selected < 0 || c.selected >= len(set) {
		return set
	}
	return set.Replace(c.selected, region.WithIntensity(set[c.selected], v))
}
