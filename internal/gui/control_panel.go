// Control panel: shape, effect mode, intensity, feather and prefilter
package gui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"privacy-image-editor/internal/algorithms"
	"privacy-image-editor/internal/compose"
	"privacy-image-editor/internal/region"
)

const prefilterNone = "none"

// ControlCallbacks routes panel changes back to the application.
type ControlCallbacks struct {
	OnShapeChanged     func(region.Kind)
	OnModeChanged      func(compose.Mode)
	OnIntensityChanged func(int)
	OnFeatherChanged   func(bool)
	OnFillChanged      func(compose.FillColor)
	OnPrefilterChanged func(string)
	OnDelete           func()
	OnReset            func()
}

// ControlPanel holds the editing controls on the right side of the
// window. All controls start disabled until an image is loaded.
type ControlPanel struct {
	window fyne.Window
	logger *logrus.Logger

	shapeSelect     *widget.RadioGroup
	modeSelect      *widget.RadioGroup
	intensitySlider *widget.Slider
	intensityLabel  *widget.Label
	featherCheck    *widget.Check
	fillButton      *widget.Button
	prefilterSelect *widget.Select
	deleteButton    *widget.Button
	resetButton     *widget.Button

	callbacks ControlCallbacks
	container *fyne.Container
}

func NewControlPanel(window fyne.Window, logger *logrus.Logger) *ControlPanel {
	cp := &ControlPanel{
		window: window,
		logger: logger,
	}
	cp.buildControls()
	cp.buildLayout()
	cp.Disable()
	return cp
}

func (cp *ControlPanel) buildControls() {
	cp.shapeSelect = widget.NewRadioGroup([]string{"Circle", "Rectangle", "Ellipse"}, func(s string) {
		if cp.callbacks.OnShapeChanged == nil {
			return
		}
		switch s {
		case "Rectangle":
			cp.callbacks.OnShapeChanged(region.KindRectangle)
		case "Ellipse":
			cp.callbacks.OnShapeChanged(region.KindEllipse)
		default:
			cp.callbacks.OnShapeChanged(region.KindCircle)
		}
	})
	cp.shapeSelect.SetSelected("Circle")

	cp.modeSelect = widget.NewRadioGroup([]string{"Blur", "Hide"}, func(s string) {
		if cp.callbacks.OnModeChanged == nil {
			return
		}
		if s == "Hide" {
			cp.callbacks.OnModeChanged(compose.ModeHide)
		} else {
			cp.callbacks.OnModeChanged(compose.ModeBlur)
		}
	})
	cp.modeSelect.SetSelected("Blur")

	cp.intensityLabel = widget.NewLabel("Intensity: 50%")
	cp.intensitySlider = widget.NewSlider(0, 100)
	cp.intensitySlider.SetValue(50)
	cp.intensitySlider.OnChanged = func(v float64) {
		cp.intensityLabel.SetText(intensityText(int(v)))
		if cp.callbacks.OnIntensityChanged != nil {
			cp.callbacks.OnIntensityChanged(int(v))
		}
	}

	cp.featherCheck = widget.NewCheck("Feather edges", func(on bool) {
		if cp.callbacks.OnFeatherChanged != nil {
			cp.callbacks.OnFeatherChanged(on)
		}
	})
	cp.featherCheck.SetChecked(true)

	cp.fillButton = widget.NewButton("Fill Color...", func() {
		picker := dialog.NewColorPicker("Fill Color", "Color used by the hide effect", func(c color.Color) {
			r, g, b, _ := c.RGBA()
			fill := compose.FillColor{
				R: float32(r) / 65535,
				G: float32(g) / 65535,
				B: float32(b) / 65535,
			}
			if cp.callbacks.OnFillChanged != nil {
				cp.callbacks.OnFillChanged(fill)
			}
		}, cp.window)
		picker.Advanced = true
		picker.Show()
	})

	prefilterNames := append([]string{prefilterNone}, algorithms.Names()...)
	cp.prefilterSelect = widget.NewSelect(prefilterNames, func(name string) {
		if cp.callbacks.OnPrefilterChanged != nil {
			cp.callbacks.OnPrefilterChanged(name)
		}
	})
	cp.prefilterSelect.SetSelected(prefilterNone)

	cp.deleteButton = widget.NewButton("Delete Region", func() {
		if cp.callbacks.OnDelete != nil {
			cp.callbacks.OnDelete()
		}
	})

	cp.resetButton = widget.NewButton("Remove All Regions", func() {
		if cp.callbacks.OnReset != nil {
			cp.callbacks.OnReset()
		}
	})
}

func (cp *ControlPanel) buildLayout() {
	cp.container = container.NewVBox(
		widget.NewCard("Shape", "", cp.shapeSelect),
		widget.NewCard("Effect", "", container.NewVBox(
			cp.modeSelect,
			cp.fillButton,
			cp.intensityLabel,
			cp.intensitySlider,
			cp.featherCheck,
		)),
		widget.NewCard("Prefilter", "", cp.prefilterSelect),
		widget.NewSeparator(),
		cp.deleteButton,
		cp.resetButton,
	)
}

// SetCallbacks installs the panel callbacks.
func (cp *ControlPanel) SetCallbacks(callbacks ControlCallbacks) {
	cp.callbacks = callbacks
}

// SetIntensity moves the slider without firing the change callback,
// used when selecting a region adopts its stored intensity.
func (cp *ControlPanel) SetIntensity(v int) {
	saved := cp.callbacks.OnIntensityChanged
	cp.callbacks.OnIntensityChanged = nil
	cp.intensitySlider.SetValue(float64(v))
	cp.intensityLabel.SetText(intensityText(v))
	cp.callbacks.OnIntensityChanged = saved
}

func (cp *ControlPanel) Enable() {
	cp.shapeSelect.Enable()
	cp.modeSelect.Enable()
	cp.intensitySlider.Enable()
	cp.featherCheck.Enable()
	cp.fillButton.Enable()
	cp.prefilterSelect.Enable()
	cp.deleteButton.Enable()
	cp.resetButton.Enable()
}

func (cp *ControlPanel) Disable() {
	cp.shapeSelect.Disable()
	cp.modeSelect.Disable()
	cp.intensitySlider.Disable()
	cp.featherCheck.Disable()
	cp.fillButton.Disable()
	cp.prefilterSelect.Disable()
	cp.deleteButton.Disable()
	cp.resetButton.Disable()
}

// GetContainer returns the panel's root container.
func (cp *ControlPanel) GetContainer() *fyne.Container {
	return cp.container
}

func intensityText(v int) string {
	return fmt.Sprintf("Intensity: %d%%", v)
}
