// Main application window: wiring between store, controller and pipeline
package gui

import (
	"fmt"
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"privacy-image-editor/internal/algorithms"
	"privacy-image-editor/internal/compose"
	"privacy-image-editor/internal/interaction"
	"privacy-image-editor/internal/io"
	"privacy-image-editor/internal/raster"
	"privacy-image-editor/internal/region"
)

// previewDelay is the debounce window between an edit and the preview
// compositing pass it triggers.
const previewDelay = 200 * time.Millisecond

// Application is the main application.
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *logrus.Logger

	store      *raster.Store
	loader     *io.Loader
	controller *interaction.Controller
	scheduler  *compose.Scheduler

	canvas      *EditorCanvas
	controls    *ControlPanel
	menuHandler *MenuHandler
	statusLabel *widget.Label

	// original is the decoded file image; the store holds the working
	// base with any prefilter already applied.
	original  image.Image
	prefilter string
	opts      compose.Options
}

func NewApplication(app fyne.App, logger *logrus.Logger, device interaction.Device) *Application {
	window := app.NewWindow("Privacy Image Editor")
	window.Resize(fyne.NewSize(1400, 900))
	window.CenterOnScreen()

	a := &Application{
		app:       app,
		window:    window,
		logger:    logger,
		prefilter: prefilterNone,
		opts: compose.Options{
			Mode:    compose.ModeBlur,
			Fill:    compose.FillColor{},
			Feather: true,
		},
	}

	a.initializeCore(device)
	a.initializeGUI()
	a.setupLayout()
	a.setupCallbacks()

	return a
}

func (a *Application) initializeCore(device interaction.Device) {
	a.store = raster.NewStore()
	a.loader = io.NewLoader(a.logger)
	a.controller = interaction.NewController(device, 0, 0, a.logger)
	a.scheduler = compose.NewScheduler(compose.New(a.logger), a.logger, previewDelay, fyne.Do)
}

func (a *Application) initializeGUI() {
	a.canvas = NewEditorCanvas(a.store, a.controller, a.logger)
	a.controls = NewControlPanel(a.window, a.logger)
	a.menuHandler = NewMenuHandler(a.window, a.store, a.logger)
	a.statusLabel = widget.NewLabel("Open an image to start")
}

func (a *Application) setupLayout() {
	right := container.NewScroll(a.controls.GetContainer())

	split := container.NewHSplit(
		container.NewPadded(a.canvas),
		right,
	)
	split.SetOffset(0.78)

	content := container.NewBorder(
		nil,           // top
		a.statusLabel, // bottom
		nil,           // left
		nil,           // right
		split,
	)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(content)
}

func (a *Application) setupCallbacks() {
	a.scheduler.SetCallbacks(
		// onResult, already on the UI thread via fyne.Do
		func(result *raster.Image) {
			if err := a.store.SetProcessed(result); err != nil {
				a.showError(err)
				return
			}
			a.canvas.UpdatePreview(result.ToImage())
		},
		// onError
		func(err error) {
			a.showError(err)
		},
	)

	a.canvas.SetCallbacks(
		// onRegionsChanged
		func(set region.Set) {
			a.requestPreview()
			a.setStatus(fmt.Sprintf("%d region(s)", len(set)))
		},
		// onSelectionChanged
		func(hasSelection bool) {
			if i := a.controller.SelectedIndex(); hasSelection && i < len(a.canvas.Regions()) {
				a.controls.SetIntensity(a.canvas.Regions()[i].Shared().Intensity)
			}
		},
	)

	a.controls.SetCallbacks(ControlCallbacks{
		OnShapeChanged: func(kind region.Kind) {
			a.canvas.SetShapeKind(kind)
		},
		OnModeChanged: func(mode compose.Mode) {
			a.opts.Mode = mode
			a.requestPreview()
		},
		OnIntensityChanged: func(v int) {
			a.canvas.SetRegions(a.controller.SetIntensity(a.canvas.Regions(), v))
			a.requestPreview()
		},
		OnFeatherChanged: func(on bool) {
			a.opts.Feather = on
			a.requestPreview()
		},
		OnFillChanged: func(fill compose.FillColor) {
			a.opts.Fill = fill
			a.requestPreview()
		},
		OnPrefilterChanged: func(name string) {
			a.setPrefilter(name)
		},
		OnDelete: func() {
			a.canvas.SetRegions(a.controller.DeleteSelected(a.canvas.Regions()))
			a.requestPreview()
		},
		OnReset: func() {
			a.canvas.ResetRegions()
			a.requestPreview()
		},
	})

	a.menuHandler.SetCallbacks(a.loadImage, a.saveImage)
}

// requestPreview submits a debounced compositing pass over the working
// base raster and the current region set.
func (a *Application) requestPreview() {
	if !a.store.HasImage() {
		return
	}
	a.scheduler.Submit(compose.Request{
		Image:   a.store.Original(),
		Regions: a.canvas.Regions().Clone(),
		Opts:    a.opts,
	})
}

// LoadImageFromPath opens an image without going through the file
// dialog, used for the -image startup flag.
func (a *Application) LoadImageFromPath(path string) {
	a.loadImage(path)
}

func (a *Application) loadImage(path string) {
	img, err := a.loader.Load(path)
	if err != nil {
		a.showError(err)
		return
	}

	a.original = img
	base, err := raster.FromImage(img)
	if err != nil {
		a.showError(err)
		return
	}
	if err := a.store.SetOriginal(base, path); err != nil {
		a.showError(err)
		return
	}

	a.prefilter = prefilterNone
	a.canvas.ResetRegions()
	a.canvas.UpdatePreview(base.ToImage())
	a.controls.Enable()
	a.setStatus(fmt.Sprintf("Loaded %s (%dx%d)", path, base.W, base.H))
}

// setPrefilter rebuilds the working base from the decoded original,
// keeping the marked regions intact.
func (a *Application) setPrefilter(name string) {
	if a.original == nil || name == a.prefilter {
		return
	}

	working := a.original
	if name != prefilterNone {
		filter, ok := algorithms.Get(name)
		if !ok {
			a.showError(fmt.Errorf("unknown prefilter: %s", name))
			return
		}
		filtered, err := algorithms.ApplyToImage(name, a.original, filter.GetDefaultParams())
		if err != nil {
			a.showError(err)
			return
		}
		working = filtered
	}

	base, err := raster.FromImage(working)
	if err != nil {
		a.showError(err)
		return
	}
	if err := a.store.SetOriginal(base, a.store.Filepath()); err != nil {
		a.showError(err)
		return
	}

	a.prefilter = name
	a.logger.WithField("prefilter", name).Info("Prefilter applied")
	a.canvas.UpdatePreview(base.ToImage())
	a.requestPreview()
}

func (a *Application) saveImage(path string) {
	processed := a.store.Processed()
	if processed == nil {
		a.showError(fmt.Errorf("no image to save"))
		return
	}
	if err := a.loader.Save(processed.ToImage(), path); err != nil {
		a.showError(err)
		return
	}
	a.setStatus(fmt.Sprintf("Saved %s", path))
}

func (a *Application) setStatus(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) showError(err error) {
	a.logger.WithError(err).Error("Operation failed")
	dialog.ShowError(err, a.window)
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.scheduler.Stop()
	a.store.Clear()
}
