// Interactive canvas widget: image display, region gestures and overlay
package gui

import (
	"image"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"privacy-image-editor/internal/interaction"
	"privacy-image-editor/internal/raster"
	"privacy-image-editor/internal/region"
	"privacy-image-editor/internal/render"
)

// EditorCanvas is a custom widget that shows the composited preview and
// routes pointer gestures into the interaction controller. It owns the
// region set; every gesture that changes it fires onRegionsChanged.
type EditorCanvas struct {
	widget.BaseWidget

	store      *raster.Store
	controller *interaction.Controller
	logger     *logrus.Logger

	regions region.Set
	kind    region.Kind

	preview *canvas.Image
	overlay *canvas.Raster

	onRegionsChanged   func(region.Set)
	onSelectionChanged func(bool)
}

// NewEditorCanvas creates the canvas over a raster store and controller.
func NewEditorCanvas(store *raster.Store, controller *interaction.Controller, logger *logrus.Logger) *EditorCanvas {
	ec := &EditorCanvas{
		store:      store,
		controller: controller,
		logger:     logger,
		kind:       region.KindCircle,
	}
	ec.ExtendBaseWidget(ec)
	return ec
}

// CreateRenderer creates the renderer for the editor canvas.
func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	ec.preview = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	ec.preview.FillMode = canvas.ImageFillContain

	ec.overlay = canvas.NewRaster(func(w, h int) image.Image {
		return ec.renderOverlay(w, h)
	})

	return &editorCanvasRenderer{
		preview: ec.preview,
		overlay: ec.overlay,
	}
}

// SetCallbacks installs the region-set and selection change callbacks.
func (ec *EditorCanvas) SetCallbacks(onRegionsChanged func(region.Set), onSelectionChanged func(bool)) {
	ec.onRegionsChanged = onRegionsChanged
	ec.onSelectionChanged = onSelectionChanged
}

// SetShapeKind selects the shape created by the next empty-canvas press.
func (ec *EditorCanvas) SetShapeKind(kind region.Kind) {
	ec.kind = kind
	ec.logger.WithField("kind", kind.String()).Debug("Shape tool changed")
}

// Regions returns the current region set.
func (ec *EditorCanvas) Regions() region.Set {
	return ec.regions
}

// SetRegions replaces the region set, refreshing the overlay. Used by
// panel-driven edits (delete, intensity) that bypass pointer gestures.
func (ec *EditorCanvas) SetRegions(set region.Set) {
	ec.regions = set
	ec.RefreshOverlay()
}

// ResetRegions drops all regions and gesture state for a new image.
func (ec *EditorCanvas) ResetRegions() {
	meta := ec.store.Meta()
	ec.regions = nil
	ec.controller.Reset(meta.Width, meta.Height)
	ec.RefreshOverlay()
}

// UpdatePreview replaces the displayed image.
func (ec *EditorCanvas) UpdatePreview(img image.Image) {
	if img == nil {
		return
	}
	ec.preview.Image = img
	ec.preview.Refresh()
}

// RefreshOverlay re-renders region outlines and handles.
func (ec *EditorCanvas) RefreshOverlay() {
	if ec.overlay != nil {
		ec.overlay.Refresh()
	}
}

// Mouse event handlers.

func (ec *EditorCanvas) MouseDown(event *desktop.MouseEvent) {
	if !ec.store.HasImage() {
		return
	}
	x, y := ec.screenToImage(event.Position)
	before := len(ec.regions)
	ec.regions = ec.controller.PointerDown(ec.regions, x, y, ec.kind)

	if len(ec.regions) != before {
		ec.notifyRegionsChanged()
	}
	ec.notifySelectionChanged()
	ec.RefreshOverlay()
}

func (ec *EditorCanvas) MouseUp(event *desktop.MouseEvent) {
	ec.controller.PointerUp()
}

func (ec *EditorCanvas) Dragged(event *fyne.DragEvent) {
	if !ec.store.HasImage() || ec.controller.Mode() == interaction.ModeIdle {
		return
	}
	x, y := ec.screenToImage(event.Position)
	ec.regions = ec.controller.PointerMove(ec.regions, x, y)
	ec.RefreshOverlay()
}

func (ec *EditorCanvas) DragEnd() {
	ec.controller.PointerUp()
	// One compositing pass per finished gesture, not per drag event.
	ec.notifyRegionsChanged()
}

// screenToImage converts a widget position to raster coordinates,
// accounting for the contain-fit letterboxing of the preview image.
func (ec *EditorCanvas) screenToImage(pos fyne.Position) (float64, float64) {
	meta := ec.store.Meta()
	if meta.Width == 0 || meta.Height == 0 {
		return 0, 0
	}
	size := ec.Size()
	tr := containTransform(float64(size.Width), float64(size.Height), meta.Width, meta.Height)

	x := (float64(pos.X) - tr.OffsetX) / tr.Scale
	y := (float64(pos.Y) - tr.OffsetY) / tr.Scale

	x = math.Max(0, math.Min(x, float64(meta.Width-1)))
	y = math.Max(0, math.Min(y, float64(meta.Height-1)))
	return x, y
}

// renderOverlay draws outlines, handles and labels at display resolution.
func (ec *EditorCanvas) renderOverlay(w, h int) image.Image {
	meta := ec.store.Meta()
	if meta.Width == 0 || meta.Height == 0 || len(ec.regions) == 0 {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	tr := containTransform(float64(w), float64(h), meta.Width, meta.Height)
	return render.Overlay(w, h, ec.regions, ec.controller.SelectedIndex(), tr)
}

// containTransform computes the raster-to-display mapping produced by
// ImageFillContain: uniform scale, centered.
func containTransform(dispW, dispH float64, rasterW, rasterH int) render.Transform {
	scale := math.Min(dispW/float64(rasterW), dispH/float64(rasterH))
	return render.Transform{
		Scale:   scale,
		OffsetX: (dispW - float64(rasterW)*scale) / 2,
		OffsetY: (dispH - float64(rasterH)*scale) / 2,
	}
}

func (ec *EditorCanvas) notifyRegionsChanged() {
	if ec.onRegionsChanged != nil {
		ec.onRegionsChanged(ec.regions)
	}
}

func (ec *EditorCanvas) notifySelectionChanged() {
	if ec.onSelectionChanged != nil {
		ec.onSelectionChanged(ec.controller.SelectedIndex() >= 0)
	}
}

// editorCanvasRenderer stacks the preview image under the overlay.
type editorCanvasRenderer struct {
	preview *canvas.Image
	overlay *canvas.Raster
}

func (r *editorCanvasRenderer) Layout(size fyne.Size) {
	r.preview.Resize(size)
	r.overlay.Resize(size)
}

func (r *editorCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *editorCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.preview, r.overlay}
}

func (r *editorCanvasRenderer) Refresh() {
	r.preview.Refresh()
	r.overlay.Refresh()
}

func (r *editorCanvasRenderer) Destroy() {
}
