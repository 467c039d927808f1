// Menu handler for file actions
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"privacy-image-editor/internal/io"
	"privacy-image-editor/internal/raster"
)

// MenuHandler owns the main menu and the open/save dialogs. Loading and
// saving themselves are delegated to the application through callbacks.
type MenuHandler struct {
	window fyne.Window
	store  *raster.Store
	logger *logrus.Logger

	onOpen func(string)
	onSave func(string)
}

func NewMenuHandler(window fyne.Window, store *raster.Store, logger *logrus.Logger) *MenuHandler {
	return &MenuHandler{
		window: window,
		store:  store,
		logger: logger,
	}
}

// SetCallbacks installs the open and save actions; each receives the
// chosen file path.
func (mh *MenuHandler) SetCallbacks(onOpen, onSave func(string)) {
	mh.onOpen = onOpen
	mh.onSave = onSave
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mh.openImage),
		fyne.NewMenuItem("Save Redacted Copy...", mh.saveImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			mh.window.Close()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, helpMenu)
}

func (mh *MenuHandler) openImage() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError(err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		mh.logger.WithField("path", path).Info("Image selected")
		if mh.onOpen != nil {
			mh.onOpen(path)
		}
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.SupportedExtensions()))
	fileDialog.Show()
}

func (mh *MenuHandler) saveImage() {
	if !mh.store.HasImage() {
		mh.showError(fmt.Errorf("no image loaded to save"))
		return
	}

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.showError(err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		path := writer.URI().Path()
		mh.logger.WithField("path", path).Info("Save target selected")
		if mh.onSave != nil {
			mh.onSave(path)
		}
	}, mh.window)

	fileDialog.SetFileName("redacted.png")
	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.SupportedExtensions()))
	fileDialog.Show()
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("Privacy Image Editor"),
		widget.NewSeparator(),
		widget.NewLabel("Mark regions of a photo and blur or hide them"),
		widget.NewLabel("before sharing. Regions can be circles,"),
		widget.NewLabel("rectangles or ellipses, with feathered edges."),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne v2.6, and OpenCV 4.11"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(400, 260))
	aboutDialog.Show()
}

func (mh *MenuHandler) showError(err error) {
	mh.logger.WithError(err).Error("Menu action failed")
	dialog.ShowError(err, mh.window)
}
