// Image file loading and saving
package io

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

// Loader handles image file operations
type Loader struct {
	logger *logrus.Logger
}

func NewLoader(logger *logrus.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// supportedExtensions are the formats the editor reads and writes.
var supportedExtensions = []string{".jpg", ".jpeg", ".png", ".tif", ".tiff", ".bmp"}

// Load reads an image file, honoring EXIF orientation so portrait
// photos arrive upright.
func (l *Loader) Load(path string) (image.Image, error) {
	l.logger.WithField("path", path).Debug("Loading image")

	if !IsSupportedFormat(path) {
		return nil, fmt.Errorf("unsupported image format: %s", path)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	b := img.Bounds()
	l.logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  b.Dx(),
		"height": b.Dy(),
	}).Info("Image loaded")

	return img, nil
}

// Save writes an image; the output format follows the file extension.
func (l *Loader) Save(img image.Image, path string) error {
	l.logger.WithField("path", path).Debug("Saving image")

	if img == nil {
		return fmt.Errorf("cannot save empty image")
	}
	if !IsSupportedFormat(path) {
		return fmt.Errorf("unsupported image format: %s", path)
	}

	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	b := img.Bounds()
	l.logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  b.Dx(),
		"height": b.Dy(),
	}).Info("Image saved")

	return nil
}

// Preview downscales an image to fit within maxSide on its longer edge.
// Images already small enough are returned as-is.
func (l *Loader) Preview(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxSide && b.Dy() <= maxSide {
		return img
	}
	return imaging.Fit(img, maxSide, maxSide, imaging.Linear)
}

// IsSupportedFormat reports whether the path's extension names a
// readable and writable format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range supportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// SupportedExtensions returns the recognized file extensions, suitable
// for file dialog filters.
func SupportedExtensions() []string {
	out := make([]string, len(supportedExtensions))
	copy(out, supportedExtensions)
	return out
}
