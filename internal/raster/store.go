// Thread-safe holder for the original and last composited raster
package raster

import (
	"fmt"
	"strings"
	"sync"
)

// Metadata describes the loaded image.
type Metadata struct {
	Width  int
	Height int
	Format string
}

// Store owns the original raster and the most recent successfully
// composited result. Readers always get clones, so an in-progress
// compositing pass can never be observed half-done.
type Store struct {
	mu        sync.RWMutex
	original  *Image
	processed *Image
	hasImage  bool
	filepath  string
	metadata  Metadata
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// SetOriginal validates and installs a new original image. The processed
// image is reset to the original.
func (s *Store) SetOriginal(img *Image, filepath string) error {
	if err := img.Validate(); err != nil {
		return fmt.Errorf("cannot set original: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.original = img.Clone()
	s.processed = img.Clone()
	s.hasImage = true
	s.filepath = filepath
	s.metadata = Metadata{
		Width:  img.W,
		Height: img.H,
		Format: formatFromPath(filepath),
	}
	return nil
}

// SetProcessed installs a new composited result. The result must match the
// original's dimensions; compositing never resizes.
func (s *Store) SetProcessed(img *Image) error {
	if err := img.Validate(); err != nil {
		return fmt.Errorf("cannot set processed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasImage {
		return fmt.Errorf("no original image loaded")
	}
	if img.W != s.original.W || img.H != s.original.H {
		return fmt.Errorf("processed size %dx%d does not match original %dx%d",
			img.W, img.H, s.original.W, s.original.H)
	}
	s.processed = img.Clone()
	return nil
}

// Original returns a copy of the original raster, or nil when empty.
func (s *Store) Original() *Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasImage {
		return nil
	}
	return s.original.Clone()
}

// Processed returns a copy of the last composited raster, or nil when empty.
func (s *Store) Processed() *Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasImage {
		return nil
	}
	return s.processed.Clone()
}

// HasImage reports whether an image is loaded.
func (s *Store) HasImage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasImage
}

// Meta returns metadata for the loaded image.
func (s *Store) Meta() Metadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metadata
}

// Filepath returns the path the image was loaded from.
func (s *Store) Filepath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filepath
}

// ResetToOriginal discards the composited result.
func (s *Store) ResetToOriginal() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasImage {
		return fmt.Errorf("no original image available")
	}
	s.processed = s.original.Clone()
	return nil
}

// Clear drops all image data.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.original = nil
	s.processed = nil
	s.hasImage = false
	s.filepath = ""
	s.metadata = Metadata{}
}

func formatFromPath(filepath string) string {
	if i := strings.LastIndexByte(filepath, '.'); i >= 0 {
		return strings.ToLower(filepath[i+1:])
	}
	return "unknown"
}
