package io

import (
	"image"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLoader() *Loader {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewLoader(l)
}

func TestIsSupportedFormat(t *testing.T) {
	cases := map[string]bool{
		"photo.jpg":      true,
		"photo.JPEG":     true,
		"scan.tiff":      true,
		"shot.png":       true,
		"icon.bmp":       true,
		"clip.gif":       false,
		"doc.pdf":        false,
		"no_extension":   false,
		"dir.png/hidden": false,
	}
	for path, want := range cases {
		if got := IsSupportedFormat(path); got != want {
			t.Errorf("IsSupportedFormat(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestLoadRejectsUnsupportedExtension(t *testing.T) {
	l := testLoader()
	if _, err := l.Load(filepath.Join(t.TempDir(), "clip.gif")); err == nil {
		t.Fatal("loading a .gif did not fail")
	}
}

func TestSaveRejectsNilImage(t *testing.T) {
	l := testLoader()
	if err := l.Save(nil, filepath.Join(t.TempDir(), "out.png")); err == nil {
		t.Fatal("saving a nil image did not fail")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	l := testLoader()
	src := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := range src.Pix {
		src.Pix[i] = byte(i * 7)
	}
	path := filepath.Join(t.TempDir(), "out.png")

	if err := l.Save(src, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := l.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	b := got.Bounds()
	if b.Dx() != 8 || b.Dy() != 6 {
		t.Fatalf("round trip size = %dx%d, want 8x6", b.Dx(), b.Dy())
	}
}

func TestPreviewDownscalesOnlyLargeImages(t *testing.T) {
	l := testLoader()

	small := image.NewRGBA(image.Rect(0, 0, 100, 80))
	if got := l.Preview(small, 512); got != image.Image(small) {
		t.Fatal("small image was rescaled")
	}

	large := image.NewRGBA(image.Rect(0, 0, 2000, 1000))
	got := l.Preview(large, 512)
	b := got.Bounds()
	if b.Dx() != 512 || b.Dy() != 256 {
		t.Fatalf("preview size = %dx%d, want 512x256", b.Dx(), b.Dy())
	}
}
