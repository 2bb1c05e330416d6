package platform

import (
	"image"
	"image/color"
	"testing"
)

func TestScaleImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			src.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	got := ScaleImage(src, 0.5)
	if got.Bounds().Dx() != 100 || got.Bounds().Dy() != 50 {
		t.Fatalf("expected 100x50, got %v", got.Bounds())
	}
	r, _, _, a := got.At(50, 25).RGBA()
	if r>>8 != 255 || a>>8 != 255 {
		t.Errorf("expected opaque red pixel, got r=%d a=%d", r>>8, a>>8)
	}
}

func TestScaleImage_Identity(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if got := ScaleImage(src, 1); got != image.Image(src) {
		t.Error("expected factor 1 to return the input image")
	}
	if got := ScaleImage(src, 0); got != image.Image(src) {
		t.Error("expected factor 0 to return the input image")
	}
}
