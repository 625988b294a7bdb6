package backdrop

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// createSolidImage creates a test image filled with a single color
func createSolidImage(width, height int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderDimensions(t *testing.T) {
	sources := [][2]int{{800, 200}, {200, 800}, {640, 480}, {10, 10}}

	for _, d := range sources {
		img := createSolidImage(d[0], d[1], color.RGBA{200, 50, 50, 255})
		bg, err := Render(img, 300, DefaultSigma, DefaultWhiteOpacity)
		if err != nil {
			t.Fatalf("Render(%dx%d) failed: %v", d[0], d[1], err)
		}

		bounds := bg.Bounds()
		if bounds.Dx() != 300 || bounds.Dy() != 300 {
			t.Errorf("Render(%dx%d) = %dx%d, want 300x300", d[0], d[1], bounds.Dx(), bounds.Dy())
		}
	}
}

func TestRenderWhitewash(t *testing.T) {
	// A pure black source stays black through stretch and blur, so any
	// brightness in the output comes from the white overlay alone.
	img := createSolidImage(400, 100, color.RGBA{0, 0, 0, 255})

	bg, err := Render(img, 120, 5.0, 0.33)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	c := bg.NRGBAAt(60, 60)
	// Expect roughly 255 * 0.33 = 84 on each channel
	if c.R < 70 || c.R > 100 {
		t.Errorf("whitewashed black pixel R = %d, want ~84", c.R)
	}
	if c.R != c.G || c.G != c.B {
		t.Errorf("whitewashed black pixel should be gray, got %v", c)
	}
}

func TestRenderZeroOpacity(t *testing.T) {
	img := createSolidImage(400, 100, color.RGBA{0, 0, 0, 255})

	bg, err := Render(img, 120, 5.0, 0)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	c := bg.NRGBAAt(60, 60)
	if c.R > 5 || c.G > 5 || c.B > 5 {
		t.Errorf("zero-opacity backdrop of black image should stay black, got %v", c)
	}
}

func TestRenderErrors(t *testing.T) {
	img := createSolidImage(100, 100, color.RGBA{0, 0, 0, 255})

	if _, err := Render(img, 0, DefaultSigma, DefaultWhiteOpacity); !errors.Is(err, ErrBackgroundGeneration) {
		t.Errorf("Render with size 0 error = %v, want ErrBackgroundGeneration", err)
	}

	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := Render(empty, 300, DefaultSigma, DefaultWhiteOpacity); !errors.Is(err, ErrBackgroundGeneration) {
		t.Errorf("Render with empty source error = %v, want ErrBackgroundGeneration", err)
	}

	if _, err := Render(nil, 300, DefaultSigma, DefaultWhiteOpacity); !errors.Is(err, ErrBackgroundGeneration) {
		t.Errorf("Render with nil source error = %v, want ErrBackgroundGeneration", err)
	}
}

func BenchmarkRender(b *testing.B) {
	img := createSolidImage(1920, 1080, color.RGBA{200, 50, 50, 255})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Render(img, 300, DefaultSigma, DefaultWhiteOpacity)
	}
}
