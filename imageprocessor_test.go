package imageprocessor

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/virtual930/image-processor/pkg/pipeline"
)

// createTestImage creates a simple test image
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			img.Set(x, y, color.RGBA{r, g, 128, 255})
		}
	}

	return img
}

func TestNew(t *testing.T) {
	proc := New()
	if proc == nil {
		t.Fatal("New() returned nil")
	}

	spec := proc.Spec()
	if spec.Size != pipeline.DefaultSize {
		t.Errorf("Expected default size %d, got %d", pipeline.DefaultSize, spec.Size)
	}
	if spec.Tolerance != 0.05 {
		t.Errorf("Expected default tolerance 0.05, got %f", spec.Tolerance)
	}
}

func TestNewWithSpec(t *testing.T) {
	spec := pipeline.DefaultSpec()
	spec.Size = 512
	spec.OutputToken = "webp"

	proc := NewWithSpec(spec)
	if proc.Spec().Size != 512 {
		t.Errorf("Expected size 512, got %d", proc.Spec().Size)
	}
	if proc.Spec().OutputToken != "webp" {
		t.Errorf("Expected token webp, got %q", proc.Spec().OutputToken)
	}
}

func TestGetImageInfo(t *testing.T) {
	proc := New()
	info := proc.GetImageInfo(createTestImage(640, 480))

	if info.Width != 640 || info.Height != 480 {
		t.Errorf("GetImageInfo = %dx%d, want 640x480", info.Width, info.Height)
	}
}

func TestRender(t *testing.T) {
	proc := New()

	out, err := proc.Render(createTestImage(800, 200))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	bounds := out.Bounds()
	if bounds.Dx() != 300 || bounds.Dy() != 300 {
		t.Errorf("Render output = %dx%d, want 300x300", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessFile(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	inputPath := filepath.Join(inDir, "photo.png")
	if err := imaging.Save(createTestImage(800, 200), inputPath); err != nil {
		t.Fatalf("writing fixture failed: %v", err)
	}

	proc := New()
	outputPath, err := proc.ProcessFile(inputPath, outDir)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if filepath.Base(outputPath) != "photo.png" {
		t.Errorf("output name = %q, want photo.png", filepath.Base(outputPath))
	}

	result, err := imaging.Open(outputPath)
	if err != nil {
		t.Fatalf("opening output failed: %v", err)
	}
	if result.Bounds().Dx() != 300 || result.Bounds().Dy() != 300 {
		t.Errorf("output dimensions = %dx%d, want 300x300",
			result.Bounds().Dx(), result.Bounds().Dy())
	}
}

func TestProcessFileUniqueNames(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	inputPath := filepath.Join(inDir, "photo.png")
	if err := imaging.Save(createTestImage(400, 400), inputPath); err != nil {
		t.Fatalf("writing fixture failed: %v", err)
	}

	proc := New()
	if _, err := proc.ProcessFile(inputPath, outDir); err != nil {
		t.Fatalf("first ProcessFile failed: %v", err)
	}

	second, err := proc.ProcessFile(inputPath, outDir)
	if err != nil {
		t.Fatalf("second ProcessFile failed: %v", err)
	}
	if !strings.HasSuffix(second, "photo (1).png") {
		t.Errorf("second output = %q, want suffix \"photo (1).png\"", second)
	}
}

func TestProcessFileTokenOverride(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	inputPath := filepath.Join(inDir, "photo.png")
	if err := imaging.Save(createTestImage(400, 400), inputPath); err != nil {
		t.Fatalf("writing fixture failed: %v", err)
	}

	spec := pipeline.DefaultSpec()
	spec.OutputToken = "jpg"

	proc := NewWithSpec(spec)
	outputPath, err := proc.ProcessFile(inputPath, outDir)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if filepath.Base(outputPath) != "photo.jpg" {
		t.Errorf("output name = %q, want photo.jpg", filepath.Base(outputPath))
	}
}

func TestProcessFileUnreadable(t *testing.T) {
	proc := New()
	if _, err := proc.ProcessFile(filepath.Join(t.TempDir(), "missing.png"), t.TempDir()); err == nil {
		t.Error("ProcessFile of missing input should fail")
	}
}
