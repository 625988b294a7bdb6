// Package imageprocessor converts arbitrary-aspect-ratio images into
// fixed-size squares.
//
// Images that are already close to square are stretched straight to the
// target size. Everything else is proportionally scaled to fit, then
// centered over a backdrop generated from the same source: stretched to
// fill the square, Gaussian-blurred, and lightened with a translucent
// white overlay so it never competes with the foreground.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		imageprocessor "github.com/virtual930/image-processor"
//	)
//
//	func main() {
//		proc := imageprocessor.New()
//
//		img, err := proc.LoadImage("photo.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		out, err := proc.ProcessFile("photo.jpg", "revised images")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		info := proc.GetImageInfo(img)
//		log.Printf("squared %dx%d image into %s", info.Width, info.Height, out)
//	}
//
// The heavy lifting lives in the leaf packages:
//
// 1. pkg/aspect: near-square classification against a tolerance
// 2. pkg/resize: Lanczos stretch and proportional fit
// 3. pkg/backdrop: the blurred, whitewashed background layer
// 4. pkg/compose: centered alpha composition
// 5. pkg/format: output token resolution and encoding
// 6. pkg/pipeline: the per-image state machine tying them together
package imageprocessor

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/virtual930/image-processor/internal/utils"
	"github.com/virtual930/image-processor/pkg/imageio"
	"github.com/virtual930/image-processor/pkg/pipeline"
)

// Version of the image processor library
const Version = "1.0.0"

// Processor squares images according to a fixed TargetSpec. It holds
// no per-image state, so one Processor may be shared across goroutines.
type Processor struct {
	spec pipeline.TargetSpec
}

// New creates a Processor with the default spec: 300px squares, 5%
// near-square tolerance, output format kept from the source file.
func New() *Processor {
	return &Processor{spec: pipeline.DefaultSpec()}
}

// NewWithSpec creates a Processor with a custom target spec.
func NewWithSpec(spec pipeline.TargetSpec) *Processor {
	return &Processor{spec: spec}
}

// Spec returns the processor's target spec.
func (p *Processor) Spec() pipeline.TargetSpec {
	return p.spec
}

// LoadImage loads an image from file.
func (p *Processor) LoadImage(path string) (image.Image, error) {
	return imageio.Load(path)
}

// GetImageInfo returns basic information about an image.
func (p *Processor) GetImageInfo(img image.Image) imageio.ImageInfo {
	return imageio.Info(img)
}

// Render runs the raster pipeline on img and returns the composed
// square without encoding it.
func (p *Processor) Render(img image.Image) (*image.NRGBA, error) {
	return pipeline.Render(img, p.spec)
}

// ProcessImage transforms a decoded image into an encoded square.
// originalExt is consulted when the spec keeps the original format.
func (p *Processor) ProcessImage(img image.Image, originalExt string) (*pipeline.Encoded, error) {
	return pipeline.Process(img, originalExt, p.spec)
}

// ProcessFile loads inputPath, squares it, and writes the result into
// outputDir under the input's base name with the resolved extension.
// Name collisions get a " (1)", " (2)", ... suffix. Returns the path
// actually written.
func (p *Processor) ProcessFile(inputPath, outputDir string) (string, error) {
	img, err := p.LoadImage(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	encoded, err := p.ProcessImage(img, utils.GetFileExtension(inputPath))
	if err != nil {
		return "", fmt.Errorf("failed to process %s: %w", filepath.Base(inputPath), err)
	}

	if err := utils.EnsureDir(outputDir); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := utils.ReplaceExtension(filepath.Base(inputPath), encoded.Extension)
	outputPath := utils.UniquePath(filepath.Join(outputDir, name))

	if err := os.WriteFile(outputPath, encoded.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}

	return outputPath, nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
