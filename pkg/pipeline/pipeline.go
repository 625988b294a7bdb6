// Package pipeline runs the per-image transformation: classify the
// aspect ratio, then either stretch straight to the target square or
// proportionally scale the source and center it over a blurred,
// whitewashed backdrop, and finally encode the result.
//
// Each stage is a pure transform producing a new raster; the source
// image is never modified, so independent images can be processed
// concurrently without coordination.
package pipeline

import (
	"bytes"
	"fmt"
	"image"

	"github.com/virtual930/image-processor/pkg/aspect"
	"github.com/virtual930/image-processor/pkg/backdrop"
	"github.com/virtual930/image-processor/pkg/compose"
	"github.com/virtual930/image-processor/pkg/format"
	"github.com/virtual930/image-processor/pkg/resize"
)

// DefaultSize is the default output square side length in pixels.
const DefaultSize = 300

// TargetSpec describes one batch run's output: the square side length,
// the near-square tolerance, the output format token and the backdrop
// tuning. A single spec is shared across all images of a run.
type TargetSpec struct {
	// Size is the pixel side length of the output square.
	Size int
	// Tolerance is the allowed deviation from a 1:1 aspect ratio.
	Tolerance float64
	// OutputToken selects the output format: png, jpg, jpeg, webp,
	// bmp, or format.KeepOriginal to reuse the source's extension.
	OutputToken string
	// BlurSigma is the Gaussian sigma for the backdrop blur.
	// Zero or negative selects the default.
	BlurSigma float64
	// WhiteOpacity is the opacity of the backdrop's white overlay.
	// Zero or negative selects the default.
	WhiteOpacity float64
	// Quality applies to JPEG and WebP encoding (1-100).
	Quality int
}

// DefaultSpec returns a TargetSpec with the documented defaults.
func DefaultSpec() TargetSpec {
	return TargetSpec{
		Size:         DefaultSize,
		Tolerance:    aspect.DefaultTolerance,
		OutputToken:  format.KeepOriginal,
		BlurSigma:    backdrop.DefaultSigma,
		WhiteOpacity: backdrop.DefaultWhiteOpacity,
		Quality:      format.DefaultQuality,
	}
}

func (s TargetSpec) withDefaults() TargetSpec {
	if s.Size <= 0 {
		s.Size = DefaultSize
	}
	if s.Tolerance <= 0 {
		s.Tolerance = aspect.DefaultTolerance
	}
	if s.BlurSigma <= 0 {
		s.BlurSigma = backdrop.DefaultSigma
	}
	if s.WhiteOpacity <= 0 {
		s.WhiteOpacity = backdrop.DefaultWhiteOpacity
	}
	if s.Quality <= 0 {
		s.Quality = format.DefaultQuality
	}
	return s
}

// Encoded is a processed image ready to be written to disk.
type Encoded struct {
	Data      []byte
	Extension string
}

// Render runs the raster stages on src and returns the composed
// Size x Size square. Near-square sources are stretched directly;
// everything else is fit-scaled and centered over the backdrop.
func Render(src image.Image, spec TargetSpec) (*image.NRGBA, error) {
	spec = spec.withDefaults()

	bounds := src.Bounds()
	class, err := aspect.Classify(bounds.Dx(), bounds.Dy(), spec.Tolerance)
	if err != nil {
		return nil, err
	}

	if class == aspect.NearSquare {
		return resize.Stretch(src, spec.Size), nil
	}

	bg, err := backdrop.Render(src, spec.Size, spec.BlurSigma, spec.WhiteOpacity)
	if err != nil {
		return nil, err
	}
	fg := resize.Fit(src, spec.Size)
	return compose.Center(bg, fg), nil
}

// Process transforms one decoded image into an encoded square.
// originalExt is the source file's extension, consulted when the spec
// asks to keep the original format. Errors are local to this image;
// callers processing a batch should log and continue.
func Process(src image.Image, originalExt string, spec TargetSpec) (*Encoded, error) {
	spec = spec.withDefaults()

	target, err := format.Resolve(spec.OutputToken, originalExt)
	if err != nil {
		return nil, err
	}

	final, err := Render(src, spec)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := target.Encode(&buf, final, spec.Quality); err != nil {
		return nil, fmt.Errorf("encoding as %s failed: %w", target.Extension, err)
	}

	return &Encoded{Data: buf.Bytes(), Extension: target.Extension}, nil
}
