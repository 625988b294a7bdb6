// Package backdrop generates the background layer used behind
// proportionally scaled images: the source stretched to the full
// square, blurred, and lightened with a translucent white overlay.
package backdrop

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/virtual930/image-processor/pkg/resize"
)

const (
	// DefaultSigma is the default Gaussian blur sigma for the backdrop.
	DefaultSigma = 10.0
	// DefaultWhiteOpacity is the default opacity of the white overlay.
	DefaultWhiteOpacity = 0.33
)

// ErrBackgroundGeneration is returned when the backdrop cannot be built.
var ErrBackgroundGeneration = errors.New("background generation failed")

// Render builds a size x size backdrop from img. The source is
// stretched to fill the square (distortion is fine, the layer is meant
// to be out of focus), softened with a Gaussian blur of the given
// sigma, then whitewashed by alpha-blending white at the given opacity.
// The source image is not modified.
func Render(img image.Image, size int, sigma, opacity float64) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: invalid target size %d", ErrBackgroundGeneration, size)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty source image", ErrBackgroundGeneration)
	}

	stretched := resize.Stretch(img, size)
	if stretched.Bounds().Empty() {
		return nil, fmt.Errorf("%w: stretch produced an empty raster", ErrBackgroundGeneration)
	}

	blurred := stretched
	if sigma > 0 {
		blurred = imaging.Blur(stretched, sigma)
		if blurred.Bounds().Empty() {
			return nil, fmt.Errorf("%w: blur produced an empty raster", ErrBackgroundGeneration)
		}
	}

	if opacity <= 0 {
		return blurred, nil
	}
	if opacity > 1 {
		opacity = 1
	}

	white := imaging.New(size, size, color.NRGBA{255, 255, 255, 255})
	return imaging.Overlay(blurred, white, image.Point{}, opacity), nil
}
