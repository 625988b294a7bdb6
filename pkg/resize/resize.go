// Package resize provides the two resampling operations of the pipeline:
// stretching to an exact square and proportional scaling into a square.
// Both use the same Lanczos filter so the two paths stay visually
// consistent.
package resize

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Stretch resamples img to exactly size x size, ignoring its aspect
// ratio. Width and height are mapped independently, so non-square
// sources are distorted.
func Stretch(img image.Image, size int) *image.NRGBA {
	return imaging.Resize(img, size, size, imaging.Lanczos)
}

// Fit proportionally scales img so it fits within a size x size box.
// The scale factor is min(size/width, size/height); both axes are
// rounded to the nearest pixel, so one axis equals size (up to
// rounding) and neither exceeds it.
func Fit(img image.Image, size int) *image.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	scale := math.Min(float64(size)/float64(w), float64(size)/float64(h))
	newW := int(math.Round(float64(w) * scale))
	newH := int(math.Round(float64(h) * scale))
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	return imaging.Resize(img, newW, newH, imaging.Lanczos)
}
