// Package compose places a foreground raster centered over a backdrop.
package compose

import (
	"image"

	"github.com/disintegration/imaging"
)

// Center alpha-composites foreground over background, centered on both
// axes. Offsets are (bgDim - fgDim) / 2, truncated toward zero. The
// foreground's own alpha is respected, so the backdrop shows through
// any transparent regions. Both inputs are left unmodified.
func Center(background, foreground image.Image) *image.NRGBA {
	bb := background.Bounds()
	fb := foreground.Bounds()

	x := (bb.Dx() - fb.Dx()) / 2
	y := (bb.Dy() - fb.Dy()) / 2

	return imaging.Overlay(background, foreground, image.Pt(x, y), 1.0)
}
