package raster

import (
	"math"

	"github.com/disintegration/imaging"
)

// EnsureMinSide upscales an image so its short side reaches minSide pixels,
// returning the (possibly new) image and the scale factor applied.
//
// Images already at or above the minimum are returned unchanged with a scale
// factor of 1.0. The normalizer never downscales: shrinking would discard
// detail the enhancement chain exists to recover. New dimensions are the
// ceiling of the scaled originals, and resampling is bicubic (Catmull-Rom),
// matching the interpolation used by the perspective warp.
func EnsureMinSide(im *Image, minSide int) (*Image, float64) {
	short := im.ShortSide()
	if minSide <= 0 || short >= minSide {
		return im, 1.0
	}

	scale := float64(minSide) / float64(short)
	newW := int(math.Ceil(float64(im.Width) * scale))
	newH := int(math.Ceil(float64(im.Height) * scale))

	resized := imaging.Resize(im.ToNRGBA(), newW, newH, imaging.CatmullRom)
	return FromImage(resized), scale
}
