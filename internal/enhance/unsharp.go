package enhance

import (
	"github.com/disintegration/imaging"

	"github.com/snagata/ocrprep/internal/raster"
)

// Unsharp sharpens an image by subtracting a Gaussian-blurred copy:
//
//	sharpened = (1+amount)*original - amount*blurred
//
// clamped to the valid pixel range. sigma controls the blur radius (the
// kernel size derives from it) and amount the high-frequency gain; an
// amount of 0.5 gives the classic 1.5/-0.5 blend. Non-positive sigma or
// amount returns a copy.
func Unsharp(im *raster.Image, sigma, amount float64) *raster.Image {
	if sigma <= 0 || amount <= 0 {
		return im.Clone()
	}

	blurred := raster.FromImage(imaging.Blur(im.ToNRGBA(), sigma))
	if im.Channels == raster.GrayChannels {
		blurred = raster.Grayscale(blurred)
	}

	out := raster.New(im.Width, im.Height, im.Channels)
	gain := 1 + amount
	for i := range im.Pix {
		out.Pix[i] = raster.ClampU8(gain*float64(im.Pix[i]) - amount*float64(blurred.Pix[i]))
	}
	return out
}
