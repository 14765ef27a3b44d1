package detect

import (
	"github.com/snagata/ocrprep/internal/raster"
)

// Contours reduces a color image to a binary edge map according to the
// profile's edge mode and traces the external contours.
//
// The adaptive path is: LAB luminance, 5x5 Gaussian blur, adaptive inverse
// threshold (block 99, offset 5), 9x9 rectangular close run twice, Canny,
// then two dilations to bridge small gaps in the card outline.
//
// The plain-Canny path is: grayscale, 5x5 Gaussian blur, Canny, two
// dilations, one erosion.
//
// An empty result means no foreground structure was found; callers treat
// that as "no crop", never as an error.
func Contours(im *raster.Image, p Profile) []Contour {
	var edges *raster.Image
	switch p.Mode {
	case EdgeCanny:
		plane := gaussianBlur5(raster.Grayscale(im))
		edges = canny(plane, p.CannyLow, p.CannyHigh)
		edges = dilateRect(edges, 1, 1, 2)
		edges = erodeRect(edges, 1, 1, 1)
	default:
		plane := gaussianBlur5(raster.LabLuminance(im))
		mask := adaptiveThresholdInv(plane, 99, 5)
		mask = closeRect(mask, 4, 4, 2)
		edges = canny(mask, p.CannyLow, p.CannyHigh)
		edges = dilateRect(edges, 1, 1, 2)
	}
	return findContours(edges)
}
