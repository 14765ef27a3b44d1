package enhance

import (
	"math"

	"github.com/snagata/ocrprep/internal/raster"
)

// GammaLUT is a precomputed 256-entry gamma correction table. Building it
// once per pipeline and applying by lookup keeps the per-pixel cost to a
// single index.
type GammaLUT [256]uint8

// NewGammaLUT builds the table for the given gamma:
//
//	table[i] = round(255 * (i/255)^(1/gamma))
//
// Gamma is floored at 1e-3 to keep the exponent finite.
func NewGammaLUT(gamma float64) GammaLUT {
	gamma = math.Max(gamma, 1e-3)
	inv := 1 / gamma
	var t GammaLUT
	for i := range t {
		t[i] = raster.ClampU8(math.Pow(float64(i)/255, inv) * 255)
	}
	return t
}

// Apply gamma-corrects every channel of the image through the table.
func (t *GammaLUT) Apply(im *raster.Image) *raster.Image {
	out := raster.New(im.Width, im.Height, im.Channels)
	for i, v := range im.Pix {
		out.Pix[i] = t[v]
	}
	return out
}
