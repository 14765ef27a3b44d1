package enhance

import (
	"github.com/snagata/ocrprep/internal/raster"
)

// Params configures the enhancement chain. The zero value disables every
// stage; DefaultParams returns the tuning used for OCR preparation.
type Params struct {
	// DenoiseStrength is the non-local-means filter strength, applied to
	// luminance and chroma alike.
	DenoiseStrength float64

	// CLAHEClipLimit bounds local contrast amplification.
	CLAHEClipLimit float64

	// CLAHETilesX and CLAHETilesY define the equalization tile grid.
	CLAHETilesX, CLAHETilesY int

	// UnsharpSigma is the blur radius of the unsharp mask.
	UnsharpSigma float64

	// UnsharpAmount is the high-frequency gain of the unsharp blend.
	UnsharpAmount float64

	// Gamma is the correction exponent; values above 1 brighten midtones.
	Gamma float64
}

// DefaultParams returns the standard OCR-preparation tuning: mild denoise,
// clip-2.0 CLAHE on an 8x8 grid, a 1.5/-0.5 unsharp blend at sigma 1.2,
// and gentle gamma 1.1 brightening.
func DefaultParams() Params {
	return Params{
		DenoiseStrength: 3,
		CLAHEClipLimit:  2.0,
		CLAHETilesX:     8,
		CLAHETilesY:     8,
		UnsharpSigma:    1.2,
		UnsharpAmount:   0.5,
		Gamma:           1.1,
	}
}

// Chain applies the enhancement stages in their fixed order. Construct it
// once per pipeline; the value is immutable and safe for concurrent use
// across images.
type Chain struct {
	params Params
	gamma  GammaLUT
}

// NewChain precomputes the gamma table and returns a ready-to-use chain.
func NewChain(p Params) *Chain {
	return &Chain{params: p, gamma: NewGammaLUT(p.Gamma)}
}

// Apply runs denoise, local contrast, unsharp, and gamma correction in
// sequence, each stage consuming the previous stage's full output. The
// result has the same dimensions as the input.
func (c *Chain) Apply(im *raster.Image) *raster.Image {
	out := Denoise(im, c.params.DenoiseStrength, c.params.DenoiseStrength)
	if c.params.CLAHEClipLimit > 0 && c.params.CLAHETilesX > 0 && c.params.CLAHETilesY > 0 {
		out = LocalContrast(out, c.params.CLAHEClipLimit, c.params.CLAHETilesX, c.params.CLAHETilesY)
	}
	out = Unsharp(out, c.params.UnsharpSigma, c.params.UnsharpAmount)
	if c.params.Gamma > 0 {
		out = c.gamma.Apply(out)
	}
	return out
}
