package pipeline

import (
	"math"

	"github.com/snagata/ocrprep/internal/detect"
	"github.com/snagata/ocrprep/internal/enhance"
	"github.com/snagata/ocrprep/internal/raster"
	"github.com/snagata/ocrprep/internal/rectify"
)

// Params is the complete configuration of one pipeline instance. It is
// immutable for the duration of every Process call.
type Params struct {
	// MinShortSide is the minimum length in pixels of the shorter image
	// side after cropping; smaller images are upscaled.
	MinShortSide int

	// Profile selects the detection strategy and acceptance policy.
	Profile detect.Profile

	// Enhance tunes the photometric enhancement chain.
	Enhance enhance.Params
}

// DefaultParams returns the standard configuration: 720 px minimum short
// side, the lenient detection profile, and the default enhancement tuning.
func DefaultParams() Params {
	return Params{
		MinShortSide: 720,
		Profile:      detect.Lenient(),
		Enhance:      enhance.DefaultParams(),
	}
}

// Metadata describes what one Process invocation did. The JSON field set
// is a contract consumed by manifest writers and logging; changing it
// breaks downstream consumers.
type Metadata struct {
	// Cropped reports whether a card region was located and extracted.
	Cropped bool `json:"cropped"`

	// CropMethod is "perspective" or "bounding_rect" when Cropped is true,
	// and null otherwise.
	CropMethod *detect.CropMethod `json:"crop_method"`

	// ScaleFactor is the resolution-normalization factor, rounded to four
	// decimals; 1.0 means no resize. Consumers use it to map detection
	// coordinates back to original pixel space.
	ScaleFactor float64 `json:"scale_factor"`

	// OriginalShape is the [height, width] of the image entering the
	// resolution normalizer (after cropping, if any).
	OriginalShape [2]int `json:"original_shape"`

	// FinalShape is the [height, width] of the enhanced output.
	FinalShape [2]int `json:"final_shape"`

	// MinSize echoes the configured minimum short side.
	MinSize int `json:"min_size"`
}

// Pipeline is the orchestrator. Construct with New; the value carries only
// immutable configuration plus the precomputed gamma table, so a single
// Pipeline serves any number of goroutines.
type Pipeline struct {
	params Params
	chain  *enhance.Chain
}

// New builds a pipeline from params, precomputing the enhancement chain's
// lookup tables.
func New(params Params) *Pipeline {
	return &Pipeline{params: params, chain: enhance.NewChain(params.Enhance)}
}

// Process runs the full pipeline on a decoded image: locate and rectify
// the card region, enforce the minimum resolution, then enhance.
//
// Failing to find a card is not an error; the image passes through
// uncropped and the metadata records the fallback. An error is returned
// only when a stage cannot produce output at all.
func (p *Pipeline) Process(im *raster.Image) (*raster.Image, Metadata, error) {
	out := im
	var method *detect.CropMethod

	contours := detect.Contours(im, p.params.Profile)
	if cand, ok := detect.Locate(contours, im.Width, im.Height, p.params.Profile); ok {
		warped, err := rectify.Warp(im, cand.Quad, cand.Width, cand.Height)
		if err != nil {
			return nil, Metadata{}, err
		}
		out = warped
		m := cand.Method
		method = &m
	}

	meta := Metadata{
		Cropped:       method != nil,
		CropMethod:    method,
		OriginalShape: [2]int{out.Height, out.Width},
		MinSize:       p.params.MinShortSide,
	}

	out, scale := raster.EnsureMinSide(out, p.params.MinShortSide)
	meta.ScaleFactor = math.Round(scale*10000) / 10000

	out = p.chain.Apply(out)
	meta.FinalShape = [2]int{out.Height, out.Width}
	return out, meta, nil
}
