package enhance

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/snagata/ocrprep/internal/raster"
)

// Non-local-means window geometry: 7x7 patches compared across a 21x21
// search window.
const (
	nlmTemplateRadius = 3
	nlmSearchRadius   = 10
)

// Denoise applies color non-local-means denoising.
//
// The image is split into LAB planes; the luminance plane is filtered with
// strength luma and the two chroma planes with strength chroma, then the
// planes are merged back. Strengths of zero (or less) skip the filter and
// return a copy.
func Denoise(im *raster.Image, luma, chroma float64) *raster.Image {
	if luma <= 0 && chroma <= 0 {
		return im.Clone()
	}
	l, a, b := raster.ToLab(im)
	return raster.FromLab(
		nlMeansPlane(l, luma),
		nlMeansPlane(a, chroma),
		nlMeansPlane(b, chroma),
	)
}

// nlMeansPlane denoises one plane: each output pixel is the weighted
// average of every pixel in its search window, weighted by how similar the
// two pixels' surrounding patches are.
//
// Patch distances for a fixed displacement are computed for the whole plane
// at once via an integral image of squared differences, which turns the
// naive O(search * patch) per-pixel cost into O(search). Patch windows
// clamp at the borders and divide by the pixels actually covered. Weights
// come from a lookup table indexed by the integer mean squared difference,
// so the filter is exactly reproducible run to run.
func nlMeansPlane(p *raster.Image, h float64) *raster.Image {
	if h <= 0 {
		return p.Clone()
	}
	w, ht := p.Width, p.Height
	n := w * ht

	// Weight lookup over every possible mean squared difference.
	invH2 := 1 / (h * h)
	weights := make([]float64, 255*255+1)
	for i := range weights {
		weights[i] = math.Exp(-float64(i) * invH2)
	}

	acc := make([]float64, n)
	wsum := make([]float64, n)
	diff2 := make([]float64, n)
	// Summed-area table with a zero border row/column.
	sat := make([]float64, (w+1)*(ht+1))

	for dy := -nlmSearchRadius; dy <= nlmSearchRadius; dy++ {
		for dx := -nlmSearchRadius; dx <= nlmSearchRadius; dx++ {
			// Squared difference between the plane and its shifted copy.
			parallel.Line(ht, func(start, end int) {
				for y := start; y < end; y++ {
					sy := clampInt(y+dy, 0, ht-1)
					for x := 0; x < w; x++ {
						sx := clampInt(x+dx, 0, w-1)
						d := float64(p.Pix[y*w+x]) - float64(p.Pix[sy*w+sx])
						diff2[y*w+x] = d * d
					}
				}
			})

			// Row prefix sums, then column prefix sums. The table is reused
			// across displacements, so the zero border is rewritten each
			// time.
			parallel.Line(ht+1, func(start, end int) {
				for y := start; y < end; y++ {
					row := sat[y*(w+1) : (y+1)*(w+1)]
					if y == 0 {
						for x := range row {
							row[x] = 0
						}
						continue
					}
					row[0] = 0
					var run float64
					for x := 0; x < w; x++ {
						run += diff2[(y-1)*w+x]
						row[x+1] = run
					}
				}
			})
			parallel.Line(w+1, func(start, end int) {
				for x := start; x < end; x++ {
					var run float64
					for y := 0; y <= ht; y++ {
						run += sat[y*(w+1)+x]
						sat[y*(w+1)+x] = run
					}
				}
			})

			// Accumulate this displacement's contribution.
			parallel.Line(ht, func(start, end int) {
				for y := start; y < end; y++ {
					y1 := clampInt(y-nlmTemplateRadius, 0, ht-1)
					y2 := clampInt(y+nlmTemplateRadius, 0, ht-1)
					sy := clampInt(y+dy, 0, ht-1)
					for x := 0; x < w; x++ {
						x1 := clampInt(x-nlmTemplateRadius, 0, w-1)
						x2 := clampInt(x+nlmTemplateRadius, 0, w-1)
						sum := sat[(y2+1)*(w+1)+x2+1] - sat[(y2+1)*(w+1)+x1] -
							sat[y1*(w+1)+x2+1] + sat[y1*(w+1)+x1]
						area := float64((x2 - x1 + 1) * (y2 - y1 + 1))
						weight := weights[int(sum/area+0.5)]

						sx := clampInt(x+dx, 0, w-1)
						acc[y*w+x] += weight * float64(p.Pix[sy*w+sx])
						wsum[y*w+x] += weight
					}
				}
			})
		}
	}

	out := raster.New(w, ht, raster.GrayChannels)
	for i := range out.Pix {
		out.Pix[i] = raster.ClampU8(acc[i] / wsum[i])
	}
	return out
}

func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
