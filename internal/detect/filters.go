package detect

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/snagata/ocrprep/internal/raster"
)

// gaussianBlur5 applies the fixed 5-tap binomial kernel [1 4 6 4 1]/16
// separably to a grayscale plane. Borders replicate the edge pixel. The
// integer arithmetic is exact, so repeated runs are byte-identical.
func gaussianBlur5(p *raster.Image) *raster.Image {
	w, h := p.Width, p.Height
	weights := [5]uint32{1, 4, 6, 4, 1}

	// Horizontal pass; row sums fit in uint16 (max 255*16).
	tmp := make([]uint16, w*h)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			row := p.Pix[y*w : (y+1)*w]
			for x := 0; x < w; x++ {
				var sum uint32
				for k := -2; k <= 2; k++ {
					sum += weights[k+2] * uint32(row[clampInt(x+k, 0, w-1)])
				}
				tmp[y*w+x] = uint16(sum)
			}
		}
	})

	out := raster.New(w, h, raster.GrayChannels)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				var sum uint32
				for k := -2; k <= 2; k++ {
					sum += weights[k+2] * uint32(tmp[clampInt(y+k, 0, h-1)*w+x])
				}
				out.Pix[y*w+x] = uint8((sum + 128) >> 8)
			}
		}
	})
	return out
}

// adaptiveThresholdInv binarizes a grayscale plane against a local
// Gaussian-weighted mean: pixels darker than their neighborhood mean minus
// offset become foreground (255), everything else background (0). The
// inversion makes a dark card on a bright background (or dark print on a
// bright card) the foreground.
//
// blockSize is the side of the (odd) weighting window; sigma follows the
// usual derivation from kernel size. Borders replicate.
func adaptiveThresholdInv(p *raster.Image, blockSize int, offset float64) *raster.Image {
	w, h := p.Width, p.Height
	kernel := gaussianKernel1D(blockSize)
	radius := blockSize / 2

	// Separable weighted-mean filter.
	tmp := make([]float64, w*h)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			row := p.Pix[y*w : (y+1)*w]
			for x := 0; x < w; x++ {
				var sum float64
				for k := -radius; k <= radius; k++ {
					sum += kernel[k+radius] * float64(row[clampInt(x+k, 0, w-1)])
				}
				tmp[y*w+x] = sum
			}
		}
	})

	out := raster.New(w, h, raster.GrayChannels)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				var mean float64
				for k := -radius; k <= radius; k++ {
					mean += kernel[k+radius] * tmp[clampInt(y+k, 0, h-1)*w+x]
				}
				threshold := math.Round(mean) - offset
				if float64(p.Pix[y*w+x]) > threshold {
					out.Pix[y*w+x] = 0
				} else {
					out.Pix[y*w+x] = 255
				}
			}
		}
	})
	return out
}

// gaussianKernel1D builds a normalized 1D Gaussian kernel of the given odd
// size with sigma = 0.3*((size-1)*0.5 - 1) + 0.8, the conventional
// size-derived sigma.
func gaussianKernel1D(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	radius := size / 2
	kernel := make([]float64, size)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// dilateRect grows foreground regions of a binary plane with a rectangular
// structuring element of the given half-extents, repeated iterations times.
// The rectangle makes the filter separable: a horizontal max pass followed
// by a vertical one.
func dilateRect(p *raster.Image, rx, ry, iterations int) *raster.Image {
	out := p
	for i := 0; i < iterations; i++ {
		out = rankRect(out, rx, ry, true)
	}
	return out
}

// erodeRect shrinks foreground regions, the dual of dilateRect.
func erodeRect(p *raster.Image, rx, ry, iterations int) *raster.Image {
	out := p
	for i := 0; i < iterations; i++ {
		out = rankRect(out, rx, ry, false)
	}
	return out
}

// closeRect merges nearby foreground regions: dilation then erosion, each
// run iterations times, which fills gaps narrower than the structuring
// element without growing the overall silhouette.
func closeRect(p *raster.Image, rx, ry, iterations int) *raster.Image {
	return erodeRect(dilateRect(p, rx, ry, iterations), rx, ry, iterations)
}

// rankRect is one separable max (dilate) or min (erode) pass over a binary
// plane. Windows are clamped at the borders, so border pixels see only
// in-image values.
func rankRect(p *raster.Image, rx, ry int, max bool) *raster.Image {
	w, h := p.Width, p.Height
	tmp := make([]uint8, w*h)

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			row := p.Pix[y*w : (y+1)*w]
			for x := 0; x < w; x++ {
				v := row[clampInt(x-rx, 0, w-1)]
				for k := -rx + 1; k <= rx; k++ {
					s := row[clampInt(x+k, 0, w-1)]
					if (max && s > v) || (!max && s < v) {
						v = s
					}
				}
				tmp[y*w+x] = v
			}
		}
	})

	out := raster.New(w, h, raster.GrayChannels)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				v := tmp[clampInt(y-ry, 0, h-1)*w+x]
				for k := -ry + 1; k <= ry; k++ {
					s := tmp[clampInt(y+k, 0, h-1)*w+x]
					if (max && s > v) || (!max && s < v) {
						v = s
					}
				}
				out.Pix[y*w+x] = v
			}
		}
	})
	return out
}

// clampInt constrains an integer value to the range [min, max].
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
