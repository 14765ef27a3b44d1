package rectify

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/snagata/ocrprep/internal/detect"
	"github.com/snagata/ocrprep/internal/raster"
)

// Warp resamples the quadrilateral region of src into a new width x height
// raster.
//
// The transform maps the ordered corners (TL, TR, BR, BL) onto
// (0,0), (W-1,0), (W-1,H-1), (0,H-1). Sampling is Catmull-Rom bicubic with
// source coordinates clamped at the borders; the kernel interpolates
// exactly at integer positions, so an axis-aligned quadrilateral reduces to
// a plain pixel-exact crop.
func Warp(src *raster.Image, quad detect.Quad, width, height int) (*raster.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rectify: invalid target size %dx%d", width, height)
	}

	dst := [4]detect.Point{
		{X: 0, Y: 0},
		{X: float64(width - 1), Y: 0},
		{X: float64(width - 1), Y: float64(height - 1)},
		{X: 0, Y: float64(height - 1)},
	}

	// Inverse mapping: destination to source.
	h, err := computeHomography(dst, [4]detect.Point(quad))
	if err != nil {
		return nil, err
	}

	out := raster.New(width, height, src.Channels)
	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				sx, sy := h.apply(float64(x), float64(y))
				i := out.Offset(x, y)
				for c := 0; c < src.Channels; c++ {
					out.Pix[i+c] = sampleBicubic(src, sx, sy, c)
				}
			}
		}
	})
	return out, nil
}

// sampleBicubic interpolates one channel at a fractional source coordinate
// using the Catmull-Rom kernel over a 4x4 neighborhood. Coordinates outside
// the image clamp to the nearest border pixel.
func sampleBicubic(src *raster.Image, x, y float64, c int) uint8 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0

	var wx, wy [4]float64
	for i := 0; i < 4; i++ {
		wx[i] = catmullRom(float64(i-1) - fx)
		wy[i] = catmullRom(float64(i-1) - fy)
	}

	var sum float64
	for j := 0; j < 4; j++ {
		py := clampInt(int(y0)+j-1, 0, src.Height-1)
		var rowSum float64
		for i := 0; i < 4; i++ {
			px := clampInt(int(x0)+i-1, 0, src.Width-1)
			rowSum += wx[i] * float64(src.Pix[src.Offset(px, py)+c])
		}
		sum += wy[j] * rowSum
	}
	return raster.ClampU8(sum)
}

// catmullRom is the cubic convolution kernel with a = -0.5.
func catmullRom(t float64) float64 {
	t = math.Abs(t)
	switch {
	case t < 1:
		return 1.5*t*t*t - 2.5*t*t + 1
	case t < 2:
		return -0.5*t*t*t + 2.5*t*t - 4*t + 2
	default:
		return 0
	}
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
