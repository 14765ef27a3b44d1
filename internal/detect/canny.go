package detect

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/snagata/ocrprep/internal/raster"
)

// canny extracts edges from a grayscale plane, producing a binary plane
// where edge pixels are 255.
//
// The implementation is the classic pipeline: Sobel gradients, non-maximum
// suppression perpendicular to the edge, then dual-threshold hysteresis.
// Gradient magnitude is the L1 norm |Gx|+|Gy|, compared directly against
// the low/high thresholds. The caller is expected to blur beforehand if the
// input is noisy; binary masks from the adaptive-threshold path need no
// smoothing.
func canny(p *raster.Image, low, high float64) *raster.Image {
	w, h := p.Width, p.Height

	magnitude := make([]float64, w*h)
	direction := make([]float64, w*h)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				var gx, gy float64
				for ky := -1; ky <= 1; ky++ {
					py := clampInt(y+ky, 0, h-1)
					for kx := -1; kx <= 1; kx++ {
						px := clampInt(x+kx, 0, w-1)
						v := float64(p.Pix[py*w+px])
						gx += v * sobelX[ky+1][kx+1]
						gy += v * sobelY[ky+1][kx+1]
					}
				}
				magnitude[y*w+x] = math.Abs(gx) + math.Abs(gy)
				direction[y*w+x] = math.Atan2(gy, gx)
			}
		}
	})

	// Non-maximum suppression: keep only local maxima along the gradient
	// direction, thinning edges to single-pixel width.
	suppressed := make([]float64, w*h)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			if y == 0 || y == h-1 {
				continue
			}
			for x := 1; x < w-1; x++ {
				angle := direction[y*w+x]
				mag := magnitude[y*w+x]

				var n1, n2 float64
				switch {
				case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
					n1 = magnitude[y*w+x-1]
					n2 = magnitude[y*w+x+1]
				case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
					n1 = magnitude[(y-1)*w+x+1]
					n2 = magnitude[(y+1)*w+x-1]
				case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
					n1 = magnitude[(y-1)*w+x]
					n2 = magnitude[(y+1)*w+x]
				default:
					n1 = magnitude[(y-1)*w+x-1]
					n2 = magnitude[(y+1)*w+x+1]
				}

				if mag >= n1 && mag >= n2 {
					suppressed[y*w+x] = mag
				}
			}
		}
	})

	// Hysteresis: strong pixels seed a flood that promotes connected weak
	// pixels, so faint edge segments survive only when anchored to a strong
	// one.
	out := raster.New(w, h, raster.GrayChannels)
	var stack []int
	for i, v := range suppressed {
		if v >= high {
			out.Pix[i] = 255
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				j := ny*w + nx
				if out.Pix[j] == 0 && suppressed[j] >= low {
					out.Pix[j] = 255
					stack = append(stack, j)
				}
			}
		}
	}
	return out
}

var sobelX = [3][3]float64{
	{-1, 0, 1},
	{-2, 0, 2},
	{-1, 0, 1},
}

var sobelY = [3][3]float64{
	{-1, -2, -1},
	{0, 0, 0},
	{1, 2, 1},
}
