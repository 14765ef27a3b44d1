package rectify

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/snagata/ocrprep/internal/detect"
)

// Homography is a 3x3 projective transform in row-major order with the
// bottom-right element fixed at 1.
type Homography [9]float64

// computeHomography solves for the transform mapping src[i] to dst[i] for
// four point correspondences. Each correspondence contributes two rows of
// the 8x8 system A*h = b in the unknowns h00..h21.
//
// Returns an error when the system is singular, which happens exactly when
// either quadrilateral is degenerate.
func computeHomography(src, dst [4]detect.Point) (Homography, error) {
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		sx, sy := src[i].X, src[i].Y
		dx, dy := dst[i].X, dst[i].Y
		r := 2 * i

		// dx = (h00*sx + h01*sy + h02) / (h20*sx + h21*sy + 1)
		a.SetRow(r, []float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx})
		b.SetVec(r, dx)

		// dy = (h10*sx + h11*sy + h12) / (h20*sx + h21*sy + 1)
		a.SetRow(r+1, []float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy})
		b.SetVec(r+1, dy)
	}

	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		return Homography{}, fmt.Errorf("degenerate quadrilateral: %w", err)
	}

	var out Homography
	for i := 0; i < 8; i++ {
		out[i] = h.AtVec(i)
	}
	out[8] = 1
	return out, nil
}

// apply projects a point through the homography.
func (h Homography) apply(x, y float64) (float64, float64) {
	denom := h[6]*x + h[7]*y + h[8]
	if denom == 0 {
		return -1e9, -1e9
	}
	return (h[0]*x + h[1]*y + h[2]) / denom, (h[3]*x + h[4]*y + h[5]) / denom
}
