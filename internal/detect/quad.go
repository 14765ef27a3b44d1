package detect

import (
	"math"
	"sort"
)

// CropMethod identifies which rectification path located the region. The
// values appear verbatim in pipeline metadata, so they are part of the
// output contract.
type CropMethod string

const (
	// CropPerspective means a full quadrilateral was found and the region
	// will be unwarped with a perspective transform.
	CropPerspective CropMethod = "perspective"

	// CropBoundingRect means only an axis-aligned bounding box of the
	// largest contour was usable.
	CropBoundingRect CropMethod = "bounding_rect"
)

// Quad is an ordered quadrilateral: top-left, top-right, bottom-right,
// bottom-left.
type Quad [4]Point

// Candidate is an accepted card region: the source quadrilateral plus the
// rectified output dimensions derived from its edge lengths.
type Candidate struct {
	Quad   Quad
	Width  int
	Height int
	Method CropMethod
}

// Locate selects the card region from traced contours, or reports that no
// usable region exists (second result false, meaning "pass the image
// through uncropped").
//
// Selection is greedy, largest area first: the first contour that clears
// every gate wins, without searching for a globally optimal candidate. Each
// contour is approximated to a polygon at 2% of its perimeter; a clean
// 4-gon is used directly, otherwise the profile decides between the
// minimum-area enclosing rectangle and rejection. Candidates must span at
// least 200 pixels on each side, which also rejects degenerate (collinear)
// geometry before the perspective transform ever sees it, and, when the
// profile bounds aspect, have a card-like width/height ratio.
//
// If no contour passes, the largest contour still gets a chance as a plain
// axis-aligned bounding box, provided it covers the minimum area.
func Locate(contours []Contour, imgW, imgH int, p Profile) (Candidate, bool) {
	if len(contours) == 0 {
		return Candidate{}, false
	}

	minArea := p.MinAreaFrac * float64(imgW) * float64(imgH)

	ordered := append([]Contour(nil), contours...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Area() > ordered[j].Area()
	})

	for _, contour := range ordered {
		if contour.Area() < minArea {
			continue
		}

		approx := approxPolyDP(contour, 0.02*contour.Perimeter())
		var pts [4]Point
		if len(approx) == 4 {
			copy(pts[:], approx)
		} else if p.RequirePolygon {
			continue
		} else {
			pts = minAreaRect(contour)
		}

		quad := orderCorners(pts)
		width, height := quadDims(quad)
		if width < 200 || height < 200 {
			continue
		}

		if p.AspectMax > 0 {
			aspect := float64(width) / float64(height)
			if aspect < 1 {
				aspect = 1 / aspect
			}
			if aspect < p.AspectMin || aspect > p.AspectMax {
				continue
			}
		}

		return Candidate{Quad: quad, Width: width, Height: height, Method: CropPerspective}, true
	}

	// Fallback: the largest contour as an axis-aligned bounding box.
	best := ordered[0]
	if best.Area() >= minArea {
		x, y, w, h := best.BoundingBox()
		quad := Quad{
			{float64(x), float64(y)},
			{float64(x + w - 1), float64(y)},
			{float64(x + w - 1), float64(y + h - 1)},
			{float64(x), float64(y + h - 1)},
		}
		return Candidate{Quad: quad, Width: w, Height: h, Method: CropBoundingRect}, true
	}

	return Candidate{}, false
}

// orderCorners arranges four points canonically: the corner with the
// minimal coordinate sum is top-left and the maximal sum bottom-right; the
// minimal x-y difference is top-right and the maximal bottom-left.
func orderCorners(pts [4]Point) Quad {
	var q Quad
	minSum, maxSum := math.MaxFloat64, -math.MaxFloat64
	minDiff, maxDiff := math.MaxFloat64, -math.MaxFloat64
	for _, p := range pts {
		if s := p.X + p.Y; s < minSum {
			minSum = s
			q[0] = p
		}
		if s := p.X + p.Y; s > maxSum {
			maxSum = s
			q[2] = p
		}
		// Difference y-x separates the remaining diagonal: smallest at
		// top-right, largest at bottom-left.
		if d := p.Y - p.X; d < minDiff {
			minDiff = d
			q[1] = p
		}
		if d := p.Y - p.X; d > maxDiff {
			maxDiff = d
			q[3] = p
		}
	}
	return q
}

// quadDims derives the rectified output size: the longer of the two
// horizontal edges by the longer of the two vertical edges, truncated to
// whole pixels.
func quadDims(q Quad) (int, int) {
	widthTop := dist(q[1], q[0])
	widthBottom := dist(q[2], q[3])
	heightLeft := dist(q[3], q[0])
	heightRight := dist(q[2], q[1])
	return int(math.Max(widthTop, widthBottom)), int(math.Max(heightLeft, heightRight))
}
