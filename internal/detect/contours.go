package detect

import (
	"math"
	"sort"

	"github.com/snagata/ocrprep/internal/raster"
)

// Point is a 2D coordinate in image space.
type Point struct {
	X, Y float64
}

func (p Point) sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// dist returns the Euclidean distance between two points.
func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Contour is an ordered sequence of points approximating a closed boundary.
// Contours are transient: they exist between edge extraction and
// quadrilateral selection and are discarded afterwards.
type Contour []Point

// Area returns the enclosed area computed by the shoelace formula over the
// closed polygon.
func (c Contour) Area() float64 {
	if len(c) < 3 {
		return 0
	}
	var sum float64
	for i, p := range c {
		q := c[(i+1)%len(c)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the closed arc length of the contour.
func (c Contour) Perimeter() float64 {
	if len(c) < 2 {
		return 0
	}
	var sum float64
	for i, p := range c {
		sum += dist(p, c[(i+1)%len(c)])
	}
	return sum
}

// BoundingBox returns the axis-aligned integer bounding box of the contour
// as (x, y, width, height), inclusive of the boundary pixels.
func (c Contour) BoundingBox() (x, y, w, h int) {
	minX, minY := c[0].X, c[0].Y
	maxX, maxY := c[0].X, c[0].Y
	for _, p := range c[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return int(minX), int(minY), int(maxX-minX) + 1, int(maxY-minY) + 1
}

// findContours extracts the external boundary of every connected foreground
// component in a binary plane. Components are found by 8-connected flood
// fill; each component's outer boundary is then walked with Moore-neighbor
// tracing and compressed so runs of collinear steps keep only their
// endpoints. Nested (hole) boundaries are never produced.
func findContours(mask *raster.Image) []Contour {
	w, h := mask.Width, mask.Height
	labels := make([]int32, w*h)
	var contours []Contour
	next := int32(0)

	var stack []int
	for start := 0; start < w*h; start++ {
		if mask.Pix[start] == 0 || labels[start] != 0 {
			continue
		}
		next++

		// Flood-fill the component so later scan hits skip it. The first
		// pixel in scan order is the topmost-leftmost, the canonical trace
		// start.
		stack = stack[:0]
		stack = append(stack, start)
		labels[start] = next
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
					if mask.Pix[j] != 0 && labels[j] == 0 {
						labels[j] = next
						stack = append(stack, j)
					}
				}
			}
		}

		boundary := traceBoundary(labels, w, h, next, start%w, start/w)
		contours = append(contours, compressCollinear(boundary))
	}
	return contours
}

// mooreDirs enumerates the 8 neighbors in clockwise order (image
// coordinates, Y down), starting east.
var mooreDirs = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// traceBoundary walks the outer boundary of one labeled component clockwise
// using Moore-neighbor tracing with a backtracking start criterion. (sx, sy)
// must be the component's first pixel in row-major scan order, which
// guarantees its west neighbor is background.
func traceBoundary(labels []int32, w, h int, label int32, sx, sy int) Contour {
	inside := func(x, y int) bool {
		return x >= 0 && x < w && y >= 0 && y < h && labels[y*w+x] == label
	}

	contour := Contour{{float64(sx), float64(sy)}}
	cx, cy := sx, sy
	// Entered from the west.
	backtrack := 4

	// Bounded by the number of boundary traversals a component can need.
	for step := 0; step < 4*w*h+8; step++ {
		found := false
		var nx, ny, nb int
		for k := 1; k <= 8; k++ {
			d := (backtrack + k) % 8
			tx, ty := cx+mooreDirs[d][0], cy+mooreDirs[d][1]
			if inside(tx, ty) {
				nx, ny = tx, ty
				// Next scan resumes from the last background neighbor,
				// which sits opposite-of-entry relative to the new pixel.
				prev := (backtrack + k - 1) % 8
				px, py := cx+mooreDirs[prev][0], cy+mooreDirs[prev][1]
				nb = dirIndex(px-nx, py-ny)
				found = true
				break
			}
		}
		if !found {
			// Isolated pixel.
			return contour
		}
		if nx == sx && ny == sy && len(contour) > 1 {
			return contour
		}
		cx, cy, backtrack = nx, ny, nb
		contour = append(contour, Point{float64(cx), float64(cy)})
	}
	return contour
}

// dirIndex maps a unit king-move offset to its mooreDirs index.
func dirIndex(dx, dy int) int {
	for i, d := range mooreDirs {
		if d[0] == dx && d[1] == dy {
			return i
		}
	}
	return 0
}

// compressCollinear drops interior points of straight 8-connected runs,
// keeping only the vertices where the walk changes direction. Area and
// perimeter are unchanged by the compression.
func compressCollinear(c Contour) Contour {
	if len(c) < 3 {
		return c
	}
	out := make(Contour, 0, len(c))
	for i := range c {
		prev := c[(i+len(c)-1)%len(c)]
		next := c[(i+1)%len(c)]
		d1 := c[i].sub(prev)
		d2 := next.sub(c[i])
		if d1.X*d2.Y != d1.Y*d2.X || (d1.X == 0 && d1.Y == 0) {
			out = append(out, c[i])
		}
	}
	if len(out) == 0 {
		// Fully collinear boundary; keep the endpoints.
		return Contour{c[0], c[len(c)/2]}
	}
	return out
}

// approxPolyDP simplifies a closed contour with the Douglas-Peucker
// algorithm: vertices closer than epsilon to the chord between their
// neighbors are dropped. The curve is split at the vertex farthest from the
// first point so both halves have stable anchor chords.
func approxPolyDP(c Contour, epsilon float64) Contour {
	if len(c) < 3 {
		return append(Contour(nil), c...)
	}

	far := 0
	maxD := -1.0
	for i, p := range c {
		if d := dist(c[0], p); d > maxD {
			maxD = d
			far = i
		}
	}

	firstHalf := dpSimplify(c[:far+1], epsilon)
	secondHalf := dpSimplify(append(append(Contour(nil), c[far:]...), c[0]), epsilon)

	out := append(Contour(nil), firstHalf[:len(firstHalf)-1]...)
	out = append(out, secondHalf[:len(secondHalf)-1]...)
	return out
}

// dpSimplify recursively simplifies an open polyline between its endpoints.
func dpSimplify(pts Contour, epsilon float64) Contour {
	if len(pts) < 3 {
		return pts
	}
	maxD := 0.0
	index := 0
	for i := 1; i < len(pts)-1; i++ {
		if d := perpDistance(pts[i], pts[0], pts[len(pts)-1]); d > maxD {
			maxD = d
			index = i
		}
	}
	if maxD <= epsilon {
		return Contour{pts[0], pts[len(pts)-1]}
	}
	left := dpSimplify(pts[:index+1], epsilon)
	right := dpSimplify(pts[index:], epsilon)
	return append(left[:len(left)-1], right...)
}

// perpDistance returns the distance from p to the segment's supporting
// line, or to the endpoint when the segment degenerates to a point.
func perpDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return dist(p, a)
	}
	return math.Abs(dx*(a.Y-p.Y)-dy*(a.X-p.X)) / length
}

// convexHull computes the convex hull of a point set with Andrew's monotone
// chain, returned in counterclockwise order without a repeated endpoint.
func convexHull(pts []Point) []Point {
	if len(pts) < 3 {
		return append([]Point(nil), pts...)
	}
	sorted := append([]Point(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	cross := func(o, a, b Point) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	var hull []Point
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// minAreaRect returns the four corners of the minimum-area rotated
// rectangle enclosing the contour, found by rotating calipers over the
// convex hull. Corner order is unspecified; callers canonicalize with
// orderCorners.
func minAreaRect(c Contour) [4]Point {
	hull := convexHull(c)
	if len(hull) < 3 {
		x, y, w, h := c.BoundingBox()
		return [4]Point{
			{float64(x), float64(y)},
			{float64(x + w - 1), float64(y)},
			{float64(x + w - 1), float64(y + h - 1)},
			{float64(x), float64(y + h - 1)},
		}
	}

	best := math.MaxFloat64
	var corners [4]Point
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		ux, uy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(ux, uy)
		if length == 0 {
			continue
		}
		ux, uy = ux/length, uy/length
		vx, vy := -uy, ux

		minU, maxU := math.MaxFloat64, -math.MaxFloat64
		minV, maxV := math.MaxFloat64, -math.MaxFloat64
		for _, p := range hull {
			u := p.X*ux + p.Y*uy
			v := p.X*vx + p.Y*vy
			minU = math.Min(minU, u)
			maxU = math.Max(maxU, u)
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}

		area := (maxU - minU) * (maxV - minV)
		if area < best {
			best = area
			corners = [4]Point{
				{minU*ux + minV*vx, minU*uy + minV*vy},
				{maxU*ux + minV*vx, maxU*uy + minV*vy},
				{maxU*ux + maxV*vx, maxU*uy + maxV*vy},
				{minU*ux + maxV*vx, minU*uy + maxV*vy},
			}
		}
	}
	return corners
}
