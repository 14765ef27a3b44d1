package detect

import (
	"math"
	"testing"

	"github.com/snagata/ocrprep/internal/raster"
)

// createMask builds a single-channel mask with a filled foreground
// rectangle at (x, y) spanning w by h pixels.
func createMask(width, height, x, y, w, h int) *raster.Image {
	mask := raster.New(width, height, raster.GrayChannels)
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			mask.Pix[yy*width+xx] = 255
		}
	}
	return mask
}

func TestFindContoursSingleRect(t *testing.T) {
	mask := createMask(60, 60, 10, 20, 40, 25)

	contours := findContours(mask)
	if len(contours) != 1 {
		t.Fatalf("contour count: got %d, want 1", len(contours))
	}

	c := contours[0]
	x, y, w, h := c.BoundingBox()
	if x != 10 || y != 20 || w != 40 || h != 25 {
		t.Errorf("bounding box: got (%d,%d,%d,%d), want (10,20,40,25)", x, y, w, h)
	}

	// The traced boundary runs through pixel centers, so the polygon area
	// is (w-1)*(h-1), one ring short of the filled pixel count.
	if got, want := c.Area(), float64(39*24); got != want {
		t.Errorf("area: got %v, want %v", got, want)
	}
	if got, want := c.Perimeter(), float64(2*(39+24)); got != want {
		t.Errorf("perimeter: got %v, want %v", got, want)
	}
}

func TestFindContoursMultipleComponents(t *testing.T) {
	mask := raster.New(80, 40, raster.GrayChannels)
	for _, r := range [][4]int{{5, 5, 20, 20}, {50, 10, 15, 15}} {
		for yy := r[1]; yy < r[1]+r[3]; yy++ {
			for xx := r[0]; xx < r[0]+r[2]; xx++ {
				mask.Pix[yy*80+xx] = 255
			}
		}
	}

	contours := findContours(mask)
	if len(contours) != 2 {
		t.Fatalf("contour count: got %d, want 2", len(contours))
	}
}

func TestFindContoursEmptyMask(t *testing.T) {
	mask := raster.New(32, 32, raster.GrayChannels)
	if contours := findContours(mask); len(contours) != 0 {
		t.Errorf("contour count: got %d, want 0", len(contours))
	}
}

func TestApproxPolyDPRectangle(t *testing.T) {
	mask := createMask(100, 100, 15, 25, 60, 40)
	contours := findContours(mask)
	if len(contours) != 1 {
		t.Fatalf("contour count: got %d, want 1", len(contours))
	}

	c := contours[0]
	approx := approxPolyDP(c, 0.02*c.Perimeter())
	if len(approx) != 4 {
		t.Fatalf("approximated vertices: got %d, want 4", len(approx))
	}

	// Every vertex must coincide with a rectangle corner.
	corners := []Point{{15, 25}, {74, 25}, {74, 64}, {15, 64}}
	for _, p := range approx {
		found := false
		for _, c := range corners {
			if p == c {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("unexpected vertex %v", p)
		}
	}
}

func TestConvexHull(t *testing.T) {
	pts := []Point{
		{0, 0}, {10, 0}, {10, 10}, {0, 10},
		{5, 5}, {3, 7}, {6, 2}, // interior
	}
	hull := convexHull(pts)
	if len(hull) != 4 {
		t.Fatalf("hull size: got %d, want 4", len(hull))
	}
	for _, p := range hull {
		if p.X != 0 && p.X != 10 && p.Y != 0 && p.Y != 10 {
			t.Errorf("interior point %v on hull", p)
		}
	}
}

func TestMinAreaRectAxisAligned(t *testing.T) {
	c := Contour{{10, 10}, {50, 10}, {50, 30}, {10, 30}}
	rect := minAreaRect(c)

	area := Contour(rect[:]).Area()
	if math.Abs(area-800) > 1e-6 {
		t.Errorf("rect area: got %v, want 800", area)
	}
}

func TestMinAreaRectRotated(t *testing.T) {
	// A 45-degree diamond: the minimum-area rectangle is the diamond
	// itself (area 2*d*d for half-diagonal d), not the axis-aligned
	// bounding square (area 4*d*d).
	c := Contour{{50, 0}, {100, 50}, {50, 100}, {0, 50}}
	rect := minAreaRect(c)

	area := Contour(rect[:]).Area()
	if math.Abs(area-5000) > 1.0 {
		t.Errorf("rect area: got %v, want 5000", area)
	}
}

func TestPerpDistance(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		want    float64
	}{
		{"above horizontal line", Point{5, 3}, Point{0, 0}, Point{10, 0}, 3},
		{"on the line", Point{5, 0}, Point{0, 0}, Point{10, 0}, 0},
		{"degenerate segment", Point{3, 4}, Point{0, 0}, Point{0, 0}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := perpDistance(tt.p, tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("perpDistance: got %v, want %v", got, tt.want)
			}
		})
	}
}
