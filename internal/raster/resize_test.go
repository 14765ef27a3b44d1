package raster

import "testing"

func TestEnsureMinSide(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		minSide       int
		wantW, wantH  int
		wantScale     float64
	}{
		{"already large", 1000, 800, 720, 1000, 800, 1.0},
		{"exactly at minimum", 720, 720, 720, 720, 720, 1.0},
		{"square upscale", 500, 500, 720, 720, 720, 1.44},
		{"landscape short side", 900, 360, 720, 1800, 720, 2.0},
		{"portrait short side", 360, 900, 720, 720, 1800, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im := createSolidImage(tt.width, tt.height, 128, 128, 128)
			out, scale := EnsureMinSide(im, tt.minSide)
			if out.Width != tt.wantW || out.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d",
					out.Width, out.Height, tt.wantW, tt.wantH)
			}
			if scale != tt.wantScale {
				t.Errorf("scale: got %v, want %v", scale, tt.wantScale)
			}
		})
	}
}

func TestEnsureMinSideNeverDownscales(t *testing.T) {
	im := createSolidImage(2000, 1500, 0, 0, 0)
	out, scale := EnsureMinSide(im, 100)
	if out.Width != 2000 || out.Height != 1500 {
		t.Errorf("dimensions changed: got %dx%d", out.Width, out.Height)
	}
	if scale != 1.0 {
		t.Errorf("scale: got %v, want 1.0", scale)
	}
}

func TestEnsureMinSideCeilsDimensions(t *testing.T) {
	// 333 -> 720 gives scale 720/333; the long side 500*scale = 1081.08...
	// must round up so no dimension lands below the target.
	im := createSolidImage(500, 333, 128, 128, 128)
	out, _ := EnsureMinSide(im, 720)
	if out.Height != 720 {
		t.Errorf("short side: got %d, want 720", out.Height)
	}
	if out.Width != 1082 {
		t.Errorf("long side: got %d, want 1082", out.Width)
	}
}
