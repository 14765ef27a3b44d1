package enhance

import (
	"testing"

	"github.com/snagata/ocrprep/internal/raster"
)

func TestTileLUTMonotonic(t *testing.T) {
	p := createNoisyPlane(64, 64, 90)
	lut := tileLUT(p, 0, 0, 64, 64, 2.0)
	for i := 1; i < 256; i++ {
		if lut[i] < lut[i-1] {
			t.Errorf("lut not monotonic at %d: %d < %d", i, lut[i], lut[i-1])
		}
	}
	if lut[255] != 255 {
		t.Errorf("lut[255]: got %d, want 255", lut[255])
	}
}

func TestTileLUTConservesCounts(t *testing.T) {
	// With the histogram concentrated in one bin, clipping must spread the
	// excess without losing any count: the top of the cumulative
	// distribution still maps to full range.
	p := raster.New(32, 32, raster.GrayChannels)
	for i := range p.Pix {
		p.Pix[i] = 65
	}
	lut := tileLUT(p, 0, 0, 32, 32, 2.0)
	if lut[255] != 255 {
		t.Errorf("lut[255]: got %d, want 255", lut[255])
	}
	if lut[64] >= lut[65] {
		t.Errorf("clipped peak lost its step: lut[64]=%d, lut[65]=%d", lut[64], lut[65])
	}
}

func TestClahePlaneShapeAndRange(t *testing.T) {
	p := createNoisyPlane(100, 80, 120)
	out := clahePlane(p, 2.0, 8, 8)
	if out.Width != 100 || out.Height != 80 {
		t.Fatalf("dimensions: got %dx%d, want 100x80", out.Width, out.Height)
	}
}

func TestClahePlaneStretchesLowContrast(t *testing.T) {
	// A soft horizontal ramp confined to a narrow band of levels. After
	// equalization the value range must widen.
	p := raster.New(128, 64, raster.GrayChannels)
	for y := 0; y < 64; y++ {
		for x := 0; x < 128; x++ {
			p.Pix[y*128+x] = uint8(110 + x/8)
		}
	}

	out := clahePlane(p, 4.0, 4, 4)

	min, max := out.Pix[0], out.Pix[0]
	for _, v := range out.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if int(max)-int(min) <= 16 {
		t.Errorf("contrast not stretched: range [%d, %d]", min, max)
	}
}

func TestClahePlaneDeterministic(t *testing.T) {
	p := createNoisyPlane(90, 70, 100)
	a := clahePlane(p, 2.0, 8, 8)
	b := clahePlane(p, 2.0, 8, 8)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("non-deterministic output at %d", i)
		}
	}
}

func TestLocalContrastPreservesShape(t *testing.T) {
	im := raster.New(64, 48, raster.ColorChannels)
	for i := range im.Pix {
		im.Pix[i] = uint8(100 + i%40)
	}
	out := LocalContrast(im, 2.0, 8, 8)
	if out.Width != 64 || out.Height != 48 || out.Channels != raster.ColorChannels {
		t.Errorf("shape: got %dx%dx%d, want 64x48x3", out.Width, out.Height, out.Channels)
	}
}
