package enhance

import (
	"math"
	"testing"

	"github.com/snagata/ocrprep/internal/raster"
)

func TestGammaLUTValues(t *testing.T) {
	table := NewGammaLUT(1.1)
	for i := 0; i < 256; i++ {
		want := uint8(math.Round(255 * math.Pow(float64(i)/255, 1/1.1)))
		if table[i] != want {
			t.Errorf("table[%d]: got %d, want %d", i, table[i], want)
		}
	}
}

func TestGammaLUTEndpoints(t *testing.T) {
	for _, gamma := range []float64{0.5, 1.0, 1.1, 2.2} {
		table := NewGammaLUT(gamma)
		if table[0] != 0 {
			t.Errorf("gamma %v: table[0] = %d, want 0", gamma, table[0])
		}
		if table[255] != 255 {
			t.Errorf("gamma %v: table[255] = %d, want 255", gamma, table[255])
		}
	}
}

func TestGammaLUTIdentity(t *testing.T) {
	table := NewGammaLUT(1.0)
	for i := 0; i < 256; i++ {
		if table[i] != uint8(i) {
			t.Errorf("table[%d]: got %d, want %d", i, table[i], i)
		}
	}
}

func TestGammaLUTMonotonic(t *testing.T) {
	table := NewGammaLUT(1.1)
	for i := 1; i < 256; i++ {
		if table[i] < table[i-1] {
			t.Errorf("table not monotonic at %d: %d < %d", i, table[i], table[i-1])
		}
	}
}

func TestGammaBrightensAboveOne(t *testing.T) {
	table := NewGammaLUT(1.1)
	if table[128] <= 128 {
		t.Errorf("gamma 1.1 did not brighten midtone: table[128] = %d", table[128])
	}
}

func TestGammaLUTTinyGammaIsFinite(t *testing.T) {
	table := NewGammaLUT(0)
	if table[255] != 255 {
		t.Errorf("table[255]: got %d, want 255", table[255])
	}
	// Everything below full white collapses toward black at the floor
	// exponent.
	if table[200] != 0 {
		t.Errorf("table[200]: got %d, want 0", table[200])
	}
}

func TestGammaApply(t *testing.T) {
	table := NewGammaLUT(1.1)
	im := raster.New(2, 2, raster.ColorChannels)
	for i := range im.Pix {
		im.Pix[i] = uint8(i * 20)
	}
	out := table.Apply(im)
	for i, v := range im.Pix {
		if out.Pix[i] != table[v] {
			t.Errorf("pixel %d: got %d, want %d", i, out.Pix[i], table[v])
		}
	}
}
