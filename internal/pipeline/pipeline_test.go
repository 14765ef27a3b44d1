package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/snagata/ocrprep/internal/detect"
	"github.com/snagata/ocrprep/internal/raster"
)

// createCardPhoto paints a bright card centered on a dark background,
// mimicking a photographed business card.
func createCardPhoto(width, height, cardW, cardH int) *raster.Image {
	im := raster.New(width, height, raster.ColorChannels)
	for i := 0; i < len(im.Pix); i += 3 {
		im.Pix[i] = 20
		im.Pix[i+1] = 22
		im.Pix[i+2] = 28
	}
	x0 := (width - cardW) / 2
	y0 := (height - cardH) / 2
	for y := y0; y < y0+cardH; y++ {
		for x := x0; x < x0+cardW; x++ {
			o := im.Offset(x, y)
			im.Pix[o] = 238
			im.Pix[o+1] = 235
			im.Pix[o+2] = 228
		}
	}
	return im
}

func createFlatPhoto(width, height int, v uint8) *raster.Image {
	im := raster.New(width, height, raster.ColorChannels)
	for i := range im.Pix {
		im.Pix[i] = v
	}
	return im
}

func TestProcessCropsPhotographedCard(t *testing.T) {
	if testing.Short() {
		t.Skip("full pipeline on a large frame")
	}

	// Card at 16:10, 40% of the frame: inside the lenient area and aspect
	// gates with room for the detector's outward slack.
	im := createCardPhoto(1500, 1000, 960, 600)

	p := New(DefaultParams())
	out, meta, err := p.Process(im)
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if !meta.Cropped {
		t.Fatal("card not cropped")
	}
	if meta.CropMethod == nil || *meta.CropMethod != detect.CropPerspective {
		t.Errorf("crop method: got %v, want perspective", meta.CropMethod)
	}
	if out.ShortSide() < 720 {
		t.Errorf("short side: got %d, want >= 720", out.ShortSide())
	}
	if meta.FinalShape != [2]int{out.Height, out.Width} {
		t.Errorf("final shape %v does not match output %dx%d",
			meta.FinalShape, out.Width, out.Height)
	}

	// The crop must be dramatically smaller than the frame but at least
	// the card itself.
	ow, oh := meta.OriginalShape[1], meta.OriginalShape[0]
	if ow >= 1500 || oh >= 1000 {
		t.Errorf("crop did not shrink the frame: %dx%d", ow, oh)
	}
	if ow < 960 || oh < 600 {
		t.Errorf("crop smaller than the card: %dx%d", ow, oh)
	}
}

func TestProcessPassthroughAndUpscale(t *testing.T) {
	if testing.Short() {
		t.Skip("full enhancement chain at output resolution")
	}

	im := createFlatPhoto(500, 500, 150)
	p := New(DefaultParams())
	out, meta, err := p.Process(im)
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if meta.Cropped {
		t.Error("flat image reported as cropped")
	}
	if meta.CropMethod != nil {
		t.Errorf("crop method: got %q, want nil", *meta.CropMethod)
	}
	if meta.OriginalShape != [2]int{500, 500} {
		t.Errorf("original shape: got %v, want [500 500]", meta.OriginalShape)
	}
	if meta.ScaleFactor != 1.44 {
		t.Errorf("scale factor: got %v, want 1.44", meta.ScaleFactor)
	}
	if out.Width != 720 || out.Height != 720 {
		t.Errorf("output: got %dx%d, want 720x720", out.Width, out.Height)
	}
	if meta.FinalShape != [2]int{720, 720} {
		t.Errorf("final shape: got %v, want [720 720]", meta.FinalShape)
	}
	if meta.MinSize != 720 {
		t.Errorf("min size: got %d, want 720", meta.MinSize)
	}
}

func TestProcessLargeUncroppedKeepsScale(t *testing.T) {
	if testing.Short() {
		t.Skip("full enhancement chain at input resolution")
	}

	im := createFlatPhoto(900, 760, 128)
	p := New(DefaultParams())
	out, meta, err := p.Process(im)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if meta.ScaleFactor != 1.0 {
		t.Errorf("scale factor: got %v, want 1.0", meta.ScaleFactor)
	}
	if out.Width != 900 || out.Height != 760 {
		t.Errorf("output: got %dx%d, want 900x760", out.Width, out.Height)
	}
}

func TestProcessDeterministic(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the pipeline twice")
	}

	im := createCardPhoto(900, 700, 560, 340)
	p := New(DefaultParams())

	a, metaA, err := p.Process(im)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, metaB, err := p.Process(im)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	rawA, _ := json.Marshal(metaA)
	rawB, _ := json.Marshal(metaB)
	if string(rawA) != string(rawB) {
		t.Fatalf("metadata differs: %s vs %s", rawA, rawB)
	}
	if len(a.Pix) != len(b.Pix) {
		t.Fatalf("output sizes differ")
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("outputs differ at byte %d", i)
		}
	}
}

func TestMetadataJSONContract(t *testing.T) {
	method := detect.CropPerspective
	meta := Metadata{
		Cropped:       true,
		CropMethod:    &method,
		ScaleFactor:   1.4400,
		OriginalShape: [2]int{600, 960},
		FinalShape:    [2]int{864, 1383},
		MinSize:       720,
	}

	raw, err := json.Marshal(meta)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{
		"cropped", "crop_method", "scale_factor",
		"original_shape", "final_shape", "min_size",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if len(decoded) != 6 {
		t.Errorf("key count: got %d, want 6", len(decoded))
	}
	if decoded["crop_method"] != "perspective" {
		t.Errorf("crop_method: got %v", decoded["crop_method"])
	}
}

func TestMetadataJSONNullCropMethod(t *testing.T) {
	raw, err := json.Marshal(Metadata{ScaleFactor: 1, MinSize: 720})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := decoded["crop_method"]; !ok || v != nil {
		t.Errorf("crop_method: got %v, want explicit null", v)
	}
}
