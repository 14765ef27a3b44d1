package raster

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Grayscale converts a color raster to a single-channel raster using ITU-R
// BT.601 luminance weights (0.299*R + 0.587*G + 0.114*B). A grayscale input
// is copied unchanged.
func Grayscale(im *Image) *Image {
	if im.Channels == GrayChannels {
		return im.Clone()
	}
	out := New(im.Width, im.Height, GrayChannels)
	for i, j := 0, 0; i < len(im.Pix); i, j = i+3, j+1 {
		r := float64(im.Pix[i+0])
		g := float64(im.Pix[i+1])
		b := float64(im.Pix[i+2])
		out.Pix[j] = ClampU8(0.299*r + 0.587*g + 0.114*b)
	}
	return out
}

// SwapRB returns a copy of a color raster with the first and third channels
// exchanged, converting RGB to BGR ordering or back. Buffers handed to or
// received from BGR-ordered tooling go through this before any other stage.
func SwapRB(im *Image) *Image {
	if im.Channels != ColorChannels {
		panic("raster: SwapRB requires a 3-channel image")
	}
	out := im.Clone()
	for i := 0; i < len(out.Pix); i += 3 {
		out.Pix[i], out.Pix[i+2] = out.Pix[i+2], out.Pix[i]
	}
	return out
}

// SplitChannels separates a raster into per-channel grayscale planes, in
// channel order.
func SplitChannels(im *Image) []*Image {
	planes := make([]*Image, im.Channels)
	for c := range planes {
		planes[c] = New(im.Width, im.Height, GrayChannels)
	}
	for i, j := 0, 0; i < len(im.Pix); i, j = i+im.Channels, j+1 {
		for c := 0; c < im.Channels; c++ {
			planes[c].Pix[j] = im.Pix[i+c]
		}
	}
	return planes
}

// MergeChannels interleaves grayscale planes into a multi-channel raster.
// All planes must share the same dimensions, and there must be 1 or 3 of
// them.
func MergeChannels(planes []*Image) (*Image, error) {
	if len(planes) != GrayChannels && len(planes) != ColorChannels {
		return nil, fmt.Errorf("raster: cannot merge %d planes", len(planes))
	}
	w, h := planes[0].Width, planes[0].Height
	for _, p := range planes {
		if p.Channels != GrayChannels {
			return nil, fmt.Errorf("raster: merge input must be single-channel")
		}
		if p.Width != w || p.Height != h {
			return nil, fmt.Errorf("raster: merge inputs disagree on size: %dx%d vs %dx%d",
				w, h, p.Width, p.Height)
		}
	}
	out := New(w, h, len(planes))
	for i, j := 0, 0; i < len(out.Pix); i, j = i+out.Channels, j+1 {
		for c := 0; c < out.Channels; c++ {
			out.Pix[i+c] = planes[c].Pix[j]
		}
	}
	return out, nil
}

// ToLab converts an RGB raster to quantized CIE LAB planes.
//
// L is scaled to the full 0..255 range; a and b are offset by 128 so that
// the neutral axis sits at 128, matching the usual 8-bit LAB convention.
// The conversion assumes sRGB input under D65.
func ToLab(im *Image) (l, a, b *Image) {
	if im.Channels != ColorChannels {
		panic("raster: ToLab requires a 3-channel image")
	}
	l = New(im.Width, im.Height, GrayChannels)
	a = New(im.Width, im.Height, GrayChannels)
	b = New(im.Width, im.Height, GrayChannels)
	for i, j := 0, 0; i < len(im.Pix); i, j = i+3, j+1 {
		c := colorful.Color{
			R: float64(im.Pix[i+0]) / 255,
			G: float64(im.Pix[i+1]) / 255,
			B: float64(im.Pix[i+2]) / 255,
		}
		cl, ca, cb := c.Lab()
		l.Pix[j] = ClampU8(cl * 255)
		a.Pix[j] = ClampU8(ca*100 + 128)
		b.Pix[j] = ClampU8(cb*100 + 128)
	}
	return l, a, b
}

// FromLab converts quantized LAB planes (as produced by ToLab) back to an
// RGB raster. Out-of-gamut results are clamped to the sRGB cube.
func FromLab(l, a, b *Image) *Image {
	out := New(l.Width, l.Height, ColorChannels)
	for i, j := 0, 0; i < len(out.Pix); i, j = i+3, j+1 {
		c := colorful.Lab(
			float64(l.Pix[j])/255,
			(float64(a.Pix[j])-128)/100,
			(float64(b.Pix[j])-128)/100,
		).Clamped()
		r8, g8, b8 := c.RGB255()
		out.Pix[i+0] = r8
		out.Pix[i+1] = g8
		out.Pix[i+2] = b8
	}
	return out
}

// LabLuminance computes only the L plane of the LAB conversion. The contour
// detector works on luminance alone, so skipping the chroma channels avoids
// two thirds of the conversion cost on large photographs.
func LabLuminance(im *Image) *Image {
	if im.Channels == GrayChannels {
		return im.Clone()
	}
	out := New(im.Width, im.Height, GrayChannels)
	for i, j := 0, 0; i < len(im.Pix); i, j = i+3, j+1 {
		c := colorful.Color{
			R: float64(im.Pix[i+0]) / 255,
			G: float64(im.Pix[i+1]) / 255,
			B: float64(im.Pix[i+2]) / 255,
		}
		cl, _, _ := c.Lab()
		out.Pix[j] = ClampU8(cl * 255)
	}
	return out
}
