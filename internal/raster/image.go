package raster

import (
	"fmt"
	"image"
)

// Grayscale and color channel counts supported by Image.
const (
	GrayChannels  = 1
	ColorChannels = 3
)

// Image is an 8-bit raster with interleaved channels.
//
// The pixel at (x, y) occupies Pix[(y*Width+x)*Channels : ...+Channels].
// Channels is either 1 (grayscale) or 3 (color). The buffer is owned
// exclusively by the Image; pipeline stages treat it as immutable once
// produced and allocate a fresh Image for their output.
type Image struct {
	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels.
	Height int

	// Channels is the number of interleaved 8-bit channels (1 or 3).
	Channels int

	// Pix holds the pixel data, row-major, Width*Height*Channels bytes.
	Pix []uint8
}

// New allocates a zeroed image of the given dimensions.
//
// Panics if width or height is non-positive or channels is not 1 or 3;
// dimensions come from decoded images or earlier stages, so a violation is a
// programming error rather than an input condition.
func New(width, height, channels int) *Image {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("raster: invalid dimensions %dx%d", width, height))
	}
	if channels != GrayChannels && channels != ColorChannels {
		panic(fmt.Sprintf("raster: invalid channel count %d", channels))
	}
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// ShortSide returns the smaller of the image's height and width.
func (im *Image) ShortSide() int {
	if im.Height < im.Width {
		return im.Height
	}
	return im.Width
}

// Offset returns the index of the first channel of the pixel at (x, y).
func (im *Image) Offset(x, y int) int {
	return (y*im.Width + x) * im.Channels
}

// Clone returns a deep copy of the image.
func (im *Image) Clone() *Image {
	out := New(im.Width, im.Height, im.Channels)
	copy(out.Pix, im.Pix)
	return out
}

// FromImage converts a standard library image into a 3-channel RGB raster.
//
// Alpha is discarded; 16-bit sources are truncated to their high 8 bits, the
// same convention the standard library uses for 8-bit color models.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	out := New(bounds.Dx(), bounds.Dy(), ColorChannels)

	// Fast path for NRGBA, the type produced by the loader.
	if nrgba, ok := src.(*image.NRGBA); ok {
		for y := 0; y < out.Height; y++ {
			srcRow := nrgba.Pix[y*nrgba.Stride:]
			dstRow := out.Pix[y*out.Width*ColorChannels:]
			for x := 0; x < out.Width; x++ {
				dstRow[x*3+0] = srcRow[x*4+0]
				dstRow[x*3+1] = srcRow[x*4+1]
				dstRow[x*3+2] = srcRow[x*4+2]
			}
		}
		return out
	}

	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			r, g, b, _ := src.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			i := out.Offset(x, y)
			out.Pix[i+0] = uint8(r >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(b >> 8)
		}
	}
	return out
}

// ToNRGBA converts the raster to a standard library NRGBA image with full
// opacity. Grayscale rasters replicate their single channel.
func (im *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, im.Width, im.Height))
	for y := 0; y < im.Height; y++ {
		dstRow := out.Pix[y*out.Stride:]
		for x := 0; x < im.Width; x++ {
			i := im.Offset(x, y)
			var r, g, b uint8
			if im.Channels == GrayChannels {
				r, g, b = im.Pix[i], im.Pix[i], im.Pix[i]
			} else {
				r, g, b = im.Pix[i+0], im.Pix[i+1], im.Pix[i+2]
			}
			dstRow[x*4+0] = r
			dstRow[x*4+1] = g
			dstRow[x*4+2] = b
			dstRow[x*4+3] = 255
		}
	}
	return out
}

// ClampU8 constrains a float value to the valid 8-bit pixel range and rounds
// to the nearest integer.
func ClampU8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
