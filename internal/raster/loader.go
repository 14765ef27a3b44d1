package raster

import (
	"fmt"

	"github.com/disintegration/imaging"

	// Register decoders beyond the PNG/JPEG/GIF the standard library ships
	// with, so Open accepts the same photograph formats cameras produce.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeError reports that a source file could not be read or interpreted
// as an image. It is a data problem, not a transient one: retrying the same
// path without changing the file is pointless.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WriteError reports that a processed image could not be persisted. It
// carries the destination path for the caller's diagnostics.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Open loads an image file into a 3-channel RGB raster.
//
// EXIF orientation is applied during decode, so the returned buffer is
// already upright; downstream stages never see rotated pixels. Supported
// formats are PNG, JPEG, GIF, BMP, TIFF, and WEBP.
//
// Failures are returned as *DecodeError.
func Open(path string) (*Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return FromImage(img), nil
}

// Save writes a raster to disk, choosing the encoder from the destination
// extension (.png, .jpg/.jpeg, .gif, .tif/.tiff, .bmp). JPEG output uses
// quality 95.
//
// Failures are returned as *WriteError carrying the destination path.
func Save(im *Image, path string) error {
	if err := imaging.Save(im.ToNRGBA(), path, imaging.JPEGQuality(95)); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
