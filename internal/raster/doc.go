// Package raster provides the pixel buffer type shared by every pipeline
// stage, together with color space conversions, file loading/saving, and
// resolution normalization.
//
// # Buffer Model
//
// All stages operate on the Image type: a tightly packed, row-major, 8-bit
// buffer with either 1 (grayscale) or 3 (RGB) interleaved channels. Each
// Image owns its buffer exclusively; stages never mutate their input in
// place, they allocate and return a replacement. This keeps the working set
// bounded to the current input and output buffers and makes every stage
// trivially safe to run concurrently across images.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with origin at the top-left corner, X
// increasing rightward and Y increasing downward.
//
// # Color Spaces
//
// Conversions cover the spaces the pipeline needs: RGB, BGR (for interop
// with buffers produced by BGR-ordered tooling), CIE LAB (D65, 8-bit
// quantization matching the common L=0..255, a/b offset-128 convention), and
// BT.601 grayscale. LAB conversions are backed by go-colorful.
//
// # Error Handling
//
// Open returns a *DecodeError when the source bytes cannot be interpreted as
// an image; Save returns a *WriteError carrying the destination path. Both
// wrap the underlying cause and work with errors.As.
package raster
