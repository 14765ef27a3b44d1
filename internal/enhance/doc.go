// Package enhance implements the photometric enhancement chain applied to
// the rectified, resolution-normalized image.
//
// The stages run in a fixed order, each consuming the previous stage's
// complete output:
//
//  1. Color non-local-means denoising over the LAB planes
//  2. Contrast-limited adaptive histogram equalization on the L channel
//  3. Unsharp masking
//  4. Gamma correction via a 256-entry lookup table
//
// Every stage is a deterministic pure function: no randomness, no shared
// state, and re-running a stage on its own output is always valid (the
// chain is safe to apply repeatedly, though the parameters are tuned for a
// single pass). Expensive setup (the gamma lookup table) lives in the
// caller-owned Chain value rather than package state.
package enhance
