// Package rectify unwarps a detected quadrilateral into an axis-aligned
// rectangle.
//
// The projective transform is computed from the four corner
// correspondences by solving the standard 8x8 linear system, then applied
// by inverse mapping: every destination pixel is projected back into the
// source and sampled with Catmull-Rom (bicubic) interpolation. Inverse
// mapping guarantees the output buffer is exactly the requested size with
// every pixel written.
//
// Degenerate quadrilaterals (collinear corners) make the system singular;
// the locator's size gates reject them before they reach this package, and
// the solver reports an error if one slips through.
package rectify
