// Package detect locates the dominant card or document region in a
// photograph.
//
// Detection runs in two phases. The edge phase reduces the image to a
// binary edge map: either adaptive thresholding of the LAB luminance plane
// followed by morphological closing and Canny extraction (for cards on
// contrasting backgrounds), or a plain blur-and-Canny pass (for scenes
// whose contrast is already high). The geometry phase traces external
// contours from the edge map, approximates each to a polygon, and selects
// the first sufficiently large, card-shaped quadrilateral, largest area
// first.
//
// Which edge strategy and acceptance policy apply is a Profile choice made
// by the caller, not something inferred from the data. Two profiles are
// provided: Lenient tolerates irregular outlines by substituting the
// minimum-area enclosing rectangle when the polygon approximation is not a
// clean 4-gon, while Strict only accepts true quadrilaterals and demands a
// larger minimum area.
//
// Finding nothing is a normal outcome, reported through the boolean result
// of Locate rather than an error; the caller passes the image through
// uncropped.
//
// # Coordinate System
//
// All coordinates are 0-based with origin at the top-left corner, X
// increasing rightward and Y increasing downward, matching package raster.
package detect
