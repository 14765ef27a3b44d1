package detect

// EdgeMode selects how the binary edge map is produced.
type EdgeMode int

const (
	// EdgeAdaptive thresholds the LAB luminance against its local
	// neighborhood and closes the mask before edge extraction. Suited to
	// cards photographed on a contrasting background.
	EdgeAdaptive EdgeMode = iota

	// EdgeCanny runs plain blur-and-Canny on grayscale. Suited to
	// high-contrast line-drawing scenes where adaptive thresholding adds
	// nothing.
	EdgeCanny
)

// Profile bundles the edge strategy and the quadrilateral acceptance policy
// for one deployment. The choice between profiles is configuration, not
// something inferred from image content.
type Profile struct {
	// Name identifies the profile in logs and diagnostics.
	Name string

	// Mode selects the edge extraction strategy.
	Mode EdgeMode

	// CannyLow and CannyHigh are the hysteresis thresholds for edge
	// extraction.
	CannyLow, CannyHigh float64

	// MinAreaFrac is the minimum contour area as a fraction of the image
	// area. Smaller contours are never considered.
	MinAreaFrac float64

	// RequirePolygon rejects candidates whose polygon approximation is not
	// exactly four vertices. When false, the minimum-area enclosing
	// rectangle substitutes for irregular outlines.
	RequirePolygon bool

	// AspectMin and AspectMax bound the accepted width/height ratio
	// (normalized to >= 1). Both zero disables the check.
	AspectMin, AspectMax float64
}

// Lenient is the default profile: adaptive thresholding, a permissive 5%
// area floor, rotated-rectangle substitution for ragged outlines, and a
// business-card aspect band.
func Lenient() Profile {
	return Profile{
		Name:        "lenient",
		Mode:        EdgeAdaptive,
		CannyLow:    30,
		CannyHigh:   120,
		MinAreaFrac: 0.05,
		AspectMin:   1.1,
		AspectMax:   3.5,
	}
}

// Strict trades recall for precision on clean, high-contrast input: plain
// Canny edges, a 20% area floor, and true quadrilaterals only.
func Strict() Profile {
	return Profile{
		Name:           "strict",
		Mode:           EdgeCanny,
		CannyLow:       50,
		CannyHigh:      150,
		MinAreaFrac:    0.20,
		RequirePolygon: true,
	}
}

// ProfileByName resolves a profile from its configuration name. Unknown
// names fall back to the lenient profile.
func ProfileByName(name string) Profile {
	if name == "strict" {
		return Strict()
	}
	return Lenient()
}
