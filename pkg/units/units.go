// Package units converts physical print lengths to pixel counts.
//
// Box dimensions are entered in millimeters and every raster artifact
// is produced at a fixed 300 dpi. All millimeter-to-pixel conversion
// must go through ToPixels: template generation and wrap validation
// derive pixel sizes independently from the same inputs, and the size
// check between them only holds if both round identically.
package units

import "math"

// DPI is the fixed raster resolution of all generated images.
const DPI = 300

// ToPixels converts a length in millimeters to a whole pixel count at
// DPI, rounding half away from zero.
func ToPixels(mm float64) int {
	return int(math.Round(mm / 25.4 * DPI))
}

// ToMillimeters converts a pixel count at DPI back to millimeters.
// The result is exact, not rounded; callers that display it decide
// how to format the fraction.
func ToMillimeters(px int) float64 {
	return float64(px) * 25.4 / DPI
}
