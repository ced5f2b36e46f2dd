// Package geometry computes the 2D layouts behind box wrap images.
//
// Everything in this package is pure math: box dimensions go in,
// layout descriptors come out. No pixels are touched here; the
// builder packages execute the descriptors against a canvas.
//
// # Coordinate space
//
// All rectangles and offsets are in pixels at units.DPI, with the
// origin in the top-left corner and y growing downward. Physical
// lengths are converted individually with units.ToPixels before any
// arithmetic, so a layout computed twice from the same dimensions is
// identical down to the pixel.
//
// # Layouts
//
// TemplateLayout arranges the six box faces into an unfolded cross
// (the net) with labeled panels and alignment guides. WrapLayout
// takes one half of the net (split at the equator, the horizontal
// midline of the box height) and rearranges it around the top or
// bottom panel, adding material for cardboard thickness, glue flaps,
// and trim margins.
package geometry

import (
	"github.com/mwoelke/boxwrap/pkg/errors"
	"github.com/mwoelke/boxwrap/pkg/units"
)

// Dimensions describes a box in millimeters.
//
// Length is the distance between the left and right faces (the width
// of the front panel), Width the distance between the front and back
// faces (the depth of the box, and the height of the top and bottom
// panels in the net), and Height the distance between the top and
// bottom faces.
type Dimensions struct {
	Length float64 `json:"length" toml:"length"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Validate checks that all dimensions are positive.
func (d Dimensions) Validate() error {
	if d.Length <= 0 || d.Width <= 0 || d.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidDimensions,
			"box dimensions must be positive, got %gmm x %gmm x %gmm",
			d.Length, d.Width, d.Height)
	}
	return nil
}

// Pixels returns the three dimensions converted to pixels, each
// rounded independently by units.ToPixels.
func (d Dimensions) Pixels() (length, width, height int) {
	return units.ToPixels(d.Length), units.ToPixels(d.Width), units.ToPixels(d.Height)
}
