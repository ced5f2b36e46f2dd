// Package wrap builds the two printable wrap images from a filled
// template.
//
// A wrap is the piece of paper glued around one half of a box shell.
// The builder validates that the template image still has exactly the
// size its dimensions dictate, then composites each wrap on a white
// canvas in four steps: paste the template faces into the flattened
// layout, extend the face edges across the thickness and inside
// zones, fill the glue flaps with rotated copies of the neighboring
// side bands, and print the cut and fold marks. The input template is
// only read, never modified.
package wrap

import (
	"image"
	"image/color"

	"github.com/mwoelke/boxwrap/pkg/canvas"
	"github.com/mwoelke/boxwrap/pkg/errors"
	"github.com/mwoelke/boxwrap/pkg/geometry"
	"github.com/mwoelke/boxwrap/pkg/host"
	"github.com/mwoelke/boxwrap/pkg/units"
)

// Artifact names of the two wraps.
const (
	TopName    = "wrap-top"
	BottomName = "wrap-bottom"
)

// Result holds the two wraps of one build.
type Result struct {
	Top    *host.Artifact
	Bottom *host.Artifact
}

// Build renders both wraps from a filled template. It fails with
// ErrCodeSizeMismatch if the template's pixel size does not match the
// size computed from dims, which catches dimensions entered
// differently in the template and wrap steps.
func Build(tmpl image.Image, dims geometry.Dimensions, thickness float64, params geometry.Params) (*Result, error) {
	top, err := BuildHalf(tmpl, dims, thickness, geometry.HalfTop, params)
	if err != nil {
		return nil, err
	}
	bottom, err := BuildHalf(tmpl, dims, thickness, geometry.HalfBottom, params)
	if err != nil {
		return nil, err
	}
	return &Result{Top: top, Bottom: bottom}, nil
}

// BuildHalf renders the wrap for one half of the box, performing the
// same template size check as Build.
func BuildHalf(tmpl image.Image, dims geometry.Dimensions, thickness float64, half geometry.Half, params geometry.Params) (*host.Artifact, error) {
	layout, err := geometry.TemplateLayout(dims)
	if err != nil {
		return nil, err
	}
	if got := tmpl.Bounds().Size(); got != layout.Size {
		return nil, sizeMismatch(layout.Size, got)
	}

	wr, err := geometry.WrapLayout(dims, thickness, half, params)
	if err != nil {
		return nil, err
	}

	c := canvas.New(wr.Size.X, wr.Size.Y)
	c.Fill(color.White)

	for _, p := range wr.Placements {
		c.Paste(tmpl, p.Src, p.Dst.Min, p.Rotation)
	}
	for _, e := range wr.Extensions {
		c.ExtendEdge(e.Rect, e.Dir)
	}
	// Flap copies read pixels written by the two steps above.
	for _, fc := range wr.FlapCopies {
		c.CopyWithin(fc.Src, fc.Dst.Min, fc.Rotation)
	}
	for _, m := range wr.Marks {
		c.FillRect(m.Rect, color.Black)
	}

	name := TopName
	if half == geometry.HalfBottom {
		name = BottomName
	}
	return host.NewArtifact(name, c.Image(), wr.Guides), nil
}

func sizeMismatch(want, got image.Point) error {
	return errors.New(errors.ErrCodeSizeMismatch,
		"Template image has the wrong size. Expected %dpx x %dpx (%dmm x %dmm) but got %dpx x %dpx (%dmm x %dmm).",
		want.X, want.Y, int(units.ToMillimeters(want.X)), int(units.ToMillimeters(want.Y)),
		got.X, got.Y, int(units.ToMillimeters(got.X)), int(units.ToMillimeters(got.Y)))
}
