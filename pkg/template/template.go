// Package template builds the empty decoration template for a box.
//
// The template is the file handed to the user: a transparent canvas
// with the six faces of the box laid out as an unfolded cross, a white
// background and a name label in every face, and the box dimensions
// printed in the unused corner cell next to the TOP face. The user
// paints artwork over the white cross and feeds the finished file to
// the wrap builder, which checks that the canvas size still matches
// the entered dimensions.
package template

import (
	"fmt"
	"image"
	"image/color"

	"github.com/mwoelke/boxwrap/pkg/canvas"
	"github.com/mwoelke/boxwrap/pkg/geometry"
	"github.com/mwoelke/boxwrap/pkg/host"
	"github.com/mwoelke/boxwrap/pkg/units"
)

// Name is the artifact name of built templates.
const Name = "template"

// textSize is the label font size in pixels, a quarter of the print
// resolution.
const textSize = units.DPI / 4

// Build renders the empty template for the given box dimensions. The
// returned artifact carries the image and the guide metadata; guides
// are never drawn into the pixels.
func Build(dims geometry.Dimensions) (*host.Artifact, error) {
	layout, err := geometry.TemplateLayout(dims)
	if err != nil {
		return nil, err
	}

	c := canvas.New(layout.Size.X, layout.Size.Y)

	// White paint area under the six faces. The two rectangles form
	// the cross; the corner cells stay transparent.
	band := layout.Panel(geometry.PanelLeft).Union(layout.Panel(geometry.PanelBack))
	strip := layout.Panel(geometry.PanelTop).Union(layout.Panel(geometry.PanelBottom))
	c.FillRect(band, color.White)
	c.FillRect(strip, color.White)

	for p := geometry.Panel(0); p < geometry.PanelCount; p++ {
		r := layout.Panel(p)
		if err := c.Text(p.String(), center(r), textSize, color.Black); err != nil {
			return nil, err
		}
	}

	l, w, h := dims.Pixels()
	info := fmt.Sprintf("Box length: %dmm (%dpx)\nBox width: %dmm (%dpx)\nBox height: %dmm (%dpx)",
		int(dims.Length), l, int(dims.Width), w, int(dims.Height), h)
	if err := c.Text(info, center(layout.LabelBox), textSize, color.Black); err != nil {
		return nil, err
	}

	return host.NewArtifact(Name, c.Image(), layout.Guides), nil
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}
