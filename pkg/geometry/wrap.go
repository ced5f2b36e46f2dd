package geometry

import (
	"image"

	"github.com/mwoelke/boxwrap/pkg/errors"
	"github.com/mwoelke/boxwrap/pkg/units"
)

// Half selects which wrap of the box a layout describes.
type Half int

// The two wraps of a box.
const (
	HalfTop Half = iota
	HalfBottom
)

// String returns "top" or "bottom".
func (h Half) String() string {
	if h == HalfBottom {
		return "bottom"
	}
	return "top"
}

// Rotation is a clockwise rotation in degrees, restricted to quarter
// turns.
type Rotation int

// Rotations applied to copied regions.
const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// Direction is one of the four principal directions on the page.
type Direction int

// Directions.
const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Params holds the wrap layout lengths beyond the box dimensions and
// cardboard thickness, all in millimeters. The zero value disables
// every extra: no glue flaps, no inside allowance, no trim marks.
type Params struct {
	// FlapSize is the width of the glue flaps flanking the front and
	// back pieces.
	FlapSize float64 `json:"flap_size" toml:"flap_size_mm"`
	// InsideSize is the amount of paper folded over the rim into the
	// inside of the box.
	InsideSize float64 `json:"inside_size" toml:"inside_size_mm"`
	// MarkSize is the length of the cut and fold ticks.
	MarkSize float64 `json:"mark_size" toml:"mark_size_mm"`
	// MarkDistance is the gap between the tick and the content it
	// points at.
	MarkDistance float64 `json:"mark_distance" toml:"mark_distance_mm"`
}

// DefaultParams returns wrap parameters suited to typical board-game
// boxes: 10mm glue flaps, 15mm folded inside, 5mm ticks set off by
// 2mm.
func DefaultParams() Params {
	return Params{FlapSize: 10, InsideSize: 15, MarkSize: 5, MarkDistance: 2}
}

// Validate checks that no parameter is negative.
func (p Params) Validate() error {
	if p.FlapSize < 0 || p.InsideSize < 0 || p.MarkSize < 0 || p.MarkDistance < 0 {
		return errors.New(errors.ErrCodeInvalidLayout,
			"wrap parameters must not be negative: flap %gmm, inside %gmm, mark %gmm, mark distance %gmm",
			p.FlapSize, p.InsideSize, p.MarkSize, p.MarkDistance)
	}
	return nil
}

// ValidateThickness checks that a cardboard thickness is not negative.
func ValidateThickness(thickness float64) error {
	if thickness < 0 {
		return errors.New(errors.ErrCodeInvalidThickness,
			"cardboard thickness must not be negative, got %gmm", thickness)
	}
	return nil
}

// Placement copies a region of the template image onto a wrap.
type Placement struct {
	// Panel is the face the source region belongs to.
	Panel Panel
	// Src is the source rectangle in template coordinates.
	Src image.Rectangle
	// Dst is the destination rectangle in wrap coordinates; its size
	// equals the size of Src after rotation.
	Dst image.Rectangle
	// Rotation is applied to the copied pixels.
	Rotation Rotation
}

// Extension fills a wrap region by repeating the pixel row or column
// of the adjacent placed content outward, so artwork continues onto
// material that disappears around the cardboard edge. Dir is the
// outward direction: the repeated pixels march away from the content
// edge.
type Extension struct {
	Rect image.Rectangle
	Dir  Direction
}

// FlapCopy copies a region of the wrap itself onto a glue flap,
// rotated so the artwork continues around the fold.
type FlapCopy struct {
	Src      image.Rectangle
	Dst      image.Rectangle
	Rotation Rotation
}

// MarkKind distinguishes cut ticks from fold ticks.
type MarkKind int

// Mark kinds.
const (
	// MarkCut sits at a corner of the trim silhouette.
	MarkCut MarkKind = iota
	// MarkFold sits on the extension of an internal fold line.
	MarkFold
)

// Mark is one printed tick: a 2px thick rectangle filled with the
// foreground color.
type Mark struct {
	Kind MarkKind
	Rect image.Rectangle
}

// Wrap describes one wrap image: canvas size and the full recipe to
// composite it from a template. The builder executes Placements,
// then Extensions, then FlapCopies, then Marks, in that order;
// FlapCopies read pixels written by earlier steps.
type Wrap struct {
	// Half says whether this is the top or bottom wrap.
	Half Half
	// Size is the canvas size in pixels.
	Size image.Point
	// Trim is the outer silhouette rectangle; everything outside it
	// except the marks is waste margin.
	Trim image.Rectangle
	// Placements are the template regions to copy, center panel
	// first.
	Placements []Placement
	// Extensions are the thickness and inside zones to fill by edge
	// repetition.
	Extensions []Extension
	// FlapCopies fill the glue flaps from the finished side bands.
	FlapCopies []FlapCopy
	// Guides annotate every layout boundary.
	Guides []Guide
	// Marks are the printed cut and fold ticks.
	Marks []Mark
}

// WrapLayout computes the layout of one wrap half.
//
// The wrap arranges the half of the net above (below) the equator
// around the top (bottom) panel, with the side faces folded flat:
//
//	      x1   x4 x5        x6 x7  x10
//	y1         +--+----------+--+            -- trim
//	           |fl|  back or |fl|
//	           |ap|  front   |ap|
//	y4  +------+--+----------+--+------+
//	    | left    |   top or    | right|
//	    |         |   bottom    |      |
//	y7  +------+--+----------+--+------+
//	           |fl|  front   |fl|
//	           |ap|  or back |ap|
//	y10        +--+----------+--+            -- trim
//
// Between the trim line and each face piece sit the thickness zone
// and the inside allowance, filled by edge extension; outside the
// trim line is the white mark margin. Thickness 0 with zero Params
// degenerates to the bare half strip.
//
// Fails with ErrCodeInvalidDimensions, ErrCodeInvalidThickness, or
// ErrCodeInvalidLayout on bad inputs.
func WrapLayout(dims Dimensions, thickness float64, half Half, params Params) (*Wrap, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateThickness(thickness); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if half != HalfTop && half != HalfBottom {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "unknown wrap half %d", int(half))
	}

	tmpl, err := TemplateLayout(dims)
	if err != nil {
		return nil, err
	}

	l, w, h := dims.Pixels()
	th := units.ToPixels(thickness)
	flap := units.ToPixels(params.FlapSize)
	inside := units.ToPixels(params.InsideSize)
	mark := units.ToPixels(params.MarkSize)
	markDist := units.ToPixels(params.MarkDistance)
	halfH := h / 2
	margin := mark + markDist

	var xs [12]int
	xs[1] = margin
	xs[2] = xs[1] + inside
	xs[3] = xs[2] + th
	xs[5] = xs[3] + halfH
	xs[4] = xs[5] - flap
	xs[6] = xs[5] + l
	xs[7] = xs[6] + flap
	xs[8] = xs[6] + halfH
	xs[9] = xs[8] + th
	xs[10] = xs[9] + inside
	xs[11] = xs[10] + markDist + mark

	var ys [12]int
	ys[1] = margin
	ys[2] = ys[1] + inside
	ys[3] = ys[2] + th
	ys[4] = ys[3] + halfH
	ys[5] = ys[4] + flap
	ys[7] = ys[4] + w
	ys[6] = ys[7] - flap
	ys[8] = ys[7] + halfH
	ys[9] = ys[8] + th
	ys[10] = ys[9] + inside
	ys[11] = ys[10] + markDist + mark

	wr := &Wrap{
		Half: half,
		Size: image.Pt(xs[11], ys[11]),
		Trim: image.Rect(xs[1], ys[1], xs[10], ys[10]),
	}

	center := image.Rect(xs[5], ys[4], xs[6], ys[7])
	band := func(x0, x1 int) image.Rectangle { return image.Rect(x0, ys[4], x1, ys[7]) }
	column := func(y0, y1 int) image.Rectangle { return image.Rect(xs[5], y0, xs[6], y1) }

	switch half {
	case HalfTop:
		wr.Placements = []Placement{
			{PanelTop, tmpl.Panel(PanelTop), center, Rotate0},
			{PanelLeft, tmpl.upperHalf(PanelLeft), band(xs[3], xs[5]), Rotate90},
			{PanelRight, tmpl.upperHalf(PanelRight), band(xs[6], xs[8]), Rotate270},
			{PanelBack, tmpl.upperHalf(PanelBack), column(ys[3], ys[4]), Rotate180},
			{PanelFront, tmpl.upperHalf(PanelFront), column(ys[7], ys[8]), Rotate0},
		}
	case HalfBottom:
		wr.Placements = []Placement{
			{PanelBottom, tmpl.Panel(PanelBottom), center, Rotate0},
			{PanelLeft, tmpl.lowerHalf(PanelLeft), band(xs[3], xs[5]), Rotate270},
			{PanelRight, tmpl.lowerHalf(PanelRight), band(xs[6], xs[8]), Rotate90},
			{PanelFront, tmpl.lowerHalf(PanelFront), column(ys[3], ys[4]), Rotate0},
			{PanelBack, tmpl.lowerHalf(PanelBack), column(ys[7], ys[8]), Rotate180},
		}
	}

	if th+inside > 0 {
		wr.Extensions = []Extension{
			{band(xs[1], xs[3]), DirLeft},
			{band(xs[8], xs[10]), DirRight},
			{column(ys[1], ys[3]), DirUp},
			{column(ys[8], ys[10]), DirDown},
		}
	}

	if flap > 0 {
		wr.FlapCopies = []FlapCopy{
			{image.Rect(xs[1], ys[4], xs[5], ys[5]), image.Rect(xs[4], ys[1], xs[5], ys[4]), Rotate90},
			{image.Rect(xs[1], ys[6], xs[5], ys[7]), image.Rect(xs[4], ys[7], xs[5], ys[10]), Rotate270},
			{image.Rect(xs[6], ys[4], xs[10], ys[5]), image.Rect(xs[6], ys[1], xs[7], ys[4]), Rotate270},
			{image.Rect(xs[6], ys[6], xs[10], ys[7]), image.Rect(xs[6], ys[7], xs[7], ys[10]), Rotate90},
		}
	}

	kinds := [12]GuideKind{
		GuideCut, GuideCut, GuideInside, GuideFlap, GuideFlap, GuideEdge,
		GuideEdge, GuideFlap, GuideFlap, GuideInside, GuideCut, GuideCut,
	}
	for i, x := range xs {
		wr.Guides = append(wr.Guides, Guide{Vertical, kinds[i], x})
	}
	for i, y := range ys {
		wr.Guides = append(wr.Guides, Guide{Horizontal, kinds[i], y})
	}

	if mark > 0 {
		tick := func(kind MarkKind, x, y int, dirs ...Direction) {
			for _, dir := range dirs {
				var r image.Rectangle
				switch dir {
				case DirUp:
					r = image.Rect(x-1, y-markDist-mark, x+1, y-markDist)
				case DirDown:
					r = image.Rect(x-1, y+markDist, x+1, y+markDist+mark)
				case DirLeft:
					r = image.Rect(x-markDist-mark, y-1, x-markDist, y+1)
				case DirRight:
					r = image.Rect(x+markDist, y-1, x+markDist+mark, y+1)
				}
				wr.Marks = append(wr.Marks, Mark{kind, r})
			}
		}

		tick(MarkCut, xs[4], ys[1], DirUp, DirLeft)
		tick(MarkFold, xs[5], ys[1], DirUp)
		tick(MarkFold, xs[6], ys[1], DirUp)
		tick(MarkCut, xs[7], ys[1], DirUp, DirRight)
		tick(MarkCut, xs[1], ys[4], DirUp, DirLeft)
		tick(MarkCut, xs[10], ys[4], DirUp, DirRight)
		tick(MarkCut, xs[1], ys[7], DirDown, DirLeft)
		tick(MarkCut, xs[10], ys[7], DirDown, DirRight)
		tick(MarkCut, xs[4], ys[10], DirDown, DirLeft)
		tick(MarkFold, xs[5], ys[10], DirDown)
		tick(MarkFold, xs[6], ys[10], DirDown)
		tick(MarkCut, xs[7], ys[10], DirDown, DirRight)
	}

	return wr, nil
}
