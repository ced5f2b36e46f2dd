package geometry

import "image"

// Template describes the unfolded net image: six panels arranged in a
// cross, guides at every band boundary, and the empty corner cell
// that receives the dimension text.
//
// The net looks like this (lengths in pixels):
//
//	   x0         x1         x2        x3         x4
//	y0            +----------+                        -
//	              |   TOP    |                        | width
//	y1 +----------+----------+---------+----------+  -
//	   |   LEFT   |  FRONT   |  RIGHT  |   BACK   |   | height
//	y3 +----------+----------+---------+----------+  -
//	              |  BOTTOM  |                        | width
//	y4            +----------+                        -
//	     width      length     width      length
//
// The four corner cells outside the cross stay empty; the canvas is
// the bounding box of the cross.
type Template struct {
	// Size is the canvas size in pixels.
	Size image.Point
	// Panels holds the six face rectangles, indexed by Panel.
	Panels [PanelCount]image.Rectangle
	// Guides lists a guide for every band boundary, including the
	// canvas edges, plus the equator.
	Guides []Guide
	// LabelBox is the empty top-left corner cell where the dimension
	// text block goes.
	LabelBox image.Rectangle
	// Equator is the y offset of the horizontal midline of the box
	// height. Everything above it belongs to the top wrap, everything
	// below to the bottom wrap.
	Equator int
}

// Panel returns the rectangle of the given panel.
func (t *Template) Panel(p Panel) image.Rectangle {
	return t.Panels[p]
}

// TemplateLayout computes the template net for the given box
// dimensions. It fails with ErrCodeInvalidDimensions if any dimension
// is not positive.
func TemplateLayout(dims Dimensions) (*Template, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	l, w, h := dims.Pixels()

	xs := [5]int{0, w, w + l, 2*w + l, 2*w + 2*l}
	ys := [5]int{0, w, w + h/2, w + h, 2*w + h}

	t := &Template{
		Size:     image.Pt(xs[4], ys[4]),
		LabelBox: image.Rect(xs[0], ys[0], xs[1], ys[1]),
		Equator:  ys[2],
	}

	t.Panels[PanelTop] = image.Rect(xs[1], ys[0], xs[2], ys[1])
	t.Panels[PanelLeft] = image.Rect(xs[0], ys[1], xs[1], ys[3])
	t.Panels[PanelFront] = image.Rect(xs[1], ys[1], xs[2], ys[3])
	t.Panels[PanelRight] = image.Rect(xs[2], ys[1], xs[3], ys[3])
	t.Panels[PanelBack] = image.Rect(xs[3], ys[1], xs[4], ys[3])
	t.Panels[PanelBottom] = image.Rect(xs[1], ys[3], xs[2], ys[4])

	for _, x := range xs {
		t.Guides = append(t.Guides, Guide{Vertical, GuideEdge, x})
	}
	for i, y := range ys {
		kind := GuideEdge
		if i == 2 {
			kind = GuideEquator
		}
		t.Guides = append(t.Guides, Guide{Horizontal, kind, y})
	}

	return t, nil
}

// upperHalf returns the part of a band panel above the equator. The
// strip is height/2 pixels tall; for odd pixel heights the row at the
// equator itself belongs to neither half.
func (t *Template) upperHalf(p Panel) image.Rectangle {
	r := t.Panels[p]
	return image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+r.Dy()/2)
}

// lowerHalf returns the part of a band panel below the equator.
func (t *Template) lowerHalf(p Panel) image.Rectangle {
	r := t.Panels[p]
	return image.Rect(r.Min.X, r.Max.Y-r.Dy()/2, r.Max.X, r.Max.Y)
}
