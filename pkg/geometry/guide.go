package geometry

// Orientation distinguishes horizontal from vertical guide lines.
type Orientation int

// Guide orientations.
const (
	Horizontal Orientation = iota
	Vertical
)

// String returns the orientation name.
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// GuideKind classifies what a guide line marks.
type GuideKind int

// Guide kinds.
const (
	// GuideEdge marks a panel boundary.
	GuideEdge GuideKind = iota
	// GuideEquator marks the horizontal midline of the box height,
	// where the net splits into the top and bottom wrap.
	GuideEquator
	// GuideCut marks the trim silhouette of a wrap.
	GuideCut
	// GuideInside marks the boundary of the paper that ends up inside
	// the box once folded.
	GuideInside
	// GuideFlap marks a thickness or glue flap boundary.
	GuideFlap
)

// String returns the kind name.
func (k GuideKind) String() string {
	switch k {
	case GuideEquator:
		return "equator"
	case GuideCut:
		return "cut"
	case GuideInside:
		return "inside"
	case GuideFlap:
		return "flap"
	}
	return "edge"
}

// Guide is a non-printing reference line at a pixel offset from the
// canvas origin. Guides never affect pixel content; the host decides
// how to surface them.
type Guide struct {
	Orientation Orientation
	Kind        GuideKind
	Offset      int
}
