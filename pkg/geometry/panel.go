package geometry

// Panel identifies one of the six faces of a box in the unfolded net.
type Panel int

// The six box faces. The order matches the drawing order in the
// template: top lid, then the horizontal band left to right, then the
// bottom lid.
const (
	PanelTop Panel = iota
	PanelLeft
	PanelFront
	PanelRight
	PanelBack
	PanelBottom

	// PanelCount is the number of panels in a net.
	PanelCount
)

// String returns the panel name as printed on the template.
func (p Panel) String() string {
	switch p {
	case PanelTop:
		return "TOP"
	case PanelLeft:
		return "LEFT"
	case PanelFront:
		return "FRONT"
	case PanelRight:
		return "RIGHT"
	case PanelBack:
		return "BACK"
	case PanelBottom:
		return "BOTTOM"
	}
	return "UNKNOWN"
}
