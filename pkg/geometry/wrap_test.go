package geometry

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mwoelke/boxwrap/pkg/errors"
)

// 75mm -> 886px, 100mm -> 1181px, 104mm -> 1228px (halfH 614),
// 2mm -> 24px, 10mm -> 118px, 15mm -> 177px, 5mm -> 59px.
var wrapDims = Dimensions{Length: 75, Width: 100, Height: 104}

func TestWrapLayoutDegenerate(t *testing.T) {
	// Zero thickness and zero params collapse the wrap to the bare
	// half strip: no flaps, no margins, no marks.
	for _, half := range []Half{HalfTop, HalfBottom} {
		t.Run(half.String(), func(t *testing.T) {
			wr, err := WrapLayout(wrapDims, 0, half, Params{})
			if err != nil {
				t.Fatalf("WrapLayout error: %v", err)
			}
			l, w, h := wrapDims.Pixels()
			halfH := h / 2
			if want := image.Pt(2*halfH+l, 2*halfH+w); wr.Size != want {
				t.Errorf("Size = %v, want %v", wr.Size, want)
			}
			if want := image.Rect(0, 0, wr.Size.X, wr.Size.Y); wr.Trim != want {
				t.Errorf("Trim = %v, want %v", wr.Trim, want)
			}
			if len(wr.Extensions) != 0 {
				t.Errorf("Extensions = %d, want 0", len(wr.Extensions))
			}
			if len(wr.FlapCopies) != 0 {
				t.Errorf("FlapCopies = %d, want 0", len(wr.FlapCopies))
			}
			if len(wr.Marks) != 0 {
				t.Errorf("Marks = %d, want 0", len(wr.Marks))
			}
		})
	}
}

func TestWrapLayoutMonotonicInThickness(t *testing.T) {
	prev := image.Pt(-1, -1)
	for _, thickness := range []float64{0, 0.5, 1, 2, 4, 6} {
		wr, err := WrapLayout(wrapDims, thickness, HalfTop, DefaultParams())
		if err != nil {
			t.Fatalf("WrapLayout(thickness=%v) error: %v", thickness, err)
		}
		if wr.Size.X <= prev.X || wr.Size.Y <= prev.Y {
			t.Errorf("thickness %vmm: size %v does not grow past %v", thickness, wr.Size, prev)
		}
		prev = wr.Size
	}
}

func TestWrapLayoutCoordinates(t *testing.T) {
	wr, err := WrapLayout(wrapDims, 2, HalfTop, DefaultParams())
	if err != nil {
		t.Fatalf("WrapLayout error: %v", err)
	}

	if want := image.Pt(2682, 2977); wr.Size != want {
		t.Errorf("Size = %v, want %v", wr.Size, want)
	}
	if want := image.Rect(83, 83, 2599, 2894); wr.Trim != want {
		t.Errorf("Trim = %v, want %v", wr.Trim, want)
	}

	center := wr.Placements[0]
	if center.Panel != PanelTop {
		t.Errorf("center panel = %v, want TOP", center.Panel)
	}
	if want := image.Rect(898, 898, 1784, 2079); center.Dst != want {
		t.Errorf("center Dst = %v, want %v", center.Dst, want)
	}
	if center.Rotation != Rotate0 {
		t.Errorf("center rotation = %v, want 0", center.Rotation)
	}

	// The side bands flank the center, the face columns sit above and
	// below it.
	wantDst := map[Panel]image.Rectangle{
		PanelLeft:  image.Rect(284, 898, 898, 2079),
		PanelRight: image.Rect(1784, 898, 2398, 2079),
		PanelBack:  image.Rect(898, 284, 1784, 898),
		PanelFront: image.Rect(898, 2079, 1784, 2693),
	}
	for _, p := range wr.Placements[1:] {
		if want, ok := wantDst[p.Panel]; !ok || p.Dst != want {
			t.Errorf("%v Dst = %v, want %v", p.Panel, p.Dst, want)
		}
	}

	wantExt := []Extension{
		{image.Rect(83, 898, 284, 2079), DirLeft},
		{image.Rect(2398, 898, 2599, 2079), DirRight},
		{image.Rect(898, 83, 1784, 284), DirUp},
		{image.Rect(898, 2693, 1784, 2894), DirDown},
	}
	if diff := cmp.Diff(wantExt, wr.Extensions); diff != "" {
		t.Errorf("Extensions mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapLayoutPlacements(t *testing.T) {
	tests := []struct {
		half      Half
		center    Panel
		rotations map[Panel]Rotation
	}{
		{HalfTop, PanelTop, map[Panel]Rotation{
			PanelLeft: Rotate90, PanelRight: Rotate270, PanelBack: Rotate180, PanelFront: Rotate0,
		}},
		{HalfBottom, PanelBottom, map[Panel]Rotation{
			PanelLeft: Rotate270, PanelRight: Rotate90, PanelFront: Rotate0, PanelBack: Rotate180,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.half.String(), func(t *testing.T) {
			wr, err := WrapLayout(wrapDims, 2, tt.half, DefaultParams())
			if err != nil {
				t.Fatalf("WrapLayout error: %v", err)
			}
			if len(wr.Placements) != 5 {
				t.Fatalf("len(Placements) = %d, want 5", len(wr.Placements))
			}
			if wr.Placements[0].Panel != tt.center {
				t.Errorf("center = %v, want %v", wr.Placements[0].Panel, tt.center)
			}

			centerDst := wr.Placements[0].Dst
			for _, p := range wr.Placements[1:] {
				want, ok := tt.rotations[p.Panel]
				if !ok {
					t.Errorf("unexpected panel %v", p.Panel)
					continue
				}
				if p.Rotation != want {
					t.Errorf("%v rotation = %d, want %d", p.Panel, p.Rotation, want)
				}

				// Rotated source size matches the destination size.
				sw, sh := p.Src.Dx(), p.Src.Dy()
				if p.Rotation == Rotate90 || p.Rotation == Rotate270 {
					sw, sh = sh, sw
				}
				if sw != p.Dst.Dx() || sh != p.Dst.Dy() {
					t.Errorf("%v: rotated src %dx%d does not fill dst %dx%d",
						p.Panel, sw, sh, p.Dst.Dx(), p.Dst.Dy())
				}

				// Every side piece shares an edge with the center panel.
				touches := p.Dst.Max.X == centerDst.Min.X || p.Dst.Min.X == centerDst.Max.X ||
					p.Dst.Max.Y == centerDst.Min.Y || p.Dst.Min.Y == centerDst.Max.Y
				if !touches {
					t.Errorf("%v Dst %v does not touch center %v", p.Panel, p.Dst, centerDst)
				}
			}
		})
	}
}

func TestWrapLayoutSourceStrips(t *testing.T) {
	// 30mm -> 354px, 20mm -> 236px, 25mm -> 295px: odd pixel height,
	// so the equator row belongs to neither strip.
	dims := Dimensions{Length: 30, Width: 20, Height: 25}
	tmpl, err := TemplateLayout(dims)
	if err != nil {
		t.Fatalf("TemplateLayout error: %v", err)
	}

	top, err := WrapLayout(dims, 0, HalfTop, Params{})
	if err != nil {
		t.Fatalf("WrapLayout error: %v", err)
	}
	bottom, err := WrapLayout(dims, 0, HalfBottom, Params{})
	if err != nil {
		t.Fatalf("WrapLayout error: %v", err)
	}

	for _, p := range top.Placements[1:] {
		if p.Src.Min.Y != tmpl.Panel(p.Panel).Min.Y {
			t.Errorf("top %v strip starts at %d, want panel top %d",
				p.Panel, p.Src.Min.Y, tmpl.Panel(p.Panel).Min.Y)
		}
		if p.Src.Max.Y != tmpl.Equator {
			t.Errorf("top %v strip ends at %d, want equator %d", p.Panel, p.Src.Max.Y, tmpl.Equator)
		}
	}
	for _, p := range bottom.Placements[1:] {
		if p.Src.Min.Y != tmpl.Equator+1 {
			t.Errorf("bottom %v strip starts at %d, want %d (below the equator row)",
				p.Panel, p.Src.Min.Y, tmpl.Equator+1)
		}
		if p.Src.Max.Y != tmpl.Panel(p.Panel).Max.Y {
			t.Errorf("bottom %v strip ends at %d, want panel bottom %d",
				p.Panel, p.Src.Max.Y, tmpl.Panel(p.Panel).Max.Y)
		}
	}
}

func TestWrapLayoutFlapCopies(t *testing.T) {
	wr, err := WrapLayout(wrapDims, 2, HalfBottom, DefaultParams())
	if err != nil {
		t.Fatalf("WrapLayout error: %v", err)
	}
	if len(wr.FlapCopies) != 4 {
		t.Fatalf("len(FlapCopies) = %d, want 4", len(wr.FlapCopies))
	}
	for i, fc := range wr.FlapCopies {
		// A flap-size slice of a full side band, turned upright.
		if fc.Src.Dx() != 815 || fc.Src.Dy() != 118 {
			t.Errorf("flap %d: Src %dx%d, want 815x118", i, fc.Src.Dx(), fc.Src.Dy())
		}
		if fc.Dst.Dx() != 118 || fc.Dst.Dy() != 815 {
			t.Errorf("flap %d: Dst %dx%d, want 118x815", i, fc.Dst.Dx(), fc.Dst.Dy())
		}
		if fc.Rotation != Rotate90 && fc.Rotation != Rotate270 {
			t.Errorf("flap %d: rotation = %d, want a quarter turn", i, fc.Rotation)
		}
	}
}

func TestWrapLayoutGuidesAndMarks(t *testing.T) {
	wr, err := WrapLayout(wrapDims, 2, HalfTop, DefaultParams())
	if err != nil {
		t.Fatalf("WrapLayout error: %v", err)
	}

	if len(wr.Guides) != 24 {
		t.Errorf("len(Guides) = %d, want 24", len(wr.Guides))
	}
	kindAt := map[int]GuideKind{}
	for _, g := range wr.Guides {
		if g.Orientation == Vertical {
			kindAt[g.Offset] = g.Kind
		}
	}
	wantKinds := map[int]GuideKind{
		83:   GuideCut,    // trim
		260:  GuideInside, // inside allowance
		284:  GuideFlap,   // fold over the rim
		780:  GuideFlap,   // glue flap
		898:  GuideEdge,   // center panel edge
		1784: GuideEdge,
		2599: GuideCut,
	}
	for off, want := range wantKinds {
		if got, ok := kindAt[off]; !ok || got != want {
			t.Errorf("guide at x=%d: kind = %v, want %v", off, got, want)
		}
	}

	var content []image.Rectangle
	for _, p := range wr.Placements {
		content = append(content, p.Dst)
	}
	for _, e := range wr.Extensions {
		content = append(content, e.Rect)
	}
	for _, fc := range wr.FlapCopies {
		content = append(content, fc.Dst)
	}

	// 8 cut positions with two ticks each plus 4 fold positions with
	// one tick.
	var cut, fold int
	for _, m := range wr.Marks {
		switch m.Kind {
		case MarkCut:
			cut++
		case MarkFold:
			fold++
		}
		w, h := m.Rect.Dx(), m.Rect.Dy()
		if w != 2 && h != 2 {
			t.Errorf("mark %v is not a 2px tick", m.Rect)
		}
		if w != 2 && w != 59 || h != 2 && h != 59 {
			t.Errorf("mark %v does not have tick length 59", m.Rect)
		}
		if !m.Rect.In(image.Rect(0, 0, wr.Size.X, wr.Size.Y)) {
			t.Errorf("mark %v outside canvas %v", m.Rect, wr.Size)
		}
		for _, c := range content {
			if m.Rect.Overlaps(c) {
				t.Errorf("mark %v overlaps content %v", m.Rect, c)
			}
		}
	}
	if cut != 16 || fold != 4 {
		t.Errorf("cut/fold ticks = %d/%d, want 16/4", cut, fold)
	}
}

func TestWrapLayoutDeterministic(t *testing.T) {
	a, err := WrapLayout(wrapDims, 2, HalfBottom, DefaultParams())
	if err != nil {
		t.Fatalf("WrapLayout error: %v", err)
	}
	b, err := WrapLayout(wrapDims, 2, HalfBottom, DefaultParams())
	if err != nil {
		t.Fatalf("WrapLayout error: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeated layouts differ (-first +second):\n%s", diff)
	}
}

func TestWrapLayoutErrors(t *testing.T) {
	tests := []struct {
		name      string
		dims      Dimensions
		thickness float64
		half      Half
		params    Params
		code      errors.Code
	}{
		{"zero dims", Dimensions{}, 2, HalfTop, Params{}, errors.ErrCodeInvalidDimensions},
		{"negative height", Dimensions{75, 100, -1}, 2, HalfTop, Params{}, errors.ErrCodeInvalidDimensions},
		{"negative thickness", wrapDims, -0.5, HalfTop, Params{}, errors.ErrCodeInvalidThickness},
		{"negative flap", wrapDims, 2, HalfTop, Params{FlapSize: -1}, errors.ErrCodeInvalidLayout},
		{"negative mark distance", wrapDims, 2, HalfTop, Params{MarkDistance: -1}, errors.ErrCodeInvalidLayout},
		{"bogus half", wrapDims, 2, Half(7), Params{}, errors.ErrCodeInvalidLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WrapLayout(tt.dims, tt.thickness, tt.half, tt.params)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}
