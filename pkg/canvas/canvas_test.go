package canvas

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/mwoelke/boxwrap/pkg/geometry"
)

var (
	red    = color.RGBA{R: 255, A: 255}
	green  = color.RGBA{G: 255, A: 255}
	blue   = color.RGBA{B: 255, A: 255}
	yellow = color.RGBA{R: 255, G: 255, A: 255}
	white  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black  = color.RGBA{A: 255}
)

func rgbaAt(t *testing.T, img image.Image, x, y int) color.RGBA {
	t.Helper()
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestNew(t *testing.T) {
	c := New(6, 4)
	if got := c.Size(); got != image.Pt(6, 4) {
		t.Errorf("Size() = %v, want (6,4)", got)
	}
	if got := rgbaAt(t, c.Image(), 0, 0); got != (color.RGBA{}) {
		t.Errorf("fresh canvas pixel = %v, want transparent", got)
	}
}

func TestFill(t *testing.T) {
	c := New(3, 3)
	c.Fill(color.White)
	for _, pt := range []image.Point{{0, 0}, {2, 2}, {1, 2}} {
		if got := rgbaAt(t, c.Image(), pt.X, pt.Y); got != white {
			t.Errorf("pixel %v = %v, want white", pt, got)
		}
	}
}

func TestFillRect(t *testing.T) {
	c := New(5, 5)
	c.Fill(color.White)
	c.FillRect(image.Rect(1, 1, 4, 3), black)

	for _, pt := range []image.Point{{1, 1}, {3, 1}, {2, 2}, {3, 2}} {
		if got := rgbaAt(t, c.Image(), pt.X, pt.Y); got != black {
			t.Errorf("pixel %v = %v, want black", pt, got)
		}
	}
	for _, pt := range []image.Point{{0, 0}, {4, 1}, {1, 3}, {0, 4}} {
		if got := rgbaAt(t, c.Image(), pt.X, pt.Y); got != white {
			t.Errorf("pixel %v = %v, want untouched white", pt, got)
		}
	}
}

func TestPaste(t *testing.T) {
	// A 2x1 source: red on the left, green on the right.
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, red)
	src.Set(1, 0, green)

	tests := []struct {
		name string
		rot  geometry.Rotation
		want map[image.Point]color.RGBA
	}{
		{"rotate0", geometry.Rotate0, map[image.Point]color.RGBA{{1, 1}: red, {2, 1}: green}},
		{"rotate90", geometry.Rotate90, map[image.Point]color.RGBA{{1, 1}: red, {1, 2}: green}},
		{"rotate180", geometry.Rotate180, map[image.Point]color.RGBA{{1, 1}: green, {2, 1}: red}},
		{"rotate270", geometry.Rotate270, map[image.Point]color.RGBA{{1, 1}: green, {1, 2}: red}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(4, 4)
			c.Paste(src, src.Bounds(), image.Pt(1, 1), tt.rot)
			for pt, want := range tt.want {
				if got := rgbaAt(t, c.Image(), pt.X, pt.Y); got != want {
					t.Errorf("pixel %v = %v, want %v", pt, got, want)
				}
			}
			if got := rgbaAt(t, c.Image(), 0, 0); got != (color.RGBA{}) {
				t.Errorf("pixel outside paste = %v, want transparent", got)
			}
		})
	}
}

func TestPasteRegion(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, red)
	src.Set(1, 0, green)

	c := New(2, 2)
	c.Paste(src, image.Rect(1, 0, 2, 1), image.Pt(0, 0), geometry.Rotate0)
	if got := rgbaAt(t, c.Image(), 0, 0); got != green {
		t.Errorf("pixel (0,0) = %v, want green", got)
	}
	if got := rgbaAt(t, c.Image(), 1, 0); got != (color.RGBA{}) {
		t.Errorf("pixel (1,0) = %v, want transparent", got)
	}
}

func TestCopyWithin(t *testing.T) {
	c := New(4, 2)
	c.FillRect(image.Rect(0, 0, 1, 1), red)
	c.FillRect(image.Rect(1, 0, 2, 1), green)

	c.CopyWithin(image.Rect(0, 0, 2, 1), image.Pt(2, 1), geometry.Rotate180)
	if got := rgbaAt(t, c.Image(), 2, 1); got != green {
		t.Errorf("pixel (2,1) = %v, want green", got)
	}
	if got := rgbaAt(t, c.Image(), 3, 1); got != red {
		t.Errorf("pixel (3,1) = %v, want red", got)
	}
}

func TestCopyWithinOverlap(t *testing.T) {
	// The source is snapshotted before writing, so a copy shifted by
	// one pixel must not smear the first written pixel onward.
	c := New(4, 1)
	c.FillRect(image.Rect(0, 0, 1, 1), red)
	c.FillRect(image.Rect(1, 0, 2, 1), green)

	c.CopyWithin(image.Rect(0, 0, 2, 1), image.Pt(1, 0), geometry.Rotate0)
	want := []color.RGBA{red, red, green}
	for x, col := range want {
		if got := rgbaAt(t, c.Image(), x, 0); got != col {
			t.Errorf("pixel (%d,0) = %v, want %v", x, got, col)
		}
	}
}

func TestExtendEdge(t *testing.T) {
	colors := []color.RGBA{red, green, blue, yellow}

	t.Run("left", func(t *testing.T) {
		c := New(6, 4)
		for y, col := range colors {
			c.FillRect(image.Rect(3, y, 4, y+1), col)
		}
		c.ExtendEdge(image.Rect(0, 0, 3, 4), geometry.DirLeft)
		for y, col := range colors {
			for x := 0; x < 4; x++ {
				if got := rgbaAt(t, c.Image(), x, y); got != col {
					t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, col)
				}
			}
		}
		if got := rgbaAt(t, c.Image(), 4, 0); got != (color.RGBA{}) {
			t.Errorf("pixel beyond the zone = %v, want transparent", got)
		}
	})

	t.Run("right", func(t *testing.T) {
		c := New(6, 4)
		for y, col := range colors {
			c.FillRect(image.Rect(2, y, 3, y+1), col)
		}
		c.ExtendEdge(image.Rect(3, 0, 6, 4), geometry.DirRight)
		for y, col := range colors {
			for x := 2; x < 6; x++ {
				if got := rgbaAt(t, c.Image(), x, y); got != col {
					t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, col)
				}
			}
		}
	})

	t.Run("up", func(t *testing.T) {
		c := New(4, 6)
		for x, col := range colors {
			c.FillRect(image.Rect(x, 2, x+1, 3), col)
		}
		c.ExtendEdge(image.Rect(0, 0, 4, 2), geometry.DirUp)
		for x, col := range colors {
			for y := 0; y < 3; y++ {
				if got := rgbaAt(t, c.Image(), x, y); got != col {
					t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, col)
				}
			}
		}
	})

	t.Run("down", func(t *testing.T) {
		c := New(4, 6)
		for x, col := range colors {
			c.FillRect(image.Rect(x, 1, x+1, 2), col)
		}
		c.ExtendEdge(image.Rect(0, 2, 4, 4), geometry.DirDown)
		for x, col := range colors {
			for y := 1; y < 4; y++ {
				if got := rgbaAt(t, c.Image(), x, y); got != col {
					t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, col)
				}
			}
		}
	})

	t.Run("clipped", func(t *testing.T) {
		c := New(6, 4)
		for y, col := range colors {
			c.FillRect(image.Rect(3, y, 4, y+1), col)
		}
		c.ExtendEdge(image.Rect(-3, -3, 3, 10), geometry.DirLeft)
		if got := rgbaAt(t, c.Image(), 0, 3); got != yellow {
			t.Errorf("pixel (0,3) = %v, want yellow", got)
		}
	})

	t.Run("outside", func(t *testing.T) {
		c := New(6, 4)
		c.ExtendEdge(image.Rect(10, 10, 20, 20), geometry.DirUp)
	})
}

func TestText(t *testing.T) {
	c := New(400, 200)
	if err := c.Text("100mm", image.Pt(200, 100), 48, color.Black); err != nil {
		t.Fatalf("Text error: %v", err)
	}
	box, count := inkBounds(c.Image())
	if count < 100 {
		t.Errorf("ink pixels = %d, want at least 100", count)
	}
	if cx := (box.Min.X + box.Max.X) / 2; cx < 170 || cx > 230 {
		t.Errorf("ink centered at x=%d, want near 200", cx)
	}

	c2 := New(400, 200)
	if err := c2.Text("100mm\n75mm", image.Pt(200, 100), 48, color.Black); err != nil {
		t.Fatalf("Text error: %v", err)
	}
	box2, _ := inkBounds(c2.Image())
	if box2.Dy() <= box.Dy() {
		t.Errorf("two lines span %dpx, want more than one line's %dpx", box2.Dy(), box.Dy())
	}
}

func inkBounds(img *image.RGBA) (image.Rectangle, int) {
	var box image.Rectangle
	count := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				box = box.Union(image.Rect(x, y, x+1, y+1))
				count++
			}
		}
	}
	return box, count
}

func TestEncodePNG(t *testing.T) {
	c := New(3, 2)
	c.FillRect(image.Rect(1, 0, 2, 1), red)

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG error: %v", err)
	}

	img, err := imaging.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(3, 2) {
		t.Errorf("decoded size = %v, want (3,2)", got)
	}
	if got := rgbaAt(t, img, 1, 0); got != red {
		t.Errorf("decoded pixel (1,0) = %v, want red", got)
	}
	if got := rgbaAt(t, img, 0, 1); got.A != 0 {
		t.Errorf("decoded pixel (0,1) = %v, want transparent", got)
	}
}
