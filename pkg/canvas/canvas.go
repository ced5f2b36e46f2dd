// Package canvas provides the raster surface template and wrap images
// are drawn on.
//
// A Canvas pairs an RGBA pixel buffer with a vector drawing context.
// Rectangle fills, image pastes, and text go through the drawing
// context; edge extension writes the pixel buffer directly. All
// coordinates are pixels with the origin in the top left corner, and
// rectangles follow the half-open convention of the image package.
package canvas

import (
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/mwoelke/boxwrap/pkg/geometry"
)

// lineSpacing is the baseline-to-baseline distance of multi-line text
// as a multiple of the font size.
const lineSpacing = 1.2

// Canvas is a fixed-size RGBA drawing surface.
type Canvas struct {
	img *image.RGBA
	dc  *gg.Context
}

// New returns a fully transparent canvas of the given size.
func New(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &Canvas{img: img, dc: gg.NewContextForRGBA(img)}
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() image.Point {
	return c.img.Bounds().Size()
}

// Image returns the backing image. The canvas keeps drawing into it,
// so encode or copy it before drawing again if you need a snapshot.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Fill paints the whole canvas in a single color.
func (c *Canvas) Fill(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

// FillRect paints a rectangle in a single color.
func (c *Canvas) FillRect(r image.Rectangle, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	c.dc.Fill()
}

// Paste copies the src region of an image onto the canvas, rotated
// clockwise, with the rotated region's top left corner at dst.
func (c *Canvas) Paste(src image.Image, srcRect image.Rectangle, dst image.Point, rot geometry.Rotation) {
	region := imaging.Crop(src, srcRect)
	// The imaging rotations are counter-clockwise.
	switch rot {
	case geometry.Rotate90:
		region = imaging.Rotate270(region)
	case geometry.Rotate180:
		region = imaging.Rotate180(region)
	case geometry.Rotate270:
		region = imaging.Rotate90(region)
	}
	c.dc.DrawImage(region, dst.X, dst.Y)
}

// CopyWithin pastes a region of the canvas itself onto the canvas.
// The source pixels are snapshotted first, so src and dst may overlap.
func (c *Canvas) CopyWithin(srcRect image.Rectangle, dst image.Point, rot geometry.Rotation) {
	c.Paste(c.img, srcRect, dst, rot)
}

// ExtendEdge fills the zone by repeating the pixel row or column
// adjacent to it on the content side, so artwork runs on into the
// zone. Dir is the outward direction the repeated pixels march in:
// DirLeft reads the column just right of the zone, DirUp the row just
// below it, and so on. Zones outside the canvas are clipped away.
func (c *Canvas) ExtendEdge(zone image.Rectangle, dir geometry.Direction) {
	zone = zone.Intersect(c.img.Bounds())
	if zone.Empty() {
		return
	}
	switch dir {
	case geometry.DirLeft, geometry.DirRight:
		srcX := zone.Max.X
		if dir == geometry.DirRight {
			srcX = zone.Min.X - 1
		}
		for y := zone.Min.Y; y < zone.Max.Y; y++ {
			src := c.img.PixOffset(srcX, y)
			px := c.img.Pix[src : src+4 : src+4]
			for x := zone.Min.X; x < zone.Max.X; x++ {
				off := c.img.PixOffset(x, y)
				copy(c.img.Pix[off:off+4], px)
			}
		}
	case geometry.DirUp, geometry.DirDown:
		srcY := zone.Max.Y
		if dir == geometry.DirDown {
			srcY = zone.Min.Y - 1
		}
		n := zone.Dx() * 4
		src := c.img.PixOffset(zone.Min.X, srcY)
		row := c.img.Pix[src : src+n : src+n]
		for y := zone.Min.Y; y < zone.Max.Y; y++ {
			off := c.img.PixOffset(zone.Min.X, y)
			copy(c.img.Pix[off:off+n], row)
		}
	}
}

// Text draws text centered on a point. Lines are separated by newline
// characters and stacked around the center. Size is the font size in
// pixels.
func (c *Canvas) Text(text string, center image.Point, size float64, col color.Color) error {
	face, err := fontFace(size)
	if err != nil {
		return err
	}
	c.dc.SetFontFace(face)
	c.dc.SetColor(col)

	lines := strings.Split(text, "\n")
	step := size * lineSpacing
	y := float64(center.Y) - step*float64(len(lines)-1)/2
	for _, line := range lines {
		c.dc.DrawStringAnchored(line, float64(center.X), y, 0.5, 0.5)
		y += step
	}
	return nil
}

// EncodePNG writes the canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return imaging.Encode(w, c.img, imaging.PNG)
}
