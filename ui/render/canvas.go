// Package render draws text rows onto a hal.Framebuffer.
package render

import (
	"image/color"

	"bonnet/hal"

	"tinygo.org/x/drivers"
)

// The panel is monochrome; host presenters show the same two colors.
var (
	ColorBG = color.RGBA{R: 0, G: 0, B: 0, A: 0xff}
	ColorFG = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Canvas adapts a hal.Framebuffer to drivers.Displayer so tinyfont can draw on it.
type Canvas struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*Canvas)(nil)

func NewCanvas(fb hal.Framebuffer) *Canvas {
	return &Canvas{fb: fb}
}

func (d *Canvas) Width() int {
	if d.fb == nil {
		return 0
	}
	return d.fb.Width()
}

func (d *Canvas) Height() int {
	if d.fb == nil {
		return 0
	}
	return d.fb.Height()
}

func (d *Canvas) Size() (x, y int16) {
	return int16(d.Width()), int16(d.Height())
}

func (d *Canvas) Clear() {
	if d.fb == nil {
		return
	}
	d.fb.ClearRGB(ColorBG.R, ColorBG.G, ColorBG.B)
}

func (d *Canvas) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := hal.RGB565(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Pixel reads back the pixel at (x, y) as RGB565; out of range reads as 0.
func (d *Canvas) Pixel(x, y int) uint16 {
	if d.fb == nil || x < 0 || y < 0 || x >= d.fb.Width() || y >= d.fb.Height() {
		return 0
	}
	buf := d.fb.Buffer()
	off := y*d.fb.StrideBytes() + x*2
	if off+1 >= len(buf) {
		return 0
	}
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

func (d *Canvas) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *Canvas) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	w, h := d.fb.Width(), d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func (d *Canvas) SetRotation(drivers.Rotation) error { return nil }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
