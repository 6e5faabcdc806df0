package render

import (
	"fmt"
	"math"
	"strings"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Face is a font plus the metrics the screens lay out with.
type Face struct {
	Font tinyfont.Fonter

	// LineHeight is the row pitch in pixels.
	LineHeight int16
	// Ascent is the distance from a row's top to its baseline.
	Ascent int16
	// CharWidth is the widest advance among the probe glyphs.
	CharWidth int16
}

// Fonts maps config names to built-in fonts.
var Fonts = map[string]tinyfont.Fonter{
	"proggy":   &proggy.TinySZ8pt7b,
	"tomthumb": &tinyfont.TomThumb,
}

// DefaultFont is used when no font is configured.
const DefaultFont = "proggy"

// LoadFace resolves a font by name and measures it.
func LoadFace(name string) (Face, error) {
	if name == "" {
		name = DefaultFont
	}
	f, ok := Fonts[strings.ToLower(name)]
	if !ok {
		return Face{}, fmt.Errorf("render: unknown font %q", name)
	}
	return NewFace(f)
}

// NewFace measures f.
func NewFace(f tinyfont.Fonter) (Face, error) {
	face := Face{Font: f, LineHeight: int16(f.GetYAdvance())}
	for _, r := range "M0W@" {
		info := f.GetGlyph(r).Info()
		if a := -int16(info.YOffset); a > face.Ascent {
			face.Ascent = a
		}
		if w := int16(info.XAdvance); w > face.CharWidth {
			face.CharWidth = w
		}
	}
	if face.LineHeight <= 0 || face.CharWidth <= 0 {
		return Face{}, fmt.Errorf("render: font has no usable metrics")
	}
	if face.Ascent <= 0 || face.Ascent > face.LineHeight {
		face.Ascent = face.LineHeight - 1
	}
	return face, nil
}

// Rows returns how many text rows fit in height pixels; at least 1.
func (f Face) Rows(height int) int {
	if f.LineHeight <= 0 {
		return 1
	}
	n := height / int(f.LineHeight)
	if n < 1 {
		return 1
	}
	return n
}

// PanStep is the horizontal scroll distance: four character widths.
func (f Face) PanStep() int {
	return int(f.CharWidth) * 4
}

// TextWidth returns the advance width of s in pixels.
func (f Face) TextWidth(s string) int {
	_, w := tinyfont.LineWidth(f.Font, s)
	return int(w)
}

// DrawRow writes s on text row row starting at pixel column x.
// Highlighted rows are drawn inverted over a block as wide as the text.
// x is clamped to the int16 range so a long pan never wraps back into view.
func (f Face) DrawRow(c *Canvas, row int, x int, s string, highlight bool) {
	x = clampInt(x, math.MinInt16+1, math.MaxInt16)
	top := int16(row) * f.LineHeight
	baseline := top + f.Ascent
	if !highlight {
		tinyfont.WriteLine(c, f.Font, int16(x), baseline, s, ColorFG)
		return
	}
	w := f.TextWidth(s)
	_ = c.FillRectangle(int16(x-1), top, int16(w+2), f.LineHeight, ColorFG)
	tinyfont.WriteLine(c, f.Font, int16(x), baseline, s, ColorBG)
}
