package render

import (
	"image/color"
	"testing"

	"bonnet/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// blockFont draws every rune as a solid w x h box sitting on the baseline.
type blockFont struct {
	w, h, adv uint8
	g         blockGlyph
}

type blockGlyph struct {
	r    rune
	font *blockFont
}

func (g *blockGlyph) Draw(d drivers.Displayer, x, y int16, c color.RGBA) {
	for dy := int16(0); dy < int16(g.font.h); dy++ {
		for dx := int16(0); dx < int16(g.font.w); dx++ {
			d.SetPixel(x+dx, y-int16(g.font.h)+1+dy, c)
		}
	}
}

func (g *blockGlyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    g.font.w,
		Height:   g.font.h,
		XAdvance: g.font.w + 1,
		YOffset:  -int8(g.font.h - 1),
	}
}

func (f *blockFont) GetYAdvance() uint8 { return f.adv }

func (f *blockFont) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	f.g.font = f
	return &f.g
}

func newBlockFont() *blockFont { return &blockFont{w: 5, h: 7, adv: 8} }

func TestCanvasSetPixelClips(t *testing.T) {
	c := NewCanvas(hal.NewMemFramebuffer(8, 4))
	c.SetPixel(-1, 0, ColorFG)
	c.SetPixel(8, 0, ColorFG)
	c.SetPixel(0, 4, ColorFG)
	c.SetPixel(7, 3, ColorFG)

	if got, want := c.Pixel(7, 3), hal.RGB565(0xff, 0xff, 0xff); got != want {
		t.Fatalf("Pixel(7,3) = %#04x; want %#04x", got, want)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if x == 7 && y == 3 {
				continue
			}
			if c.Pixel(x, y) != 0 {
				t.Fatalf("stray pixel at (%d,%d)", x, y)
			}
		}
	}
}

func TestCanvasFillRectangleClips(t *testing.T) {
	c := NewCanvas(hal.NewMemFramebuffer(8, 4))
	if err := c.FillRectangle(-3, -3, 5, 5, ColorFG); err != nil {
		t.Fatal(err)
	}
	lit := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if c.Pixel(x, y) != 0 {
				lit++
			}
		}
	}
	if lit != 4 {
		t.Fatalf("lit = %d; want 4", lit)
	}
}

func TestNewFaceMetrics(t *testing.T) {
	face, err := NewFace(newBlockFont())
	if err != nil {
		t.Fatal(err)
	}
	if face.LineHeight != 8 || face.Ascent != 6 || face.CharWidth != 6 {
		t.Fatalf("face = %+v", face)
	}
	if got := face.Rows(64); got != 8 {
		t.Fatalf("Rows(64) = %d; want 8", got)
	}
	if got := face.Rows(3); got != 1 {
		t.Fatalf("Rows(3) = %d; want 1", got)
	}
	if got := face.PanStep(); got != 24 {
		t.Fatalf("PanStep() = %d; want 24", got)
	}
}

func TestLoadFace(t *testing.T) {
	for name := range Fonts {
		face, err := LoadFace(name)
		if err != nil {
			t.Fatalf("LoadFace(%q): %v", name, err)
		}
		if face.Rows(64) < 1 || face.PanStep() <= 0 {
			t.Fatalf("LoadFace(%q) = %+v", name, face)
		}
	}
	if _, err := LoadFace(""); err != nil {
		t.Fatalf("LoadFace(default): %v", err)
	}
	if _, err := LoadFace("comic-sans"); err == nil {
		t.Fatal("LoadFace(unknown) succeeded")
	}
}

func TestDrawRowPlacesTextOnRow(t *testing.T) {
	c := NewCanvas(hal.NewMemFramebuffer(32, 16))
	face, _ := NewFace(newBlockFont())

	face.DrawRow(c, 1, 2, "A", false)
	if c.Pixel(2, 8) == 0 {
		t.Fatal("glyph top-left not lit on row 1")
	}
	if c.Pixel(2, 7) != 0 {
		t.Fatal("row 0 touched")
	}
}

func TestDrawRowHighlightInverts(t *testing.T) {
	c := NewCanvas(hal.NewMemFramebuffer(32, 16))
	face, _ := NewFace(newBlockFont())

	face.DrawRow(c, 0, 1, "A", true)
	if c.Pixel(0, 0) == 0 {
		t.Fatal("highlight block missing left of text")
	}
	if c.Pixel(1, 1) != 0 {
		t.Fatal("glyph not drawn inverted")
	}
	if c.Pixel(20, 0) != 0 {
		t.Fatal("highlight block wider than text")
	}
}

func TestDrawRowFarLeftStaysOffPanel(t *testing.T) {
	face, _ := NewFace(newBlockFont())
	for _, x := range []int{-40008, -70000, -1 << 30} {
		for _, hl := range []bool{false, true} {
			c := NewCanvas(hal.NewMemFramebuffer(32, 16))
			face.DrawRow(c, 0, x, "AAAA", hl)
			for px := 0; px < 32; px++ {
				for py := 0; py < 16; py++ {
					if c.Pixel(px, py) != 0 {
						t.Fatalf("x=%d highlight=%v lit pixel (%d,%d)", x, hl, px, py)
					}
				}
			}
		}
	}
}
