package hal

import "strings"

// Blocks renders a packed RGB565 frame as text, two pixel rows per line,
// using half-block glyphs.
func Blocks(frame []byte, width, height int) string {
	stride := width * 2
	lit := func(x, y int) bool {
		if y >= height {
			return false
		}
		off := y*stride + x*2
		if off+1 >= len(frame) {
			return false
		}
		return Lit(uint16(frame[off]) | uint16(frame[off+1])<<8)
	}

	var b strings.Builder
	b.Grow((width*3 + 1) * (height + 1) / 2)
	for y := 0; y < height; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < width; x++ {
			top, bot := lit(x, y), lit(x, y+1)
			switch {
			case top && bot:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bot:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}
