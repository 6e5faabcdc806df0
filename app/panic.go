package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"bonnet/ui/render"
)

// reportPanic logs a recovered panic with its stack and paints it on the
// panel, wrapped to the panel width.
func (a *App) reportPanic(v any) error {
	stack := string(debug.Stack())
	a.log.Error("panic", "value", v)
	for _, line := range strings.Split(stack, "\n") {
		if line != "" {
			a.log.Error(line)
		}
	}

	face, err := render.LoadFace(a.cfg.Display.Font)
	if err == nil {
		lines := []string{"Panic:", fmt.Sprint(v)}
		for _, line := range strings.Split(stack, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		drawPanic(a.canvas, face, lines)
	}
	return fmt.Errorf("app: panic: %v", v)
}

func drawPanic(c *render.Canvas, face render.Face, lines []string) {
	c.Clear()
	cols := 1
	if face.CharWidth > 0 {
		cols = c.Width() / int(face.CharWidth)
	}
	if cols < 1 {
		cols = 1
	}
	rows := face.Rows(c.Height())

	row := 0
	for _, line := range lines {
		for len(line) > 0 && row < rows {
			chunk, rest := takeRunes(line, cols)
			face.DrawRow(c, row, 0, chunk, row == 0)
			row++
			line = strings.TrimLeft(rest, " ")
		}
		if row >= rows {
			break
		}
	}
	_ = c.Display()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
