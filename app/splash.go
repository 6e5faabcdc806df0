package app

import "bonnet/ui/render"

// splash paints the boot panel and presents it straight away, before
// the first Step.
func splash(c *render.Canvas, face render.Face, msg, version string) {
	c.Clear()
	rows := face.Rows(c.Height())
	face.DrawRow(c, 0, 1, "Bonnet "+version, true)
	mid := rows / 2
	if mid < 1 {
		mid = 1
	}
	x := (c.Width() - face.TextWidth(msg)) / 2
	if x < 0 {
		x = 0
	}
	face.DrawRow(c, mid, x, msg, false)
	_ = c.Display()
}
