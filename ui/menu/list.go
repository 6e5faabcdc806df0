// Package menu is a scrolling single-selection list for the chooser screens.
package menu

import "bonnet/ui/render"

// List tracks a selection and scroll position over a set of labels.
// It is used from the UI thread only.
type List struct {
	items  []string
	sel    int
	scroll int
}

// SetItems replaces the labels. The selection follows the previously
// selected label when it is still present.
func (l *List) SetItems(items []string) {
	prev, had := l.Selected()
	l.items = append([]string(nil), items...)
	if had {
		for i, it := range l.items {
			if it == prev {
				l.sel = i
				return
			}
		}
	}
	l.clampSel()
}

func (l *List) Items() []string { return l.items }

func (l *List) Len() int { return len(l.items) }

// Index returns the selected position, or -1 for an empty list.
func (l *List) Index() int {
	if len(l.items) == 0 {
		return -1
	}
	return l.sel
}

func (l *List) Selected() (string, bool) {
	if l.sel < 0 || l.sel >= len(l.items) {
		return "", false
	}
	return l.items[l.sel], true
}

func (l *List) Select(i int) {
	l.sel = i
	l.clampSel()
}

func (l *List) Up() {
	if l.sel > 0 {
		l.sel--
	}
}

func (l *List) Down() {
	if l.sel+1 < len(l.items) {
		l.sel++
	}
}

func (l *List) Scroll() int { return l.scroll }

func (l *List) clampSel() {
	if l.sel >= len(l.items) {
		l.sel = len(l.items) - 1
	}
	if l.sel < 0 {
		l.sel = 0
	}
}

// Clamp keeps the selection inside a window of viewRows rows.
func (l *List) Clamp(viewRows int) {
	if len(l.items) == 0 {
		l.sel = 0
		l.scroll = 0
		return
	}
	l.clampSel()
	if viewRows <= 0 {
		l.scroll = 0
		return
	}
	if l.scroll < 0 {
		l.scroll = 0
	}
	if l.sel < l.scroll {
		l.scroll = l.sel
	}
	if l.sel >= l.scroll+viewRows {
		l.scroll = l.sel - viewRows + 1
	}
	maxScroll := len(l.items) - viewRows
	if maxScroll < 0 {
		maxScroll = 0
	}
	if l.scroll > maxScroll {
		l.scroll = maxScroll
	}
}

// Draw paints title on the top row and the visible items below it,
// with the selected item highlighted. An empty list shows empty instead.
func (l *List) Draw(c *render.Canvas, face render.Face, title, empty string) {
	c.Clear()
	face.DrawRow(c, 0, 1, title, true)

	rows := face.Rows(c.Height()) - 1
	if len(l.items) == 0 {
		face.DrawRow(c, 1, 1, empty, false)
		return
	}
	l.Clamp(rows)
	for i := 0; i < rows; i++ {
		idx := l.scroll + i
		if idx >= len(l.items) {
			break
		}
		face.DrawRow(c, i+1, 1, l.items[idx], idx == l.sel)
	}
}
