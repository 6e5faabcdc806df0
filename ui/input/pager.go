package input

import "bonnet/ui/view"

// Pager maps buttons to page and pan moves on a published view.State.
//
// While Ready reports false (a task is still loading) only Back acts;
// other buttons are dropped without a repaint.
type Pager struct {
	PageSize int
	PanStep  int

	View    *view.Publisher
	Ready   func() bool
	Back    func()
	Repaint func()
}

// Handle applies b and reports whether it was consumed.
func (p *Pager) Handle(b Button) bool {
	if b == Back {
		if p.Back != nil {
			p.Back()
		}
		return true
	}
	if !b.Directional() {
		return false
	}
	if p.Ready != nil && !p.Ready() {
		return false
	}

	p.View.Update(func(s view.State) view.State {
		return p.step(s, b)
	})
	if p.Repaint != nil {
		p.Repaint()
	}
	return true
}

func (p *Pager) step(s view.State, b Button) view.State {
	page := p.PageSize
	if page <= 0 {
		page = 1
	}
	line, x := s.LineOffset, s.XOffset

	switch b {
	case Up:
		if line > 0 {
			line -= page
			if line < 0 {
				line = 0
			}
		}
	case Down:
		if line+page < s.Len() {
			line += page
			if max := s.MaxLineOffset(page); line > max {
				line = max
			}
		}
	case Left:
		if x < 0 {
			x += p.PanStep
			if x > 0 {
				x = 0
			}
		}
	case Right:
		// Unbounded: long lines may pan past their end.
		x -= p.PanStep
	}
	return s.WithOffsets(line, x)
}
