// Package lang is the root screen: pick a language, then choose a drive.
package lang

import (
	"bonnet/ui/i18n"
	"bonnet/ui/input"
	"bonnet/ui/menu"
	"bonnet/ui/nav"
	"bonnet/ui/render"
)

type Screen struct {
	nav  nav.Navigator
	face render.Face
	loc  *i18n.Localizer
	next func() nav.Screen

	list menu.List
}

var _ nav.ButtonHandler = (*Screen)(nil)

// New returns the chooser. next builds the screen pushed after a choice.
func New(n nav.Navigator, face render.Face, loc *i18n.Localizer, next func() nav.Screen) *Screen {
	s := &Screen{nav: n, face: face, loc: loc, next: next}
	names := make([]string, len(i18n.Languages))
	cur := 0
	for i, l := range i18n.Languages {
		names[i] = l.Name
		if l.Tag == loc.Language() {
			cur = i
		}
	}
	s.list.SetItems(names)
	s.list.Select(cur)
	return s
}

func (s *Screen) Render(c *render.Canvas) {
	s.list.Draw(c, s.face, s.loc.Format(i18n.MsgChooseLanguage), "")
}

func (s *Screen) HandleButton(b input.Button) {
	switch b {
	case input.Up:
		s.list.Up()
	case input.Down:
		s.list.Down()
	case input.Confirm:
		i := s.list.Index()
		if i < 0 {
			return
		}
		s.loc.SetLanguage(i18n.Languages[i].Tag)
		s.nav.Push(s.next())
		return
	default:
		return
	}
	s.nav.RequestRepaint()
}
