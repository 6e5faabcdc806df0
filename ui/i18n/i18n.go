// Package i18n formats the user-visible strings of the device.
//
// Messages live in a golang.org/x/text catalog keyed by Key. The active
// language can be switched at runtime; Format is safe to call from workers.
package i18n

import (
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a message.
type Key string

const (
	MsgPleaseWait     Key = "please_wait"
	MsgChooseLanguage Key = "choose_language"
	MsgChooseDrive    Key = "choose_drive"
	MsgNoDrives       Key = "no_drives"
	MsgNotMounted     Key = "not_mounted"
	MsgReading        Key = "reading"        // drive label
	MsgNumFiles       Key = "num_files"      // drive label, file count
	MsgCantReadPort   Key = "cant_read_port" // drive label
)

// Formatter renders a message key with parameters.
type Formatter interface {
	Format(key Key, args ...any) string
}

// Language is a selectable UI language.
type Language struct {
	Tag  language.Tag
	Name string
}

// Languages lists the supported languages in menu order.
var Languages = []Language{
	{Tag: language.English, Name: "English"},
	{Tag: language.German, Name: "Deutsch"},
	{Tag: language.Spanish, Name: "Espanol"},
}

// Localizer is a Formatter with a switchable language.
type Localizer struct {
	cat     catalog.Catalog
	matcher language.Matcher

	tag atomic.Pointer[language.Tag]
	p   atomic.Pointer[message.Printer]
}

// New returns a Localizer using the closest supported match for tag.
func New(tag language.Tag) *Localizer {
	tags := make([]language.Tag, 0, len(Languages))
	for _, l := range Languages {
		tags = append(tags, l.Tag)
	}
	l := &Localizer{
		cat:     newCatalog(),
		matcher: language.NewMatcher(tags),
	}
	l.SetLanguage(tag)
	return l
}

// Parse reads a BCP 47 tag such as "de" or "es-MX", defaulting to English.
func Parse(s string) language.Tag {
	t, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return t
}

// SetLanguage switches the active language.
func (l *Localizer) SetLanguage(tag language.Tag) {
	_, idx, _ := l.matcher.Match(tag)
	t := Languages[idx].Tag
	l.tag.Store(&t)
	l.p.Store(message.NewPrinter(t, message.Catalog(l.cat)))
}

// Language returns the active language.
func (l *Localizer) Language() language.Tag {
	if t := l.tag.Load(); t != nil {
		return *t
	}
	return language.English
}

// Format implements Formatter.
func (l *Localizer) Format(key Key, args ...any) string {
	return l.p.Load().Sprintf(string(key), args...)
}
