package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Strings are ASCII only: the panel fonts carry no other glyphs.
func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	set := func(tag language.Tag, key Key, msg string) {
		if err := b.SetString(tag, string(key), msg); err != nil {
			panic(err)
		}
	}
	files := func(tag language.Tag, one, other string) {
		if err := b.Set(tag, string(MsgNumFiles), plural.Selectf(2, "%d",
			"=1", one,
			"other", other,
		)); err != nil {
			panic(err)
		}
	}

	set(language.English, MsgPleaseWait, "Please wait...")
	set(language.English, MsgChooseLanguage, "Language")
	set(language.English, MsgChooseDrive, "Choose drive")
	set(language.English, MsgNoDrives, "No drives plugged in")
	set(language.English, MsgNotMounted, "not mounted")
	set(language.English, MsgReading, "Reading %[1]s...")
	set(language.English, MsgCantReadPort, "Can't read %[1]s")
	files(language.English, "%[1]s: %[2]d file", "%[1]s: %[2]d files")

	set(language.German, MsgPleaseWait, "Bitte warten...")
	set(language.German, MsgChooseLanguage, "Sprache")
	set(language.German, MsgChooseDrive, "Laufwerk waehlen")
	set(language.German, MsgNoDrives, "Kein Laufwerk")
	set(language.German, MsgNotMounted, "nicht gemountet")
	set(language.German, MsgReading, "Lese %[1]s...")
	set(language.German, MsgCantReadPort, "%[1]s nicht lesbar")
	files(language.German, "%[1]s: %[2]d Datei", "%[1]s: %[2]d Dateien")

	set(language.Spanish, MsgPleaseWait, "Espere...")
	set(language.Spanish, MsgChooseLanguage, "Idioma")
	set(language.Spanish, MsgChooseDrive, "Elegir unidad")
	set(language.Spanish, MsgNoDrives, "Sin unidades")
	set(language.Spanish, MsgNotMounted, "sin montar")
	set(language.Spanish, MsgReading, "Leyendo %[1]s...")
	set(language.Spanish, MsgCantReadPort, "No se puede leer %[1]s")
	files(language.Spanish, "%[1]s: %[2]d archivo", "%[1]s: %[2]d archivos")

	return b
}
