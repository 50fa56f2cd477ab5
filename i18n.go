package folio

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/filledstacks/folio/views"
)

// LocalizePath prefixes path with the locale segment. The default locale is
// served from the site root and gets no prefix. A path that already starts
// with a configured locale has that prefix replaced.
func (c SiteConfig) LocalizePath(p, locale string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if seg, rest, _ := strings.Cut(p[1:], "/"); seg != "" && c.HasLocale(seg) {
		p = "/" + rest
	}
	if locale == "" || locale == c.DefaultLocale {
		return p
	}
	return "/" + locale + p
}

var uiCatalog = newUICatalog()

func newUICatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	es := language.Spanish
	set := func(key, msg string) {
		if err := b.SetString(es, key, msg); err != nil {
			panic(err)
		}
	}
	set(views.MsgMinutes, "%d min de lectura")
	set(views.MsgWords, "%s palabras")
	set(views.MsgPosts, "Publicaciones")
	set(views.MsgPageOf, "Página %d de %d")
	set(views.MsgPrev, "Anterior")
	set(views.MsgNext, "Siguiente")
	set(views.MsgPublished, "Publicado")
	set(views.MsgUpdated, "Actualizado")
	set(views.MsgNotFound, "Página no encontrada")
	set(views.MsgServerError, "Algo salió mal")
	set(views.MsgBackHome, "Volver al inicio")
	set(views.MsgNoPosts, "Aún no hay publicaciones.")
	set(views.MsgFeaturedPost, "Destacado")
	return b
}

// Translator formats UI strings for one locale. Keys without a translation
// fall back to the English key text.
type Translator struct {
	p *message.Printer
}

// NewTranslator returns a Translator for locale. Unknown or malformed
// locales fall back to English.
func NewTranslator(locale string) Translator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return Translator{p: message.NewPrinter(tag, message.Catalog(uiCatalog))}
}

// T formats key with args in the translator's locale.
func (t Translator) T(key string, args ...interface{}) string {
	return t.p.Sprintf(key, args...)
}
