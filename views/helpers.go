package views

import (
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/filledstacks/folio/markdown"
)

// htmlWriter writes HTML fragments and keeps the first write error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// href writes an href attribute when the URL is safe, and nothing otherwise.
func (h *htmlWriter) href(u string) {
	if safe := markdown.SafeURL(u); safe != "" {
		h.raw(` href="` + safe + `"`)
	}
}

func (h *htmlWriter) meta(property, content string) {
	if content == "" {
		return
	}
	h.raw(`<meta property="` + property + `"`)
	h.attr("content", content)
	h.raw(">\n")
}

func translator(site Site) Translate {
	if site.T != nil {
		return site.T
	}
	return func(key string, args ...interface{}) string {
		return fmt.Sprintf(key, args...)
	}
}
