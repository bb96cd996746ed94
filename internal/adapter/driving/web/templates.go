package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/a-h/templ"
)

var pageFuncs = template.FuncMap{
	"classes": Classes,
	"kv":      templ.KV[string, bool],
}

// pageTemplates maps page file names to parsed template sets. Each page
// is parsed together with the shared layout so its {{define "content"}}
// block slots into the layout shell.
var pageTemplates = mustParsePages("landing.html", "dashboard.html", "about.html")

func mustParsePages(pages ...string) map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		parsed[page] = template.Must(template.New(page).
			Funcs(pageFuncs).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+page))
	}
	return parsed
}

// render executes a page into a buffer before writing, so a template
// failure produces a clean 500 instead of a half written page.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := pageTemplates[page]
	if !ok {
		h.logger.Error("unknown page template", "page", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		h.logger.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
