package render

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/shelfwise/library-server-go/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page carries everything a template can reference: the signed-in admin,
// a one-shot flash notice, the CSRF token for forms, field errors and the
// submitted values to re-populate a failed form, and page-specific data.
type Page struct {
	Title     string
	Admin     *model.AdminUser
	Flash     *Flash
	CSRFToken string
	Errors    map[string]string
	Form      map[string]string
	Data      any
}

// Renderer produces the HTML surface. Handlers depend on this interface
// rather than a concrete template engine.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, page Page) error
}

type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return r.tmpl.ExecuteTemplate(w, name, page)
}
