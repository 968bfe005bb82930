package view

import (
	"fmt"
	"html/template"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/salesboard/salesboard/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CurrentPath string
	Data        any
}

// NewEngine parses templates at build-time. Numbers and currency render in
// the French locale, matching the data the dashboard serves.
func NewEngine() (*Engine, error) {
	printer := message.NewPrinter(language.French)
	funcMap := template.FuncMap{
		"euro": func(v float64) string {
			return printer.Sprintf("%.2f €", v)
		},
		"percent": func(v float64) string {
			return printer.Sprintf("%.1f %%", v)
		},
		"count": func(v int) string {
			return printer.Sprintf("%d", v)
		},
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}
