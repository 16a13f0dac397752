package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names.
const (
	TemplatePage      = "page.html"
	TemplateLogin     = "login.html"
	TemplateDashboard = "dashboard.html"
	TemplateNotFound  = "not_found.html"
)

// Renderer 持有解析好的内嵌模板，公开页面与后台预览共用。
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"contactIcon": func() template.HTML {
			return ContactIconSVG(ContactPhone)
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Templates exposes the template set for gin's HTML renderer.
func (r *Renderer) Templates() *template.Template {
	return r.tmpl
}

// Render writes a full public page.
func (r *Renderer) Render(w io.Writer, pv PageView) error {
	return r.Execute(w, TemplatePage, pv)
}

// Execute runs a named template.
func (r *Renderer) Execute(w io.Writer, name string, data interface{}) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}
