// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Local().Format("02/01/2006 15:04")
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	// dataURL marks stored PNG data URIs as safe for img src attributes.
	"dataURL": func(s *string) template.URL {
		if s == nil || !strings.HasPrefix(*s, "data:image/png;base64,") {
			return ""
		}
		return template.URL(*s)
	},
}

var templates = template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))

// Render executes the named page template.
func Render(w io.Writer, name string, data any) error {
	return templates.ExecuteTemplate(w, name, data)
}
