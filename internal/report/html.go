package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*
var templateFS embed.FS

var htmlTmpl = newTemplates()

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"f0": func(v float64) string { return fmt.Sprintf("%.0f", v) },
		"f1": func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"f2": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"f3": func(v float64) string { return fmt.Sprintf("%.3f", v) },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// WriteHTML renders the annual dashboard page. The page loads the JS data
// asset written by WriteJS from the same directory.
func WriteHTML(w io.Writer, d *Data) error {
	if err := htmlTmpl.ExecuteTemplate(w, "dashboard.html", d); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}
