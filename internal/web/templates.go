package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/2beens/gymlog/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"num":              view.FormatNumber,
		"bestsLabel":       func() string { return view.BestsLabel },
		"bestsPlaceholder": func() string { return view.BestsPlaceholder },
		"bestsSeparator":   func() string { return view.BestsSeparator },
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}
