package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"time"

	"github.com/itchan-dev/ohqueue/internal/markdown"
)

const (
	baseTemplate     = "base.html"
	partialsTemplate = "partials.html"
	tmplPath         = "templates"
	previewRunes     = 80
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"add":     func(a, b int) int { return a + b },
	"preview": func(s string) string { return markdown.Preview(s, previewRunes) },
	"timestamp": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04 MST")
	},
}

// LoadTemplates parses every page template together with the base layout and partials.
// The map is keyed by page file name, e.g. "queue.html".
func LoadTemplates() (map[string]*template.Template, error) {
	files, err := fs.ReadDir(templateFS, tmplPath)
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template)
	for _, f := range files {
		name := f.Name()
		if path.Ext(name) != ".html" || name == baseTemplate || name == partialsTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).Funcs(templateFuncs).ParseFS(templateFS,
			path.Join(tmplPath, baseTemplate),
			path.Join(tmplPath, name),
			path.Join(tmplPath, partialsTemplate),
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}

func MustLoadTemplates() map[string]*template.Template {
	templates, err := LoadTemplates()
	if err != nil {
		panic(err)
	}
	return templates
}
