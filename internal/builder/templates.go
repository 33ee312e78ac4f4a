package builder

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/Masterminds/sprig/v3"
)

const (
	layoutFile   = "layout.html"
	mainTemplate = "main"
)

// LoadTemplates parses the layout of a theme directory together with any
// other *.html partials next to it. Sprig functions are available to all
// of them.
func LoadTemplates(templateDir, templateName string) (*template.Template, error) {
	dir := filepath.Join(templateDir, templateName)
	layout := filepath.Join(dir, layoutFile)
	if _, err := os.Stat(layout); err != nil {
		return nil, fmt.Errorf("theme %q has no %s: %w", templateName, layoutFile, err)
	}

	partials, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	files := []string{layout}
	for _, p := range partials {
		if p != layout {
			files = append(files, p)
		}
	}

	tmpl, err := template.New(layoutFile).Funcs(sprig.HtmlFuncMap()).ParseFiles(files...)
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

// executeLayout renders data through the "main" template when the theme
// defines one, and through the layout file itself otherwise.
func executeLayout(tmpl *template.Template, data PageData) (string, error) {
	var buf bytes.Buffer
	var err error
	if tmpl.Lookup(mainTemplate) != nil {
		err = tmpl.ExecuteTemplate(&buf, mainTemplate, data)
	} else {
		err = tmpl.ExecuteTemplate(&buf, layoutFile, data)
	}
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
