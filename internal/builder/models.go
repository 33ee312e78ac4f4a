// internal/builder/models.go
package builder

import (
	"html/template"

	"versebook/internal/config"
	"versebook/internal/library"
)

// Page kinds, exposed to layouts as .Kind.
const (
	KindHome    = "home"
	KindBook    = "book"
	KindChapter = "chapter"
	KindPoem    = "poem"
)

// PageMeta holds the optional front matter of an index.md preface.
type PageMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// PageData is the struct passed to the layout template. Content is the
// composed fragment and is the layout's single substitution point.
type PageData struct {
	Content     template.HTML
	Title       string
	Kind        string
	BaseHref    string
	Canonical   string // site baseurl joined with the page path
	Author      string
	Description string
	Site        config.SiteConfig
	Prev        *library.Link
	Next        *library.Link
}

// Page is one rendered output file. Path is slash-separated and relative
// to the output root.
type Page struct {
	Path string
	HTML string
}
