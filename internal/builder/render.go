// internal/builder/render.go
package builder

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	"gopkg.in/yaml.v3"

	"versebook/internal/poem"
)

const frontMatterDelim = "---"

var (
	markdownRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote, extension.Typographer),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(newPoemLinkTransformer(), 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	htmlSanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown turns an index.md preface into HTML. An optional YAML
// front matter block, delimited by "---" lines at the very top, is
// decoded into PageMeta.
func renderMarkdown(raw string, opts BuildOptions) (PageMeta, template.HTML, error) {
	meta := PageMeta{}
	if strings.TrimSpace(raw) == "" {
		return meta, "", nil
	}

	body := raw
	if strings.HasPrefix(raw, frontMatterDelim) {
		parts := strings.SplitN(raw, frontMatterDelim, 3)
		if len(parts) == 3 {
			if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
				return PageMeta{}, "", fmt.Errorf("failed to parse front matter: %w", err)
			}
			body = parts[2]
		}
	}

	var htmlBuffer bytes.Buffer
	if err := markdownRenderer.Convert([]byte(body), &htmlBuffer); err != nil {
		return meta, "", fmt.Errorf("failed to render markdown with goldmark: %w", err)
	}

	if !opts.Unsafe {
		return meta, template.HTML(htmlSanitizer.SanitizeBytes(htmlBuffer.Bytes())), nil
	}
	return meta, template.HTML(htmlBuffer.String()), nil
}

// renderBody returns the HTML of a poem body. Theatrical works go through
// the line classifier; everything else keeps its line breaks.
func renderBody(p poem.Poem) template.HTML {
	if p.Theatrical {
		return template.HTML(poem.Format(p.Body, true))
	}
	lines := strings.Split(poem.Format(p.Body, false), "\n")
	for i, l := range lines {
		lines[i] = template.HTMLEscapeString(l)
	}
	return template.HTML(strings.Join(lines, "<br>\n"))
}
