// internal/builder/goldmark_extensions.go
package builder

import (
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"versebook/internal/library"
	"versebook/internal/util"
)

// poemLinkTransformer rewrites relative links to poem source files
// ("Hiver/1_neige.txt") into links to their generated pages
// ("Hiver/1_neige.html"), applying the same name normalization as the
// page writer.
type poemLinkTransformer struct{}

func newPoemLinkTransformer() parser.ASTTransformer {
	return &poemLinkTransformer{}
}

func (t *poemLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		if dest, ok := poemHref(string(link.Destination)); ok {
			link.Destination = []byte(dest)
		}
		return ast.WalkContinue, nil
	})
}

// poemHref maps a relative .txt destination to its page href. Absolute
// URLs and other extensions are left alone.
func poemHref(dest string) (string, bool) {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || strings.HasPrefix(u.Path, "/") {
		return "", false
	}
	if path.Ext(u.Path) != ".txt" {
		return "", false
	}

	segments := strings.Split(strings.TrimSuffix(u.Path, ".txt"), "/")
	last := len(segments) - 1
	for i, seg := range segments {
		switch {
		case seg == "." || seg == "..":
		case i == last:
			segments[i] = library.PoemSlug(seg)
		default:
			segments[i] = util.SafeName(seg)
		}
	}
	out := strings.Join(segments, "/") + ".html"
	if u.Fragment != "" {
		out += "#" + u.Fragment
	}
	return out, true
}
