package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"versebook/internal/poem"
)

func TestRenderMarkdown_FrontMatterAndLinks(t *testing.T) {
	raw := "---\ntitle: Préface\ndescription: Un recueil\n---\nVoir [la neige](Hiver/1_neige.txt) et [ailleurs](https://example.com/a.txt)."

	meta, html, err := renderMarkdown(raw, BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Préface", meta.Title)
	assert.Equal(t, "Un recueil", meta.Description)
	assert.Contains(t, string(html), `href="Hiver/1_neige.html"`)
	assert.Contains(t, string(html), `href="https://example.com/a.txt"`)
}

func TestRenderMarkdown_Empty(t *testing.T) {
	meta, html, err := renderMarkdown("  \n", BuildOptions{})
	require.NoError(t, err)
	assert.Empty(t, meta.Title)
	assert.Empty(t, html)
}

func TestRenderMarkdown_Sanitizes(t *testing.T) {
	raw := "Hello\n\n<script>alert(1)</script>\n"

	_, safe, err := renderMarkdown(raw, BuildOptions{})
	require.NoError(t, err)
	assert.NotContains(t, string(safe), "<script>")

	_, unsafe, err := renderMarkdown(raw, BuildOptions{Unsafe: true})
	require.NoError(t, err)
	assert.Contains(t, string(unsafe), "<script>")
}

func TestRenderMarkdown_BadFrontMatter(t *testing.T) {
	_, _, err := renderMarkdown("---\ntitle: [oops\n---\nbody", BuildOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "front matter")
}

func TestPoemHref(t *testing.T) {
	tests := []struct {
		dest   string
		want   string
		expect bool
	}{
		{"1_neige.txt", "1_neige.html", true},
		{"L'hiver/1_neige.txt", "L_hiver/1_neige.html", true},
		{"../Autre/index.txt#v2", "../Autre/index_poem.html#v2", true},
		{"https://example.com/poem.txt", "", false},
		{"/abs/poem.txt", "", false},
		{"notes.md", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			got, ok := poemHref(tt.dest)
			assert.Equal(t, tt.expect, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderBody(t *testing.T) {
	plain := renderBody(poem.Poem{Body: "a < b\n\nc"})
	assert.Equal(t, "a &lt; b<br>\n<br>\nc", string(plain))

	theatre := renderBody(poem.Poem{Body: "SCÈNE 1", Theatrical: true})
	assert.Contains(t, string(theatre), `<h4 class="scene">SCÈNE 1</h4>`)
}
