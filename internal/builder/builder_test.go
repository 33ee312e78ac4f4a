package builder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"versebook/internal/config"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestBuildSite_WritesPagesAndAssets(t *testing.T) {
	root := t.TempDir()
	poems := filepath.Join(root, "poems")
	static := filepath.Join(root, "static")
	out := filepath.Join(root, "public")

	writeTestFile(t, filepath.Join(poems, "L'été", "1_a.txt"), "Title: A\n\na")
	writeTestFile(t, filepath.Join(poems, "L'été", "2_b.txt"), "Title: B\n\nb")
	writeTestFile(t, filepath.Join(poems, "L'été", "3_vide.txt"), "")
	writeTestFile(t, filepath.Join(poems, "Seul", "poeme.txt"), "Title: Seul\n\nseul")
	writeTestFile(t, filepath.Join(static, "css", "style.css"), "body{}")
	writeTestFile(t, filepath.Join(static, "notes.bak"), "skip me")
	writeTestFile(t, filepath.Join(out, "stale.html"), "old")

	site := config.Default()
	pageCount, err := BuildSite(context.Background(), out, poems, static, site, testTemplate(t),
		BuildOptions{CleanDestination: true, Logger: zap.NewNop()})
	require.NoError(t, err)

	// home, book page, two poems, single work
	assert.Equal(t, 5, pageCount)
	for _, p := range []string{"index.html", "L_ete/index.html", "L_ete/1_a.html", "L_ete/2_b.html", "Seul/poeme.html", "css/style.css"} {
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(p)))
	}
	assert.NoFileExists(t, filepath.Join(out, "L_ete", "3_vide.html"))
	assert.NoFileExists(t, filepath.Join(out, "Seul", "index.html"))
	assert.NoFileExists(t, filepath.Join(out, "stale.html"))
	assert.NoFileExists(t, filepath.Join(out, "notes.bak"))

	home, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(home), `href="Seul/poeme.html"`)
	assert.Contains(t, string(home), `href="L_ete/index.html"`)
}

func TestBuildSite_IsDeterministic(t *testing.T) {
	root := t.TempDir()
	poems := filepath.Join(root, "poems")
	writeTestFile(t, filepath.Join(poems, "Livre", "1_a.txt"), "Title: A\n\na")
	writeTestFile(t, filepath.Join(poems, "Livre", "Chap", "1_b.txt"), "Title: B\n\nb")
	tmpl := testTemplate(t)

	outA, outB := filepath.Join(root, "a"), filepath.Join(root, "b")
	_, err := BuildSite(context.Background(), outA, poems, filepath.Join(root, "static"), config.Default(), tmpl, BuildOptions{})
	require.NoError(t, err)
	_, err = BuildSite(context.Background(), outB, poems, filepath.Join(root, "static"), config.Default(), tmpl, BuildOptions{})
	require.NoError(t, err)

	for _, p := range []string{"index.html", "Livre/index.html", "Livre/Chap/index.html", "Livre/Chap/1_b.html"} {
		a, err := os.ReadFile(filepath.Join(outA, p))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(outB, p))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), p)
	}
}

func TestBuildSite_ReportsWritePath(t *testing.T) {
	root := t.TempDir()
	poems := filepath.Join(root, "poems")
	writeTestFile(t, filepath.Join(poems, "Livre", "1_a.txt"), "a")
	out := filepath.Join(root, "public")
	writeTestFile(t, out, "not a directory")

	_, err := BuildSite(context.Background(), out, poems, filepath.Join(root, "static"), config.Default(), testTemplate(t), BuildOptions{})
	require.Error(t, err)

	var writeErr *WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, out, writeErr.Path)
}

func TestWritePages_Overwrites(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, WritePages(out, []Page{{Path: "a/b.html", HTML: "one"}}))
	require.NoError(t, WritePages(out, []Page{{Path: "a/b.html", HTML: "two"}}))

	data, err := os.ReadFile(filepath.Join(out, "a", "b.html"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}
