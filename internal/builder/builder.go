// internal/builder/builder.go
package builder

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"versebook/internal/config"
	"versebook/internal/library"
)

type BuildOptions struct {
	CleanDestination bool
	Unsafe           bool
	Logger           *zap.Logger
}

// WriteError reports the output file a build failed to write.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// BuildSite scans the poems directory, composes every page and writes
// them under outputDir, then copies static assets. The template must be
// loaded beforehand so that a broken theme aborts before any output.
func BuildSite(ctx context.Context, outputDir, poemsDir, staticDir string, site config.SiteConfig, tmpl *template.Template, opts BuildOptions) (int, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
		opts.Logger = log
	}

	lib, err := library.Scan(poemsDir, library.ScanOptions{TheatreLabels: site.TheatreLabels, Logger: log})
	if err != nil {
		return 0, err
	}
	log.Info("Scanned library",
		zap.String("dir", poemsDir),
		zap.Int("books", len(lib.Books)),
		zap.Int("poems", lib.PoemCount()))

	pages, err := NewComposer(site, tmpl, opts).Compose(ctx, lib)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, &WriteError{Path: outputDir, Err: err}
	}
	if opts.CleanDestination {
		log.Debug("Cleaning destination directory", zap.String("dir", outputDir))
		if err := cleanDir(outputDir); err != nil {
			return 0, err
		}
	}

	if err := WritePages(outputDir, pages); err != nil {
		return 0, err
	}
	if err := copyStaticAssets(staticDir, outputDir); err != nil {
		return 0, err
	}
	return len(pages), nil
}

// WritePages writes every page under outputDir, overwriting existing files.
func WritePages(outputDir string, pages []Page) error {
	for _, p := range pages {
		outPath := filepath.Join(outputDir, filepath.FromSlash(p.Path))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return &WriteError{Path: outPath, Err: err}
		}
		if err := os.WriteFile(outPath, []byte(p.HTML), 0644); err != nil {
			return &WriteError{Path: outPath, Err: err}
		}
	}
	return nil
}

func cleanDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// copyStaticAssets copies files from the static directory to the output
// directory. A missing static directory is not an error.
func copyStaticAssets(staticDir, outputDir string) error {
	allowedExts := map[string]bool{
		".css": true, ".js": true, ".txt": true, ".svg": true, ".ico": true,
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
		".woff": true, ".woff2": true,
	}
	if _, err := os.Stat(staticDir); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return filepath.Walk(staticDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !allowedExts[filepath.Ext(info.Name())] {
			return nil
		}

		rel, err := filepath.Rel(staticDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(outputDir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return &WriteError{Path: dest, Err: err}
		}
		return copyFile(path, dest)
	})
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return &WriteError{Path: dest, Err: err}
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return &WriteError{Path: dest, Err: err}
	}
	return nil
}
