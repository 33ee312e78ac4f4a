// Package library walks the poem input tree into books, chapters and poems.
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"versebook/internal/poem"
	"versebook/internal/util"
)

const (
	poemExt     = ".txt"
	prefaceFile = "index.md"
)

// Chapter is a directory of poems inside a book.
type Chapter struct {
	Name        string
	DisplayName string
	Slug        string
	Preface     string // raw markdown from index.md, if any
	Poems       []poem.Poem
}

// Book is a top-level directory of the input tree.
type Book struct {
	Name        string
	DisplayName string
	Slug        string
	Preface     string
	Poems       []poem.Poem
	Chapters    []Chapter
}

// SingleWork reports whether the book is rendered without its own page:
// exactly one poem and no chapters.
func (b Book) SingleWork() bool {
	return len(b.Poems) == 1 && len(b.Chapters) == 0
}

// Library is the whole input tree.
type Library struct {
	Intro string // raw markdown from the root index.md, if any
	Books []Book
}

// PoemCount returns the number of poems across all books and chapters.
func (l *Library) PoemCount() int {
	n := 0
	for _, b := range l.Books {
		n += len(b.Poems)
		for _, c := range b.Chapters {
			n += len(c.Poems)
		}
	}
	return n
}

type ScanOptions struct {
	TheatreLabels []string
	Logger        *zap.Logger
}

// Scan reads the input tree rooted at root. Every poem is parsed exactly
// once; books and chapters are name-sorted and poems are ordered by their
// sort key.
func Scan(root string, opts ScanOptions) (*Library, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := scanner{labels: opts.TheatreLabels, log: log}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("could not read poems directory %s: %w", root, err)
	}

	lib := &Library{}
	if lib.Intro, err = readPreface(root); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		book, err := s.scanBook(filepath.Join(root, entry.Name()), entry.Name())
		if err != nil {
			return nil, err
		}
		if len(book.Poems) == 0 && len(book.Chapters) == 0 {
			log.Warn("Skipping book without poems", zap.String("book", entry.Name()))
			continue
		}
		lib.Books = append(lib.Books, book)
	}
	sort.SliceStable(lib.Books, func(i, j int) bool { return lib.Books[i].Name < lib.Books[j].Name })
	return lib, nil
}

type scanner struct {
	labels []string
	log    *zap.Logger
}

func (s scanner) scanBook(dir, name string) (Book, error) {
	book := Book{Name: name, DisplayName: util.DisplayName(name), Slug: util.SafeName(name)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Book{}, fmt.Errorf("could not read book directory %s: %w", dir, err)
	}
	if book.Preface, err = readPreface(dir); err != nil {
		return Book{}, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		chapter, err := s.scanChapter(filepath.Join(dir, entry.Name()), entry.Name())
		if err != nil {
			return Book{}, err
		}
		if len(chapter.Poems) == 0 {
			s.log.Warn("Skipping chapter without poems",
				zap.String("book", name), zap.String("chapter", entry.Name()))
			continue
		}
		book.Chapters = append(book.Chapters, chapter)
	}
	sort.SliceStable(book.Chapters, func(i, j int) bool { return book.Chapters[i].Name < book.Chapters[j].Name })

	if book.Poems, err = s.readPoems(dir, entries); err != nil {
		return Book{}, err
	}
	return book, nil
}

func (s scanner) scanChapter(dir, name string) (Chapter, error) {
	chapter := Chapter{Name: name, DisplayName: util.DisplayName(name), Slug: util.SafeName(name)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Chapter{}, fmt.Errorf("could not read chapter directory %s: %w", dir, err)
	}
	if chapter.Preface, err = readPreface(dir); err != nil {
		return Chapter{}, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			s.log.Warn("Ignoring nested directory; chapters cannot contain chapters",
				zap.String("path", filepath.Join(dir, entry.Name())))
		}
	}
	if chapter.Poems, err = s.readPoems(dir, entries); err != nil {
		return Chapter{}, err
	}
	return chapter, nil
}

// readPoems parses the .txt files among entries, in the order os.ReadDir
// returned them, then sorts them by sort key.
func (s scanner) readPoems(dir string, entries []os.DirEntry) ([]poem.Poem, error) {
	var poems []poem.Poem
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != poemExt {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("poem file is not valid UTF-8: %s", path)
		}

		p, err := poem.Parse(strings.TrimSuffix(entry.Name(), poemExt), string(data), s.labels)
		if errors.Is(err, poem.ErrEmpty) {
			s.log.Debug("Skipping empty poem", zap.String("path", path))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		poems = append(poems, p)
	}
	poem.SortPoems(poems)
	return poems, nil
}

func readPreface(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, prefaceFile))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read preface in %s: %w", dir, err)
	}
	return string(data), nil
}

// PoemSlug is the output page name of a poem stem, without extension.
// "index" is reserved for book and chapter pages.
func PoemSlug(stem string) string {
	s := util.SafeName(stem)
	if strings.EqualFold(s, "index") {
		return s + util.NameSeparator + "poem"
	}
	return s
}
