package builder

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"versebook/internal/config"
	"versebook/internal/library"
	"versebook/internal/poem"
	"versebook/internal/util"
)

const (
	homePath  = "index.html"
	indexName = "index.html"
	pageExt   = ".html"
	homeLabel = "Accueil"
)

// Composer turns a scanned Library into rendered pages. It holds no
// per-build state and may be reused.
type Composer struct {
	site config.SiteConfig
	tmpl *template.Template
	opts BuildOptions
	log  *zap.Logger
}

func NewComposer(site config.SiteConfig, tmpl *template.Template, opts BuildOptions) *Composer {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Composer{site: site, tmpl: tmpl, opts: opts, log: log}
}

type bookResult struct {
	entry library.Link // home page entry, root-relative target
	pages []Page
}

// listing is the content of home, book and chapter pages. All link
// targets are relative to the page being rendered.
type listing struct {
	Class    string
	Title    string
	Preface  template.HTML
	Items    []library.Link
	Sections []section
	Back     *library.Link
}

type section struct {
	Heading library.Link
	Items   []library.Link
}

type poemView struct {
	Title      string
	Author     string
	Theatrical bool
	Body       template.HTML
	Prev       *library.Link
	Next       *library.Link
	Back       library.Link
}

// Compose renders every page of lib: the home page first, then each
// book's pages in book order. Books are composed concurrently.
func (c *Composer) Compose(ctx context.Context, lib *library.Library) ([]Page, error) {
	results := make([]bookResult, len(lib.Books))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, book := range lib.Books {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.composeBook(book)
			if err != nil {
				return fmt.Errorf("book %s: %w", book.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	home, err := c.composeHome(lib, results)
	if err != nil {
		return nil, err
	}
	pages := []Page{home}
	for _, res := range results {
		pages = append(pages, res.pages...)
	}
	if err := checkUniquePaths(pages); err != nil {
		return nil, err
	}
	return pages, nil
}

func (c *Composer) composeHome(lib *library.Library, results []bookResult) (Page, error) {
	meta, intro, err := renderMarkdown(lib.Intro, c.opts)
	if err != nil {
		return Page{}, fmt.Errorf("site intro: %w", err)
	}
	title := c.site.Title
	if meta.Title != "" {
		title = meta.Title
	}

	entries := make([]library.Link, 0, len(results))
	for _, res := range results {
		entries = append(entries, res.entry)
	}
	content, err := renderFragment("listing", listing{
		Class:   "library",
		Title:   title,
		Preface: intro,
		Items:   relativeLinks(homePath, entries),
	})
	if err != nil {
		return Page{}, err
	}
	return c.page(homePath, PageData{
		Content:     content,
		Title:       title,
		Kind:        KindHome,
		Description: meta.Description,
	})
}

func (c *Composer) composeBook(book library.Book) (bookResult, error) {
	meta, preface, err := renderMarkdown(book.Preface, c.opts)
	if err != nil {
		return bookResult{}, fmt.Errorf("preface: %w", err)
	}
	title := book.DisplayName
	if meta.Title != "" {
		title = meta.Title
	}
	bookPath := path.Join(book.Slug, indexName)
	home := library.Link{Label: homeLabel, Target: homePath}

	if book.SingleWork() {
		pages, siblings, err := c.composePoems(book.Poems, book.Slug, home)
		if err != nil {
			return bookResult{}, err
		}
		c.log.Debug("Composed single work", zap.String("book", book.Name), zap.String("page", siblings[0].Target))
		return bookResult{entry: siblings[0], pages: pages}, nil
	}

	back := library.Link{Label: title, Target: bookPath}
	pages, items, err := c.composePoems(book.Poems, book.Slug, back)
	if err != nil {
		return bookResult{}, err
	}

	var sections []section
	for _, chapter := range book.Chapters {
		chapterPages, sec, err := c.composeChapter(book.Slug, chapter, back)
		if err != nil {
			return bookResult{}, fmt.Errorf("chapter %s: %w", chapter.Name, err)
		}
		pages = append(pages, chapterPages...)
		sections = append(sections, section{
			Heading: relLink(bookPath, sec.Heading),
			Items:   relativeLinks(bookPath, sec.Items),
		})
	}

	content, err := renderFragment("listing", listing{
		Class:    "book",
		Title:    title,
		Preface:  preface,
		Items:    relativeLinks(bookPath, items),
		Sections: sections,
		Back:     ptr(relLink(bookPath, home)),
	})
	if err != nil {
		return bookResult{}, err
	}
	bookPage, err := c.page(bookPath, PageData{
		Content:     content,
		Title:       title,
		Kind:        KindBook,
		Description: meta.Description,
	})
	if err != nil {
		return bookResult{}, err
	}

	c.log.Debug("Composed book",
		zap.String("book", book.Name),
		zap.Int("poems", len(book.Poems)),
		zap.Int("chapters", len(book.Chapters)))
	return bookResult{
		entry: library.Link{Label: title, Target: bookPath},
		pages: append([]Page{bookPage}, pages...),
	}, nil
}

// composeChapter renders a chapter page and its poems. The returned
// section holds root-relative targets for the book page listing.
func (c *Composer) composeChapter(bookSlug string, chapter library.Chapter, bookBack library.Link) ([]Page, section, error) {
	meta, preface, err := renderMarkdown(chapter.Preface, c.opts)
	if err != nil {
		return nil, section{}, fmt.Errorf("preface: %w", err)
	}
	title := chapter.DisplayName
	if meta.Title != "" {
		title = meta.Title
	}
	dir := path.Join(bookSlug, chapter.Slug)
	chapterPath := path.Join(dir, indexName)
	heading := library.Link{Label: title, Target: chapterPath}

	// Chapter poems navigate among themselves only.
	pages, items, err := c.composePoems(chapter.Poems, dir, heading)
	if err != nil {
		return nil, section{}, err
	}

	content, err := renderFragment("listing", listing{
		Class:   "chapter",
		Title:   title,
		Preface: preface,
		Items:   relativeLinks(chapterPath, items),
		Back:    ptr(relLink(chapterPath, bookBack)),
	})
	if err != nil {
		return nil, section{}, err
	}
	chapterPage, err := c.page(chapterPath, PageData{
		Content:     content,
		Title:       title,
		Kind:        KindChapter,
		Description: meta.Description,
	})
	if err != nil {
		return nil, section{}, err
	}
	return append([]Page{chapterPage}, pages...), section{Heading: heading, Items: items}, nil
}

// composePoems renders the pages of an ordered group of sibling poems in
// dir. It returns the pages and the root-relative sibling links.
func (c *Composer) composePoems(poems []poem.Poem, dir string, back library.Link) ([]Page, []library.Link, error) {
	siblings := make([]library.Link, 0, len(poems))
	for _, p := range poems {
		siblings = append(siblings, library.Link{
			Label:  p.Title,
			Target: path.Join(dir, library.PoemSlug(p.Stem)+pageExt),
		})
	}

	pages := make([]Page, 0, len(poems))
	for i, p := range poems {
		pagePath := siblings[i].Target
		prev, next := library.Navigate(siblings, i)
		if prev != nil {
			prev = ptr(relLink(pagePath, *prev))
		}
		if next != nil {
			next = ptr(relLink(pagePath, *next))
		}

		content, err := renderFragment("poem", poemView{
			Title:      p.Title,
			Author:     p.Author,
			Theatrical: p.Theatrical,
			Body:       renderBody(p),
			Prev:       prev,
			Next:       next,
			Back:       relLink(pagePath, back),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("poem %s: %w", p.Stem, err)
		}
		page, err := c.page(pagePath, PageData{
			Content: content,
			Title:   p.Title,
			Kind:    KindPoem,
			Author:  p.Author,
			Prev:    prev,
			Next:    next,
		})
		if err != nil {
			return nil, nil, err
		}
		pages = append(pages, page)
	}
	return pages, siblings, nil
}

// page wraps a composed fragment in the site layout.
func (c *Composer) page(pagePath string, data PageData) (Page, error) {
	data.BaseHref = util.ComputeBaseHref(pagePath)
	if c.site.BaseURL != "" {
		data.Canonical = strings.TrimSuffix(c.site.BaseURL, "/") + "/" + pagePath
	}
	data.Site = c.site
	if data.Author == "" {
		data.Author = c.site.Author
	}
	if data.Description == "" {
		data.Description = c.site.Description
	}
	out, err := executeLayout(c.tmpl, data)
	if err != nil {
		return Page{}, fmt.Errorf("failed to render page %s: %w", pagePath, err)
	}
	return Page{Path: pagePath, HTML: out}, nil
}

func renderFragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s fragment: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func relativeLinks(from string, links []library.Link) []library.Link {
	out := make([]library.Link, 0, len(links))
	for _, l := range links {
		out = append(out, relLink(from, l))
	}
	return out
}

// checkUniquePaths rejects two pages with the same path, and a page whose
// path is also a directory some other page is written under.
func checkUniquePaths(pages []Page) error {
	seen := make(map[string]bool, len(pages))
	for _, p := range pages {
		if seen[p.Path] {
			return fmt.Errorf("two pages map to the same output path %s; rename one of the sources", p.Path)
		}
		seen[p.Path] = true
	}
	for _, p := range pages {
		for dir := path.Dir(p.Path); dir != "."; dir = path.Dir(dir) {
			if seen[dir] {
				return fmt.Errorf("page %s is written under %s, which is also a page; rename one of the sources", p.Path, dir)
			}
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func relLink(from string, l library.Link) library.Link {
	return library.Link{Label: l.Label, Target: util.RelLink(from, l.Target)}
}
