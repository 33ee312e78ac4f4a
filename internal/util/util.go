package util

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NameSeparator separates words (and the numeric ordering prefix) in
// file and directory names.
const NameSeparator = "_"

// ComputeBaseHref calculates the relative path to the site root
// so that CSS/JS links work correctly for pages at any depth.
// relPath is slash-separated and relative to the output root, so a page
// at book/chapter/poem.html gets a BaseHref of "../../".
func ComputeBaseHref(relPath string) string {
	dir := path.Dir(relPath)
	if dir == "." || dir == "/" {
		return ""
	}
	depth := strings.Count(strings.Trim(dir, "/"), "/") + 1
	return strings.Repeat("../", depth)
}

// RelLink returns the href from the page at fromPath to the page at toPath.
// Both paths are slash-separated and relative to the output root.
func RelLink(fromPath, toPath string) string {
	from := splitDir(path.Dir(fromPath))
	to := splitDir(path.Dir(toPath))
	common := 0
	for common < len(from) && common < len(to) && from[common] == to[common] {
		common++
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("../", len(from)-common))
	for _, seg := range to[common:] {
		b.WriteString(seg)
		b.WriteByte('/')
	}
	b.WriteString(path.Base(toPath))
	return b.String()
}

func splitDir(dir string) []string {
	dir = strings.Trim(dir, "/")
	if dir == "." || dir == "" {
		return nil
	}
	return strings.Split(dir, "/")
}

// DisplayName turns a directory name into a presentable label.
func DisplayName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, NameSeparator, " "))
}

// SafeName normalizes a file or directory stem into a path segment that is
// safe to use both on disk and inside an href. Diacritics are removed, and
// anything other than letters, digits, '-' and '.' collapses into a single
// '_'. Every output path and every link must go through this function.
func SafeName(name string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, name)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range stripped {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.':
			if pendingSep && b.Len() > 0 {
				b.WriteString(NameSeparator)
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	s := strings.Trim(b.String(), ".")
	if s == "" {
		return "untitled"
	}
	return s
}
