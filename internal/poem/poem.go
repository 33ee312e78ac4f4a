// Package poem parses plain-text poem files and formats their bodies.
package poem

import (
	"errors"
	"strings"
)

// ErrEmpty is returned by Parse for a file with no content. Callers skip
// such files entirely.
var ErrEmpty = errors.New("poem file is empty")

// DefaultType is the type of a poem without a Type header.
const DefaultType = "poem"

// DefaultTheatreLabels are the Type values that mark a theatrical work.
var DefaultTheatreLabels = []string{"théâtre", "theatre", "theater"}

const (
	titlePrefix  = "Title:"
	authorPrefix = "Author:"
	typePrefix   = "Type:"

	byteOrderMark = "\ufeff"
)

// Poem is a single parsed input file.
type Poem struct {
	Stem       string // filename without extension
	Title      string
	Author     string
	Type       string
	Body       string
	Theatrical bool
}

// Parse extracts the header lines and the body from the text of a poem
// file. Header lines may come in any order; the first line that is not a
// header ends the header block.
func Parse(stem, text string, theatreLabels []string) (Poem, error) {
	if text == "" {
		return Poem{}, ErrEmpty
	}

	lines := strings.Split(strings.TrimPrefix(text, byteOrderMark), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	p := Poem{Stem: stem, Type: DefaultType}
	bodyStart := 0
scan:
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, titlePrefix):
			p.Title = headerValue(line, titlePrefix)
		case strings.HasPrefix(line, authorPrefix):
			p.Author = headerValue(line, authorPrefix)
		case strings.HasPrefix(line, typePrefix):
			if v := headerValue(line, typePrefix); v != "" {
				p.Type = v
			}
		default:
			break scan
		}
		bodyStart++
	}

	if p.Title == "" {
		p.Title = stem
	}
	p.Theatrical = IsTheatreType(p.Type, theatreLabels)
	p.Body = strings.Join(trimBlankLines(lines[bodyStart:]), "\n")
	return p, nil
}

// IsTheatreType reports whether typ matches one of labels, ignoring case.
func IsTheatreType(typ string, labels []string) bool {
	for _, label := range labels {
		if strings.EqualFold(strings.TrimSpace(typ), label) {
			return true
		}
	}
	return false
}

func headerValue(line, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, prefix))
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
