package poem

import (
	"html/template"
	"regexp"
	"strings"
)

// Role is the presentation role of one line of a theatrical work.
type Role int

const (
	RoleSpacing   Role = iota // blank line
	RoleAct                   // "ACTE II"
	RoleScene                 // "SCÈNE 3"
	RoleDialogue              // "HAMLET: ..."
	RoleDirection             // stage direction (didascaly)
)

func (r Role) String() string {
	switch r {
	case RoleSpacing:
		return "spacing"
	case RoleAct:
		return "act"
	case RoleScene:
		return "scene"
	case RoleDialogue:
		return "dialogue"
	case RoleDirection:
		return "direction"
	}
	return "unknown"
}

// Line is one classified line. Speaker and Speech are only set for
// RoleDialogue; Text holds the trimmed line for every other role.
type Line struct {
	Role    Role
	Text    string
	Speaker string
	Speech  string
}

var (
	actPattern      = regexp.MustCompile(`(?i)^ACTE\s+([IVXLCDM]+|\d+)\.?$`)
	scenePattern    = regexp.MustCompile(`(?i)^SC[ÈE]NE\s+\d+\.?$`)
	dialoguePattern = regexp.MustCompile(`^(\p{Lu}[\p{Lu}'’\- ]*):(.*)$`)
)

// matchers are tried in order; the first one that accepts a line decides
// its role. RoleDirection is the fallback.
var matchers = []func(trimmed string) (Line, bool){
	matchSpacing,
	matchHeading,
	matchDialogue,
}

func matchSpacing(trimmed string) (Line, bool) {
	return Line{Role: RoleSpacing}, trimmed == ""
}

func matchHeading(trimmed string) (Line, bool) {
	switch {
	case actPattern.MatchString(trimmed):
		return Line{Role: RoleAct, Text: trimmed}, true
	case scenePattern.MatchString(trimmed):
		return Line{Role: RoleScene, Text: trimmed}, true
	}
	return Line{}, false
}

func matchDialogue(trimmed string) (Line, bool) {
	m := dialoguePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Line{}, false
	}
	return Line{
		Role:    RoleDialogue,
		Text:    trimmed,
		Speaker: strings.TrimSpace(m[1]),
		Speech:  strings.TrimSpace(m[2]),
	}, true
}

// ClassifyLine assigns a role to a single line.
func ClassifyLine(line string) Line {
	trimmed := strings.TrimSpace(line)
	for _, match := range matchers {
		if l, ok := match(trimmed); ok {
			return l
		}
	}
	return Line{Role: RoleDirection, Text: trimmed}
}

// Classify splits a body into lines and classifies each of them.
func Classify(body string) []Line {
	raw := strings.Split(body, "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, ClassifyLine(l))
	}
	return lines
}

// Format returns the presentation form of a poem body. Non-theatrical
// bodies come back untouched; theatrical ones are rendered line by line
// into HTML with all text escaped.
func Format(body string, theatrical bool) string {
	if !theatrical {
		return body
	}
	var b strings.Builder
	for _, l := range Classify(body) {
		b.WriteString(l.HTML())
		b.WriteByte('\n')
	}
	return b.String()
}

// HTML renders a classified line.
func (l Line) HTML() string {
	esc := template.HTMLEscapeString
	switch l.Role {
	case RoleSpacing:
		return `<div class="spacer"></div>`
	case RoleAct:
		return `<h3 class="act">` + esc(l.Text) + `</h3>`
	case RoleScene:
		return `<h4 class="scene">` + esc(l.Text) + `</h4>`
	case RoleDialogue:
		return `<p class="dialogue"><span class="speaker">` + esc(l.Speaker) +
			`</span> <span class="speech">` + esc(l.Speech) + `</span></p>`
	default:
		return `<p class="didascaly"><em>` + esc(l.Text) + `</em></p>`
	}
}
