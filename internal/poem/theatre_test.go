package poem

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Line
	}{
		{"blank", "  ", Line{Role: RoleSpacing}},
		{"empty", "", Line{Role: RoleSpacing}},
		{"act roman", "ACTE I", Line{Role: RoleAct, Text: "ACTE I"}},
		{"act digit with dot", " Acte 3. ", Line{Role: RoleAct, Text: "Acte 3."}},
		{"scene accented", "SCÈNE 2", Line{Role: RoleScene, Text: "SCÈNE 2"}},
		{"scene plain", "scene 12", Line{Role: RoleScene, Text: "scene 12"}},
		{"scene lowercase accent", "Scène 4.", Line{Role: RoleScene, Text: "Scène 4."}},
		{
			"dialogue",
			"HAMLET: To be or not to be",
			Line{Role: RoleDialogue, Text: "HAMLET: To be or not to be", Speaker: "HAMLET", Speech: "To be or not to be"},
		},
		{
			"dialogue accented speaker",
			"LA COMTESSE D'ESCARBAGNAS : Ah ! Madame.",
			Line{Role: RoleDialogue, Text: "LA COMTESSE D'ESCARBAGNAS : Ah ! Madame.", Speaker: "LA COMTESSE D'ESCARBAGNAS", Speech: "Ah ! Madame."},
		},
		{
			"dialogue splits on first colon",
			"ÉLISE: Il dit: non",
			Line{Role: RoleDialogue, Text: "ÉLISE: Il dit: non", Speaker: "ÉLISE", Speech: "Il dit: non"},
		},
		{"direction", "Il sort.", Line{Role: RoleDirection, Text: "Il sort."}},
		{"malformed act", "ACTE premier", Line{Role: RoleDirection, Text: "ACTE premier"}},
		{"mixed case speaker", "Hamlet: words", Line{Role: RoleDirection, Text: "Hamlet: words"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLine(tt.line))
		})
	}
}

func TestClassify_PreservesLineCount(t *testing.T) {
	lines := Classify("ACTE I\nSCÈNE 1\n\nALCESTE: Laissez-moi.\nIl se lève.")
	require.Len(t, lines, 5)

	roles := make([]Role, 0, len(lines))
	for _, l := range lines {
		roles = append(roles, l.Role)
	}
	assert.Equal(t, []Role{RoleAct, RoleScene, RoleSpacing, RoleDialogue, RoleDirection}, roles)
}

func TestFormat_NonTheatricalIsIdentity(t *testing.T) {
	for _, body := range []string{"", "ACTE I", "HAMLET: hi", "<b>raw</b>\n\nline"} {
		assert.Equal(t, body, Format(body, false))
	}
}

func TestFormat_TheatricalMarkup(t *testing.T) {
	out := Format("ACTE I\nSCÈNE 2\n\nHAMLET: <To be>\nIl sort.", true)

	assert.Contains(t, out, `<h3 class="act">ACTE I</h3>`)
	assert.Contains(t, out, `<h4 class="scene">SCÈNE 2</h4>`)
	assert.Contains(t, out, `<div class="spacer"></div>`)
	assert.Contains(t, out, `<span class="speaker">HAMLET</span> <span class="speech">&lt;To be&gt;</span>`)
	assert.Contains(t, out, `<p class="didascaly"><em>Il sort.</em></p>`)
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestFormat_IsDeterministic(t *testing.T) {
	body := "ACTE II\nPHILINTE: Qu'est-ce donc?\n\nIls sortent."
	assert.Equal(t, Format(body, true), Format(body, true))
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "dialogue", RoleDialogue.String())
	assert.Equal(t, "unknown", Role(42).String())
}
