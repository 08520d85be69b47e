package compile

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces become underscores", "Acme Corp", "Acme_Corp"},
		{"unsafe characters dropped", "C++ / Sr. Engineer!", "C__Sr_Engineer"},
		{"hyphens and underscores kept", "full-stack_dev", "full-stack_dev"},
		{"empty input", "", ""},
		{"truncated at fifty", strings.Repeat("a", 80), strings.Repeat("a", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.input))
		})
	}
}

func TestBuildBaseName(t *testing.T) {
	baseNameRe := regexp.MustCompile(`^Jane_Doe_Acme_Backend_Engineer_[0-9a-f]{8}$`)
	name := buildBaseName("Jane Doe", "Acme", "Backend Engineer")
	assert.Regexp(t, baseNameRe, name)
}

func TestBuildBaseName_DefaultsAndOmissions(t *testing.T) {
	name := buildBaseName("", "", "")
	assert.Regexp(t, `^Resume_[0-9a-f]{8}$`, name)

	name = buildBaseName("", "Acme", "")
	assert.Regexp(t, `^Resume_Acme_[0-9a-f]{8}$`, name)
}

func TestBuildBaseName_TruncatesCompanyRoleSlug(t *testing.T) {
	company := strings.Repeat("c", 40)
	role := strings.Repeat("r", 40)
	name := buildBaseName("Jane", company, role)

	parts := strings.Split(name, "_")
	require.GreaterOrEqual(t, len(parts), 3)
	// Everything between the person slug and the unique id.
	middle := strings.Join(parts[1:len(parts)-1], "_")
	assert.Len(t, middle, 50)
}

func TestBuildBaseName_UniqueSuffix(t *testing.T) {
	a := buildBaseName("Jane", "Acme", "Engineer")
	b := buildBaseName("Jane", "Acme", "Engineer")
	assert.NotEqual(t, a, b)
}

func TestExtractErrorLines(t *testing.T) {
	log := strings.Join([]string{
		"This is pdfTeX",
		"! Undefined control sequence.",
		"l.12 \\skilline",
		"! Emergency stop.",
		"some trailing noise",
	}, "\n")

	got := extractErrorLines(log)
	assert.Equal(t, "! Undefined control sequence.\n! Emergency stop.", got)
}

func TestExtractErrorLines_CapsAtFive(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "! error"
	}
	got := extractErrorLines(strings.Join(lines, "\n"))
	assert.Len(t, strings.Split(got, "\n"), 5)
}

func TestExtractErrorLines_FallsBackToTail(t *testing.T) {
	out := strings.Repeat("x", 400)
	got := extractErrorLines(out)
	assert.Len(t, got, 300)
	assert.Equal(t, strings.Repeat("x", 300), got)

	short := "no markers here"
	assert.Equal(t, short, extractErrorLines(short))
}
