package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raviX007/resume-tailor/internal/types"
)

func TestPrintExtractedKeywords(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtractedKeywords(&types.ExtractedKeywords{
		Languages:       []string{"Go", "Python", "Rust", "Java", "C", "Zig", "Elixir"},
		Backend:         []string{"gRPC"},
		RoleTitle:       "Backend Engineer",
		ExperienceLevel: "senior",
	})

	out := buf.String()
	assert.Contains(t, out, "EXTRACTED JD KEYWORDS")
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "languages: Go, Python, Rust, Java, C ... and 2 more")
	assert.Contains(t, out, "backend: gRPC")
}

func TestPrintExtractedKeywords_NilIsSilent(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintExtractedKeywords(nil)
	assert.Empty(t, buf.String())
}

func TestPrintMatchResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchResult(&types.MatchResult{
		Matched:           map[string][]string{"backend": {"Django"}},
		MissingFromResume: map[string][]string{"backend": {"FastAPI"}, "devops": {"Docker"}},
		Injectable:        map[string][]string{"backend": {"FastAPI"}},
		MatchScore:        50,
		TotalMatched:      1,
		TotalJDKeywords:   2,
		DominantCategory:  "backend",
	})

	out := buf.String()
	assert.Contains(t, out, "Score:    50% (1/2 keywords)")
	assert.Contains(t, out, "Dominant: backend")
	assert.Contains(t, out, "backend: 1 matched, 1 missing")
	assert.Contains(t, out, "devops: 0 matched, 1 missing")
	assert.Contains(t, out, "Injectable skills: 1")
}

func TestPrintReorderPlan(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReorderPlan(&types.ReorderPlan{
		SkillsCategoryOrder: []string{"backend", "languages"},
		ProjectOrder:        []string{"chat_app"},
		SummaryFirstLine:    "Backend Developer.",
		ExperienceEmphasis:  map[string][]string{"acme": {"Django"}},
	})

	out := buf.String()
	assert.Contains(t, out, "REORDER PLAN")
	assert.Contains(t, out, "backend > languages")
	assert.Contains(t, out, "Summary:       Backend Developer.")
	assert.Contains(t, out, "Emphasis:      1 entries")
}
