package rewriting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raviX007/resume-tailor/internal/parsing"
	"github.com/raviX007/resume-tailor/internal/types"
)

const markedResume = `\documentclass{article}
\begin{document}
% SUMMARY_START
Seasoned engineer. Ten years of experience. Loves distributed systems.
% SUMMARY_END

% SKILLS_START
% SKILL_CAT:languages
\skillline{Languages}{Python, Java}
% SKILL_CAT:backend
\skillline{Backend}{Django}
% SKILLS_END

% PROJECTS_START
% PROJECT:chat_app
\projectentry{Chat App | Go}
Built a chat app.

% PROJECT:dashboard
\projectentry{Dashboard | React}
Built a dashboard.
% PROJECTS_END
\end{document}
`

func identityPlan(sections *types.ResumeSections) *types.ReorderPlan {
	return &types.ReorderPlan{
		SkillsCategoryOrder: sections.Skills.Keys(),
		ProjectOrder:        sections.Projects.Keys(),
		ExperienceEmphasis:  map[string][]string{},
	}
}

func TestInject_IdentityPlanIsNoOp(t *testing.T) {
	sections := parsing.Parse(markedResume)

	doc, diff, err := Inject(identityPlan(sections), &types.MatchResult{}, markedResume, sections)
	require.NoError(t, err)
	assert.Equal(t, markedResume, doc)
	assert.Equal(t, "", diff)
}

func TestInject_KeywordDeduplication(t *testing.T) {
	sections := parsing.Parse(markedResume)
	match := &types.MatchResult{
		Injectable: map[string][]string{
			"languages": {"Rust", "Python"},
		},
	}

	doc, _, err := Inject(identityPlan(sections), match, markedResume, sections)
	require.NoError(t, err)

	assert.Contains(t, doc, `\skillline{Languages}{Python, Java, Rust}`)
	assert.Equal(t, 1, strings.Count(doc, "Rust"))
	assert.Equal(t, 1, strings.Count(doc, "Python"))
}

func TestInject_TwoNewKeywordsAppendedOnce(t *testing.T) {
	sections := parsing.Parse(markedResume)
	match := &types.MatchResult{
		Injectable: map[string][]string{
			"backend": {"FastAPI", "Flask"},
		},
	}

	doc, _, err := Inject(identityPlan(sections), match, markedResume, sections)
	require.NoError(t, err)

	assert.Contains(t, doc, `\skillline{Backend}{Django, FastAPI, Flask}`)
	assert.Equal(t, 1, strings.Count(doc, "FastAPI"))
	assert.Equal(t, 1, strings.Count(doc, "Flask"))
}

func TestInject_EscapesNewKeywords(t *testing.T) {
	sections := parsing.Parse(markedResume)
	match := &types.MatchResult{
		Injectable: map[string][]string{
			"backend": {"C#", "CI_CD"},
		},
	}

	doc, _, err := Inject(identityPlan(sections), match, markedResume, sections)
	require.NoError(t, err)
	assert.Contains(t, doc, `C\#`)
	assert.Contains(t, doc, `CI\_CD`)
}

func TestInject_ReordersProjects(t *testing.T) {
	sections := parsing.Parse(markedResume)
	plan := identityPlan(sections)
	plan.ProjectOrder = []string{"dashboard", "chat_app"}

	doc, _, err := Inject(plan, &types.MatchResult{}, markedResume, sections)
	require.NoError(t, err)

	dash := strings.Index(doc, "% PROJECT:dashboard")
	chat := strings.Index(doc, "% PROJECT:chat_app")
	require.NotEqual(t, -1, dash)
	require.NotEqual(t, -1, chat)
	assert.Less(t, dash, chat)
	// A blank line separates consecutive projects.
	assert.Contains(t, doc, "Built a dashboard.\n\n% PROJECT:chat_app")
}

func TestInject_SummaryRewriteKeepsRemainder(t *testing.T) {
	sections := parsing.Parse(markedResume)
	plan := identityPlan(sections)
	plan.SummaryFirstLine = "Backend Developer with hands-on expertise in Django."

	doc, _, err := Inject(plan, &types.MatchResult{}, markedResume, sections)
	require.NoError(t, err)

	assert.Contains(t, doc,
		"% SUMMARY_START\nBackend Developer with hands-on expertise in Django. Loves distributed systems.\n% SUMMARY_END")
	assert.NotContains(t, doc, "Seasoned engineer.")
}

func TestInject_SummaryRewriteSingleSentence(t *testing.T) {
	marked := "% SUMMARY_START\nJust one sentence here.\n% SUMMARY_END\n"
	sections := parsing.Parse(marked)
	plan := &types.ReorderPlan{SummaryFirstLine: "Software Developer."}

	doc, _, err := Inject(plan, &types.MatchResult{}, marked, sections)
	require.NoError(t, err)
	assert.Equal(t, "% SUMMARY_START\nSoftware Developer.\n% SUMMARY_END\n", doc)
}

func TestInject_DiffLabels(t *testing.T) {
	sections := parsing.Parse(markedResume)
	plan := identityPlan(sections)
	plan.SummaryFirstLine = "Software Developer."

	_, diff, err := Inject(plan, &types.MatchResult{}, markedResume, sections)
	require.NoError(t, err)
	assert.Contains(t, diff, "--- resume_base.tex")
	assert.Contains(t, diff, "+++ resume_tailored.tex")
}

func TestInject_SkipsAbsentRegions(t *testing.T) {
	doc := "plain document, no markers\n"
	sections := parsing.Parse(doc)
	plan := &types.ReorderPlan{SummaryFirstLine: "Software Developer."}

	out, diff, err := Inject(plan, &types.MatchResult{}, doc, sections)
	require.NoError(t, err)
	assert.Equal(t, doc, out)
	assert.Equal(t, "", diff)
}

func TestInjectIntoSkillLine_UnparseableContent(t *testing.T) {
	content := "just prose, no skill line"
	assert.Equal(t, content, injectIntoSkillLine(content, []string{"Go"}))
}
