package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raviX007/resume-tailor/internal/types"
)

func sectionsWithSkills(categories ...string) *types.ResumeSections {
	sections := types.NewResumeSections()
	for _, cat := range categories {
		sections.Skills.Set(cat, "\\skillline{"+cat+"}{...}")
	}
	return sections
}

func TestComputeReorderPlan_SkillOrder(t *testing.T) {
	sections := sectionsWithSkills("backend", "languages", "frontend")
	match := &types.MatchResult{
		Matched: map[string][]string{
			"backend":   {"Django", "FastAPI", "Flask"},
			"languages": {"Python"},
		},
	}

	plan := ComputeReorderPlan(nil, match, sections)
	assert.Equal(t, []string{"backend", "languages", "frontend"}, plan.SkillsCategoryOrder)
}

func TestComputeReorderPlan_SkillOrderIsPermutation(t *testing.T) {
	sections := sectionsWithSkills("frontend", "devops", "languages", "backend")
	match := &types.MatchResult{
		Matched: map[string][]string{
			"backend": {"Gin"},
			"devops":  {"Docker", "Kubernetes"},
			// "databases" matched but not on the resume; must not appear.
			"databases": {"PostgreSQL"},
		},
	}

	plan := ComputeReorderPlan(nil, match, sections)
	assert.ElementsMatch(t, []string{"frontend", "devops", "languages", "backend"}, plan.SkillsCategoryOrder)
	assert.Equal(t, "devops", plan.SkillsCategoryOrder[0])
	assert.Equal(t, "backend", plan.SkillsCategoryOrder[1])
	// Zero-match categories keep their document order.
	assert.Equal(t, []string{"frontend", "languages"}, plan.SkillsCategoryOrder[2:])
}

func TestComputeReorderPlan_ProjectOrder(t *testing.T) {
	sections := types.NewResumeSections()
	sections.Projects.Set("notes_app", "A note-taking CLI in Rust.")
	sections.Projects.Set("chat_app", "Realtime chat with Django and Redis on Kubernetes.")

	match := &types.MatchResult{
		Matched: map[string][]string{
			"backend":   {"Django"},
			"databases": {"Redis"},
			"devops":    {"Kubernetes"},
		},
	}

	plan := ComputeReorderPlan(nil, match, sections)
	assert.Equal(t, []string{"chat_app", "notes_app"}, plan.ProjectOrder)
}

func TestComputeReorderPlan_ProjectOrderStableOnTies(t *testing.T) {
	sections := types.NewResumeSections()
	sections.Projects.Set("alpha", "Nothing relevant.")
	sections.Projects.Set("beta", "Also nothing relevant.")

	plan := ComputeReorderPlan(nil, &types.MatchResult{}, sections)
	assert.Equal(t, []string{"alpha", "beta"}, plan.ProjectOrder)
}

func TestComputeReorderPlan_SummaryFirstLine(t *testing.T) {
	sections := sectionsWithSkills("backend", "languages")
	match := &types.MatchResult{
		Matched: map[string][]string{
			"backend":   {"Django", "FastAPI", "Flask"},
			"languages": {"Python", "Go"},
		},
		DominantCategory: "backend",
	}

	plan := ComputeReorderPlan(nil, match, sections)
	assert.Equal(t, "Backend Developer with hands-on expertise in Django, FastAPI, Python.", plan.SummaryFirstLine)
}

func TestComputeReorderPlan_SummaryUsesExtractedRoleTitle(t *testing.T) {
	sections := sectionsWithSkills("ai_llm")
	match := &types.MatchResult{
		Matched:          map[string][]string{"ai_llm": {"LangChain"}},
		DominantCategory: "ai_llm",
	}
	extracted := &types.ExtractedKeywords{RoleTitle: "Staff ML Engineer"}

	plan := ComputeReorderPlan(extracted, match, sections)
	assert.Equal(t, "Staff ML Engineer with hands-on expertise in LangChain.", plan.SummaryFirstLine)
}

func TestComputeReorderPlan_SummaryNoMatches(t *testing.T) {
	sections := sectionsWithSkills("languages")
	match := &types.MatchResult{DominantCategory: "devops"}

	plan := ComputeReorderPlan(nil, match, sections)
	assert.Equal(t, "DevOps Engineer.", plan.SummaryFirstLine)
}

func TestComputeReorderPlan_ExperienceEmphasis(t *testing.T) {
	sections := types.NewResumeSections()
	sections.Experience.Set("acme", "Built Django services with PostgreSQL, Redis, Docker, Kubernetes and Terraform.")
	sections.Experience.Set("globex", "Wrote documentation.")

	match := &types.MatchResult{
		Matched: map[string][]string{
			"backend":   {"Django"},
			"databases": {"PostgreSQL", "Redis"},
			"devops":    {"Docker", "Kubernetes", "Terraform"},
		},
	}

	plan := ComputeReorderPlan(nil, match, sections)
	require.Contains(t, plan.ExperienceEmphasis, "acme")
	// Six keywords match the entry text; the list caps at five.
	assert.Len(t, plan.ExperienceEmphasis["acme"], 5)
	assert.NotContains(t, plan.ExperienceEmphasis, "globex")
}

func TestComputeReorderPlan_EmptySections(t *testing.T) {
	plan := ComputeReorderPlan(nil, &types.MatchResult{}, types.NewResumeSections())

	assert.Empty(t, plan.SkillsCategoryOrder)
	assert.Empty(t, plan.ProjectOrder)
	assert.Empty(t, plan.ExperienceEmphasis)
}

func TestComputeReorderPlan_NilInputs(t *testing.T) {
	plan := ComputeReorderPlan(nil, nil, nil)

	assert.NotNil(t, plan)
	assert.Empty(t, plan.SkillsCategoryOrder)
	assert.Empty(t, plan.ProjectOrder)
}

func TestComputeReorderPlan_Deterministic(t *testing.T) {
	sections := types.NewResumeSections()
	sections.Skills.Set("languages", "\\skillline{Languages}{Python, Go}")
	sections.Skills.Set("backend", "\\skillline{Backend}{Django}")
	sections.Projects.Set("p1", "Python and Django project.")
	sections.Projects.Set("p2", "Go service.")
	sections.Experience.Set("e1", "Python, Go, Django everywhere.")

	match := &types.MatchResult{
		Matched: map[string][]string{
			"languages": {"Python", "Go"},
			"backend":   {"Django"},
		},
		DominantCategory: "languages",
	}

	first := ComputeReorderPlan(nil, match, sections)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, ComputeReorderPlan(nil, match, sections))
	}
}
