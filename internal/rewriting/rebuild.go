package rewriting

import (
	"strings"

	"github.com/raviX007/resume-tailor/internal/latex"
	"github.com/raviX007/resume-tailor/internal/types"
)

// rebuildSkills re-emits every skill category in ranked order, each behind
// its % SKILL_CAT marker, with injectable keywords folded into the
// category's skill line.
func rebuildSkills(plan *types.ReorderPlan, match *types.MatchResult, sections *types.ResumeSections) string {
	var parts []string
	for _, cat := range plan.SkillsCategoryOrder {
		content, ok := sections.Skills.Get(cat)
		if !ok {
			continue
		}
		content = strings.TrimSpace(content)
		if match != nil && len(match.Injectable[cat]) > 0 {
			content = injectIntoSkillLine(content, match.Injectable[cat])
		}
		parts = append(parts, latex.SubMarker(latex.SkillCatPrefix, cat)+"\n"+content)
	}
	return strings.Join(parts, "\n")
}

// rebuildProjects re-emits every project in ranked order behind its
// % PROJECT marker, with a blank line between consecutive projects.
func rebuildProjects(plan *types.ReorderPlan, sections *types.ResumeSections) string {
	var parts []string
	for _, key := range plan.ProjectOrder {
		content, ok := sections.Projects.Get(key)
		if !ok {
			continue
		}
		parts = append(parts, latex.SubMarker(latex.ProjectPrefix, key)+"\n"+strings.TrimSpace(content))
	}
	return strings.Join(parts, "\n\n")
}

// rewriteSummary replaces the summary's opening sentence with the tailored
// line, keeping everything from the old third sentence onward.
func rewriteSummary(firstLine, oldSummary string) string {
	rewritten := latex.Escape(firstLine)
	sentences := strings.Split(oldSummary, ". ")
	if len(sentences) > 2 {
		rewritten += " " + strings.Join(sentences[2:], ". ")
	}
	return rewritten
}
