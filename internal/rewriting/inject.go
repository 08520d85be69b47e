// Package rewriting applies a reorder plan to a marked resume: it rebuilds
// the skills and projects regions in ranked order, injects missing keywords
// into skill lines, rewrites the summary opener, and reports the change as
// a unified diff.
package rewriting

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/raviX007/resume-tailor/internal/latex"
	"github.com/raviX007/resume-tailor/internal/types"
)

// skillLineRe captures a \skillline command up to its value list, so new
// keywords can be appended just before the closing brace.
var skillLineRe = regexp.MustCompile(`(\\skillline\{[^}]*\}\{)([^}]*)\}`)

const (
	diffFromLabel = "resume_base.tex"
	diffToLabel   = "resume_tailored.tex"
)

// Inject applies the plan to the marked document and returns the rewritten
// document together with a unified diff against the input. Regions the
// document does not have are skipped; a plan that changes nothing yields the
// document unchanged and an empty diff.
func Inject(plan *types.ReorderPlan, match *types.MatchResult, marked string, sections *types.ResumeSections) (string, string, error) {
	doc := marked

	if sections != nil && sections.Skills.Len() > 0 && len(plan.SkillsCategoryOrder) > 0 {
		rebuilt := rebuildSkills(plan, match, sections)
		doc = latex.ReplaceBetweenMarkers(doc, latex.SkillsStart, latex.SkillsEnd, rebuilt)
	}

	if sections != nil && sections.Projects.Len() > 0 && len(plan.ProjectOrder) > 0 {
		rebuilt := rebuildProjects(plan, sections)
		doc = latex.ReplaceBetweenMarkers(doc, latex.ProjectsStart, latex.ProjectsEnd, rebuilt)
	}

	if sections != nil && plan.SummaryFirstLine != "" && sections.Summary != "" {
		rewritten := rewriteSummary(plan.SummaryFirstLine, sections.Summary)
		doc = latex.ReplaceBetweenMarkers(doc, latex.SummaryStart, latex.SummaryEnd, rewritten)
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(marked),
		B:        difflib.SplitLines(doc),
		FromFile: diffFromLabel,
		ToFile:   diffToLabel,
		Context:  3,
	})
	if err != nil {
		return doc, "", err
	}
	return doc, diff, nil
}

// injectIntoSkillLine appends the injectable keywords to the first
// \skillline value list inside content. Keywords the list already carries
// (case-insensitive) are dropped, and the survivors are LaTeX-escaped.
// Content without a parseable skill line is returned unchanged.
func injectIntoSkillLine(content string, injectable []string) string {
	m := skillLineRe.FindStringSubmatchIndex(content)
	if m == nil {
		return content
	}

	inner := content[m[4]:m[5]]
	existing := make(map[string]bool)
	for _, item := range strings.Split(inner, ",") {
		if item = strings.TrimSpace(item); item != "" {
			existing[strings.ToLower(item)] = true
		}
	}

	var fresh []string
	for _, kw := range injectable {
		if kw = strings.TrimSpace(kw); kw == "" || existing[strings.ToLower(kw)] {
			continue
		}
		existing[strings.ToLower(kw)] = true
		fresh = append(fresh, latex.Escape(kw))
	}
	if len(fresh) == 0 {
		return content
	}

	joined := strings.Join(fresh, ", ")
	var newInner string
	if strings.TrimSpace(inner) == "" {
		newInner = joined
	} else {
		newInner = strings.TrimRight(inner, " \t") + ", " + joined
	}
	return content[:m[4]] + newInner + content[m[5]:]
}
