// Package ranking turns match results into a reorder plan: which skill
// categories and projects lead, what the summary opens with, and which
// keywords each experience entry should emphasize.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/raviX007/resume-tailor/internal/types"
)

// categoryRoleTitles maps a dominant keyword category to a generic role
// title, used when extraction did not yield one.
var categoryRoleTitles = map[string]string{
	"ai_llm":    "AI/LLM Engineer",
	"backend":   "Backend Developer",
	"frontend":  "Frontend Developer",
	"devops":    "DevOps Engineer",
	"languages": "Software Developer",
	"databases": "Software Developer",
	"domains":   "Software Developer",
}

const defaultRoleTitle = "Software Developer"

const maxEmphasisKeywords = 5

// ComputeReorderPlan derives the full reorder plan from the extracted
// keywords, the match result, and the parsed sections. It is a pure
// function: identical inputs always produce identical plans, and empty
// sections produce an empty plan rather than an error.
func ComputeReorderPlan(extracted *types.ExtractedKeywords, match *types.MatchResult, sections *types.ResumeSections) *types.ReorderPlan {
	plan := &types.ReorderPlan{
		SkillsCategoryOrder: []string{},
		ProjectOrder:        []string{},
		ExperienceEmphasis:  map[string][]string{},
	}
	if sections == nil || match == nil {
		return plan
	}

	plan.SkillsCategoryOrder = orderSkillCategories(sections, match)

	union := matchedUnion(match)
	plan.ProjectOrder = orderProjects(sections, union)
	plan.SummaryFirstLine = summaryFirstLine(extracted, match, plan.SkillsCategoryOrder)
	plan.ExperienceEmphasis = experienceEmphasis(sections, union)

	return plan
}

// orderSkillCategories sorts the categories present on the resume by how
// many JD keywords matched inside each. The sort is stable so tied
// categories keep their document order.
func orderSkillCategories(sections *types.ResumeSections, match *types.MatchResult) []string {
	order := append([]string{}, sections.Skills.Keys()...)
	sort.SliceStable(order, func(i, j int) bool {
		return len(match.Matched[order[i]]) > len(match.Matched[order[j]])
	})
	return order
}

// matchedUnion flattens the matched keywords into a single lowercased,
// de-duplicated list. Categories are walked in their fixed declaration
// order so the union is deterministic.
func matchedUnion(match *types.MatchResult) []string {
	var union []string
	seen := make(map[string]bool)
	for _, cat := range types.MatchCategories {
		for _, kw := range match.Matched[cat] {
			kw = strings.ToLower(kw)
			if !seen[kw] {
				seen[kw] = true
				union = append(union, kw)
			}
		}
	}
	return union
}

// orderProjects sorts projects by how many distinct matched keywords appear
// in each project's content, most relevant first, stable on ties.
func orderProjects(sections *types.ResumeSections, union []string) []string {
	order := append([]string{}, sections.Projects.Keys()...)

	scores := make(map[string]int, len(order))
	for _, key := range order {
		block, _ := sections.Projects.Get(key)
		block = strings.ToLower(block)
		for _, kw := range union {
			if strings.Contains(block, kw) {
				scores[key]++
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	return order
}

// summaryFirstLine builds the tailored opening sentence: a role title plus
// up to three headline skills drawn from the strongest categories.
func summaryFirstLine(extracted *types.ExtractedKeywords, match *types.MatchResult, categoryOrder []string) string {
	role := defaultRoleTitle
	if extracted != nil && strings.TrimSpace(extracted.RoleTitle) != "" {
		role = strings.TrimSpace(extracted.RoleTitle)
	} else if title, ok := categoryRoleTitles[match.DominantCategory]; ok {
		role = title
	}

	var top []string
	for c, cat := range categoryOrder {
		if c == 3 || len(top) >= 4 {
			break
		}
		matched := match.Matched[cat]
		for i := 0; i < len(matched) && i < 2 && len(top) < 4; i++ {
			top = append(top, matched[i])
		}
	}
	if len(top) > 3 {
		top = top[:3]
	}

	if len(top) == 0 {
		return fmt.Sprintf("%s.", role)
	}
	return fmt.Sprintf("%s with hands-on expertise in %s.", role, strings.Join(top, ", "))
}

// experienceEmphasis lists, per experience entry, the matched keywords that
// appear in that entry's content, capped and in union order.
func experienceEmphasis(sections *types.ResumeSections, union []string) map[string][]string {
	emphasis := make(map[string][]string)
	for _, key := range sections.Experience.Keys() {
		block, _ := sections.Experience.Get(key)
		block = strings.ToLower(block)
		var hits []string
		for _, kw := range union {
			if strings.Contains(block, kw) {
				hits = append(hits, kw)
				if len(hits) == maxEmphasisKeywords {
					break
				}
			}
		}
		if len(hits) > 0 {
			emphasis[key] = hits
		}
	}
	return emphasis
}
