package parsing

import (
	"regexp"
	"strings"

	"github.com/raviX007/resume-tailor/internal/latex"
	"github.com/raviX007/resume-tailor/internal/types"
)

var subMarkerRe = regexp.MustCompile(`^% (SKILL_CAT|EXP|PROJECT):(\S+)`)

// skillValuesRe captures the comma-separated skill list of a \skillline.
var skillValuesRe = regexp.MustCompile(`\\skillline\{[^}]*\}\{([^}]*)\}`)

// Parse reads a marker-delimited resume back into structured sections.
// Regions whose markers are missing come back empty; content inside a region
// that precedes the first sub-marker is discarded.
func Parse(marked string) *types.ResumeSections {
	sections := types.NewResumeSections()

	sections.Summary = strings.TrimSpace(
		latex.ExtractBetweenMarkers(marked, latex.SummaryStart, latex.SummaryEnd))

	parseSubBlocks(
		latex.ExtractBetweenMarkers(marked, latex.SkillsStart, latex.SkillsEnd),
		latex.SkillCatPrefix, sections.Skills)
	parseSubBlocks(
		latex.ExtractBetweenMarkers(marked, latex.ExperienceStart, latex.ExperienceEnd),
		latex.ExpPrefix, sections.Experience)
	parseSubBlocks(
		latex.ExtractBetweenMarkers(marked, latex.ProjectsStart, latex.ProjectsEnd),
		latex.ProjectPrefix, sections.Projects)

	return sections
}

// parseSubBlocks splits a region body on its sub-markers and records each
// block under its key. A repeated key keeps its first position but takes the
// later content.
func parseSubBlocks(body, prefix string, dst *types.BlockMap) {
	var (
		key   string
		lines []string
	)
	flush := func() {
		if key != "" {
			dst.Set(key, strings.Join(lines, "\n"))
		}
		lines = lines[:0]
	}

	for _, line := range bodyLines(body) {
		m := subMarkerRe.FindStringSubmatch(strings.TrimRight(line, " \t\r"))
		if m != nil && m[1] == prefix {
			flush()
			key = m[2]
			continue
		}
		lines = append(lines, line)
	}
	flush()
}

// bodyLines splits a region body into lines, treating a final newline as a
// terminator rather than as the start of an empty trailing line.
func bodyLines(body string) []string {
	if body == "" {
		return nil
	}
	body = strings.TrimSuffix(body, "\n")
	return strings.Split(body, "\n")
}

// SkillsOnResume flattens the parsed skills blocks into a category -> skill
// list map, splitting each \skillline's value list on commas.
func SkillsOnResume(sections *types.ResumeSections) map[string][]string {
	skills := make(map[string][]string)
	if sections == nil || sections.Skills == nil {
		return skills
	}

	for _, key := range sections.Skills.Keys() {
		block, _ := sections.Skills.Get(key)
		for _, m := range skillValuesRe.FindAllStringSubmatch(block, -1) {
			for _, item := range strings.Split(m[1], ",") {
				if item = strings.TrimSpace(item); item != "" {
					skills[key] = append(skills[key], item)
				}
			}
		}
	}
	return skills
}
