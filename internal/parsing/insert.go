// Package parsing turns a raw .tex resume into marker-delimited regions and
// back out of them into structured sections.
package parsing

import (
	"log"
	"regexp"
	"strings"

	"github.com/raviX007/resume-tailor/internal/latex"
)

// regionKind identifies the four recognized resume regions.
type regionKind int

const (
	regionSummary regionKind = iota
	regionSkills
	regionExperience
	regionProjects
)

// headingRegions maps section heading titles (lowercased, trimmed) to the
// region they open. Headings absent from this table are left untouched.
var headingRegions = map[string]regionKind{
	"summary":                 regionSummary,
	"professional summary":    regionSummary,
	"objective":               regionSummary,
	"skills":                  regionSkills,
	"technical skills":        regionSkills,
	"experience":              regionExperience,
	"work experience":         regionExperience,
	"professional experience": regionExperience,
	"projects":                regionProjects,
	"personal projects":       regionProjects,
	"key projects":            regionProjects,
}

var (
	sectionRe    = regexp.MustCompile(`^\\section\*?\{([^}]*)\}`)
	skillLineRe  = regexp.MustCompile(`^\\skillline\{([^}]*)\}`)
	expEntryRe   = regexp.MustCompile(`^\\experienceentry\{([^}]*)\}`)
	projEntryRe  = regexp.MustCompile(`^\\projectentry\{([^}]*)\}`)
	endDocMarker = `\end{document}`
)

// heading records a sectioning command found during the scan.
type heading struct {
	kind       regionKind
	recognized bool
	lineStart  int // byte offset of the heading line
	bodyStart  int // byte offset just after the heading line's newline
}

// InsertMarkers scans a raw resume for recognized section headings and wraps
// each heading's body with region markers, emitting sub-block markers in
// front of skill lines and experience/project entries. Every byte outside
// the inserted marker lines is preserved; a document without recognized
// headings is returned unchanged.
func InsertMarkers(raw string) string {
	headings, endDoc := scanHeadings(raw)

	recognized := 0
	for _, h := range headings {
		if h.recognized {
			recognized++
		}
	}
	if recognized == 0 {
		log.Printf("[parsing] no recognized section headings, document left unmarked")
		return raw
	}

	// Insert in reverse document order so earlier offsets stay valid.
	marked := raw
	for i := len(headings) - 1; i >= 0; i-- {
		h := headings[i]
		if !h.recognized {
			continue
		}

		bodyEnd := len(raw)
		if i+1 < len(headings) {
			bodyEnd = headings[i+1].lineStart
		} else if endDoc >= h.bodyStart {
			bodyEnd = endDoc
		}

		body := marked[h.bodyStart:bodyEnd]
		marked = marked[:h.bodyStart] + wrapRegion(h.kind, body) + marked[bodyEnd:]
	}

	return marked
}

// scanHeadings collects every sectioning command in document order, plus the
// offset of the \end{document} line (len(raw) when absent).
func scanHeadings(raw string) ([]heading, int) {
	var headings []heading
	endDoc := len(raw)

	offset := 0
	for offset <= len(raw) {
		lineEnd := strings.IndexByte(raw[offset:], '\n')
		var line string
		next := len(raw)
		if lineEnd >= 0 {
			line = raw[offset : offset+lineEnd]
			next = offset + lineEnd + 1
		} else {
			line = raw[offset:]
		}

		if m := sectionRe.FindStringSubmatch(line); m != nil {
			kind, ok := headingRegions[strings.ToLower(strings.TrimSpace(m[1]))]
			headings = append(headings, heading{
				kind:       kind,
				recognized: ok,
				lineStart:  offset,
				bodyStart:  next,
			})
		} else if strings.TrimRight(line, " \t\r") == endDocMarker && endDoc == len(raw) {
			endDoc = offset
		}

		if lineEnd < 0 {
			break
		}
		offset = next
	}

	return headings, endDoc
}

// wrapRegion wraps a heading's body with START/END markers, preserving the
// body's exact trailing-newline run so the boundary with surrounding content
// is unchanged.
func wrapRegion(kind regionKind, body string) string {
	core := strings.TrimRight(body, "\n")
	trail := body[len(core):]

	var start, end, content string
	switch kind {
	case regionSummary:
		start, end = latex.SummaryStart, latex.SummaryEnd
		content = strings.TrimSpace(core)
	case regionSkills:
		start, end = latex.SkillsStart, latex.SkillsEnd
		content = markSkillLines(core)
	case regionExperience:
		start, end = latex.ExperienceStart, latex.ExperienceEnd
		content = markEntries(core, expEntryRe, latex.ExpPrefix)
	case regionProjects:
		start, end = latex.ProjectsStart, latex.ProjectsEnd
		content = markEntries(core, projEntryRe, latex.ProjectPrefix)
	}

	return start + "\n" + content + "\n" + end + trail
}

// markSkillLines emits a % SKILL_CAT:<key> marker before each \skillline
// command. Blank lines are dropped; every other line passes through.
func markSkillLines(core string) string {
	var out []string
	for _, line := range strings.Split(core, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := skillLineRe.FindStringSubmatch(line); m != nil {
			out = append(out, latex.SubMarker(latex.SkillCatPrefix, NormalizeCategory(m[1])))
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// markEntries emits a sub-marker before each entry command line. All
// original lines, including blanks, are preserved.
func markEntries(core string, entryRe *regexp.Regexp, prefix string) string {
	var out []string
	for _, line := range strings.Split(core, "\n") {
		if m := entryRe.FindStringSubmatch(line); m != nil {
			out = append(out, latex.SubMarker(prefix, EntrySlug(m[1])))
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
