// Package latex provides the comment-marker primitives and text escaping
// used to carve a .tex resume into rewritable regions.
//
// Markers are single-line LaTeX comments:
//
//	% SUMMARY_START / % SUMMARY_END
//	% SKILLS_START / % SKILLS_END         (sub: % SKILL_CAT:<key>)
//	% EXPERIENCE_START / % EXPERIENCE_END (sub: % EXP:<key>)
//	% PROJECTS_START / % PROJECTS_END     (sub: % PROJECT:<key>)
//
// A marker must start at column 0 and be the sole content of its line;
// trailing whitespace is tolerated.
package latex

import (
	"log"
	"strings"
)

// Region marker lines. These must stay bit-exact: documents marked by one
// version of the tool are parsed by another.
const (
	SummaryStart    = "% SUMMARY_START"
	SummaryEnd      = "% SUMMARY_END"
	SkillsStart     = "% SKILLS_START"
	SkillsEnd       = "% SKILLS_END"
	ExperienceStart = "% EXPERIENCE_START"
	ExperienceEnd   = "% EXPERIENCE_END"
	ProjectsStart   = "% PROJECTS_START"
	ProjectsEnd     = "% PROJECTS_END"
)

// Sub-marker prefixes for named blocks within a region.
const (
	SkillCatPrefix = "SKILL_CAT"
	ExpPrefix      = "EXP"
	ProjectPrefix  = "PROJECT"
)

// SubMarker builds a sub-block marker line, e.g. "% SKILL_CAT:backend".
func SubMarker(prefix, key string) string {
	return "% " + prefix + ":" + key
}

// markerSpan scans doc line by line for the first line equal to start
// (ignoring trailing whitespace) followed by the first subsequent line equal
// to end. It returns the byte range of the interior: from just after the
// start line's newline to the beginning of the end marker line.
func markerSpan(doc, start, end string) (lo, hi int, ok bool) {
	offset := 0
	interiorStart := -1
	for offset <= len(doc) {
		lineEnd := strings.IndexByte(doc[offset:], '\n')
		var line string
		next := len(doc)
		if lineEnd >= 0 {
			line = doc[offset : offset+lineEnd]
			next = offset + lineEnd + 1
		} else {
			line = doc[offset:]
		}

		trimmed := strings.TrimRight(line, " \t\r")
		if interiorStart < 0 {
			if trimmed == start {
				if lineEnd < 0 {
					// Start marker on the final line with no newline:
					// there is no interior to match.
					return 0, 0, false
				}
				interiorStart = next
			}
		} else if trimmed == end {
			return interiorStart, offset, true
		}

		if lineEnd < 0 {
			break
		}
		offset = next
	}
	return 0, 0, false
}

// ExtractBetweenMarkers returns the text strictly between the first
// occurrence of the start/end marker pair, exclusive of the marker lines
// themselves (the trailing newline of the last interior line is kept).
// Returns "" with a logged warning when the pair is not found.
func ExtractBetweenMarkers(doc, start, end string) string {
	lo, hi, ok := markerSpan(doc, start, end)
	if !ok {
		log.Printf("[latex] markers not found: %s ... %s", start, end)
		return ""
	}
	return doc[lo:hi]
}

// ReplaceBetweenMarkers substitutes the interior of the first start/end
// marker pair with content, re-emitting the marker lines verbatim. A
// document without the marker pair is returned unchanged: some resumes
// legitimately lack a section, so absence is a no-op rather than an error.
func ReplaceBetweenMarkers(doc, start, end, content string) string {
	lo, hi, ok := markerSpan(doc, start, end)
	if !ok {
		log.Printf("[latex] replace skipped, markers not found: %s", start)
		return doc
	}
	return doc[:lo] + content + "\n" + doc[hi:]
}
