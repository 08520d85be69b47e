// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/raviX007/resume-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtractedKeywords outputs the categorized JD keywords.
func (p *Printer) PrintExtractedKeywords(extracted *types.ExtractedKeywords) {
	if extracted == nil {
		return
	}

	var sb strings.Builder
	if extracted.RoleTitle != "" {
		sb.WriteString(fmt.Sprintf("Role:       %s\n", extracted.RoleTitle))
	}
	if extracted.ExperienceLevel != "" {
		sb.WriteString(fmt.Sprintf("Experience: %s\n", extracted.ExperienceLevel))
	}
	sb.WriteString("\n")

	byCategory := extracted.ByCategory()
	for _, cat := range types.MatchCategories {
		items := byCategory[cat]
		if len(items) == 0 {
			continue
		}
		shown := items
		if len(shown) > maxItemsToShow {
			shown = shown[:maxItemsToShow]
		}
		sb.WriteString(fmt.Sprintf("%s: %s", cat, strings.Join(shown, ", ")))
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" ... and %d more", len(items)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	p.printBox("EXTRACTED JD KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResult outputs the match score and per-category overlap.
func (p *Printer) PrintMatchResult(match *types.MatchResult) {
	if match == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:    %d%% (%d/%d keywords)\n",
		match.MatchScore, match.TotalMatched, match.TotalJDKeywords))
	sb.WriteString(fmt.Sprintf("Dominant: %s\n\n", match.DominantCategory))

	for _, cat := range types.MatchCategories {
		matched := match.Matched[cat]
		missing := match.MissingFromResume[cat]
		if len(matched) == 0 && len(missing) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: %d matched, %d missing\n", cat, len(matched), len(missing)))
	}

	injectable := 0
	for _, items := range match.Injectable {
		injectable += len(items)
	}
	if injectable > 0 {
		sb.WriteString(fmt.Sprintf("\nInjectable skills: %d\n", injectable))
	}

	p.printBox("SKILL MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReorderPlan outputs the computed section ordering and summary line.
func (p *Printer) PrintReorderPlan(plan *types.ReorderPlan) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	if len(plan.SkillsCategoryOrder) > 0 {
		sb.WriteString(fmt.Sprintf("Skill order:   %s\n", strings.Join(plan.SkillsCategoryOrder, " > ")))
	}
	if len(plan.ProjectOrder) > 0 {
		sb.WriteString(fmt.Sprintf("Project order: %s\n", strings.Join(plan.ProjectOrder, " > ")))
	}
	if plan.SummaryFirstLine != "" {
		sb.WriteString(fmt.Sprintf("Summary:       %s\n", plan.SummaryFirstLine))
	}
	if len(plan.ExperienceEmphasis) > 0 {
		sb.WriteString(fmt.Sprintf("Emphasis:      %d entries\n", len(plan.ExperienceEmphasis)))
	}

	p.printBox("REORDER PLAN", strings.TrimSuffix(sb.String(), "\n"))
}
