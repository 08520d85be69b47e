package parsing

import "strings"

// categoryAliases maps common skill-category labels to canonical keys.
// Labels are matched lowercased and trimmed.
var categoryAliases = map[string]string{
	"ai / llm":       "ai_llm",
	"ai/llm":         "ai_llm",
	"ai / ml":        "ai_llm",
	"devops & tools": "devops",
	"tools":          "devops",
	"devops & cloud": "devops",
	"soft skills":    "soft_skills",
}

// canonicalCategories are passed through unchanged.
var canonicalCategories = map[string]bool{
	"languages":   true,
	"backend":     true,
	"frontend":    true,
	"databases":   true,
	"devops":      true,
	"ai_llm":      true,
	"soft_skills": true,
	"domains":     true,
}

// NormalizeCategory maps a skill-category label to its canonical key,
// falling back to a slug of the label for unrecognized categories.
// Normalization is idempotent: a canonical key normalizes to itself.
func NormalizeCategory(label string) string {
	lower := strings.ToLower(strings.TrimSpace(label))
	if canonical, ok := categoryAliases[lower]; ok {
		return canonical
	}
	if canonicalCategories[lower] {
		return lower
	}
	return slugify(lower)
}

// slugify reduces text to a lowercase token: runs of non-alphanumeric
// characters collapse into single underscores, with no leading or trailing
// underscore.
func slugify(text string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}
	return b.String()
}

// EntrySlug derives a sub-block key from an experience or project entry
// title: the text before the first "|" separator, lowercased, with words
// stripped of non-alphanumerics and joined by underscores. Two entries with
// the same title prefix collide; the last one wins during marker insertion.
func EntrySlug(title string) string {
	prefix := title
	if idx := strings.Index(title, "|"); idx >= 0 {
		prefix = title[:idx]
	}

	var words []string
	for _, field := range strings.Fields(prefix) {
		var w strings.Builder
		for _, r := range strings.ToLower(field) {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				w.WriteRune(r)
			}
		}
		if w.Len() > 0 {
			words = append(words, w.String())
		}
	}
	return strings.Join(words, "_")
}
