package latex

import "strings"

// Escape escapes the LaTeX special characters that can appear in keyword and
// summary text: & % $ # _ become backslash escapes, ~ and ^ are rendered via
// safe macros. Backslash and braces are left alone so content that already
// contains markup passes through untouched.
func Escape(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		switch r {
		case '&':
			result.WriteString(`\&`)
		case '%':
			result.WriteString(`\%`)
		case '$':
			result.WriteString(`\$`)
		case '#':
			result.WriteString(`\#`)
		case '_':
			result.WriteString(`\_`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
