package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `\documentclass{article}
\begin{document}
\section{Summary}
Experienced developer building things.

\section{Technical Skills}
\skillline{Languages}{Python, Java}
\skillline{Backend}{Django}

\section{Projects}
\projectentry{Chat App | Go}
Built a chat app.

\projectentry{Dashboard | React}
Built a dashboard.

\end{document}
`

func TestInsertMarkers_WrapsRecognizedSections(t *testing.T) {
	marked := InsertMarkers(sampleResume)

	assert.Contains(t, marked, "% SUMMARY_START\nExperienced developer building things.\n% SUMMARY_END")
	assert.Contains(t, marked, "% SKILL_CAT:languages\n\\skillline{Languages}{Python, Java}")
	assert.Contains(t, marked, "% SKILL_CAT:backend\n\\skillline{Backend}{Django}")
	assert.Contains(t, marked, "% PROJECT:chat_app\n\\projectentry{Chat App | Go}")
	assert.Contains(t, marked, "% PROJECT:dashboard\n\\projectentry{Dashboard | React}")

	// Nothing outside the marked regions changes.
	assert.True(t, strings.HasPrefix(marked, "\\documentclass{article}\n\\begin{document}\n"))
	assert.True(t, strings.HasSuffix(marked, "\\end{document}\n"))
}

func TestInsertMarkers_NoRecognizedHeadings(t *testing.T) {
	doc := "\\documentclass{article}\n\\begin{document}\n\\section{Education}\nBS in CS\n\\end{document}\n"
	assert.Equal(t, doc, InsertMarkers(doc))
}

func TestInsertMarkers_StarredAndAliasedHeadings(t *testing.T) {
	doc := "\\section*{Professional Summary}\nA developer.\n\n\\section*{Work Experience}\n\\experienceentry{Acme Corp | Engineer}\nDid work.\n"
	marked := InsertMarkers(doc)

	assert.Contains(t, marked, "% SUMMARY_START\nA developer.\n% SUMMARY_END")
	assert.Contains(t, marked, "% EXP:acme_corp\n\\experienceentry{Acme Corp | Engineer}")
}

func TestInsertMarkers_PreservesTrailingBlankLines(t *testing.T) {
	doc := "\\section{Summary}\nA developer.\n\n\n\\section{Skills}\n\\skillline{Languages}{Go}\n"
	marked := InsertMarkers(doc)

	// The double blank line between sections survives marker insertion.
	assert.Contains(t, marked, "% SUMMARY_END\n\n\n\\section{Skills}")
}

func TestInsertMarkers_SkillsBlankLinesDropped(t *testing.T) {
	doc := "\\section{Skills}\n\\skillline{Languages}{Go}\n\n\\skillline{Backend}{Gin}\n"
	marked := InsertMarkers(doc)

	assert.Contains(t, marked,
		"% SKILL_CAT:languages\n\\skillline{Languages}{Go}\n% SKILL_CAT:backend\n\\skillline{Backend}{Gin}")
}

func TestInsertMarkers_RoundTrip(t *testing.T) {
	marked := InsertMarkers(sampleResume)
	sections := Parse(marked)

	assert.Equal(t, "Experienced developer building things.", sections.Summary)
	assert.Equal(t, []string{"languages", "backend"}, sections.Skills.Keys())
	assert.Equal(t, []string{"chat_app", "dashboard"}, sections.Projects.Keys())

	block, ok := sections.Skills.Get("languages")
	require.True(t, ok)
	assert.Contains(t, block, "Python, Java")

	skills := SkillsOnResume(sections)
	assert.Equal(t, map[string][]string{
		"languages": {"Python", "Java"},
		"backend":   {"Django"},
	}, skills)
}
