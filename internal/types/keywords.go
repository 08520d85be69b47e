package types

// MatchCategories lists the seven fixed skill categories used for matching,
// in canonical order. Deterministic iteration over this slice (rather than a
// map) keeps dominant-category selection and keyword-union construction
// stable across runs.
var MatchCategories = []string{
	"languages",
	"backend",
	"frontend",
	"ai_llm",
	"databases",
	"devops",
	"domains",
}

// ExtractedKeywords is the structured output of JD keyword extraction.
type ExtractedKeywords struct {
	Languages       []string `json:"languages"`
	Backend         []string `json:"backend"`
	Frontend        []string `json:"frontend"`
	AILLM           []string `json:"ai_llm"`
	Databases       []string `json:"databases"`
	DevOps          []string `json:"devops"`
	SoftSkills      []string `json:"soft_skills"`
	Domains         []string `json:"domains"`
	RoleTitle       string   `json:"role_title"`
	ExperienceLevel string   `json:"experience_level"`
}

// ByCategory returns the JD keywords keyed by the seven match categories.
// Soft skills are extracted but deliberately excluded from matching.
func (k *ExtractedKeywords) ByCategory() map[string][]string {
	return map[string][]string{
		"languages": k.Languages,
		"backend":   k.Backend,
		"frontend":  k.Frontend,
		"ai_llm":    k.AILLM,
		"databases": k.Databases,
		"devops":    k.DevOps,
		"domains":   k.Domains,
	}
}

// MatchResult is the outcome of matching JD keywords against the candidate's
// skills. All three maps carry the seven fixed category keys.
type MatchResult struct {
	Matched           map[string][]string `json:"matched"`
	MissingFromResume map[string][]string `json:"missing_from_resume"`
	Injectable        map[string][]string `json:"injectable"`
	TotalJDKeywords   int                 `json:"total_jd_keywords"`
	TotalMatched      int                 `json:"total_matched"`
	MatchScore        int                 `json:"match_score"`
	DominantCategory  string              `json:"dominant_category"`
}

// ReorderPlan describes how the resume should be rearranged to fit a job
// description. Produced once per request by the ranker, consumed once by the
// injector.
type ReorderPlan struct {
	SkillsCategoryOrder []string            `json:"skills_category_order"`
	ProjectOrder        []string            `json:"project_order"`
	SummaryFirstLine    string              `json:"summary_first_line"`
	ExperienceEmphasis  map[string][]string `json:"experience_emphasis"`
}

// ResumeAnalysis is the structured output of the LLM resume analysis step:
// the candidate's full skill set by category, the sections identified, and
// the person's name from the resume header.
type ResumeAnalysis struct {
	Skills        map[string][]string `json:"skills"`
	SectionsFound []string            `json:"sections_found"`
	PersonName    string              `json:"person_name"`
}
