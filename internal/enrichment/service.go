// Package enrichment wraps the three model-backed steps of the pipeline:
// resume analysis, job-description keyword extraction, and skill matching.
// Responses are schema-validated before the pipeline consumes them.
package enrichment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/raviX007/resume-tailor/internal/llm"
	"github.com/raviX007/resume-tailor/internal/prompts"
	"github.com/raviX007/resume-tailor/internal/schemas"
	"github.com/raviX007/resume-tailor/internal/types"
)

const (
	promptFile = "tailor.json"

	// Long documents are truncated before prompting to bound token usage.
	texTruncateLength = 15000
	jdTruncateLength  = 4000

	analysisCacheSize = 20
)

// Service runs the enrichment calls against an llm.Client.
type Service struct {
	client llm.Client
	cache  *analysisCache
}

// NewService wraps a model client with prompt plumbing and the analysis cache.
func NewService(client llm.Client) *Service {
	return &Service{
		client: client,
		cache:  newAnalysisCache(analysisCacheSize),
	}
}

// AnalyzeResume extracts the candidate's full skill set, the sections
// present, and the person's name from a raw .tex resume. Results are cached
// by content hash.
func (s *Service) AnalyzeResume(ctx context.Context, texContent string) (*types.ResumeAnalysis, error) {
	hash := contentHash(texContent)
	if analysis, ok := s.cache.get(hash); ok {
		log.Printf("[enrichment] resume analysis cache hit (hash=%s...)", hash[:8])
		return analysis, nil
	}

	raw, err := s.generateJSON(ctx, "analyze", map[string]string{
		"TexContent": truncate(texContent, texTruncateLength),
	}, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("resume analysis: %w", err)
	}

	if err := schemas.Validate(schemas.ResumeAnalysis, []byte(raw)); err != nil {
		return nil, fmt.Errorf("resume analysis response invalid: %w", err)
	}

	var analysis types.ResumeAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("resume analysis response unparseable: %w", err)
	}

	s.cache.put(hash, &analysis)
	log.Printf("[enrichment] resume analyzed: sections=%v name=%q", analysis.SectionsFound, analysis.PersonName)
	return &analysis, nil
}

// ExtractKeywords pulls categorized technical keywords, the role title, and
// the experience level out of a job description.
func (s *Service) ExtractKeywords(ctx context.Context, jdText, jobTitle string) (*types.ExtractedKeywords, error) {
	raw, err := s.generateJSON(ctx, "extract", map[string]string{
		"JDText":   truncate(jdText, jdTruncateLength),
		"JobTitle": jobTitle,
	}, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("keyword extraction: %w", err)
	}

	if err := schemas.Validate(schemas.ExtractedKeywords, []byte(raw)); err != nil {
		return nil, fmt.Errorf("keyword extraction response invalid: %w", err)
	}

	var extracted types.ExtractedKeywords
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		return nil, fmt.Errorf("keyword extraction response unparseable: %w", err)
	}
	return &extracted, nil
}

// matchResponse is the model's portion of a MatchResult; the scores are
// computed locally.
type matchResponse struct {
	Matched           map[string][]string `json:"matched"`
	MissingFromResume map[string][]string `json:"missing_from_resume"`
	Injectable        map[string][]string `json:"injectable"`
}

// MatchKeywords compares the JD keywords against the candidate's skills and
// computes the overall match score and dominant category.
func (s *Service) MatchKeywords(ctx context.Context, extracted *types.ExtractedKeywords, masterSkills, skillsOnResume map[string][]string, userInstructions string) (*types.MatchResult, error) {
	jdKeywords := extracted.ByCategory()

	onResume := "Same as resume_skills"
	if len(skillsOnResume) > 0 {
		onResume = formatSkills(skillsOnResume)
	}
	instructions := "No special instructions."
	if strings.TrimSpace(userInstructions) != "" {
		instructions = userInstructions
	}

	raw, err := s.generateJSON(ctx, "match", map[string]string{
		"JDKeywords":       formatSkills(jdKeywords),
		"ResumeSkills":     formatSkills(masterSkills),
		"SkillsOnResume":   onResume,
		"UserInstructions": instructions,
	}, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("keyword matching: %w", err)
	}

	if err := schemas.Validate(schemas.MatchResult, []byte(raw)); err != nil {
		return nil, fmt.Errorf("keyword matching response invalid: %w", err)
	}

	var resp matchResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("keyword matching response unparseable: %w", err)
	}

	match := &types.MatchResult{
		Matched:           resp.Matched,
		MissingFromResume: resp.MissingFromResume,
		Injectable:        resp.Injectable,
	}
	scoreMatch(match, jdKeywords)

	log.Printf("[enrichment] match: %d/%d keywords (%d%%), dominant=%s",
		match.TotalMatched, match.TotalJDKeywords, match.MatchScore, match.DominantCategory)
	return match, nil
}

// scoreMatch fills in the derived fields of a match result. The dominant
// category is the first category, in declaration order, with the highest
// matched count, so ties resolve the same way every run.
func scoreMatch(match *types.MatchResult, jdKeywords map[string][]string) {
	for _, kws := range jdKeywords {
		match.TotalJDKeywords += len(kws)
	}
	for _, kws := range match.Matched {
		match.TotalMatched += len(kws)
	}

	denom := match.TotalJDKeywords
	if denom < 1 {
		denom = 1
	}
	score := match.TotalMatched * 100 / denom
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	match.MatchScore = score

	match.DominantCategory = types.MatchCategories[0]
	best := -1
	for _, cat := range types.MatchCategories {
		if n := len(match.Matched[cat]); n > best {
			best = n
			match.DominantCategory = cat
		}
	}
}

func (s *Service) generateJSON(ctx context.Context, step string, vars map[string]string, tier llm.ModelTier) (string, error) {
	system, err := prompts.Get(promptFile, step+"_system")
	if err != nil {
		return "", err
	}
	user, err := prompts.Get(promptFile, step+"_user")
	if err != nil {
		return "", err
	}

	prompt := system + "\n\n" + prompts.Format(user, vars)
	return s.client.GenerateJSON(ctx, prompt, tier)
}

// formatSkills renders a skills map as indented "category: a, b, c" lines,
// walking categories in their fixed order so prompts are reproducible.
func formatSkills(skills map[string][]string) string {
	var lines []string
	for _, cat := range types.MatchCategories {
		if items := skills[cat]; len(items) > 0 {
			lines = append(lines, fmt.Sprintf("  %s: %s", cat, strings.Join(items, ", ")))
		}
	}
	if len(lines) == 0 {
		return "  (none)"
	}
	return strings.Join(lines, "\n")
}

func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max]
}
