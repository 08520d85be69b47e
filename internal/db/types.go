package db

import (
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Artifact steps recorded per run.
const (
	StepExtractedKeywords = "extracted_keywords"
	StepMatchResult       = "match_result"
	StepReorderPlan       = "reorder_plan"
	StepTailoredTex       = "tailored_tex"
	StepTexDiff           = "tex_diff"
)

// Artifact categories.
const (
	CategoryJSON = "json"
	CategoryTex  = "tex"
	CategoryDiff = "diff"
)

// Run is one tailoring request's lifecycle record.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Company     string     `json:"company"`
	RoleTitle   string     `json:"role_title"`
	JDURL       string     `json:"jd_url"`
	Status      string     `json:"status"`
	MatchScore  *int       `json:"match_score,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
