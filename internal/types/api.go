package types

import "github.com/go-playground/validator/v10"

// TailorRequest carries the user-supplied inputs for a tailoring run. The
// resume .tex content arrives separately as a file upload.
type TailorRequest struct {
	JDText           string `json:"jd_text" validate:"required,min=50"`
	JDURL            string `json:"jd_url,omitempty" validate:"omitempty,url"`
	JobTitle         string `json:"job_title,omitempty"`
	CompanyName      string `json:"company_name,omitempty"`
	UserInstructions string `json:"user_instructions,omitempty"`
}

var validate = validator.New()

// Validate checks the request against its field constraints.
func (r *TailorRequest) Validate() error {
	return validate.Struct(r)
}

// TailorResponse is the full result of a tailoring run.
type TailorResponse struct {
	Extracted        *ExtractedKeywords `json:"extracted"`
	Match            *MatchResult       `json:"match"`
	ReorderPlan      *ReorderPlan       `json:"reorder_plan"`
	PDFURL           string             `json:"pdf_url"`
	PDFB64           string             `json:"pdf_b64,omitempty"`
	PDFError         string             `json:"pdf_error,omitempty"`
	TexContent       string             `json:"tex_content"`
	TexDiff          string             `json:"tex_diff"`
	Filename         string             `json:"filename,omitempty"`
	ProcessingTimeMS int64              `json:"processing_time_ms"`
}
