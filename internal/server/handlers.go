package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/raviX007/resume-tailor/internal/fetch"
	"github.com/raviX007/resume-tailor/internal/pipeline"
	"github.com/raviX007/resume-tailor/internal/types"
)

// Upload limits.
const (
	maxUploadSize = 2 * 1024 * 1024 // 2 MB
	minTexSize    = 100             // reject trivially small files
	minJDLength   = 50
)

// acceptedContentTypes are the MIME types browsers commonly attach to .tex
// uploads.
var acceptedContentTypes = map[string]bool{
	"application/x-tex":        true,
	"application/x-latex":      true,
	"text/x-tex":               true,
	"text/plain":               true,
	"application/octet-stream": true,
}

// tailorInputs are the validated multipart form fields plus the resume text.
type tailorInputs struct {
	rawTex  string
	request types.TailorRequest
}

// handleTailor runs the full pipeline and returns the result as one JSON
// document.
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	inputs, ok := s.readTailorForm(w, r)
	if !ok {
		return
	}
	log.Printf("Tailoring resume for: %s / %s",
		orUnknown(inputs.request.CompanyName), orUnknown(inputs.request.JobTitle))

	result, err := s.runner.Run(r.Context(), pipeline.Options{
		TexContent:       inputs.rawTex,
		JDText:           inputs.request.JDText,
		JobTitle:         inputs.request.JobTitle,
		CompanyName:      inputs.request.CompanyName,
		UserInstructions: inputs.request.UserInstructions,
	})
	if err != nil {
		s.pipelineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleTailorStream runs the same pipeline but streams progress as SSE
// events, finishing with a complete (or error) event.
func (s *Server) handleTailorStream(w http.ResponseWriter, r *http.Request) {
	inputs, ok := s.readTailorForm(w, r)
	if !ok {
		return
	}
	log.Printf("[stream] Tailoring resume for: %s / %s",
		orUnknown(inputs.request.CompanyName), orUnknown(inputs.request.JobTitle))

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	// r.Context() is canceled on client disconnect, which aborts in-flight
	// enrichment calls through the pipeline.
	result, err := s.runner.Run(r.Context(), pipeline.Options{
		TexContent:       inputs.rawTex,
		JDText:           inputs.request.JDText,
		JobTitle:         inputs.request.JobTitle,
		CompanyName:      inputs.request.CompanyName,
		UserInstructions: inputs.request.UserInstructions,
		Progress: func(step int, label string) {
			sse.WriteProgress(step, label)
		},
	})
	if err != nil {
		var stepErr *pipeline.StepError
		if errors.As(err, &stepErr) {
			sse.WriteError(stepErr.Detail, stepErr.Step)
		} else {
			log.Printf("Unexpected pipeline error: %v", err)
			sse.WriteError("Internal server error", "")
		}
		return
	}
	sse.WriteComplete(result)
}

// handleListRuns returns recent persisted runs.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusNotFound, "Run persistence is not configured")
		return
	}
	runs, err := s.store.ListRuns(r.Context(), 50)
	if err != nil {
		log.Printf("Failed to list runs: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs})
}

// handleGetRun returns one persisted run by ID.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusNotFound, "Run persistence is not configured")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID")
		return
	}
	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		log.Printf("Failed to get run %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get run")
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}

// readTailorForm validates the multipart upload and form fields. On failure
// it writes the error response and returns ok=false.
func (s *Server) readTailorForm(w http.ResponseWriter, r *http.Request) (*tailorInputs, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return nil, false
	}

	rawTex, ok := s.readResumeFile(w, r)
	if !ok {
		return nil, false
	}

	req := types.TailorRequest{
		JDText:           r.FormValue("jd_text"),
		JDURL:            r.FormValue("jd_url"),
		JobTitle:         r.FormValue("job_title"),
		CompanyName:      r.FormValue("company_name"),
		UserInstructions: r.FormValue("user_instructions"),
	}

	// A posting URL substitutes for pasted JD text.
	if strings.TrimSpace(req.JDText) == "" && req.JDURL != "" {
		text, err := fetch.JobDescription(r.Context(), req.JDURL)
		if err != nil {
			log.Printf("JD fetch failed: %v", err)
			s.errorResponse(w, http.StatusBadGateway, "Could not fetch job description from URL")
			return nil, false
		}
		req.JDText = text
	}

	if len(strings.TrimSpace(req.JDText)) < minJDLength {
		s.errorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Job description must be at least %d characters", minJDLength))
		return nil, false
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return nil, false
	}

	return &tailorInputs{rawTex: rawTex, request: req}, true
}

// readResumeFile validates and reads the uploaded .tex file.
func (s *Server) readResumeFile(w http.ResponseWriter, r *http.Request) (string, bool) {
	file, header, err := r.FormFile("resume_file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing resume_file upload")
		return "", false
	}
	defer func() { _ = file.Close() }()

	if header.Filename == "" || !strings.HasSuffix(header.Filename, ".tex") {
		s.errorResponse(w, http.StatusBadRequest, "Only .tex files are accepted")
		return "", false
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !acceptedContentTypes[ct] {
		s.errorResponse(w, http.StatusBadRequest, "Invalid file type — upload a .tex file")
		return "", false
	}

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload")
		return "", false
	}
	if len(raw) > maxUploadSize {
		s.errorResponse(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large (max %dMB)", maxUploadSize/(1024*1024)))
		return "", false
	}
	if !utf8.Valid(raw) {
		s.errorResponse(w, http.StatusBadRequest, "File must be UTF-8 encoded")
		return "", false
	}

	rawTex := string(raw)
	if len(strings.TrimSpace(rawTex)) < minTexSize {
		s.errorResponse(w, http.StatusBadRequest, "File appears too small to be a valid LaTeX resume")
		return "", false
	}
	return rawTex, true
}

// pipelineError maps a pipeline failure to its HTTP response.
func (s *Server) pipelineError(w http.ResponseWriter, err error) {
	var stepErr *pipeline.StepError
	if errors.As(err, &stepErr) {
		s.errorResponse(w, stepErr.Status, stepErr.Detail)
		return
	}
	log.Printf("Unexpected pipeline error: %v", err)
	s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
