// Package pipeline orchestrates a full tailoring run: enrichment calls,
// marker insertion, parsing, ranking, injection, and PDF compilation.
package pipeline

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/raviX007/resume-tailor/internal/compile"
	"github.com/raviX007/resume-tailor/internal/db"
	"github.com/raviX007/resume-tailor/internal/enrichment"
	"github.com/raviX007/resume-tailor/internal/parsing"
	"github.com/raviX007/resume-tailor/internal/ranking"
	"github.com/raviX007/resume-tailor/internal/rewriting"
	"github.com/raviX007/resume-tailor/internal/types"
)

// StepLabels are the progress labels emitted per pipeline stage, in order.
var StepLabels = []string{
	"Analyzing resume...",
	"Extracting keywords...",
	"Matching skills...",
	"Computing reorder plan...",
	"Injecting into LaTeX...",
	"Compiling PDF...",
}

// Progress is invoked as each stage starts. Implementations must be fast;
// the SSE handler uses it to stream step events.
type Progress func(step int, label string)

// Options are the inputs for one run.
type Options struct {
	TexContent       string
	JDText           string
	JobTitle         string
	CompanyName      string
	UserInstructions string
	Progress         Progress
}

// Runner wires the enrichment service, the optional compiler, and the
// optional artifact store into a reusable pipeline.
type Runner struct {
	enrich   *enrichment.Service
	compiler *compile.Compiler
	store    *db.DB
}

// NewRunner builds a Runner. compiler and store may be nil; a nil compiler
// skips PDF generation and a nil store skips artifact persistence.
func NewRunner(enrich *enrichment.Service, compiler *compile.Compiler, store *db.DB) *Runner {
	return &Runner{enrich: enrich, compiler: compiler, store: store}
}

// Run executes the whole pipeline. A compilation failure is reported inside
// the response rather than as an error, since the tailored document and diff
// are still useful without the PDF.
func (r *Runner) Run(ctx context.Context, opts Options) (*types.TailorResponse, error) {
	started := time.Now()
	progress := opts.Progress
	if progress == nil {
		progress = func(int, string) {}
	}

	runID := r.createRun(ctx, opts)

	// Resume analysis and JD keyword extraction are independent; run them
	// in parallel.
	var (
		analysis  *types.ResumeAnalysis
		extracted *types.ExtractedKeywords
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		progress(0, StepLabels[0])
		a, err := r.enrich.AnalyzeResume(gctx, opts.TexContent)
		if err != nil {
			return &StepError{Step: "analyze", Status: http.StatusBadGateway, Detail: "Resume analysis failed: " + err.Error()}
		}
		analysis = a
		return nil
	})
	g.Go(func() error {
		progress(1, StepLabels[1])
		e, err := r.enrich.ExtractKeywords(gctx, opts.JDText, opts.JobTitle)
		if err != nil {
			return &StepError{Step: "extract", Status: http.StatusBadGateway, Detail: "Keyword extraction failed: " + err.Error()}
		}
		extracted = e
		return nil
	})
	if err := g.Wait(); err != nil {
		r.failRun(ctx, runID)
		return nil, err
	}

	marked := parsing.InsertMarkers(opts.TexContent)
	sections := parsing.Parse(marked)
	skillsOnResume := parsing.SkillsOnResume(sections)

	progress(2, StepLabels[2])
	match, err := r.enrich.MatchKeywords(ctx, extracted, analysis.Skills, skillsOnResume, opts.UserInstructions)
	if err != nil {
		r.failRun(ctx, runID)
		return nil, &StepError{Step: "match", Status: http.StatusBadGateway, Detail: "Skill matching failed: " + err.Error()}
	}

	progress(3, StepLabels[3])
	plan := ranking.ComputeReorderPlan(extracted, match, sections)

	progress(4, StepLabels[4])
	tailored, diff, err := rewriting.Inject(plan, match, marked, sections)
	if err != nil {
		r.failRun(ctx, runID)
		return nil, &StepError{Step: "inject", Status: http.StatusInternalServerError, Detail: "LaTeX injection failed: " + err.Error()}
	}

	resp := &types.TailorResponse{
		Extracted:   extracted,
		Match:       match,
		ReorderPlan: plan,
		TexContent:  tailored,
		TexDiff:     diff,
	}

	if r.compiler != nil {
		progress(5, StepLabels[5])
		roleTitle := opts.JobTitle
		if roleTitle == "" {
			roleTitle = extracted.RoleTitle
		}
		filename, pdfBytes, cerr := r.compiler.Compile(ctx, tailored, opts.CompanyName, roleTitle, analysis.PersonName)
		if cerr != nil {
			// Non-fatal: the tailored document and diff still go back.
			log.Printf("[pipeline] PDF compilation failed: %v", cerr)
			resp.PDFError = cerr.Error()
		} else {
			resp.Filename = strings.TrimSuffix(filename, ".pdf")
			resp.PDFURL = "/output/" + filename
			resp.PDFB64 = base64.StdEncoding.EncodeToString(pdfBytes)
		}
	}

	r.saveArtifacts(ctx, runID, resp)
	resp.ProcessingTimeMS = time.Since(started).Milliseconds()
	return resp, nil
}

func (r *Runner) createRun(ctx context.Context, opts Options) *runHandle {
	if r.store == nil {
		return nil
	}
	id, err := r.store.CreateRun(ctx, opts.CompanyName, opts.JobTitle, "")
	if err != nil {
		log.Printf("[pipeline] failed to record run: %v", err)
		return nil
	}
	return &runHandle{id: id}
}

func (r *Runner) failRun(ctx context.Context, run *runHandle) {
	if r.store == nil || run == nil {
		return
	}
	if err := r.store.CompleteRun(ctx, run.id, db.StatusFailed, 0); err != nil {
		log.Printf("[pipeline] failed to mark run failed: %v", err)
	}
}

// saveArtifacts persists the run's outputs best-effort; storage failures are
// logged, never surfaced.
func (r *Runner) saveArtifacts(ctx context.Context, run *runHandle, resp *types.TailorResponse) {
	if r.store == nil || run == nil {
		return
	}

	saves := []struct {
		step string
		err  error
	}{
		{db.StepExtractedKeywords, r.store.SaveArtifact(ctx, run.id, db.StepExtractedKeywords, db.CategoryJSON, resp.Extracted)},
		{db.StepMatchResult, r.store.SaveArtifact(ctx, run.id, db.StepMatchResult, db.CategoryJSON, resp.Match)},
		{db.StepReorderPlan, r.store.SaveArtifact(ctx, run.id, db.StepReorderPlan, db.CategoryJSON, resp.ReorderPlan)},
		{db.StepTailoredTex, r.store.SaveTextArtifact(ctx, run.id, db.StepTailoredTex, db.CategoryTex, resp.TexContent)},
		{db.StepTexDiff, r.store.SaveTextArtifact(ctx, run.id, db.StepTexDiff, db.CategoryDiff, resp.TexDiff)},
	}
	for _, s := range saves {
		if s.err != nil {
			log.Printf("[pipeline] failed to save %s artifact: %v", s.step, s.err)
		}
	}

	if err := r.store.CompleteRun(ctx, run.id, db.StatusCompleted, resp.Match.MatchScore); err != nil {
		log.Printf("[pipeline] failed to mark run completed: %v", err)
	}
}

type runHandle struct {
	id uuid.UUID
}
