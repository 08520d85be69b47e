// Package compile turns a finished .tex document into a PDF with pdflatex.
package compile

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// passTimeout bounds each pdflatex pass; a hung TeX run must not pin the
	// request forever.
	passTimeout = 30 * time.Second

	maxSlugLength = 50
)

// macOS BasicTeX installs pdflatex here, often outside the default PATH.
const macTeXBin = "/Library/TeX/texbin/pdflatex"

var slugUnsafe = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// Compiler runs pdflatex in a scratch directory and copies the finished PDF
// and .tex into OutputDir for serving.
type Compiler struct {
	OutputDir string
}

// New returns a compiler writing artifacts into outputDir.
func New(outputDir string) *Compiler {
	return &Compiler{OutputDir: outputDir}
}

// Compile writes texContent to a temp dir, runs pdflatex twice (the second
// pass resolves references), and returns the output filename and PDF bytes.
// The filename combines the person, company, and role slugs with a short
// unique suffix.
func (c *Compiler) Compile(ctx context.Context, texContent, companyName, roleTitle, personName string) (string, []byte, error) {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	baseName := buildBaseName(personName, companyName, roleTitle)

	tmpDir, err := os.MkdirTemp("", "resume_tailor_")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	texPath := filepath.Join(tmpDir, baseName+".tex")
	if err := os.WriteFile(texPath, []byte(texContent), 0o644); err != nil {
		return "", nil, fmt.Errorf("failed to write tex file: %w", err)
	}

	bin, err := findPdflatex()
	if err != nil {
		return "", nil, err
	}

	// Two passes; only a failure on the second pass is fatal, since the
	// first pass commonly exits non-zero on unresolved references.
	for pass := 0; pass < 2; pass++ {
		if err := runPass(ctx, bin, tmpDir, texPath, pass == 1); err != nil {
			return "", nil, err
		}
	}

	tmpPDF := filepath.Join(tmpDir, baseName+".pdf")
	pdfBytes, err := os.ReadFile(tmpPDF)
	if err != nil {
		return "", nil, &CompilationError{Message: "PDF was not generated", Cause: err}
	}

	pdfName := baseName + ".pdf"
	if err := os.WriteFile(filepath.Join(c.OutputDir, pdfName), pdfBytes, 0o644); err != nil {
		return "", nil, fmt.Errorf("failed to copy PDF to output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.OutputDir, baseName+".tex"), []byte(texContent), 0o644); err != nil {
		return "", nil, fmt.Errorf("failed to copy tex to output dir: %w", err)
	}

	log.Printf("[compile] PDF compiled: %s (%d bytes)", pdfName, len(pdfBytes))
	return pdfName, pdfBytes, nil
}

func runPass(ctx context.Context, bin, dir, texPath string, final bool) error {
	passCtx, cancel := context.WithTimeout(ctx, passTimeout)
	defer cancel()

	cmd := exec.CommandContext(passCtx, bin,
		"-interaction=nonstopmode",
		"-output-directory", dir,
		texPath,
	)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil && final {
		msg := extractErrorLines(string(output))
		log.Printf("[compile] pdflatex failed:\n%s", msg)
		return &CompilationError{Message: "pdflatex compilation failed: " + msg, Cause: err}
	}
	if passCtx.Err() == context.DeadlineExceeded {
		return &CompilationError{Message: "pdflatex timed out", Cause: passCtx.Err()}
	}
	return nil
}

// extractErrorLines pulls the first few TeX error lines out of a pdflatex
// log dump.
func extractErrorLines(output string) string {
	var errs []string
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "!") || strings.Contains(line, "Error") {
			errs = append(errs, line)
			if len(errs) == 5 {
				break
			}
		}
	}
	if len(errs) == 0 {
		if len(output) > 300 {
			output = output[len(output)-300:]
		}
		return output
	}
	return strings.Join(errs, "\n")
}

func findPdflatex() (string, error) {
	if path, err := exec.LookPath("pdflatex"); err == nil {
		return path, nil
	}
	if _, err := os.Stat(macTeXBin); err == nil {
		return macTeXBin, nil
	}
	return "", &CompilationError{Message: "pdflatex not found; install a TeX distribution"}
}

// buildBaseName assembles "<person>_<company>_<role>_<id>" from sanitized
// slugs, dropping empty parts.
func buildBaseName(personName, companyName, roleTitle string) string {
	nameSlug := "Resume"
	if personName != "" {
		nameSlug = slugify(personName)
	}

	var parts []string
	if companyName != "" {
		parts = append(parts, slugify(companyName))
	}
	if roleTitle != "" {
		parts = append(parts, slugify(roleTitle))
	}
	slug := strings.Join(parts, "_")
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}

	id := uuid.New().String()[:8]
	if slug == "" {
		return nameSlug + "_" + id
	}
	return nameSlug + "_" + slug + "_" + id
}

// slugify sanitizes text for filenames with a strict allowlist.
func slugify(text string) string {
	text = slugUnsafe.ReplaceAllString(strings.ReplaceAll(text, " ", "_"), "")
	if len(text) > maxSlugLength {
		text = text[:maxSlugLength]
	}
	return text
}
