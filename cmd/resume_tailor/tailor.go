package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raviX007/resume-tailor/internal/compile"
	"github.com/raviX007/resume-tailor/internal/enrichment"
	"github.com/raviX007/resume-tailor/internal/fetch"
	"github.com/raviX007/resume-tailor/internal/llm"
	"github.com/raviX007/resume-tailor/internal/observability"
	"github.com/raviX007/resume-tailor/internal/pipeline"
)

var (
	tailorResume       string
	tailorJD           string
	tailorJDURL        string
	tailorJobTitle     string
	tailorCompany      string
	tailorInstructions string
	tailorOutputDir    string
	tailorNoPDF        bool
	tailorVerbose      bool
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a .tex resume against a job description",
	Long: `Run the full pipeline once from the command line: analyze the resume,
extract and match JD keywords, reorder and inject, and compile a PDF.`,
	RunE: runTailor,
}

func init() {
	tailorCmd.Flags().StringVar(&tailorResume, "resume", "", "Path to the .tex resume (required)")
	tailorCmd.Flags().StringVar(&tailorJD, "jd", "", "Path to a job description text file")
	tailorCmd.Flags().StringVar(&tailorJDURL, "jd-url", "", "URL of the job posting (alternative to --jd)")
	tailorCmd.Flags().StringVar(&tailorJobTitle, "job-title", "", "Job title")
	tailorCmd.Flags().StringVar(&tailorCompany, "company", "", "Company name")
	tailorCmd.Flags().StringVar(&tailorInstructions, "instructions", "", "Extra tailoring instructions")
	tailorCmd.Flags().StringVar(&tailorOutputDir, "output", "output", "Directory for the compiled PDF and .tex")
	tailorCmd.Flags().BoolVar(&tailorNoPDF, "no-pdf", false, "Skip PDF compilation")
	tailorCmd.Flags().BoolVar(&tailorVerbose, "verbose", false, "Print detailed pipeline output")
	_ = tailorCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	texBytes, err := os.ReadFile(tailorResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	jdText, err := loadJobDescription(ctx)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	var compiler *compile.Compiler
	if !tailorNoPDF {
		compiler = compile.New(tailorOutputDir)
	}
	runner := pipeline.NewRunner(enrichment.NewService(client), compiler, nil)

	result, err := runner.Run(ctx, pipeline.Options{
		TexContent:       string(texBytes),
		JDText:           jdText,
		JobTitle:         tailorJobTitle,
		CompanyName:      tailorCompany,
		UserInstructions: tailorInstructions,
		Progress: func(step int, label string) {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", step+1, len(pipeline.StepLabels), label)
		},
	})
	if err != nil {
		return err
	}

	if tailorVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintExtractedKeywords(result.Extracted)
		printer.PrintMatchResult(result.Match)
		printer.PrintReorderPlan(result.ReorderPlan)
	}

	fmt.Printf("Match score: %d%% (%d/%d keywords)\n",
		result.Match.MatchScore, result.Match.TotalMatched, result.Match.TotalJDKeywords)
	if result.PDFError != "" {
		fmt.Printf("PDF compilation failed: %s\n", result.PDFError)
	}
	if result.Filename != "" {
		fmt.Printf("Wrote %s\n", filepath.Join(tailorOutputDir, result.Filename+".pdf"))
	}
	if tailorNoPDF {
		// Without compilation there is no output-dir copy; write the tailored
		// .tex next to the input instead.
		dest := tailorResume[:len(tailorResume)-len(filepath.Ext(tailorResume))] + "_tailored.tex"
		if err := os.WriteFile(dest, []byte(result.TexContent), 0o644); err != nil {
			return fmt.Errorf("failed to write tailored tex: %w", err)
		}
		fmt.Printf("Wrote %s\n", dest)
	}
	fmt.Printf("Done in %dms\n", result.ProcessingTimeMS)
	return nil
}

func loadJobDescription(ctx context.Context) (string, error) {
	switch {
	case tailorJD != "" && tailorJDURL != "":
		return "", fmt.Errorf("--jd and --jd-url are mutually exclusive")
	case tailorJD != "":
		data, err := os.ReadFile(tailorJD)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return string(data), nil
	case tailorJDURL != "":
		text, err := fetch.JobDescription(ctx, tailorJDURL)
		if err != nil {
			return "", err
		}
		return text, nil
	default:
		return "", fmt.Errorf("one of --jd or --jd-url is required")
	}
}
