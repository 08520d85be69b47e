// Package main provides the entry point for the resume tailor CLI and
// HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_tailor",
	Short: "Marker-based LaTeX resume tailoring",
	Long:  "Resume Tailor rewrites a LaTeX resume against a job description: it reorders skills and projects, injects missing keywords, rewrites the summary, and compiles the result to PDF.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
