package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raviX007/resume-tailor/internal/config"
	"github.com/raviX007/resume-tailor/internal/server"
)

var (
	servePort       int
	serveOutputDir  string
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing the tailoring pipeline, with plain and SSE-streaming endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8000)")
	serveCmd.Flags().StringVar(&serveOutputDir, "output-dir", "", "Directory for compiled PDFs (default \"output\")")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := &config.Config{}
	if serveConfigPath != "" {
		loaded, err := config.Load(serveConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveOutputDir != "" {
		cfg.OutputDir = serveOutputDir
	}
	cfg = cfg.MergeWithDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	srv, err := server.New(context.Background(), server.Config{
		Port:               cfg.Port,
		OutputDir:          cfg.OutputDir,
		APIKey:             cfg.APIKey,
		DatabaseURL:        cfg.DatabaseURL,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		DisableCompile:     cfg.DisableCompile,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	fmt.Fprintf(os.Stderr, "resume_tailor serving on :%d\n", cfg.Port)
	return srv.Start()
}
