// Package main provides the entry point for the resume matcher CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	providerFlag string
	verbose      bool
	debug        bool
	jsonLogs     bool
)

var rootCmd = &cobra.Command{
	Use:   "resume_matcher",
	Short: "Score resumes against job descriptions",
	Long: `Resume Matcher scores how well a resume fits a job description: semantic similarity,
skill overlap, ATS compatibility, skill and role gaps, a learning roadmap and an explanation.

Configuration is read from an optional YAML/JSON file (--config) and RESUME_MATCHER_* environment
variables. GEMINI_API_KEY is used for the Gemini embedding provider.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "Embedding provider override: gemini or hashing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print a human-readable summary")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
