package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract and clean a resume or job posting from a file or URL",
	Long:  "Ingest a document from either a file or URL, clean the content, and write the cleaned text with metadata.",
	RunE:  runIngest,
}

var (
	ingestFile    string
	ingestURL     string
	ingestBrowser bool
	ingestOutDir  string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Path to a .txt, .md or .html document")
	ingestCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch a job posting from")
	ingestCmd.Flags().BoolVar(&ingestBrowser, "browser", false, "Render JavaScript job pages in headless Chrome when needed")
	ingestCmd.Flags().StringVarP(&ingestOutDir, "out", "o", "", "Output directory (required)")

	_ = ingestCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestFile == "" && ingestURL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if ingestFile != "" && ingestURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}

	var (
		cleanedText string
		metadata    *ingestion.Metadata
		err         error
	)
	if ingestFile != "" {
		cleanedText, metadata, err = ingestion.ExtractText(ingestFile)
		if err != nil {
			return fmt.Errorf("failed to ingest from file: %w", err)
		}
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		cleanedText, metadata, err = ingestion.IngestFromURL(cmd.Context(), ingestURL,
			ingestion.URLOptions{UseBrowser: ingestBrowser, Logger: logger})
		if err != nil {
			return fmt.Errorf("failed to ingest from URL: %w", err)
		}
	}

	if err := ingestion.WriteOutput(ingestOutDir, cleanedText, metadata); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Successfully ingested %s (%d words)\n", metadata.Location, metadata.Words)
	_, _ = fmt.Fprintf(out, "Cleaned text: %s\n", filepath.Join(ingestOutDir, ingestion.CleanedFileName))
	_, _ = fmt.Fprintf(out, "Metadata: %s\n", filepath.Join(ingestOutDir, ingestion.MetadataFileName))
	return nil
}
