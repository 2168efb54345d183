package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Output file names written by WriteOutput.
const (
	CleanedFileName  = "document.cleaned.txt"
	MetadataFileName = "document.meta.json"
)

// WriteOutput writes cleaned text and its metadata into outDir, creating it if needed.
func WriteOutput(outDir string, cleanedText string, metadata *Metadata) error {
	if metadata == nil {
		return fmt.Errorf("metadata is required")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cleanedPath := filepath.Join(outDir, CleanedFileName)
	if err := os.WriteFile(cleanedPath, []byte(cleanedText), 0o644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metaJSON, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	metaPath := filepath.Join(outDir, MetadataFileName)
	if err := os.WriteFile(metaPath, metaJSON, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}
