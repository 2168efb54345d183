package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/jonathan/resume-matcher/internal/parsing"
)

// Source kinds recorded in Metadata.
const (
	SourceFile = "file"
	SourceURL  = "url"
	SourceBody = "body"
)

// Metadata describes where an ingested document came from and what was extracted.
type Metadata struct {
	Source    string `json:"source"`
	Location  string `json:"location,omitempty"`
	Format    string `json:"format"`
	Platform  string `json:"platform,omitempty"`
	Rendered  bool   `json:"rendered,omitempty"`
	Timestamp string `json:"timestamp"`
	Hash      string `json:"hash"`
	Chars     int    `json:"chars"`
	Words     int    `json:"words"`
}

// NewMetadata fingerprints cleaned content.
func NewMetadata(source, location, format, content string) *Metadata {
	return &Metadata{
		Source:    source,
		Location:  location,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Chars:     len([]rune(content)),
		Words:     parsing.WordCount(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
