package ingestion

import "fmt"

// UnsupportedFormatError is returned for file types that have no text extractor.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("unsupported format for %s: no file extension", e.Path)
	}
	return fmt.Sprintf("unsupported format for %s: %s", e.Path, e.Ext)
}

// ExtractionError is returned when a supported document cannot be read or parsed.
type ExtractionError struct {
	Path  string
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Path, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
