// Package ingestion turns resume and job-posting documents into cleaned UTF-8 text.
// Only text formats are supported; binary formats (PDF, DOCX) are rejected.
package ingestion

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

// Formats recognised by ExtractBytes.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

var (
	spaceRunPattern  = regexp.MustCompile(`\s+`)
	blankRunsPattern = regexp.MustCompile(`\n\n\n+`)
)

var extFormats = map[string]string{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
	".htm":      FormatHTML,
}

// FormatForPath returns the format for a file name, or an UnsupportedFormatError.
func FormatForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := extFormats[ext]
	if !ok {
		return "", &UnsupportedFormatError{Path: path, Ext: ext}
	}
	return format, nil
}

// ExtractText reads a document from disk and returns its cleaned text.
func ExtractText(path string) (string, *Metadata, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, &ExtractionError{Path: path, Cause: err}
	}
	text, err := extract(path, format, data)
	if err != nil {
		return "", nil, err
	}
	return text, NewMetadata(SourceFile, path, format, text), nil
}

// ExtractBytes extracts text from an uploaded document; name supplies the extension.
func ExtractBytes(name string, data []byte) (string, *Metadata, error) {
	format, err := FormatForPath(name)
	if err != nil {
		return "", nil, err
	}
	text, err := extract(name, format, data)
	if err != nil {
		return "", nil, err
	}
	return text, NewMetadata(SourceBody, name, format, text), nil
}

func extract(path, format string, data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", &ExtractionError{Path: path, Cause: errors.New("content is not valid UTF-8")}
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", &ExtractionError{Path: path, Cause: errors.New("content looks binary")}
	}

	if format == FormatHTML {
		text, err := fetch.ExtractMainText(string(data), fetch.DefaultTextSelectors())
		if err != nil {
			return "", &ExtractionError{Path: path, Cause: err}
		}
		return CleanText(text), nil
	}
	return CleanText(string(data)), nil
}

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = blankRunsPattern.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	// Markdown headings lose their indentation.
	if strings.HasPrefix(trimmed, "#") {
		return spaceRunPattern.ReplaceAllString(trimmed, " ")
	}

	indent := len(line) - len(trimmed)
	if isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + trimmed
	}
	content := spaceRunPattern.ReplaceAllString(trimmed, " ")
	return strings.Repeat(" ", indent) + content
}

func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}
