// Package parsing provides the text normalization shared by the resume scorers.
package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxEmbeddingChars bounds the text handed to the embedding oracle.
const MaxEmbeddingChars = 5000

// MinSentenceChars is the length a trimmed sentence must exceed to be ranked.
const MinSentenceChars = 15

var (
	// Letters, digits, underscore, whitespace, period and comma survive.
	disallowedChars  = regexp.MustCompile(`[^\p{L}\p{N}_\s.,]`)
	sentenceBoundary = regexp.MustCompile(`[.!?]+`)
)

// NormalizeForEmbedding collapses whitespace runs to one space, strips every
// character other than letters, digits, underscore, whitespace, period and
// comma, trims the result and truncates it to MaxEmbeddingChars characters.
func NormalizeForEmbedding(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	cleaned := strings.TrimSpace(disallowedChars.ReplaceAllString(collapsed, ""))
	return Truncate(cleaned, MaxEmbeddingChars)
}

// Truncate returns the first limit characters of s.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

// SplitSentences splits text on runs of '.', '!' or '?' and returns the
// trimmed pieces longer than MinSentenceChars characters, in order.
func SplitSentences(text string) []string {
	parts := sentenceBoundary.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) > MinSentenceChars {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// FoldSkills lower-cases and trims skill names, dropping empties and
// duplicates while keeping first-seen order.
func FoldSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}
