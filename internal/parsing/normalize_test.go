package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeForEmbedding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Collapses whitespace", "Go  \n\t developer", "Go developer"},
		{"Strips symbols", "C++ & Go (5 yrs)!", "C  Go 5 yrs"},
		{"Keeps period and comma", "Led teams, shipped code.", "Led teams, shipped code."},
		{"Keeps underscore", "snake_case", "snake_case"},
		{"Keeps non-ASCII letters", "Développeur Zürich", "Développeur Zürich"},
		{"Trims edges", "  @hello world#  ", "hello world"},
		{"Empty string", "", ""},
		{"Only symbols", "@#$%^&*", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeForEmbedding(tt.input))
		})
	}
}

func TestNormalizeForEmbedding_Truncates(t *testing.T) {
	long := strings.Repeat("a", MaxEmbeddingChars+100)
	assert.Len(t, NormalizeForEmbedding(long), MaxEmbeddingChars)

	multibyte := strings.Repeat("é", MaxEmbeddingChars+1)
	assert.Equal(t, MaxEmbeddingChars, len([]rune(NormalizeForEmbedding(multibyte))))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "ab", Truncate("ab", 3))
	assert.Equal(t, "", Truncate("ab", 0))
	assert.Equal(t, "日本", Truncate("日本語", 2))
}

func TestSplitSentences(t *testing.T) {
	text := "Built distributed systems in Go. Short one! Led a team of five engineers?! Ok"
	got := SplitSentences(text)
	assert.Equal(t, []string{
		"Built distributed systems in Go",
		"Led a team of five engineers",
	}, got)
}

func TestSplitSentences_LengthBoundary(t *testing.T) {
	exactly15 := "abcdefghijklmno"
	sixteen := "abcdefghijklmnop"
	assert.Empty(t, SplitSentences(exactly15+"."))
	assert.Equal(t, []string{sixteen}, SplitSentences(sixteen+"."))
}

func TestSplitSentences_Empty(t *testing.T) {
	assert.Empty(t, SplitSentences(""))
	assert.Empty(t, SplitSentences("...!!!???"))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 3, WordCount("  one\ttwo\nthree "))
}

func TestFoldSkills(t *testing.T) {
	got := FoldSkills([]string{"Python", " python ", "", "SQL", "Go"})
	assert.Equal(t, []string{"python", "sql", "go"}, got)
	assert.Empty(t, FoldSkills(nil))
}
