package ats

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-matcher/internal/catalog"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestContactScore(t *testing.T) {
	tests := []struct {
		name     string
		profile  types.CandidateProfile
		expected int
	}{
		{"all present", types.CandidateProfile{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100"}, 15},
		{"placeholders", types.CandidateProfile{Name: "Unknown", Email: "N/A", Phone: "N/A"}, 0},
		{"empty fields", types.CandidateProfile{}, 0},
		{"email only", types.CandidateProfile{Name: "Unknown", Email: "a@b.co", Phone: "N/A"}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContactScore(tt.profile))
		})
	}
}

func TestSkillsScore(t *testing.T) {
	cases := map[int]int{0: 0, 1: 10, 4: 10, 5: 18, 9: 18, 10: 25, 40: 25}
	for n, expected := range cases {
		assert.Equal(t, expected, SkillsScore(n), "skills=%d", n)
	}
}

func TestExperienceScore(t *testing.T) {
	cases := map[int]int{0: 0, 1: 10, 2: 15, 3: 15, 4: 20, 5: 20}
	for n, expected := range cases {
		assert.Equal(t, expected, ExperienceScore(n), "experience=%d", n)
	}
}

func TestEducationScore(t *testing.T) {
	assert.Equal(t, 0, EducationScore(0))
	assert.Equal(t, 15, EducationScore(1))
	assert.Equal(t, 15, EducationScore(3))
}

func TestKeywordScore(t *testing.T) {
	cases := map[int]int{0: 0, 2: 0, 3: 5, 4: 5, 5: 10, 7: 10, 8: 15, 30: 15}
	for n, expected := range cases {
		assert.Equal(t, expected, KeywordScore(n), "keywords=%d", n)
	}
}

func TestFormatScore(t *testing.T) {
	cases := map[int]int{0: 7, 199: 7, 200: 10, 1500: 10, 1501: 7}
	for n, expected := range cases {
		assert.Equal(t, expected, FormatScore(n), "words=%d", n)
	}
}

func TestKeywordCount_CountsOccurrences(t *testing.T) {
	s := NewScorer(catalog.MustDefault())

	assert.Equal(t, 3, s.KeywordCount("Led the team. LED the migration. led again"))
	// Substring occurrences count too.
	assert.Equal(t, 1, s.KeywordCount("Highly skilled engineer"))
	assert.Equal(t, 0, s.KeywordCount(""))
}

func TestScore_TotalIsSumAndBounded(t *testing.T) {
	s := NewScorer(catalog.MustDefault())

	body := strings.Repeat("Designed and implemented services. Managed and improved delivery. ", 40)
	profile := types.CandidateProfile{
		Name:       "Grace Hopper",
		Email:      "grace@example.com",
		Phone:      "555-0199",
		Skills:     []string{"go", "python", "sql", "docker", "aws", "linux", "git", "bash", "terraform", "redis"},
		Experience: []string{"a", "b", "c", "d", "e"},
		Education:  []string{"BSc"},
	}

	total, breakdown := s.Score(body, profile)
	assert.Equal(t, breakdown.Total(), total)
	assert.Equal(t, 100, total)
	assert.Equal(t, types.ATSBreakdown{
		ContactInformation:  15,
		SkillsSection:       25,
		ExperienceSection:   20,
		EducationSection:    15,
		KeywordOptimization: 15,
		FormatStructure:     10,
	}, breakdown)
}

func TestScore_EmptyResume(t *testing.T) {
	s := NewScorer(catalog.MustDefault())

	total, breakdown := s.Score("", types.CandidateProfile{}.Normalized())
	assert.Equal(t, 0, breakdown.SkillsSection)
	assert.Equal(t, 7, breakdown.FormatStructure)
	assert.Equal(t, 7, total)
	assert.GreaterOrEqual(t, total, 0)
	assert.LessOrEqual(t, total, 100)
}
