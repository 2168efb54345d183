// Package ats scores how well a resume is structured for applicant tracking systems.
package ats

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/catalog"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Word-count window outside which the format score is penalized.
const (
	minWords      = 200
	maxWords      = 1500
	formatPenalty = 3
)

// Scorer computes the six-category ATS compliance score.
type Scorer struct {
	actionVerbs []string
}

// NewScorer creates a scorer counting the catalog's action verbs.
func NewScorer(c *catalog.Catalog) *Scorer {
	return &Scorer{actionVerbs: c.ActionVerbs}
}

// Score returns the total (0-100) and per-category breakdown. The total is
// the plain sum of the categories.
func (s *Scorer) Score(resumeText string, profile types.CandidateProfile) (int, types.ATSBreakdown) {
	breakdown := types.ATSBreakdown{
		ContactInformation:  ContactScore(profile),
		SkillsSection:       SkillsScore(len(profile.Skills)),
		ExperienceSection:   ExperienceScore(len(profile.Experience)),
		EducationSection:    EducationScore(len(profile.Education)),
		KeywordOptimization: KeywordScore(s.KeywordCount(resumeText)),
		FormatStructure:     FormatScore(parsing.WordCount(resumeText)),
	}
	return breakdown.Total(), breakdown
}

// KeywordCount counts case-insensitive occurrences of every action verb.
// Occurrences are substrings, so "led" also counts inside "skilled".
func (s *Scorer) KeywordCount(resumeText string) int {
	lower := strings.ToLower(resumeText)
	count := 0
	for _, verb := range s.actionVerbs {
		count += strings.Count(lower, verb)
	}
	return count
}

// ContactScore awards 5 points each for a name, an email and a phone.
func ContactScore(profile types.CandidateProfile) int {
	score := 0
	if profile.HasName() {
		score += 5
	}
	if profile.HasEmail() {
		score += 5
	}
	if profile.HasPhone() {
		score += 5
	}
	return score
}

// SkillsScore rewards skill breadth in steps.
func SkillsScore(n int) int {
	switch {
	case n == 0:
		return 0
	case n < 5:
		return 10
	case n < 10:
		return 18
	default:
		return types.MaxSkillsPoints
	}
}

// ExperienceScore rewards experience entries in steps.
func ExperienceScore(n int) int {
	switch {
	case n == 0:
		return 0
	case n == 1:
		return 10
	case n <= 3:
		return 15
	default:
		return types.MaxExperiencePoints
	}
}

// EducationScore is binary on the presence of any education entry.
func EducationScore(n int) int {
	if n >= 1 {
		return types.MaxEducationPoints
	}
	return 0
}

// KeywordScore maps an action-verb count to points.
func KeywordScore(count int) int {
	switch {
	case count >= 8:
		return types.MaxKeywordPoints
	case count >= 5:
		return 10
	case count >= 3:
		return 5
	default:
		return 0
	}
}

// FormatScore penalizes resumes that are too short or too long.
func FormatScore(words int) int {
	score := types.MaxFormatPoints
	if words < minWords || words > maxWords {
		score -= formatPenalty
	}
	return max(score, 0)
}
