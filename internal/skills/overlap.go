// Package skills measures how many of the skills a job description names also
// appear in a resume.
package skills

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/catalog"
)

// NeutralRatio is returned when the job description names no known skill.
const NeutralRatio = 0.5

// Overlap is the result of one overlap computation.
type Overlap struct {
	Ratio float64
	// JobSkills are the catalog skills found in the job text, in catalog order.
	JobSkills []string
	// Matched are the JobSkills also found in the resume, in catalog order.
	Matched []string
}

// OverlapScorer matches the catalog's overlap vocabulary with word boundaries,
// so "java" does not match inside "javascript".
type OverlapScorer struct {
	catalog *catalog.Catalog
}

// NewOverlapScorer creates a scorer over the given catalog.
func NewOverlapScorer(c *catalog.Catalog) *OverlapScorer {
	return &OverlapScorer{catalog: c}
}

// Ratio returns |matched| / |job skills|, or NeutralRatio when the job text
// names no known skill.
func (s *OverlapScorer) Ratio(resumeText, jobText string) Overlap {
	jobLower := strings.ToLower(jobText)
	resumeLower := strings.ToLower(resumeText)

	result := Overlap{JobSkills: []string{}, Matched: []string{}}
	for i, re := range s.catalog.OverlapMatchers() {
		if !re.MatchString(jobLower) {
			continue
		}
		name := s.catalog.OverlapSkills[i].Name
		result.JobSkills = append(result.JobSkills, name)
		if re.MatchString(resumeLower) {
			result.Matched = append(result.Matched, name)
		}
	}

	if len(result.JobSkills) == 0 {
		result.Ratio = NeutralRatio
		return result
	}
	result.Ratio = float64(len(result.Matched)) / float64(len(result.JobSkills))
	return result
}
