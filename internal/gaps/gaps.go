// Package gaps compares a candidate's skills against the skills a job
// description or a predefined role asks for.
package gaps

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/catalog"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Analyzer computes skill gaps. Skills are compared case-insensitively.
type Analyzer struct {
	catalog *catalog.Catalog
}

// NewAnalyzer creates an analyzer over the given catalog.
func NewAnalyzer(c *catalog.Catalog) *Analyzer {
	return &Analyzer{catalog: c}
}

// RequiredSkills returns the catalog gap skills contained in jobText, in
// catalog order. Containment is by substring, not word boundary.
func (a *Analyzer) RequiredSkills(jobText string) []string {
	lower := strings.ToLower(jobText)
	required := make([]string, 0)
	for _, skill := range a.catalog.GapSkills {
		if strings.Contains(lower, skill) {
			required = append(required, skill)
		}
	}
	return required
}

// IdentifyGaps splits the skills named in jobText into those the candidate
// has and those they are missing.
func (a *Analyzer) IdentifyGaps(candidateSkills []string, jobText string) types.SkillGapReport {
	required := a.RequiredSkills(jobText)
	missing, matched := partition(required, candidateSet(candidateSkills))

	report := types.SkillGapReport{
		MissingSkills: missing,
		MatchedSkills: matched,
	}
	if len(required) > 0 {
		report.GapPercentage = types.Round(float64(len(missing))/float64(len(required))*100, 2)
	}
	return report
}

// IdentifyGapsByRole compares the candidate against a role template. Role
// lookup is case-insensitive; an unknown role returns *RoleNotFoundError.
func (a *Analyzer) IdentifyGapsByRole(candidateSkills []string, roleName string) (types.RoleGapReport, error) {
	role, ok := a.catalog.Role(roleName)
	if !ok {
		return types.RoleGapReport{}, &RoleNotFoundError{Role: roleName}
	}

	have := candidateSet(candidateSkills)
	missingRequired, matchedRequired := partition(parsing.FoldSkills(role.Required), have)
	missingPreferred, _ := partition(parsing.FoldSkills(role.Preferred), have)

	report := types.RoleGapReport{
		Role:             roleName,
		MissingRequired:  missingRequired,
		MissingPreferred: missingPreferred,
		MatchedRequired:  matchedRequired,
	}
	if n := len(role.Required); n > 0 {
		report.ReadinessScore = types.Round(float64(n-len(missingRequired))/float64(n)*100, 2)
	}
	return report, nil
}

// ErrorPayload converts a role lookup failure into the structured payload
// attached to an analysis.
func ErrorPayload(err *RoleNotFoundError) *types.ErrorPayload {
	return &types.ErrorPayload{Error: RoleNotFoundMessage, Role: err.Role}
}

func candidateSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range parsing.FoldSkills(skills) {
		set[s] = true
	}
	return set
}

// partition splits wanted into (missing, matched) preserving order.
func partition(wanted []string, have map[string]bool) ([]string, []string) {
	missing := make([]string, 0, len(wanted))
	matched := make([]string, 0, len(wanted))
	for _, skill := range wanted {
		if have[skill] {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return missing, matched
}
