// Package types provides type definitions for the records exchanged by the resume-matcher scoring pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

const (
	// UnknownName is the placeholder the extraction collaborator uses when no name was found.
	UnknownName = "Unknown"
	// NotAvailable is the placeholder for a missing email or phone.
	NotAvailable = "N/A"

	// MaxExperienceEntries bounds the experience snippets kept on a profile.
	MaxExperienceEntries = 5
	// MaxEducationEntries bounds the education snippets kept on a profile.
	MaxEducationEntries = 3
)

// CandidateProfile is the structured candidate record produced by the external
// extraction collaborator. It is treated as read-only by every scorer.
type CandidateProfile struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
}

// Normalized returns a copy of the profile with placeholders filled in, skills
// deduplicated case-insensitively (first spelling wins), and the experience and
// education snippets capped at their documented limits.
func (p CandidateProfile) Normalized() CandidateProfile {
	out := CandidateProfile{
		Name:  placeholder(p.Name, UnknownName),
		Email: placeholder(p.Email, NotAvailable),
		Phone: placeholder(p.Phone, NotAvailable),
	}

	out.Skills = make([]string, 0, len(p.Skills))
	seen := make(map[string]bool, len(p.Skills))
	for _, skill := range p.Skills {
		trimmed := strings.TrimSpace(skill)
		key := strings.ToLower(trimmed)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out.Skills = append(out.Skills, trimmed)
	}

	out.Experience = capSnippets(p.Experience, MaxExperienceEntries)
	out.Education = capSnippets(p.Education, MaxEducationEntries)
	return out
}

// HasName reports whether the profile carries a real name.
func (p CandidateProfile) HasName() bool {
	return present(p.Name, UnknownName)
}

// HasEmail reports whether the profile carries an email address.
func (p CandidateProfile) HasEmail() bool {
	return present(p.Email, NotAvailable)
}

// HasPhone reports whether the profile carries a phone number.
func (p CandidateProfile) HasPhone() bool {
	return present(p.Phone, NotAvailable)
}

// SkillSet returns the lower-cased skill names as a set.
func (p CandidateProfile) SkillSet() map[string]bool {
	set := make(map[string]bool, len(p.Skills))
	for _, skill := range p.Skills {
		if key := strings.ToLower(strings.TrimSpace(skill)); key != "" {
			set[key] = true
		}
	}
	return set
}

func placeholder(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

func present(value, fallback string) bool {
	value = strings.TrimSpace(value)
	return value != "" && value != fallback
}

func capSnippets(in []string, limit int) []string {
	out := make([]string, 0, min(len(in), limit))
	for _, s := range in {
		if len(out) == limit {
			break
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
