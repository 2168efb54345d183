package types

// SkillGapReport is the difference between the skills a job description asks
// for and the skills a candidate has. Missing and matched never overlap.
type SkillGapReport struct {
	MissingSkills []string `json:"missing_skills"`
	MatchedSkills []string `json:"matched_skills"`
	GapPercentage float64  `json:"gap_percentage"`
}

// RoleGapReport compares a candidate against a predefined role template.
type RoleGapReport struct {
	Role             string   `json:"role"`
	MissingRequired  []string `json:"missing_required"`
	MissingPreferred []string `json:"missing_preferred"`
	MatchedRequired  []string `json:"matched_required"`
	ReadinessScore   float64  `json:"readiness_score"`
}

// ErrorPayload is the structured, non-fatal error attached to an analysis.
type ErrorPayload struct {
	Error string `json:"error"`
	Role  string `json:"role,omitempty"`
}

// RoadmapEntry is the learning plan for one missing skill.
type RoadmapEntry struct {
	Priority      int                 `json:"priority"`
	Skill         string              `json:"skill"`
	EstimatedTime string              `json:"estimated_time"`
	Resources     map[string][]string `json:"resources"`
	Milestones    []string            `json:"milestones"`
}

// Roadmap is the ordered remediation plan for a gap report.
type Roadmap struct {
	Message            string         `json:"message,omitempty"`
	TotalSkillsToLearn int            `json:"total_skills_to_learn,omitempty"`
	EstimatedTotalTime string         `json:"estimated_total_time,omitempty"`
	Entries            []RoadmapEntry `json:"roadmap"`
}
