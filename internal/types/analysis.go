package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AnalyzeRequest is one candidate to score against one job description.
type AnalyzeRequest struct {
	ResumeText     string           `json:"resume_text"`
	JobDescription string           `json:"job_description" validate:"required"`
	Profile        CandidateProfile `json:"profile"`
	TargetRole     string           `json:"target_role,omitempty" validate:"omitempty,max=100"`
	// Label identifies the candidate in batch output (usually the file name).
	Label string `json:"label,omitempty" validate:"omitempty,max=255"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CandidateInput is one resume inside a batch request.
type CandidateInput struct {
	Label      string           `json:"label" validate:"omitempty,max=255"`
	ResumeText string           `json:"resume_text"`
	Profile    CandidateProfile `json:"profile"`
}

// RankRequest scores several resumes against one job description.
type RankRequest struct {
	JobDescription string           `json:"job_description" validate:"required"`
	Candidates     []CandidateInput `json:"candidates" validate:"required,min=1,max=200,dive"`
}

// Validate validates the RankRequest using the validator.
func (r *RankRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Requests expands the batch into one AnalyzeRequest per candidate.
func (r *RankRequest) Requests() []AnalyzeRequest {
	reqs := make([]AnalyzeRequest, len(r.Candidates))
	for i, c := range r.Candidates {
		reqs[i] = AnalyzeRequest{
			ResumeText:     c.ResumeText,
			JobDescription: r.JobDescription,
			Profile:        c.Profile,
			Label:          c.Label,
		}
	}
	return reqs
}

// RoleGapRequest asks for a role-template gap analysis without a job description.
type RoleGapRequest struct {
	Skills     []string `json:"skills"`
	TargetRole string   `json:"target_role" validate:"required,max=100"`
}

// Validate validates the RoleGapRequest using the validator.
func (r *RoleGapRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RoleGapResponse is a role gap report with the roadmap built from it.
type RoleGapResponse struct {
	Gaps    RoleGapReport `json:"skill_gaps"`
	Roadmap Roadmap       `json:"roadmap"`
}

// Analysis is the full per-candidate result. Percent fields are rounded to two decimals.
type Analysis struct {
	ID             uuid.UUID        `json:"id"`
	Label          string           `json:"label,omitempty"`
	Candidate      CandidateProfile `json:"candidate"`
	FinalScore     float64          `json:"final_score"`
	ScoreBreakdown ScoreBreakdown   `json:"score_breakdown"`
	ATSTotal       int              `json:"ats_total"`
	ATSBreakdown   ATSBreakdown     `json:"ats_breakdown"`
	GapReport      SkillGapReport   `json:"gap_report"`
	RoleGap        *RoleGapReport   `json:"role_gap,omitempty"`
	RoleGapError   *ErrorPayload    `json:"role_gap_error,omitempty"`
	Roadmap        Roadmap          `json:"roadmap"`
	Explanation    Explanation      `json:"explanation"`
}

// RankedCandidate is one batch entry. Exactly one of Analysis or Error is set.
type RankedCandidate struct {
	Rank     int       `json:"rank,omitempty"`
	Label    string    `json:"label,omitempty"`
	Analysis *Analysis `json:"analysis,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// RankResponse is the result of a batch analysis.
type RankResponse struct {
	BatchID         uuid.UUID         `json:"batch_id"`
	Candidates      []RankedCandidate `json:"candidates"`
	TotalCandidates int               `json:"total_candidates"`
}
