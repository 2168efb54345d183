package types

// TermImportance is a term that contributed to a match.
type TermImportance struct {
	Term       string  `json:"term"`
	Importance float64 `json:"importance"`
}

// SentenceRelevance is a resume sentence ranked against the job description.
// Relevance is a percentage.
type SentenceRelevance struct {
	Sentence  string  `json:"sentence"`
	Relevance float64 `json:"relevance"`
}

// Explanation is the human-readable verdict for a match score.
type Explanation struct {
	OverallAssessment    string              `json:"overall_assessment"`
	Recommendation       string              `json:"recommendation"`
	ScoreInterpretation  string              `json:"match_score_interpretation"`
	ScoreBreakdown       *ScoreBreakdown     `json:"score_breakdown,omitempty"`
	TopContributingTerms []TermImportance    `json:"top_contributing_terms"`
	TopMatchingSentences []SentenceRelevance `json:"top_matching_sentences"`
	Narrative            string              `json:"narrative"`
}
