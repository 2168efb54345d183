package types

// Per-category maxima of the ATS compliance score.
const (
	MaxContactPoints    = 15
	MaxSkillsPoints     = 25
	MaxExperiencePoints = 20
	MaxEducationPoints  = 15
	MaxKeywordPoints    = 15
	MaxFormatPoints     = 10
)

// Semantic sources recorded on a ScoreBreakdown.
const (
	SemanticSourceEmbedding = "embedding"
	SemanticSourceLexical   = "lexical"
)

// ScoreBreakdown is the display form of a blended match score. Values are
// percentages rounded to two decimals; blending uses the unrounded fractions.
type ScoreBreakdown struct {
	SemanticScore     float64 `json:"semantic_score"`
	SkillOverlapScore float64 `json:"skill_overlap_score"`
	FinalScore        float64 `json:"final_score"`
	// SectionSimilarity is informational and never part of the blend.
	SectionSimilarity *float64 `json:"section_similarity,omitempty"`
	SemanticSource    string   `json:"semantic_source"`
	MatchedSkills     []string `json:"matched_skills"`
}

// ATSBreakdown holds the points awarded per ATS category.
type ATSBreakdown struct {
	ContactInformation  int `json:"contact_information"`
	SkillsSection       int `json:"skills_section"`
	ExperienceSection   int `json:"experience_section"`
	EducationSection    int `json:"education_section"`
	KeywordOptimization int `json:"keyword_optimization"`
	FormatStructure     int `json:"format_structure"`
}

// Total returns the unweighted sum of the six categories.
func (b ATSBreakdown) Total() int {
	return b.ContactInformation +
		b.SkillsSection +
		b.ExperienceSection +
		b.EducationSection +
		b.KeywordOptimization +
		b.FormatStructure
}
