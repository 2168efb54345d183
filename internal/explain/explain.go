// Package explain turns a match score and its supporting evidence into a
// human-readable verdict.
package explain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-matcher/internal/lexical"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// MaxTerms bounds the contributing terms in an explanation.
	MaxTerms = 5
	// quoteChars is how much of the best sentence the narrative quotes.
	quoteChars = 100
)

type verdict struct {
	threshold      float64
	assessment     string
	recommendation string
	interpretation string
}

// verdicts are checked in order; the first threshold the score reaches wins.
var verdicts = []verdict{
	{0.7, "Excellent match", "Highly recommended", "Strong alignment with job requirements"},
	{0.5, "Good match", "Recommended", "Good alignment with most requirements"},
	{0.3, "Moderate match", "Consider with assessment", "Partial alignment, some gaps exist"},
	{0, "Weak match", "Not recommended", "Limited alignment with requirements"},
}

// Synthesizer builds explanations. The lexical scorer supplies contributing
// terms when the caller has none.
type Synthesizer struct {
	lexical *lexical.Scorer
}

// NewSynthesizer creates a synthesizer; a nil scorer uses a default TF-IDF scorer.
func NewSynthesizer(lex *lexical.Scorer) *Synthesizer {
	if lex == nil {
		lex = lexical.NewScorer(lexical.TermFeatures)
	}
	return &Synthesizer{lexical: lex}
}

// Explain assembles the explanation for finalScore (a [0,1] fraction).
// When terms is empty, the top TF-IDF terms shared by the two texts are used.
func (s *Synthesizer) Explain(
	resumeText, jobText string,
	finalScore float64,
	breakdown *types.ScoreBreakdown,
	sentences []types.SentenceRelevance,
	terms []types.TermImportance,
) types.Explanation {
	v := verdictFor(finalScore)

	if len(terms) == 0 {
		terms = s.LexicalTerms(resumeText, jobText)
	}
	if len(terms) > MaxTerms {
		terms = terms[:MaxTerms]
	}
	if sentences == nil {
		sentences = []types.SentenceRelevance{}
	}

	return types.Explanation{
		OverallAssessment:    v.assessment,
		Recommendation:       v.recommendation,
		ScoreInterpretation:  Interpret(finalScore),
		ScoreBreakdown:       breakdown,
		TopContributingTerms: terms,
		TopMatchingSentences: sentences,
		Narrative:            Narrative(finalScore, breakdown, sentences),
	}
}

// LexicalTerms returns up to MaxTerms TF-IDF terms shared by both texts,
// importance rounded to four decimals.
func (s *Synthesizer) LexicalTerms(resumeText, jobText string) []types.TermImportance {
	terms := s.lexical.TopTerms(resumeText, jobText, MaxTerms)
	for i := range terms {
		terms[i].Importance = types.Round(terms[i].Importance, 4)
	}
	return terms
}

// SkillTerms converts matched skills into contributing terms of importance 1.0.
func SkillTerms(skills []string) []types.TermImportance {
	n := min(len(skills), MaxTerms)
	terms := make([]types.TermImportance, n)
	for i := 0; i < n; i++ {
		terms[i] = types.TermImportance{Term: skills[i], Importance: 1.0}
	}
	return terms
}

// Assessment returns the overall assessment and recommendation for a score.
func Assessment(finalScore float64) (string, string) {
	v := verdictFor(finalScore)
	return v.assessment, v.recommendation
}

// Interpret renders the score as "<pct>% match - <phrase>", pct to one decimal.
func Interpret(finalScore float64) string {
	pct := types.Round(finalScore*100, 1)
	return fmt.Sprintf("%s%% match - %s", strconv.FormatFloat(pct, 'f', 1, 64), verdictFor(finalScore).interpretation)
}

// Narrative concatenates, in order: the semantic and skill-overlap figures,
// a quote of the best sentence, and a closing sentence chosen by score.
func Narrative(finalScore float64, breakdown *types.ScoreBreakdown, sentences []types.SentenceRelevance) string {
	var sb strings.Builder

	if breakdown != nil {
		fmt.Fprintf(&sb, "Semantic matching score is %s%% with %s%% exact skill overlap. ",
			formatPercent(breakdown.SemanticScore), formatPercent(breakdown.SkillOverlapScore))
	}

	if len(sentences) > 0 {
		fmt.Fprintf(&sb, "Most relevant resume section: '%s...' ", parsing.Truncate(sentences[0].Sentence, quoteChars))
	}

	switch {
	case finalScore >= 0.6:
		sb.WriteString("The candidate demonstrates strong relevant experience and skills with excellent semantic alignment.")
	case finalScore >= 0.4:
		sb.WriteString("The candidate has relevant experience but may lack some preferred qualifications.")
	default:
		sb.WriteString("The candidate has limited alignment with the core requirements.")
	}
	return sb.String()
}

func verdictFor(score float64) verdict {
	for _, v := range verdicts {
		if score >= v.threshold {
			return v
		}
	}
	return verdicts[len(verdicts)-1]
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
