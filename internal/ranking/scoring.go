// Package ranking blends the semantic and skill-overlap signals into the final
// match score and orders candidates by it.
package ranking

import (
	"context"

	"github.com/jonathan/resume-matcher/internal/lexical"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Blend weights. They are fixed; the final score is always exactly
// SemanticWeight*semantic + SkillOverlapWeight*overlap.
const (
	SemanticWeight     = 0.80
	SkillOverlapWeight = 0.20
)

// SemanticScorer is the dense similarity signal.
type SemanticScorer interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// MatchResult carries the unrounded blend inputs and output alongside the display breakdown.
type MatchResult struct {
	Final         float64
	Semantic      float64
	SkillOverlap  float64
	MatchedSkills []string
	Breakdown     types.ScoreBreakdown
	// SemanticErr is set when the dense signal failed and the lexical
	// similarity was used in its place.
	SemanticErr error
}

// Blender computes the blended match score.
type Blender struct {
	semantic SemanticScorer
	overlap  *skills.OverlapScorer
	lexical  *lexical.Scorer
}

// NewBlender creates a blender. The lexical scorer is used only when the
// semantic scorer fails.
func NewBlender(semantic SemanticScorer, overlap *skills.OverlapScorer, lex *lexical.Scorer) *Blender {
	if lex == nil {
		lex = lexical.NewScorer(lexical.SimilarityFeatures)
	}
	return &Blender{semantic: semantic, overlap: overlap, lexical: lex}
}

// Combine applies the fixed 80/20 weighting.
func Combine(semantic, skillOverlap float64) float64 {
	return SemanticWeight*semantic + SkillOverlapWeight*skillOverlap
}

// Blend scores resumeText against jobText. A semantic failure degrades to the
// lexical TF-IDF similarity; only cancellation of ctx is returned as an error.
func (b *Blender) Blend(ctx context.Context, resumeText, jobText string) (MatchResult, error) {
	source := types.SemanticSourceEmbedding
	semantic, err := b.semantic.Similarity(ctx, resumeText, jobText)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return MatchResult{}, ctxErr
		}
		semantic = b.lexical.Similarity(resumeText, jobText)
		source = types.SemanticSourceLexical
	}

	overlap := b.overlap.Ratio(resumeText, jobText)
	final := Combine(semantic, overlap.Ratio)

	return MatchResult{
		Final:         final,
		Semantic:      semantic,
		SkillOverlap:  overlap.Ratio,
		MatchedSkills: overlap.Matched,
		SemanticErr:   err,
		Breakdown: types.ScoreBreakdown{
			SemanticScore:     types.Percent(semantic),
			SkillOverlapScore: types.Percent(overlap.Ratio),
			FinalScore:        types.Percent(final),
			SemanticSource:    source,
			MatchedSkills:     overlap.Matched,
		},
	}, nil
}
