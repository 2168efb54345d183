package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-matcher/internal/catalog"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSemantic struct {
	score float64
	err   error
}

func (f fixedSemantic) Similarity(context.Context, string, string) (float64, error) {
	return f.score, f.err
}

func newBlender(sem SemanticScorer) *Blender {
	return NewBlender(sem, skills.NewOverlapScorer(catalog.MustDefault()), nil)
}

func TestCombine_ExactWeights(t *testing.T) {
	tests := []struct {
		semantic, overlap float64
	}{
		{0, 0}, {1, 1}, {0.5, 0.5}, {0.731, 0.25}, {0.123456789, 0.987654321}, {1, 0}, {0, 1},
	}

	for _, tt := range tests {
		got := Combine(tt.semantic, tt.overlap)
		assert.InDelta(t, 0.80*tt.semantic+0.20*tt.overlap, got, 1e-9)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

func TestBlend(t *testing.T) {
	b := newBlender(fixedSemantic{score: 0.7})

	result, err := b.Blend(context.Background(),
		"Python developer with Docker experience",
		"Looking for Python, Docker and Kubernetes skills",
	)
	require.NoError(t, err)

	assert.Equal(t, 0.7, result.Semantic)
	assert.InDelta(t, 2.0/3.0, result.SkillOverlap, 1e-12)
	assert.InDelta(t, 0.80*0.7+0.20*(2.0/3.0), result.Final, 1e-9)
	assert.Equal(t, []string{"python", "docker"}, result.MatchedSkills)
	assert.NoError(t, result.SemanticErr)

	assert.Equal(t, types.ScoreBreakdown{
		SemanticScore:     70,
		SkillOverlapScore: 66.67,
		FinalScore:        69.33,
		SemanticSource:    types.SemanticSourceEmbedding,
		MatchedSkills:     []string{"python", "docker"},
	}, result.Breakdown)
}

func TestBlend_NeutralOverlap(t *testing.T) {
	b := newBlender(fixedSemantic{score: 0.4})

	result, err := b.Blend(context.Background(), "anything", "a kind and curious teammate")
	require.NoError(t, err)
	assert.Equal(t, 0.5, result.SkillOverlap)
	assert.InDelta(t, 0.42, result.Final, 1e-9)
}

func TestBlend_FallsBackToLexical(t *testing.T) {
	b := newBlender(fixedSemantic{err: errors.New("oracle timeout")})

	result, err := b.Blend(context.Background(), "python engineer", "python engineer")
	require.NoError(t, err)

	assert.Error(t, result.SemanticErr)
	assert.Equal(t, types.SemanticSourceLexical, result.Breakdown.SemanticSource)
	assert.InDelta(t, 1.0, result.Semantic, 1e-9)
	assert.InDelta(t, Combine(result.Semantic, result.SkillOverlap), result.Final, 1e-9)
}

func TestBlend_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := newBlender(fixedSemantic{err: context.Canceled})
	_, err := b.Blend(ctx, "a", "b")
	assert.ErrorIs(t, err, context.Canceled)
}
