// Package semantic computes dense semantic similarity between resume and job
// text through an embedding oracle.
package semantic

import (
	"context"
	"fmt"
	"sort"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// SectionTopN is the number of best sentences averaged by SectionSimilarity.
const SectionTopN = 5

// Engine scores texts with an embedding oracle.
type Engine struct {
	oracle embedding.Oracle
}

// NewEngine creates an engine. The oracle is required.
func NewEngine(oracle embedding.Oracle) (*Engine, error) {
	if oracle == nil {
		return nil, &embedding.OracleUnavailableError{Message: "semantic engine requires an embedding oracle"}
	}
	return &Engine{oracle: oracle}, nil
}

// Similarity returns the clamped cosine similarity of the two normalized
// texts. If either side normalizes to the empty string the result is 0 and
// the oracle is not called.
func (e *Engine) Similarity(ctx context.Context, a, b string) (float64, error) {
	normA := parsing.NormalizeForEmbedding(a)
	normB := parsing.NormalizeForEmbedding(b)
	if normA == "" || normB == "" {
		return 0, nil
	}

	vectors, err := e.embed(ctx, []string{normA, normB})
	if err != nil {
		return 0, err
	}
	return embedding.Cosine(vectors[0], vectors[1]), nil
}

// TopRelevantSentences ranks the sentences of document by similarity to query
// and returns at most k of them, relevance scaled to a percentage. Ties keep
// document order.
func (e *Engine) TopRelevantSentences(ctx context.Context, document, query string, k int) ([]types.SentenceRelevance, error) {
	scored, err := e.scoreSentences(ctx, document, query)
	if err != nil {
		return nil, err
	}
	if k < len(scored) {
		scored = scored[:max(k, 0)]
	}

	out := make([]types.SentenceRelevance, len(scored))
	for i, s := range scored {
		out[i] = types.SentenceRelevance{Sentence: s.text, Relevance: s.sim * 100}
	}
	return out, nil
}

// SectionSimilarity averages the similarities of the SectionTopN sentences of
// document closest to query. When no sentence survives the length filter it
// falls back to whole-document similarity.
func (e *Engine) SectionSimilarity(ctx context.Context, document, query string) (float64, error) {
	scored, err := e.scoreSentences(ctx, document, query)
	if err != nil {
		return 0, err
	}
	if len(scored) == 0 {
		return e.Similarity(ctx, document, query)
	}

	n := min(SectionTopN, len(scored))
	sum := 0.0
	for _, s := range scored[:n] {
		sum += s.sim
	}
	return sum / float64(n), nil
}

type scoredSentence struct {
	text string
	sim  float64
}

// scoreSentences returns every sentence of document with its similarity to
// query, best first.
func (e *Engine) scoreSentences(ctx context.Context, document, query string) ([]scoredSentence, error) {
	sentences := parsing.SplitSentences(document)
	normQuery := parsing.NormalizeForEmbedding(query)
	if len(sentences) == 0 || normQuery == "" {
		return []scoredSentence{}, nil
	}

	inputs := make([]string, 0, len(sentences)+1)
	inputs = append(inputs, normQuery)
	for _, s := range sentences {
		inputs = append(inputs, parsing.NormalizeForEmbedding(s))
	}

	vectors, err := e.embed(ctx, inputs)
	if err != nil {
		return nil, err
	}

	scored := make([]scoredSentence, len(sentences))
	for i, s := range sentences {
		scored[i] = scoredSentence{text: s, sim: embedding.Cosine(vectors[i+1], vectors[0])}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].sim > scored[j].sim
	})
	return scored, nil
}

func (e *Engine) embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := e.oracle.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, &embedding.EmbedError{Message: fmt.Sprintf("oracle returned %d vectors for %d texts", len(vectors), len(texts))}
	}
	return vectors, nil
}
