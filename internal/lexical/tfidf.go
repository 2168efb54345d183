// Package lexical scores sparse lexical overlap between two documents with a
// TF-IDF vector space fitted jointly over the pair.
package lexical

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// TermFeatures is the vocabulary cap used for contributing-term extraction.
	TermFeatures = 200
	// SimilarityFeatures is the vocabulary cap used for document similarity.
	SimilarityFeatures = 500
)

// Scorer builds a two-document TF-IDF space over unigrams and bigrams.
// It is stateless between calls and safe for concurrent use.
type Scorer struct {
	maxFeatures  int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewScorer creates a scorer whose vocabulary keeps the maxFeatures most
// frequent terms. maxFeatures <= 0 leaves the vocabulary uncapped.
func NewScorer(maxFeatures int) *Scorer {
	return &Scorer{
		maxFeatures:  maxFeatures,
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}_]{2,}`),
		stopwords:    defaultStopwords(),
	}
}

// Space is a fitted vector space: one L2-normalized weight vector per document.
type Space struct {
	Terms []string
	A, B  []float64
}

// Fit builds the joint vocabulary over a and b and returns their weight vectors.
// Terms are ordered alphabetically.
func (s *Scorer) Fit(a, b string) Space {
	countsA := s.termCounts(a)
	countsB := s.termCounts(b)

	total := make(map[string]int, len(countsA)+len(countsB))
	for term, n := range countsA {
		total[term] += n
	}
	for term, n := range countsB {
		total[term] += n
	}

	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if s.maxFeatures > 0 && len(terms) > s.maxFeatures {
		sort.SliceStable(terms, func(i, j int) bool {
			return total[terms[i]] > total[terms[j]]
		})
		terms = terms[:s.maxFeatures]
		sort.Strings(terms)
	}

	space := Space{
		Terms: terms,
		A:     make([]float64, len(terms)),
		B:     make([]float64, len(terms)),
	}
	const docs = 2.0
	for i, term := range terms {
		df := 0.0
		if countsA[term] > 0 {
			df++
		}
		if countsB[term] > 0 {
			df++
		}
		// Smoothed IDF
		idf := math.Log((1+docs)/(1+df)) + 1.0
		space.A[i] = float64(countsA[term]) * idf
		space.B[i] = float64(countsB[term]) * idf
	}
	normalize(space.A)
	normalize(space.B)
	return space
}

// Similarity returns the cosine similarity of the two documents' TF-IDF vectors, in [0, 1].
func (s *Scorer) Similarity(a, b string) float64 {
	space := s.Fit(a, b)
	dot := 0.0
	for i := range space.A {
		dot += space.A[i] * space.B[i]
	}
	return math.Min(1, math.Max(0, dot))
}

// TopTerms returns up to n terms weighted in both documents, ordered by the
// product of their two weights descending. Terms with zero importance are dropped.
func (s *Scorer) TopTerms(a, b string, n int) []types.TermImportance {
	if n <= 0 {
		return []types.TermImportance{}
	}
	space := s.Fit(a, b)

	terms := make([]types.TermImportance, 0)
	for i, term := range space.Terms {
		if importance := space.A[i] * space.B[i]; importance > 0 {
			terms = append(terms, types.TermImportance{Term: term, Importance: importance})
		}
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Importance > terms[j].Importance
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}

// termCounts counts unigrams and bigrams after stopword removal.
func (s *Scorer) termCounts(text string) map[string]int {
	tokens := s.tokenize(text)
	counts := make(map[string]int, len(tokens)*2)
	for i, tok := range tokens {
		counts[tok]++
		if i > 0 {
			counts[tokens[i-1]+" "+tok]++
		}
	}
	return counts
}

func (s *Scorer) tokenize(text string) []string {
	raw := s.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := s.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func normalize(vec []float64) {
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "should", "now", "we", "you", "our", "your", "they", "their", "has", "have", "had", "who", "what", "which", "all", "any", "each", "other", "some", "more", "most", "also", "not", "no", "nor", "only", "do", "does", "did",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
