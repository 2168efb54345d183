package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// HashingOracle is a deterministic embedder that hashes word unigrams and
// bigrams into a fixed number of buckets, using sublinear term frequency and
// L2 normalization. It needs no network access and is used offline and in tests.
type HashingOracle struct {
	dim int
}

// NewHashingOracle creates a hashing oracle; dim <= 0 uses DefaultHashingDimension.
func NewHashingOracle(dim int) *HashingOracle {
	if dim <= 0 {
		dim = DefaultHashingDimension
	}
	return &HashingOracle{dim: dim}
}

// Dimension returns the vector size
func (o *HashingOracle) Dimension() int {
	return o.dim
}

// Embed encodes each text. An empty text yields the zero vector.
func (o *HashingOracle) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectors[i] = o.embedOne(text)
	}
	return vectors, nil
}

// Close is a no-op
func (o *HashingOracle) Close() error {
	return nil
}

func (o *HashingOracle) embedOne(text string) []float32 {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	counts := make(map[int]float64)
	for i, tok := range tokens {
		counts[o.bucket(tok)]++
		if i > 0 {
			counts[o.bucket(tokens[i-1]+" "+tok)]++
		}
	}

	vec := make([]float32, o.dim)
	var norm float64
	for idx, tf := range counts {
		w := 1 + math.Log(tf)
		vec[idx] = float32(w)
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}

func (o *HashingOracle) bucket(feature string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(feature))
	return int(h.Sum32() % uint32(o.dim))
}
