package embedding

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite clamps to zero", []float32{1, 0}, []float32{-1, 0}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1}, []float32{1, 1}, 0},
		{"empty", nil, nil, 0},
		{"scaled", []float32{1, 1}, []float32{3, 3}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Cosine(tt.a, tt.b), 1e-6)
		})
	}
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.2))
	assert.Equal(t, 1.0, Clamp01(1.0000001))
	assert.Equal(t, 0.5, Clamp01(0.5))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
}

func TestHashingOracle_Deterministic(t *testing.T) {
	o := NewHashingOracle(256)
	ctx := context.Background()

	a, err := o.Embed(ctx, []string{"Senior Go engineer building APIs"})
	require.NoError(t, err)
	b, err := o.Embed(ctx, []string{"Senior Go engineer building APIs"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a[0], 256)
	assert.InDelta(t, 1.0, Cosine(a[0], b[0]), 1e-6)
}

func TestHashingOracle_RelatedTextsScoreHigher(t *testing.T) {
	o := NewHashingOracle(0)
	vecs, err := o.Embed(context.Background(), []string{
		"python developer with machine learning experience",
		"experienced python machine learning developer",
		"pastry chef specializing in french desserts",
	})
	require.NoError(t, err)
	require.Len(t, vecs, 3)

	related := Cosine(vecs[0], vecs[1])
	unrelated := Cosine(vecs[0], vecs[2])
	assert.Greater(t, related, unrelated)
	assert.Equal(t, DefaultHashingDimension, len(vecs[0]))
}

func TestHashingOracle_EmptyText(t *testing.T) {
	o := NewHashingOracle(32)
	vecs, err := o.Embed(context.Background(), []string{"", "words here"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, Cosine(vecs[0], vecs[1]))
}

func TestHashingOracle_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHashingOracle(8).Embed(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}

// slowOracle blocks until released and tracks peak concurrency.
type slowOracle struct {
	release  chan struct{}
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (s *slowOracle) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	select {
	case <-s.release:
		return make([][]float32, len(texts)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *slowOracle) Close() error { return nil }

func TestBoundedOracle_LimitsConcurrency(t *testing.T) {
	inner := &slowOracle{release: make(chan struct{})}
	bounded := NewBoundedOracle(inner, 2, 0)

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := bounded.Embed(context.Background(), []string{"x"})
			assert.NoError(t, err)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(inner.release)
	wg.Wait()

	assert.LessOrEqual(t, inner.peak.Load(), int32(2))
}

func TestBoundedOracle_Timeout(t *testing.T) {
	inner := &slowOracle{release: make(chan struct{})}
	bounded := NewBoundedOracle(inner, 1, 20*time.Millisecond)

	start := time.Now()
	_, err := bounded.Embed(context.Background(), []string{"x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)

	var embedErr *EmbedError
	assert.True(t, errors.As(err, &embedErr))
}

func TestNewOracle_Hashing(t *testing.T) {
	cfg := DefaultHashingConfig()
	cfg.Dimension = 64

	o, err := NewOracle(context.Background(), cfg, "")
	require.NoError(t, err)
	defer func() { _ = o.Close() }()

	_, bounded := o.(*BoundedOracle)
	assert.True(t, bounded)
	require.NoError(t, Probe(context.Background(), o, cfg.Provider))
}

func TestNewOracle_GeminiRequiresKey(t *testing.T) {
	_, err := NewOracle(context.Background(), DefaultConfig(), "")
	require.Error(t, err)

	var unavailable *OracleUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, ProviderGemini, unavailable.Provider)
}

func TestNewOracle_UnknownProvider(t *testing.T) {
	_, err := NewOracle(context.Background(), &Config{Provider: "word2vec"}, "")
	var unavailable *OracleUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Contains(t, err.Error(), "unknown provider")
}

type failingOracle struct{}

func (failingOracle) Embed(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("quota exceeded")
}
func (failingOracle) Close() error { return nil }

func TestProbe(t *testing.T) {
	err := Probe(context.Background(), failingOracle{}, ProviderGemini)
	var unavailable *OracleUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Contains(t, err.Error(), "quota exceeded")

	err = Probe(context.Background(), nil, ProviderGemini)
	require.ErrorAs(t, err, &unavailable)
}

func TestConfig_WithModel(t *testing.T) {
	base := DefaultConfig()
	changed := base.WithModel("embedding-001")

	assert.Equal(t, DefaultGeminiModel, base.Model)
	assert.Equal(t, "embedding-001", changed.Model)
	assert.Equal(t, base.Provider, changed.Provider)
}

func TestInstrumentedOracle(t *testing.T) {
	var calls int
	var lastErr error
	o := NewInstrumentedOracle(failingOracle{}, func(_ time.Duration, err error) {
		calls++
		lastErr = err
	})

	_, err := o.Embed(context.Background(), []string{"x"})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, err, lastErr)

	inner := NewHashingOracle(4)
	assert.Same(t, inner, NewInstrumentedOracle(inner, nil))
}
