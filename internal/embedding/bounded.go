package embedding

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// BoundedOracle limits the number of concurrent calls into an inner oracle
// and applies a per-call timeout, so one stuck inference cannot hold up
// unrelated analyses indefinitely.
type BoundedOracle struct {
	inner   Oracle
	sem     *semaphore.Weighted
	timeout time.Duration
}

// NewBoundedOracle wraps inner. maxConcurrency <= 0 disables the bound and
// timeout <= 0 disables the per-call deadline.
func NewBoundedOracle(inner Oracle, maxConcurrency int, timeout time.Duration) *BoundedOracle {
	b := &BoundedOracle{inner: inner, timeout: timeout}
	if maxConcurrency > 0 {
		b.sem = semaphore.NewWeighted(int64(maxConcurrency))
	}
	return b
}

// Embed waits for a free slot, then calls the inner oracle under the timeout.
func (b *BoundedOracle) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	if b.sem != nil {
		if err := b.sem.Acquire(ctx, 1); err != nil {
			return nil, &EmbedError{Message: "waiting for oracle slot", Cause: err}
		}
		defer b.sem.Release(1)
	}

	type result struct {
		vectors [][]float32
		err     error
	}
	done := make(chan result, 1)
	go func() {
		vectors, err := b.inner.Embed(ctx, texts)
		done <- result{vectors, err}
	}()

	select {
	case r := <-done:
		if r.err != nil && ctx.Err() != nil {
			return nil, &EmbedError{Message: "oracle call abandoned", Cause: ctx.Err()}
		}
		return r.vectors, r.err
	case <-ctx.Done():
		return nil, &EmbedError{Message: "oracle call abandoned", Cause: ctx.Err()}
	}
}

// Close closes the inner oracle
func (b *BoundedOracle) Close() error {
	return b.inner.Close()
}
