package embedding

import (
	"context"
	"time"
)

// CallObserver receives the duration and outcome of every Embed call.
type CallObserver func(d time.Duration, err error)

// InstrumentedOracle reports each call on an inner oracle to an observer.
type InstrumentedOracle struct {
	inner    Oracle
	observer CallObserver
}

// NewInstrumentedOracle wraps inner; a nil observer returns inner unchanged.
func NewInstrumentedOracle(inner Oracle, observer CallObserver) Oracle {
	if observer == nil {
		return inner
	}
	return &InstrumentedOracle{inner: inner, observer: observer}
}

// Embed calls the inner oracle and reports the call.
func (o *InstrumentedOracle) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()
	vectors, err := o.inner.Embed(ctx, texts)
	o.observer(time.Since(start), err)
	return vectors, err
}

// Close closes the inner oracle
func (o *InstrumentedOracle) Close() error {
	return o.inner.Close()
}
