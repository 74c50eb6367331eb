package share

import (
	"context"
	"log/slog"
	"sync"
)

// Async delivers payloads on background goroutines so callers never wait on
// the underlying sharer. Share always returns nil; delivery failures are
// logged at debug level and handed to the observer.
type Async struct {
	inner   Sharer
	logger  *slog.Logger
	observe func(kind string, err error)

	wg sync.WaitGroup
}

// NewAsync wraps inner. observe may be nil.
func NewAsync(inner Sharer, logger *slog.Logger, observe func(kind string, err error)) *Async {
	if observe == nil {
		observe = func(string, error) {}
	}
	return &Async{inner: inner, logger: logger, observe: observe}
}

// Share starts delivering p and returns immediately. The delivery outlives
// the caller's context cancellation but keeps its values.
func (a *Async) Share(ctx context.Context, p Payload) error {
	ctx = context.WithoutCancel(ctx)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		err := a.inner.Share(ctx, p)
		if err != nil {
			a.logger.DebugContext(ctx, "share delivery failed", "kind", p.Kind, "error", err)
		}
		a.observe(p.Kind, err)
	}()
	return nil
}

// Wait blocks until every started delivery has finished. main calls it on
// shutdown; tests call it before asserting.
func (a *Async) Wait() {
	a.wg.Wait()
}
