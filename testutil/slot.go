package testutil

import (
	"context"
	"sync"
)

// slotRepo mirrors repo.SlotRepo. It is redeclared here so testutil does not
// depend on internal packages.
type slotRepo interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// FlakySlot wraps a slot repo and lets a test inject read or write failures
// and count writes per key. The zero value is not usable; use NewFlakySlot.
type FlakySlot struct {
	inner slotRepo

	mu     sync.Mutex
	getErr error
	putErr error
	puts   map[string]int
}

// NewFlakySlot wraps inner. Until FailGets/FailPuts are called every call
// passes through unchanged.
func NewFlakySlot(inner slotRepo) *FlakySlot {
	return &FlakySlot{inner: inner, puts: make(map[string]int)}
}

// FailGets makes every subsequent Get return err. Pass nil to heal.
func (f *FlakySlot) FailGets(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

// FailPuts makes every subsequent Put return err without writing. Pass nil to heal.
func (f *FlakySlot) FailPuts(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putErr = err
}

// Puts returns how many Put calls were attempted for key, failed ones included.
func (f *FlakySlot) Puts(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts[key]
}

func (f *FlakySlot) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	err := f.getErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.inner.Get(ctx, key)
}

func (f *FlakySlot) Put(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	f.puts[key]++
	err := f.putErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.inner.Put(ctx, key, value)
}
