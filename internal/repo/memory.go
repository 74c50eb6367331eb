package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkordes/tourist-guide/internal/domain"
)

// memorySlotRepo keeps slot values in a map. Nothing survives a restart;
// it backs the "memory" storage backend and unit tests.
type memorySlotRepo struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemorySlotRepo constructs an empty in-memory SlotRepo.
func NewMemorySlotRepo() SlotRepo {
	return &memorySlotRepo{values: make(map[string][]byte)}
}

func (r *memorySlotRepo) Get(_ context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, fmt.Errorf("repo.MemorySlotRepo.Get: %w", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return nil, fmt.Errorf("repo.MemorySlotRepo.Get: %w", domain.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (r *memorySlotRepo) Put(_ context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return fmt.Errorf("repo.MemorySlotRepo.Put: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = append([]byte(nil), value...)
	return nil
}
