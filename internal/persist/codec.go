// Package persist is the codec between a store's in-memory collection and its
// persistence slot. A collection is always written and read whole: the value
// under a key is the JSON array of every entry, in store order.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pkordes/tourist-guide/internal/domain"
	"github.com/pkordes/tourist-guide/internal/repo"
)

// ErrCorrupt is returned by Load when the slot holds bytes that do not decode
// as a JSON array of entries.
var ErrCorrupt = errors.New("corrupt snapshot")

// Save encodes entries as a JSON array and overwrites the slot under key.
// A nil collection is written as [] so a later Load never sees null.
func Save[T any](ctx context.Context, slot repo.SlotRepo, key string, entries []T) error {
	if entries == nil {
		entries = []T{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("persist.Save %s: encode: %w", key, err)
	}
	if err := slot.Put(ctx, key, b); err != nil {
		return fmt.Errorf("persist.Save %s: %w", key, err)
	}
	return nil
}

// Load reads and decodes the collection stored under key.
//
// It fails open: the returned slice is always non-nil. A key that was never
// written yields an empty slice and a nil error (fresh install). An unreadable
// slot or a payload that does not decode yields an empty slice and an error
// describing why, which callers log and otherwise ignore.
func Load[T any](ctx context.Context, slot repo.SlotRepo, key string) ([]T, error) {
	b, err := slot.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []T{}, nil
		}
		return []T{}, fmt.Errorf("persist.Load %s: %w", key, err)
	}

	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return []T{}, fmt.Errorf("persist.Load %s: %w: %w", key, ErrCorrupt, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Codec binds Save and Load to one slot and key, which is how each store
// holds on to its persistence.
type Codec[T any] struct {
	slot repo.SlotRepo
	key  string
}

// New returns a Codec for the collection stored under key in slot.
func New[T any](slot repo.SlotRepo, key string) *Codec[T] {
	return &Codec[T]{slot: slot, key: key}
}

// Key returns the slot key the codec writes to.
func (c *Codec[T]) Key() string { return c.key }

// Save writes entries under the codec's key. See the package-level Save.
func (c *Codec[T]) Save(ctx context.Context, entries []T) error {
	return Save(ctx, c.slot, c.key, entries)
}

// Load reads the codec's key. See the package-level Load.
func (c *Codec[T]) Load(ctx context.Context) ([]T, error) {
	return Load[T](ctx, c.slot, c.key)
}
