// Package repo contains the persistence slots of the tourist guide backend.
// A slot holds one store's entire serialized snapshot under a string key;
// there are no partial writes and no streaming access.
// No business logic lives here, only I/O and key validation.
package repo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// SlotRepo defines the key/value persistence operations the stores depend on.
// Each store owns one key; the value is the store's whole encoded collection.
type SlotRepo interface {
	// Get returns the value last written under key.
	// Returns domain.ErrNotFound if nothing has been written under key yet.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put overwrites the value stored under key. Last write wins.
	Put(ctx context.Context, key string, value []byte) error
}

// ErrInvalidKey is returned when a slot key contains characters outside
// [A-Za-z0-9_-] or is empty. Keys double as file names for the file backend.
var ErrInvalidKey = errors.New("invalid slot key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// validateKey rejects keys that could escape a directory or a column limit.
func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
