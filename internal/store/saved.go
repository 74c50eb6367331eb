// Package store holds the two in-memory collections of the tourist guide:
// saved places and diary entries. Each store is the authoritative state for
// the running process and mirrors its whole collection to a persistence slot
// after every mutation that changes it.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/pkordes/tourist-guide/internal/domain"
	"github.com/pkordes/tourist-guide/internal/persist"
	"github.com/pkordes/tourist-guide/internal/repo"
)

// SavedPlacesKey is the slot key holding the saved-places snapshot.
const SavedPlacesKey = "savedPlaces"

// SavedPlaces is a deduplicated, insertion-ordered set of bookmarked places.
// At most one entry exists per place ID.
type SavedPlaces struct {
	mu     sync.RWMutex
	places []domain.Place
	codec  *persist.Codec[domain.Place] // nil when not persisted
}

// NewSavedPlaces returns an empty store that persists to slot.
// Pass a nil slot to keep the store in memory only.
func NewSavedPlaces(slot repo.SlotRepo) *SavedPlaces {
	s := &SavedPlaces{places: []domain.Place{}}
	if slot != nil {
		s.codec = persist.New[domain.Place](slot, SavedPlacesKey)
	}
	return s
}

// Load replaces the in-memory state with the persisted snapshot. It is meant
// to run once at start-up. On a read or decode failure the store is left empty
// and the error is returned for logging only.
func (s *SavedPlaces) Load(ctx context.Context) error {
	if s.codec == nil {
		return nil
	}
	places, err := s.codec.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.places = dedupePlaces(places)
	if err != nil {
		return fmt.Errorf("store.SavedPlaces.Load %s: %w", s.codec.Key(), err)
	}
	return nil
}

// List returns a copy of the saved places in insertion order.
func (s *SavedPlaces) List() []domain.Place {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Place{}, s.places...)
}

// IsSaved reports whether a place with id is saved.
func (s *SavedPlaces) IsSaved(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// Find returns the saved copy of the place with id, if present.
func (s *SavedPlaces) Find(id string) (domain.Place, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Place{}, false
	}
	return s.places[i], true
}

// Len returns the number of saved places.
func (s *SavedPlaces) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.places)
}

// Add appends a copy of place unless one with the same ID is already saved.
// It reports whether the place was added. A non-nil error wraps
// domain.ErrPersistence: the place is saved in memory but the snapshot write failed.
func (s *SavedPlaces) Add(ctx context.Context, place domain.Place) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(place.ID) >= 0 {
		return false, nil
	}
	s.places = append(s.places, place)
	return true, s.persist(ctx)
}

// Remove deletes the place with id. Removing an absent id is a no-op and
// writes nothing. Errors are as for Add.
func (s *SavedPlaces) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.places = slices.Delete(s.places, i, i+1)
	return true, s.persist(ctx)
}

func (s *SavedPlaces) indexOf(id string) int {
	return slices.IndexFunc(s.places, func(p domain.Place) bool { return p.ID == id })
}

// persist writes the whole collection. Callers hold s.mu so snapshots reach
// the slot in mutation order.
func (s *SavedPlaces) persist(ctx context.Context) error {
	if s.codec == nil {
		return nil
	}
	wctx, cancel := writeContext(ctx)
	defer cancel()
	if err := s.codec.Save(wctx, s.places); err != nil {
		return fmt.Errorf("store.SavedPlaces %s: %w: %w", s.codec.Key(), domain.ErrPersistence, err)
	}
	return nil
}

// dedupePlaces keeps the first occurrence of each ID. A hand-edited or
// partially corrupted snapshot must not break the set invariant.
func dedupePlaces(in []domain.Place) []domain.Place {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.Place, 0, len(in))
	for _, p := range in {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
