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

// DiaryKey is the slot key holding the diary snapshot.
const DiaryKey = "diaryEntries"

// maxIDAttempts bounds how many times Add redraws an ID that collides with an
// existing entry before giving up.
const maxIDAttempts = 16

// Diary is the list of diary entries, newest first. New entries are prepended
// and that order is the only ordering; updates never move an entry.
type Diary struct {
	ids IDGenerator

	mu      sync.RWMutex
	entries []domain.DiaryEntry
	codec   *persist.Codec[domain.DiaryEntry] // nil when not persisted
}

// NewDiary returns an empty diary that persists to slot and draws entry IDs
// from ids. A nil slot keeps the diary in memory; a nil ids uses UUIDGenerator.
func NewDiary(slot repo.SlotRepo, ids IDGenerator) *Diary {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	d := &Diary{ids: ids, entries: []domain.DiaryEntry{}}
	if slot != nil {
		d.codec = persist.New[domain.DiaryEntry](slot, DiaryKey)
	}
	return d
}

// Load replaces the in-memory state with the persisted snapshot. Entries
// without an ID and repeats of an earlier ID are dropped, and ratings are
// clamped to MinRating..MaxRating. On a read or decode failure the diary is
// left empty and the error is returned for logging.
func (d *Diary) Load(ctx context.Context) error {
	if d.codec == nil {
		return nil
	}
	entries, err := d.codec.Load(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = sanitizeEntries(entries)
	if err != nil {
		return fmt.Errorf("store.Diary.Load %s: %w", d.codec.Key(), err)
	}
	return nil
}

// List returns a copy of all entries, newest first.
func (d *Diary) List() []domain.DiaryEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.DiaryEntry{}, d.entries...)
}

// Page returns one page of entries, newest first, and the total entry count.
func (d *Diary) Page(p domain.PaginationParams) ([]domain.DiaryEntry, int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	lo, hi := p.Bounds(len(d.entries))
	return append([]domain.DiaryEntry{}, d.entries[lo:hi]...), len(d.entries)
}

// FindByID returns the entry with id, if present.
func (d *Diary) FindByID(id string) (domain.DiaryEntry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i := d.indexOf(id)
	if i < 0 {
		return domain.DiaryEntry{}, false
	}
	return d.entries[i], true
}

// Add assigns a fresh ID to draft and prepends the resulting entry.
// The created entry is returned even when the error wraps
// domain.ErrPersistence, since the entry is in the diary regardless.
func (d *Diary) Add(ctx context.Context, draft domain.DiaryDraft) (domain.DiaryEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id, err := d.freshID()
	if err != nil {
		return domain.DiaryEntry{}, fmt.Errorf("store.Diary.Add: %w", err)
	}
	e := domain.DiaryEntry{
		ID:          id,
		Place:       draft.Place,
		Description: draft.Description,
		Rating:      draft.Rating,
	}
	d.entries = slices.Insert(d.entries, 0, e)
	return e, d.persist(ctx)
}

// Update merges patch into the entry with id and returns the result. The entry
// keeps its position. Returns domain.ErrNotFound, changing nothing, when id is
// absent. A patch that leaves the entry unchanged writes nothing.
func (d *Diary) Update(ctx context.Context, id string, patch domain.DiaryPatch) (domain.DiaryEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(id)
	if i < 0 {
		return domain.DiaryEntry{}, fmt.Errorf("store.Diary.Update: %w", domain.ErrNotFound)
	}
	updated := patch.Apply(d.entries[i])
	if updated == d.entries[i] {
		return updated, nil
	}
	d.entries[i] = updated
	return updated, d.persist(ctx)
}

// Remove deletes the entry with id and reports whether it existed. Removing an
// absent id is a no-op and writes nothing.
func (d *Diary) Remove(ctx context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.indexOf(id)
	if i < 0 {
		return false, nil
	}
	d.entries = slices.Delete(d.entries, i, i+1)
	return true, d.persist(ctx)
}

// Len returns the number of entries.
func (d *Diary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

func (d *Diary) indexOf(id string) int {
	return slices.IndexFunc(d.entries, func(e domain.DiaryEntry) bool { return e.ID == id })
}

// freshID draws IDs until one is unused. Caller holds d.mu.
func (d *Diary) freshID() (string, error) {
	for range maxIDAttempts {
		id := d.ids.NewID()
		if id != "" && d.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("no unused id after %d attempts", maxIDAttempts)
}

// persist writes the whole diary. Caller holds d.mu.
func (d *Diary) persist(ctx context.Context) error {
	if d.codec == nil {
		return nil
	}
	wctx, cancel := writeContext(ctx)
	defer cancel()
	if err := d.codec.Save(wctx, d.entries); err != nil {
		return fmt.Errorf("store.Diary %s: %w: %w", d.codec.Key(), domain.ErrPersistence, err)
	}
	return nil
}

// sanitizeEntries keeps the first entry per non-empty ID and clamps ratings.
func sanitizeEntries(in []domain.DiaryEntry) []domain.DiaryEntry {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.DiaryEntry, 0, len(in))
	for _, e := range in {
		if _, ok := seen[e.ID]; ok || e.ID == "" {
			continue
		}
		seen[e.ID] = struct{}{}
		e.Rating = min(max(e.Rating, domain.MinRating), domain.MaxRating)
		out = append(out, e)
	}
	return out
}
