package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourist-guide/internal/domain"
	"github.com/pkordes/tourist-guide/internal/persist"
	"github.com/pkordes/tourist-guide/internal/repo"
	"github.com/pkordes/tourist-guide/internal/store"
	"github.com/pkordes/tourist-guide/testutil"
)

func TestSavedPlaces_DedupAndOrder(t *testing.T) {
	ctx := context.Background()
	s := store.NewSavedPlaces(nil)

	added, err := s.Add(ctx, place("p1"))
	require.NoError(t, err)
	assert.True(t, added)
	_, _ = s.Add(ctx, place("p2"))
	added, err = s.Add(ctx, place("p1"))
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, []string{"p1", "p2"}, placeIDs(s.List()))

	removed, err := s.Remove(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []string{"p2"}, placeIDs(s.List()))
}

func TestSavedPlaces_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	once := store.NewSavedPlaces(nil)
	twice := store.NewSavedPlaces(nil)

	_, _ = once.Add(ctx, place("p1"))
	_, _ = twice.Add(ctx, place("p1"))
	_, _ = twice.Add(ctx, place("p1"))

	assert.Equal(t, once.List(), twice.List())
}

func TestSavedPlaces_RemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	slot := testutil.NewFlakySlot(repo.NewMemorySlotRepo())
	s := store.NewSavedPlaces(slot)
	_, _ = s.Add(ctx, place("p1"))
	before := s.List()

	removed, err := s.Remove(ctx, "nope")

	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, before, s.List())
	assert.Equal(t, 1, slot.Puts(store.SavedPlacesKey), "no-op must not write")
}

func TestSavedPlaces_IsSavedTracksMembership(t *testing.T) {
	ctx := context.Background()
	s := store.NewSavedPlaces(nil)

	ops := []struct {
		add bool
		id  string
	}{
		{true, "a"}, {true, "b"}, {false, "a"}, {true, "a"}, {false, "c"}, {false, "b"},
	}
	for _, op := range ops {
		if op.add {
			_, _ = s.Add(ctx, place(op.id))
		} else {
			_, _ = s.Remove(ctx, op.id)
		}
		for _, id := range []string{"a", "b", "c"} {
			assert.Equal(t, contains(placeIDs(s.List()), id), s.IsSaved(id), "after %+v id=%s", op, id)
		}
	}
	assert.Equal(t, 1, s.Len())
}

func TestSavedPlaces_ListIsACopy(t *testing.T) {
	ctx := context.Background()
	s := store.NewSavedPlaces(nil)
	_, _ = s.Add(ctx, place("p1"))

	got := s.List()
	got[0].Name = "mutated"

	assert.Equal(t, "Place p1", s.List()[0].Name)
}

func TestSavedPlaces_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	slot := repo.NewMemorySlotRepo()

	s := store.NewSavedPlaces(slot)
	_, _ = s.Add(ctx, place("p1"))
	_, _ = s.Add(ctx, place("p2"))

	reopened := store.NewSavedPlaces(slot)
	require.NoError(t, reopened.Load(ctx))
	assert.Equal(t, s.List(), reopened.List())
}

func TestSavedPlaces_WriteFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	slot := testutil.NewFlakySlot(repo.NewMemorySlotRepo())
	slot.FailPuts(errors.New("disk full"))
	s := store.NewSavedPlaces(slot)

	added, err := s.Add(ctx, place("p1"))

	assert.True(t, added)
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.True(t, s.IsSaved("p1"))
}

func TestSavedPlaces_LoadCorruptStartsEmpty(t *testing.T) {
	ctx := context.Background()
	slot := repo.NewMemorySlotRepo()
	require.NoError(t, slot.Put(ctx, store.SavedPlacesKey, []byte("{oops")))
	s := store.NewSavedPlaces(slot)
	_, _ = s.Add(ctx, place("stale"))

	err := s.Load(ctx)

	require.ErrorIs(t, err, persist.ErrCorrupt)
	assert.Empty(t, s.List())
}

func TestSavedPlaces_LoadDropsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	slot := repo.NewMemorySlotRepo()
	require.NoError(t, persist.Save(ctx, slot, store.SavedPlacesKey,
		[]domain.Place{place("a"), place("b"), place("a")}))
	s := store.NewSavedPlaces(slot)

	require.NoError(t, s.Load(ctx))
	assert.Equal(t, []string{"a", "b"}, placeIDs(s.List()))
}

func TestSavedPlaces_UnpersistedLoadIsNoop(t *testing.T) {
	s := store.NewSavedPlaces(nil)
	require.NoError(t, s.Load(context.Background()))
	assert.Empty(t, s.List())
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func TestSavedPlaces_FindReturnsSavedCopy(t *testing.T) {
	ctx := context.Background()
	s := store.NewSavedPlaces(nil)
	_, _ = s.Add(ctx, place("p1"))

	got, ok := s.Find("p1")
	assert.True(t, ok)
	assert.Equal(t, place("p1"), got)

	_, ok = s.Find("p2")
	assert.False(t, ok)
}

func TestSavedPlaces_WriteOutlivesCancelledContext(t *testing.T) {
	slot := repo.NewFileSlotRepo(t.TempDir())
	s := store.NewSavedPlaces(slot)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Add(ctx, place("p1"))
	require.NoError(t, err)
	_, err = s.Add(ctx, place("p2"))
	require.NoError(t, err)
	_, err = s.Remove(ctx, "p1")
	require.NoError(t, err)

	reopened := store.NewSavedPlaces(slot)
	require.NoError(t, reopened.Load(context.Background()))
	assert.Equal(t, []string{"p2"}, placeIDs(reopened.List()))
}

func TestSavedPlaces_WriteFailureNamesKey(t *testing.T) {
	slot := testutil.NewFlakySlot(repo.NewMemorySlotRepo())
	slot.FailPuts(errors.New("disk full"))
	s := store.NewSavedPlaces(slot)

	_, err := s.Add(context.Background(), place("p1"))

	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Contains(t, err.Error(), store.SavedPlacesKey)
}
