package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourist-guide/internal/domain"
	"github.com/pkordes/tourist-guide/internal/repo"
)

// runSlotContract exercises the behaviour every SlotRepo implementation must
// share. Each backend's test file calls it with its own constructor.
func runSlotContract(t *testing.T, newRepo func(t *testing.T) repo.SlotRepo) {
	t.Run("GetMissingKey", func(t *testing.T) {
		r := newRepo(t)

		_, err := r.Get(context.Background(), "never-written")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("PutThenGet", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.Put(ctx, "diaryEntries", []byte(`[{"id":"1"}]`)))

		got, err := r.Get(ctx, "diaryEntries")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, string(got))
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.Put(ctx, "savedPlaces", []byte(`["first"]`)))
		require.NoError(t, r.Put(ctx, "savedPlaces", []byte(`["second"]`)))

		got, err := r.Get(ctx, "savedPlaces")
		require.NoError(t, err)
		assert.Equal(t, `["second"]`, string(got), "last write must win")
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.Put(ctx, "a", []byte("1")))
		require.NoError(t, r.Put(ctx, "b", []byte("2")))

		a, err := r.Get(ctx, "a")
		require.NoError(t, err)
		b, err := r.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "1", string(a))
		assert.Equal(t, "2", string(b))
	})

	t.Run("EmptyValue", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		require.NoError(t, r.Put(ctx, "empty", []byte{}))

		got, err := r.Get(ctx, "empty")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("InvalidKey", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		for _, key := range []string{"", "../escape", "with space", "a/b"} {
			assert.ErrorIs(t, r.Put(ctx, key, []byte("x")), repo.ErrInvalidKey, "key %q", key)
			_, err := r.Get(ctx, key)
			assert.ErrorIs(t, err, repo.ErrInvalidKey, "key %q", key)
		}
	})
}
