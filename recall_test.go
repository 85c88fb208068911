package recall

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/chat"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

func openTest(t *testing.T) *Recall {
	t.Helper()
	r, err := Open("", WithInMemory(), WithOffline())
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestOfflineLifecycle(t *testing.T) {
	ctx := context.Background()
	r := openTest(t)

	saved, err := r.Save(ctx, "user-1", &core.Submission{
		Content: "how to tune badger garbage collection",
		Notes:   "for the storage migration",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{ai.OfflineCategory}, saved.Categories)

	t.Run("list and categories", func(t *testing.T) {
		items, err := r.List(ctx, storage.ListQuery{UserID: "user-1"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, saved.ID, items[0].ID)

		counts, err := r.Categories(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{ai.OfflineCategory: 1}, counts)
	})

	t.Run("search round trip", func(t *testing.T) {
		items, err := r.Search(ctx, "user-1", "badger", 10)
		require.NoError(t, err)
		require.NotEmpty(t, items)
		assert.Equal(t, saved.ID, items[0].ID)
	})

	t.Run("chat degrades to apology offline", func(t *testing.T) {
		reply, _ := r.Chat(ctx, "user-1", "what did I save?", nil)
		assert.Equal(t, chat.Apology, reply)
	})

	t.Run("reindex", func(t *testing.T) {
		require.NoError(t, r.Reindex(ctx, "user-1", nil))

		items, err := r.Search(ctx, "user-1", "badger", 10)
		require.NoError(t, err)
		assert.NotEmpty(t, items)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, r.Delete(ctx, saved.ID, "user-1"))

		items, err := r.List(ctx, storage.ListQuery{UserID: "user-1"})
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestDeleteWrongScope(t *testing.T) {
	ctx := context.Background()
	r := openTest(t)

	saved, err := r.Save(ctx, "alice", &core.Submission{Content: "private note"})
	require.NoError(t, err)

	assert.ErrorIs(t, r.Delete(ctx, saved.ID, "bob"), storage.ErrNotFound)

	items, err := r.List(ctx, storage.ListQuery{UserID: "alice"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
