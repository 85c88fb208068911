package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

func newTestRepo(t *testing.T) storage.ItemRepository {
	t.Helper()
	repo, _, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testItem(userID string) *core.Item {
	return &core.Item{
		UserID:      userID,
		Platform:    core.PlatformGeneric,
		ContentType: core.ContentTypeText,
		RawContent:  "some saved note",
		Categories:  []string{"Notes"},
	}
}

func TestAddAndGetItem(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	t.Run("generates id and timestamps", func(t *testing.T) {
		stored, err := repo.AddItem(ctx, testItem("user-1"))
		require.NoError(t, err)
		assert.NotEmpty(t, stored.ID)
		assert.False(t, stored.CreatedAt.IsZero())
		assert.False(t, stored.UpdatedAt.IsZero())

		got, err := repo.GetItem(ctx, stored.ID, "user-1")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, got.ID)
		assert.Equal(t, "some saved note", got.RawContent)
		assert.Equal(t, []string{"Notes"}, got.Categories)
	})

	t.Run("rejects invalid items", func(t *testing.T) {
		item := testItem("user-1")
		item.RawContent = ""
		_, err := repo.AddItem(ctx, item)
		assert.ErrorIs(t, err, core.ErrInvalidItem)
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := repo.GetItem(ctx, "nope", "user-1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("wrong user scope behaves like missing", func(t *testing.T) {
		stored, err := repo.AddItem(ctx, testItem("alice"))
		require.NoError(t, err)

		_, err = repo.GetItem(ctx, stored.ID, "bob")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestGetItems(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first, err := repo.AddItem(ctx, testItem("user-1"))
	require.NoError(t, err)
	second, err := repo.AddItem(ctx, testItem("user-1"))
	require.NoError(t, err)
	other, err := repo.AddItem(ctx, testItem("user-2"))
	require.NoError(t, err)

	items, err := repo.GetItems(ctx, []string{second.ID, "missing", other.ID, first.ID}, "user-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestListItems(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	base := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 5; i++ {
		item := testItem("user-1")
		item.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if i%2 == 0 {
			item.Platform = core.PlatformYouTube
			item.Categories = []string{"Video"}
		}
		stored, err := repo.AddItem(ctx, item)
		require.NoError(t, err)
		ids = append(ids, stored.ID)
	}

	t.Run("newest first", func(t *testing.T) {
		items, err := repo.ListItems(ctx, storage.ListQuery{UserID: "user-1"})
		require.NoError(t, err)
		require.Len(t, items, 5)
		assert.Equal(t, ids[4], items[0].ID)
		assert.Equal(t, ids[0], items[4].ID)
	})

	t.Run("limit and offset", func(t *testing.T) {
		items, err := repo.ListItems(ctx, storage.ListQuery{UserID: "user-1", Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, ids[3], items[0].ID)
		assert.Equal(t, ids[2], items[1].ID)
	})

	t.Run("platform filter", func(t *testing.T) {
		items, err := repo.ListItems(ctx, storage.ListQuery{UserID: "user-1", Platform: core.PlatformYouTube})
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("category filter", func(t *testing.T) {
		items, err := repo.ListItems(ctx, storage.ListQuery{UserID: "user-1", Category: "Notes"})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("empty scope rejected", func(t *testing.T) {
		_, err := repo.ListItems(ctx, storage.ListQuery{})
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})

	t.Run("other user sees nothing", func(t *testing.T) {
		items, err := repo.ListItems(ctx, storage.ListQuery{UserID: "stranger"})
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	stored, err := repo.AddItem(ctx, testItem("user-1"))
	require.NoError(t, err)

	t.Run("wrong scope cannot delete", func(t *testing.T) {
		assert.ErrorIs(t, repo.DeleteItem(ctx, stored.ID, "intruder"), storage.ErrNotFound)
	})

	t.Run("owner deletes item and index entry", func(t *testing.T) {
		require.NoError(t, repo.DeleteItem(ctx, stored.ID, "user-1"))

		_, err := repo.GetItem(ctx, stored.ID, "user-1")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		items, err := repo.ListItems(ctx, storage.ListQuery{UserID: "user-1"})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("deleting twice reports not found", func(t *testing.T) {
		assert.ErrorIs(t, repo.DeleteItem(ctx, stored.ID, "user-1"), storage.ErrNotFound)
	})
}

func TestCategoryCounts(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	add := func(userID string, categories ...string) {
		item := testItem(userID)
		item.Categories = categories
		_, err := repo.AddItem(ctx, item)
		require.NoError(t, err)
	}

	add("user-1", "Tech", "AI")
	add("user-1", "Tech")
	add("user-1", "Uncategorized")
	add("user-2", "Tech")

	counts, err := repo.CategoryCounts(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"Tech":          2,
		"AI":            1,
		"Uncategorized": 1,
	}, counts)
}
