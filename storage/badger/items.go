// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

// defaultListLimit bounds listings that don't specify a limit.
const defaultListLimit = 50

// ItemRepository implements storage.ItemRepository on BadgerDB.
type ItemRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository creates an item repository over an open backend.
func NewItemRepository(backend *Backend) (*ItemRepository, error) {
	if backend == nil {
		return nil, errors.New("backend cannot be nil")
	}
	return &ItemRepository{
		backend: backend,
		logger:  slog.Default().With("component", "item-repository"),
	}, nil
}

// AddItem persists a new item and its recency index entry.
func (r *ItemRepository) AddItem(_ context.Context, item *core.Item) (*core.Item, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	if item != nil && item.ID == "" {
		item.ID = core.NewItemID()
	}
	if err := core.ValidateItem(item); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	data, err := storage.MarshalItem(item)
	if err != nil {
		return nil, err
	}

	err = r.backend.Update(func(tx *badger.Txn) error {
		if err := tx.Set(makeItemKey(item.ID), data); err != nil {
			return err
		}
		return tx.Set(makeItemUserKey(item.UserID, item.CreatedAt, item.ID), []byte(item.ID))
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("item stored", "item_id", item.ID, "user_id", item.UserID)
	return item, nil
}

// GetItem retrieves an item within the user scope. An item owned by a
// different user is reported as missing.
func (r *ItemRepository) GetItem(_ context.Context, id, userID string) (*core.Item, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var item *core.Item
	err := r.backend.View(func(tx *badger.Txn) error {
		var err error
		item, err = getItemTx(tx, id, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetItems retrieves multiple items within the user scope, preserving
// the order of ids. Missing and out-of-scope IDs are skipped.
func (r *ItemRepository) GetItems(_ context.Context, ids []string, userID string) ([]*core.Item, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	items := make([]*core.Item, 0, len(ids))
	err := r.backend.View(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := getItemTx(tx, id, userID)
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListItems walks the user's recency index newest first and applies the
// query's filters and paging.
func (r *ItemRepository) ListItems(_ context.Context, query storage.ListQuery) ([]*core.Item, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if query.UserID == "" {
		return nil, storage.ErrInvalidQuery
	}
	if query.Limit < 0 || query.Offset < 0 {
		return nil, storage.ErrInvalidQuery
	}

	limit := query.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	prefix := makeItemUserPrefix(query.UserID)
	items := make([]*core.Item, 0, limit)
	skipped := 0

	err := r.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		it := tx.NewIterator(opts)
		defer it.Close()

		// Seek past the end of the prefix range so the reverse walk
		// starts at the newest entry.
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}

			item, err := getItemTx(tx, string(id), query.UserID)
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if !matchesQuery(item, query) {
				continue
			}

			if skipped < query.Offset {
				skipped++
				continue
			}
			items = append(items, item)
			if len(items) == limit {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteItem removes an item and its index entry within the user scope.
func (r *ItemRepository) DeleteItem(_ context.Context, id, userID string) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	err := r.backend.Update(func(tx *badger.Txn) error {
		item, err := getItemTx(tx, id, userID)
		if err != nil {
			return err
		}
		if err := tx.Delete(makeItemKey(id)); err != nil {
			return err
		}
		return tx.Delete(makeItemUserKey(userID, item.CreatedAt, id))
	})
	if err != nil {
		return err
	}

	r.logger.Debug("item deleted", "item_id", id, "user_id", userID)
	return nil
}

// CategoryCounts aggregates the user's category labels.
func (r *ItemRepository) CategoryCounts(_ context.Context, userID string) (map[string]int, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if userID == "" {
		return nil, storage.ErrInvalidQuery
	}

	counts := make(map[string]int)
	prefix := makeItemUserPrefix(userID)

	err := r.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			item, err := getItemTx(tx, string(id), userID)
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			for _, category := range item.Categories {
				counts[category]++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// Close closes the underlying backend.
func (r *ItemRepository) Close() error {
	return r.backend.Close()
}

// getItemTx fetches and scope-checks an item inside a transaction.
func getItemTx(tx *badger.Txn, id, userID string) (*core.Item, error) {
	entry, err := tx.Get(makeItemKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	data, err := entry.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	item, err := storage.UnmarshalItem(data)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return item, nil
}

func matchesQuery(item *core.Item, query storage.ListQuery) bool {
	if query.Platform != "" && item.Platform != query.Platform {
		return false
	}
	if query.Category != "" {
		found := false
		for _, c := range item.Categories {
			if c == query.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
