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


package storage

import (
	"context"

	"github.com/poiesic/recall/core"
)

// ListQuery filters and pages a listing. Zero values mean "no filter",
// a zero Limit applies the implementation default.
type ListQuery struct {
	UserID   string
	Category string
	Platform core.Platform
	Limit    int
	Offset   int
}

// ItemRepository provides operations for managing saved items.
// Implementations must be thread-safe and support concurrent access.
type ItemRepository interface {
	// AddItem persists a new item. Generates the ID if unset and stamps
	// CreatedAt/UpdatedAt. Returns the stored item.
	AddItem(ctx context.Context, item *core.Item) (*core.Item, error)

	// GetItem retrieves a single item within the user scope.
	// Returns ErrNotFound if the item doesn't exist or belongs to
	// another user.
	GetItem(ctx context.Context, id, userID string) (*core.Item, error)

	// GetItems retrieves multiple items within the user scope, in the
	// order of the given IDs. Missing or out-of-scope items are
	// silently skipped.
	GetItems(ctx context.Context, ids []string, userID string) ([]*core.Item, error)

	// ListItems returns the user's items newest first, after applying
	// the query's filters and paging.
	ListItems(ctx context.Context, query ListQuery) ([]*core.Item, error)

	// DeleteItem removes an item within the user scope.
	// Returns ErrNotFound if the item doesn't exist or belongs to
	// another user.
	DeleteItem(ctx context.Context, id, userID string) error

	// CategoryCounts returns the user's category labels with the number
	// of items carrying each.
	CategoryCounts(ctx context.Context, userID string) (map[string]int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
