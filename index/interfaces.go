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


package index

import (
	"context"

	"github.com/poiesic/recall/core"
)

// Payload is the metadata stored alongside each vector. It is what a
// query can return without a second trip to the item store.
type Payload struct {
	ItemID     string   `json:"item_id"`
	UserID     string   `json:"user_id"`
	Title      string   `json:"title,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Platform   string   `json:"source_platform,omitempty"`
}

// Point is a single indexed vector. IDs are fresh UUIDs per upsert;
// re-ingesting an item adds a point rather than replacing one, and the
// payload's ItemID ties points back to the item record.
type Point struct {
	ID      string
	Vector  []float32
	Payload Payload
}

// QueryOptions scope and bound a similarity query. UserID is mandatory
// at the gateway level.
type QueryOptions struct {
	UserID   string
	Limit    int
	MinScore float32
}

// Index is a user-partitioned vector store. Implementations must apply
// the UserID filter inside the query, not post-hoc, so one tenant's
// vectors never rank against another's.
type Index interface {
	// EnsureReady prepares the backing collection for vectors of the
	// given dimension. It is idempotent.
	EnsureReady(ctx context.Context, dim int) error

	// Upsert writes points to the index.
	Upsert(ctx context.Context, points []Point) error

	// Query returns the best matches for the vector within the user
	// scope, best first, filtered by MinScore and capped at Limit.
	Query(ctx context.Context, vector []float32, opts QueryOptions) ([]core.SearchHit, error)

	// DeleteByItem removes every point whose payload references the
	// item within the user scope.
	DeleteByItem(ctx context.Context, itemID, userID string) error
}
