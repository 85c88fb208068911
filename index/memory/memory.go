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


// Package memory provides an in-process vector index for tests and
// single-process deployments. Vectors are held in a map and scanned
// linearly with cosine similarity, which is fine at the scale of a
// personal content library.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/index"
)

// Index is an in-memory implementation of index.Index. Safe for
// concurrent use.
type Index struct {
	mu     sync.RWMutex
	dim    int
	points map[string]index.Point
}

var _ index.Index = (*Index)(nil)

// New creates an empty in-memory index.
func New() *Index {
	return &Index{points: make(map[string]index.Point)}
}

// EnsureReady records the vector dimension. Idempotent.
func (x *Index) EnsureReady(_ context.Context, dim int) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.dim = dim
	return nil
}

// Upsert stores points keyed by their IDs.
func (x *Index) Upsert(_ context.Context, points []index.Point) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, p := range points {
		if x.dim != 0 && len(p.Vector) != x.dim {
			return index.ErrDimensionMismatch
		}
		x.points[p.ID] = p
	}
	return nil
}

// Query scans the user's points and returns them best first.
func (x *Index) Query(_ context.Context, vector []float32, opts index.QueryOptions) ([]core.SearchHit, error) {
	if opts.UserID == "" {
		return nil, index.ErrUserScopeRequired
	}
	if x.dim != 0 && len(vector) != x.dim {
		return nil, index.ErrDimensionMismatch
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	hits := make([]core.SearchHit, 0)
	for _, p := range x.points {
		if p.Payload.UserID != opts.UserID {
			continue
		}
		score := cosine(vector, p.Vector)
		if score < opts.MinScore {
			continue
		}
		hits = append(hits, core.SearchHit{
			ItemID:     p.Payload.ItemID,
			UserID:     p.Payload.UserID,
			Score:      score,
			Title:      p.Payload.Title,
			Categories: p.Payload.Categories,
			Platform:   core.Platform(p.Payload.Platform),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if opts.Limit > 0 && len(hits) > opts.Limit {
		hits = hits[:opts.Limit]
	}
	return hits, nil
}

// DeleteByItem drops every point referencing the item in the user scope.
func (x *Index) DeleteByItem(_ context.Context, itemID, userID string) error {
	if userID == "" {
		return index.ErrUserScopeRequired
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	for id, p := range x.points {
		if p.Payload.ItemID == itemID && p.Payload.UserID == userID {
			delete(x.points, id)
		}
	}
	return nil
}

// Len reports the number of stored points. Exposed for tests.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.points)
}

func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
