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


// Package qdrant implements index.Index against Qdrant's REST API.
//
// The client assumes cosine distance, creates the collection on first
// use and maintains a keyword payload index on user_id so that scoped
// queries stay fast as the collection grows.
package qdrant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/index"
)

// DefaultCollection is the collection name used when none is configured.
const DefaultCollection = "recall_items"

const requestTimeout = 15 * time.Second

// Index is a Qdrant-backed implementation of index.Index.
type Index struct {
	client     *resty.Client
	collection string
	logger     *slog.Logger
}

var _ index.Index = (*Index)(nil)

// Option configures the Qdrant index.
type Option func(*Index)

// WithCollection overrides the collection name.
func WithCollection(name string) Option {
	return func(x *Index) {
		if name != "" {
			x.collection = name
		}
	}
}

// WithAPIKey sets the api-key header on every request.
func WithAPIKey(key string) Option {
	return func(x *Index) {
		if key != "" {
			x.client.SetHeader("api-key", key)
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(x *Index) {
		if logger != nil {
			x.logger = logger
		}
	}
}

// New creates a Qdrant index client for the given base URL, for example
// "http://localhost:6333".
func New(baseURL string, opts ...Option) *Index {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetHeader("Content-Type", "application/json")

	x := &Index{
		client:     client,
		collection: DefaultCollection,
		logger:     slog.Default().With("component", "qdrant-index"),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// EnsureReady creates the collection and the user_id payload index.
// Both calls are idempotent: Qdrant answers 200 for an existing
// collection with the same schema, and re-creating a payload index is
// a no-op.
func (x *Index) EnsureReady(ctx context.Context, dim int) error {
	if dim <= 0 {
		return fmt.Errorf("%w: dimension must be positive", index.ErrDimensionMismatch)
	}

	resp, err := x.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"vectors": map[string]any{
				"size":     dim,
				"distance": "Cosine",
			},
		}).
		Put("/collections/" + x.collection)
	if err != nil {
		return fmt.Errorf("%w: creating collection: %v", index.ErrIndexUnavailable, err)
	}
	// 409 means the collection already exists, possibly created by a
	// concurrent process. Anything else above 2xx is a real failure.
	if resp.IsError() && resp.StatusCode() != 409 {
		return fmt.Errorf("%w: creating collection: %s", index.ErrIndexUnavailable, resp.Status())
	}

	resp, err = x.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"field_name":   "user_id",
			"field_schema": "keyword",
		}).
		Put("/collections/" + x.collection + "/index")
	if err != nil {
		return fmt.Errorf("%w: creating payload index: %v", index.ErrIndexUnavailable, err)
	}
	if resp.IsError() && resp.StatusCode() != 409 {
		return fmt.Errorf("%w: creating payload index: %s", index.ErrIndexUnavailable, resp.Status())
	}

	x.logger.Debug("collection ready", "collection", x.collection, "dim", dim)
	return nil
}

// Upsert writes points and waits for them to be durable.
func (x *Index) Upsert(ctx context.Context, points []index.Point) error {
	if len(points) == 0 {
		return nil
	}

	body := make([]map[string]any, len(points))
	for i, p := range points {
		body[i] = map[string]any{
			"id":      p.ID,
			"vector":  p.Vector,
			"payload": p.Payload,
		}
	}

	resp, err := x.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"points": body}).
		SetQueryParam("wait", "true").
		Put("/collections/" + x.collection + "/points")
	if err != nil {
		return fmt.Errorf("%w: upserting points: %v", index.ErrIndexUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: upserting points: %s", index.ErrIndexUnavailable, resp.Status())
	}
	return nil
}

type searchResponse struct {
	Result []struct {
		Score   float32       `json:"score"`
		Payload index.Payload `json:"payload"`
	} `json:"result"`
}

// Query runs a filtered similarity search. The user filter is part of
// the Qdrant request, so scoring happens only over the caller's points.
func (x *Index) Query(ctx context.Context, vector []float32, opts index.QueryOptions) ([]core.SearchHit, error) {
	if opts.UserID == "" {
		return nil, index.ErrUserScopeRequired
	}

	var out searchResponse
	resp, err := x.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"vector":          vector,
			"limit":           opts.Limit,
			"score_threshold": opts.MinScore,
			"with_payload":    true,
			"filter": map[string]any{
				"must": []map[string]any{
					{"key": "user_id", "match": map[string]any{"value": opts.UserID}},
				},
			},
		}).
		SetResult(&out).
		Post("/collections/" + x.collection + "/points/search")
	if err != nil {
		return nil, fmt.Errorf("%w: searching: %v", index.ErrIndexUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: searching: %s", index.ErrIndexUnavailable, resp.Status())
	}

	hits := make([]core.SearchHit, 0, len(out.Result))
	for _, r := range out.Result {
		hits = append(hits, core.SearchHit{
			ItemID:     r.Payload.ItemID,
			UserID:     r.Payload.UserID,
			Score:      r.Score,
			Title:      r.Payload.Title,
			Categories: r.Payload.Categories,
			Platform:   core.Platform(r.Payload.Platform),
		})
	}
	return hits, nil
}

// DeleteByItem removes every point matching the item within the user
// scope.
func (x *Index) DeleteByItem(ctx context.Context, itemID, userID string) error {
	if userID == "" {
		return index.ErrUserScopeRequired
	}

	resp, err := x.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"filter": map[string]any{
				"must": []map[string]any{
					{"key": "item_id", "match": map[string]any{"value": itemID}},
					{"key": "user_id", "match": map[string]any{"value": userID}},
				},
			},
		}).
		SetQueryParam("wait", "true").
		Post("/collections/" + x.collection + "/points/delete")
	if err != nil {
		return fmt.Errorf("%w: deleting points: %v", index.ErrIndexUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: deleting points: %s", index.ErrIndexUnavailable, resp.Status())
	}
	return nil
}
