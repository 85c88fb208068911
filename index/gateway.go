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
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
)

const (
	// maxIndexedText caps the searchable text handed to the embedder.
	maxIndexedText = 2000

	// DefaultMinScore filters the noise floor of degraded (digest tier)
	// vectors while keeping genuine matches.
	DefaultMinScore = 0.25

	// DefaultQueryLimit bounds queries that don't specify a limit.
	DefaultQueryLimit = 10
)

// Gateway is the single path between the pipeline and the vector index.
// It embeds text, enforces the user scope on reads and deletes, and
// applies the similarity threshold.
type Gateway struct {
	index    Index
	embedder ai.Embedder
	minScore float32
	logger   *slog.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithMinScore overrides the default similarity threshold.
func WithMinScore(score float32) GatewayOption {
	return func(g *Gateway) {
		g.minScore = score
	}
}

// WithGatewayLogger overrides the default logger.
func WithGatewayLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGateway creates a gateway over the index and embedder.
func NewGateway(index Index, embedder ai.Embedder, opts ...GatewayOption) (*Gateway, error) {
	if index == nil {
		return nil, ErrNilIndex
	}
	if embedder == nil {
		return nil, ErrNilEmbedder
	}

	g := &Gateway{
		index:    index,
		embedder: embedder,
		minScore: DefaultMinScore,
		logger:   slog.Default().With("component", "index-gateway"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// EnsureReady prepares the index for the fixed embedding dimension.
func (g *Gateway) EnsureReady(ctx context.Context) error {
	return g.index.EnsureReady(ctx, core.EmbeddingDim)
}

// UpsertItem embeds the item's searchable text and writes one fresh
// point. Upserts are additive: saving the same item again adds another
// point under a new ID, mirroring the ingest-time behavior readers of
// query results must already tolerate.
func (g *Gateway) UpsertItem(ctx context.Context, item *core.Item) error {
	if item == nil {
		return core.ErrInvalidItem
	}
	if item.UserID == "" {
		return ErrUserScopeRequired
	}

	text := core.Clip(item.SearchableText(), maxIndexedText)
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: item has no searchable text", core.ErrInvalidItem)
	}

	vector, err := g.embedder.EmbedText(ctx, text)
	if err != nil {
		return fmt.Errorf("embedding item %s: %w", item.ID, err)
	}

	point := Point{
		ID:     uuid.NewString(),
		Vector: vector,
		Payload: Payload{
			ItemID:     item.ID,
			UserID:     item.UserID,
			Title:      item.Title,
			Categories: item.Categories,
			Platform:   string(item.Platform),
		},
	}

	if err := g.index.Upsert(ctx, []Point{point}); err != nil {
		return fmt.Errorf("indexing item %s: %w", item.ID, err)
	}

	g.logger.Debug("item indexed",
		"item_id", item.ID,
		"user_id", item.UserID,
		"text_len", len(text))
	return nil
}

// Search embeds the query and runs a scoped similarity query. An empty
// userID is an error, never an unscoped search.
func (g *Gateway) Search(ctx context.Context, userID, query string, limit int) ([]core.SearchHit, error) {
	if userID == "" {
		return nil, ErrUserScopeRequired
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	vector, err := g.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := g.index.Query(ctx, vector, QueryOptions{
		UserID:   userID,
		Limit:    limit,
		MinScore: g.minScore,
	})
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	return hits, nil
}

// DeleteItem removes all index points for the item within the user
// scope.
func (g *Gateway) DeleteItem(ctx context.Context, itemID, userID string) error {
	if userID == "" {
		return ErrUserScopeRequired
	}
	return g.index.DeleteByItem(ctx, itemID, userID)
}
