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


package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/index"
	"github.com/poiesic/recall/storage"
)

const (
	// DefaultLimit bounds searches that don't specify a limit.
	DefaultLimit = 10

	// fallbackScanLimit caps how many recent items the keyword
	// fallback inspects.
	fallbackScanLimit = 200
)

// Searcher retrieves a user's items by semantic similarity with a
// keyword fallback.
type Searcher struct {
	items   storage.ItemRepository
	gateway *index.Gateway
	logger  *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(items storage.ItemRepository, gateway *index.Gateway, opts ...Option) (*Searcher, error) {
	if items == nil {
		return nil, ErrItemRepositoryRequired
	}
	if gateway == nil {
		return nil, ErrGatewayRequired
	}

	s := &Searcher{
		items:   items,
		gateway: gateway,
		logger:  slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search returns up to limit of the user's items matching the query,
// best match first. A blank query returns nothing. Index or embedding
// failures degrade to the keyword path; Search only errors on an empty
// user scope or a storage failure.
func (s *Searcher) Search(ctx context.Context, userID, query string, limit int) ([]*core.Item, error) {
	if userID == "" {
		return nil, index.ErrUserScopeRequired
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	items, err := s.semantic(ctx, userID, query, limit)
	if err != nil {
		s.logger.Warn("semantic search unavailable, falling back to keywords",
			"user_id", userID, "err", err)
	}
	if len(items) > 0 {
		return items, nil
	}

	return s.keywordFallback(ctx, userID, query, limit)
}

// semantic runs the vector path: gateway query, item ID dedup, scoped
// hydration.
func (s *Searcher) semantic(ctx context.Context, userID, query string, limit int) ([]*core.Item, error) {
	hits, err := s.gateway.Search(ctx, userID, query, limit*2)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}

	// Additive upserts mean one item can own several points; keep the
	// best-ranked occurrence of each.
	seen := make(map[string]bool, len(hits))
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		if seen[hit.ItemID] {
			continue
		}
		seen[hit.ItemID] = true
		ids = append(ids, hit.ItemID)
		if len(ids) == limit {
			break
		}
	}

	return s.items.GetItems(ctx, ids, userID)
}

// keywordFallback scans the user's recent items for query words in
// title, description, extracted text, categories or platform.
func (s *Searcher) keywordFallback(ctx context.Context, userID, query string, limit int) ([]*core.Item, error) {
	recent, err := s.items.ListItems(ctx, storage.ListQuery{
		UserID: userID,
		Limit:  fallbackScanLimit,
	})
	if err != nil {
		return nil, err
	}

	matches := make([]*core.Item, 0, limit)
	for _, item := range recent {
		if matchesItem(item, query) {
			matches = append(matches, item)
			if len(matches) == limit {
				break
			}
		}
	}

	s.logger.Debug("keyword fallback served query",
		"user_id", userID, "matches", len(matches))
	return matches, nil
}

func matchesItem(item *core.Item, query string) bool {
	var sb strings.Builder
	sb.WriteString(item.Title)
	sb.WriteByte(' ')
	sb.WriteString(item.Description)
	sb.WriteByte(' ')
	sb.WriteString(item.ExtractedText)
	sb.WriteByte(' ')
	sb.WriteString(item.Notes)
	sb.WriteByte(' ')
	sb.WriteString(string(item.Platform))
	for _, c := range item.Categories {
		sb.WriteByte(' ')
		sb.WriteString(c)
	}
	return matchesAnyQueryWord(sb.String(), query)
}
