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


package reindex

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/recall/index"
	"github.com/poiesic/recall/storage"
)

// Config holds configuration for a reindexing run.
type Config struct {
	// BatchSize is the number of items fetched from the store per page.
	BatchSize int

	// ReportInterval is how often to report progress (number of items).
	ReportInterval int

	// MaxRetries is the maximum number of attempts per item.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reindexer rebuilds the vector index for one user's items.
type Reindexer struct {
	items    storage.ItemRepository
	gateway  *index.Gateway
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// NewReindexer creates a new reindexer.
// progress: where to write progress output (typically os.Stderr).
func NewReindexer(items storage.ItemRepository, gateway *index.Gateway, config *Config, progress io.Writer) (*Reindexer, error) {
	if items == nil {
		return nil, ErrItemRepositoryRequired
	}
	if gateway == nil {
		return nil, ErrGatewayRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reindexer{
		items:    items,
		gateway:  gateway,
		config:   config,
		progress: progress,
		logger:   slog.Default().With("component", "reindex"),
	}, nil
}

// Run re-embeds every item the user has saved. Each item's stale points
// are removed first, so a run also compacts duplicates left by additive
// upserts. Items that keep failing after retries are skipped and
// reported; the run continues.
func (r *Reindexer) Run(ctx context.Context, userID string) error {
	if userID == "" {
		return index.ErrUserScopeRequired
	}

	if err := r.gateway.EnsureReady(ctx); err != nil {
		return fmt.Errorf("preparing index: %w", err)
	}

	tracker := NewProgressTracker(r.progress, r.config.ReportInterval)
	var failed int

	for offset := 0; ; offset += r.config.BatchSize {
		page, err := r.items.ListItems(ctx, storage.ListQuery{
			UserID: userID,
			Limit:  r.config.BatchSize,
			Offset: offset,
		})
		if err != nil {
			return fmt.Errorf("listing items at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			break
		}

		for _, item := range page {
			item := item
			err := RetryWithBackoff(ctx, func() error {
				if err := r.gateway.DeleteItem(ctx, item.ID, userID); err != nil {
					return err
				}
				return r.gateway.UpsertItem(ctx, item)
			}, r.config.MaxRetries, r.config.RetryDelay)

			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err != nil {
				failed++
				r.logger.Warn("item skipped after retries",
					"item_id", item.ID, "err", err)
				continue
			}
			tracker.Increment(1)
		}

		if len(page) < r.config.BatchSize {
			break
		}
	}

	tracker.Finish()
	if failed > 0 {
		fmt.Fprintf(r.progress, "%d items failed and were skipped\n", failed)
	}

	r.logger.Info("reindex complete",
		"user_id", userID,
		"processed", tracker.Processed(),
		"failed", failed)
	return nil
}
