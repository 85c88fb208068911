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


// Package recall saves arbitrary content per user, annotates it with an
// LLM, indexes it in a vector store and answers free-text search and
// chat queries over it. This file is the facade tying the subsystems
// together; the subpackages are usable on their own.
package recall

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/ai/openai"
	"github.com/poiesic/recall/chat"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/extract"
	"github.com/poiesic/recall/index"
	"github.com/poiesic/recall/index/memory"
	"github.com/poiesic/recall/index/qdrant"
	"github.com/poiesic/recall/ingestion"
	"github.com/poiesic/recall/reindex"
	"github.com/poiesic/recall/search"
	"github.com/poiesic/recall/storage"
	"github.com/poiesic/recall/storage/badger"
)

// Recall owns the storage backend, the AI provider, the vector index
// and the orchestrators built on them.
type Recall struct {
	items     storage.ItemRepository
	provider  ai.Provider
	gateway   *index.Gateway
	pipeline  *ingestion.Pipeline
	searcher  *search.Searcher
	responder *chat.Responder
	logger    *slog.Logger
}

// Option configures Open.
type Option func(*options)

type options struct {
	aiConfig   *ai.Config
	offline    bool
	inMemory   bool
	qdrantURL  string
	collection string
	qdrantKey  string
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) Option {
	return func(o *options) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithOffline disables all AI services: digest embeddings only, no
// annotation, no chat.
func WithOffline() Option {
	return func(o *options) {
		o.offline = true
	}
}

// WithInMemory keeps the item store off disk. Used by tests and
// throwaway sessions.
func WithInMemory() Option {
	return func(o *options) {
		o.inMemory = true
	}
}

// WithQdrant points the vector index at a Qdrant server instead of the
// in-process index. collection and apiKey may be empty for defaults.
func WithQdrant(url, collection, apiKey string) Option {
	return func(o *options) {
		o.qdrantURL = url
		o.collection = collection
		o.qdrantKey = apiKey
	}
}

// Open builds the full system rooted at the given item database path.
func Open(dbPath string, opts ...Option) (*Recall, error) {
	o := &options{aiConfig: ai.DefaultConfig()}
	for _, opt := range opts {
		opt(o)
	}

	backend, err := badger.OpenBackend(dbPath, o.inMemory)
	if err != nil {
		return nil, err
	}

	items, err := badger.NewItemRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	var provider ai.Provider
	if o.offline {
		provider = ai.NewOfflineProvider()
	} else {
		provider, err = openai.NewProvider(o.aiConfig)
		if err != nil {
			items.Close()
			return nil, err
		}
	}

	var idx index.Index
	if o.qdrantURL != "" {
		idx = qdrant.New(o.qdrantURL,
			qdrant.WithCollection(o.collection),
			qdrant.WithAPIKey(o.qdrantKey))
	} else {
		idx = memory.New()
	}

	gateway, err := index.NewGateway(idx, provider.Embedder())
	if err != nil {
		provider.Close()
		items.Close()
		return nil, err
	}

	logger := slog.Default().With("component", "recall")

	// A dead index at startup only degrades search; saves keep working
	// and a later reindex run catches the items up.
	if err := gateway.EnsureReady(context.Background()); err != nil {
		logger.Warn("vector index not ready, continuing degraded", "err", err)
	}

	pipeline, err := ingestion.NewPipeline(items, gateway, provider.Annotator(), extract.NewExtractor())
	if err != nil {
		provider.Close()
		items.Close()
		return nil, err
	}

	searcher, err := search.NewSearcher(items, gateway)
	if err != nil {
		pipeline.Release()
		provider.Close()
		items.Close()
		return nil, err
	}

	responder, err := chat.NewResponder(searcher, provider.Chatter())
	if err != nil {
		pipeline.Release()
		provider.Close()
		items.Close()
		return nil, err
	}

	return &Recall{
		items:     items,
		provider:  provider,
		gateway:   gateway,
		pipeline:  pipeline,
		searcher:  searcher,
		responder: responder,
		logger:    logger,
	}, nil
}

// Save ingests one submission for the user.
func (r *Recall) Save(ctx context.Context, userID string, sub *core.Submission) (*core.Item, error) {
	return r.pipeline.Save(ctx, userID, sub)
}

// SaveBatch ingests submissions in parallel for the user.
func (r *Recall) SaveBatch(ctx context.Context, userID string, subs []*core.Submission) ([]*core.Item, error) {
	return r.pipeline.SaveBatch(ctx, userID, subs)
}

// SaveImage stores an image item referencing an uploaded blob.
func (r *Recall) SaveImage(ctx context.Context, userID, imageURL, notes string) (*core.Item, error) {
	return r.pipeline.SaveImage(ctx, userID, imageURL, notes)
}

// Search returns the user's items matching the query.
func (r *Recall) Search(ctx context.Context, userID, query string, limit int) ([]*core.Item, error) {
	return r.searcher.Search(ctx, userID, query, limit)
}

// Chat answers a message grounded in the user's saved items.
func (r *Recall) Chat(ctx context.Context, userID, message string, history []core.ChatMessage) (string, []*core.Item) {
	return r.responder.Answer(ctx, userID, message, history)
}

// List returns the user's items newest first.
func (r *Recall) List(ctx context.Context, query storage.ListQuery) ([]*core.Item, error) {
	return r.items.ListItems(ctx, query)
}

// Categories returns the user's category labels with item counts.
func (r *Recall) Categories(ctx context.Context, userID string) (map[string]int, error) {
	return r.items.CategoryCounts(ctx, userID)
}

// Delete removes an item from the store and its points from the index.
func (r *Recall) Delete(ctx context.Context, id, userID string) error {
	if err := r.items.DeleteItem(ctx, id, userID); err != nil {
		return err
	}
	if err := r.gateway.DeleteItem(ctx, id, userID); err != nil {
		// The record is gone; orphaned points only cost a wasted
		// hydration attempt and disappear on the next reindex.
		r.logger.Warn("index cleanup failed", "item_id", id, "err", err)
	}
	return nil
}

// Reindex rebuilds the user's vector index from the item store,
// writing progress to the given writer.
func (r *Recall) Reindex(ctx context.Context, userID string, progress io.Writer) error {
	reindexer, err := reindex.NewReindexer(r.items, r.gateway, nil, progress)
	if err != nil {
		return err
	}
	return reindexer.Run(ctx, userID)
}

// Close tears the system down.
func (r *Recall) Close() error {
	r.pipeline.Release()
	if err := r.provider.Close(); err != nil {
		r.logger.Error("error closing AI provider", "err", err)
	}
	return r.items.Close()
}
