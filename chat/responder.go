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


package chat

import (
	"context"
	"log/slog"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/search"
)

const (
	// maxContextItems caps how many retrieved items enter the prompt.
	maxContextItems = 5

	// maxHistoryTurns caps how much prior conversation is replayed.
	maxHistoryTurns = 10
)

// Apology is the fixed response for any failed turn.
const Apology = "I'm sorry, I'm having trouble answering right now. Please try again in a moment."

// Responder orchestrates retrieval-grounded chat over a user's items.
type Responder struct {
	searcher *search.Searcher
	chatter  ai.Chatter
	logger   *slog.Logger
}

// Option configures a Responder.
type Option func(*Responder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Responder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewResponder creates a new chat responder.
func NewResponder(searcher *search.Searcher, chatter ai.Chatter, opts ...Option) (*Responder, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if chatter == nil {
		return nil, ErrChatterRequired
	}

	r := &Responder{
		searcher: searcher,
		chatter:  chatter,
		logger:   slog.Default().With("component", "chat"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Answer produces a reply to the user's message, grounded in their
// saved items, along with the items that informed it. Failures of any
// kind collapse to the fixed apology; Answer never returns an error.
func (r *Responder) Answer(ctx context.Context, userID, message string, history []core.ChatMessage) (string, []*core.Item) {
	if userID == "" || message == "" {
		return Apology, nil
	}

	items, err := r.searcher.Search(ctx, userID, message, maxContextItems)
	if err != nil {
		// Retrieval is best effort; answer without grounding.
		r.logger.Warn("context retrieval failed", "user_id", userID, "err", err)
		items = nil
	}

	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	reply, err := r.chatter.Respond(ctx, buildSystemPrompt(items), history, message)
	if err != nil || reply == "" {
		r.logger.Error("chat completion failed", "user_id", userID, "err", err)
		return Apology, nil
	}

	return reply, items
}
