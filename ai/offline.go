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


package ai

import (
	"context"
	"errors"

	"github.com/poiesic/recall/core"
)

// ErrChatUnavailable is returned by the offline chatter; conversation
// needs a reachable model, there is no digest-tier equivalent.
var ErrChatUnavailable = errors.New("chat requires a configured AI provider")

// OfflineCategory is the single label the offline annotator assigns.
const OfflineCategory = "Uncategorized"

// OfflineProvider is a Provider that works with no AI service at all:
// digest embeddings, fallback-only annotation, no chat. Saving and
// searching stay functional on an air-gapped machine.
type OfflineProvider struct {
	embedder *HashEmbedder
}

var _ Provider = (*OfflineProvider)(nil)

// NewOfflineProvider creates a provider requiring no external services.
func NewOfflineProvider() *OfflineProvider {
	return &OfflineProvider{embedder: NewHashEmbedder()}
}

// Embedder returns the digest-tier embedder.
func (p *OfflineProvider) Embedder() Embedder {
	return p.embedder
}

// Annotator returns an annotator that assigns the fallback label and no
// summaries.
func (p *OfflineProvider) Annotator() Annotator {
	return offlineAnnotator{}
}

// Chatter returns a chatter that always fails; callers surface their
// standard degraded response.
func (p *OfflineProvider) Chatter() Chatter {
	return offlineChatter{}
}

// Close is a no-op.
func (p *OfflineProvider) Close() error {
	return nil
}

type offlineAnnotator struct{}

func (offlineAnnotator) Categorize(context.Context, string, string) []string {
	return []string{OfflineCategory}
}

func (offlineAnnotator) Summarize(context.Context, string) string {
	return ""
}

type offlineChatter struct{}

func (offlineChatter) Respond(context.Context, string, []core.ChatMessage, string) (string, error) {
	return "", ErrChatUnavailable
}
