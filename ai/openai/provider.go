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


package openai

import (
	"log/slog"

	"github.com/poiesic/recall/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services. The
// embedder it exposes is the full three-tier fallback chain: provider
// embeddings, then LLM pseudo-features, then the offline digest tier.
type Provider struct {
	config    *ai.Config
	embedder  ai.Embedder
	annotator *Annotator
	chatter   *Chatter
	logger    *slog.Logger
}

var _ ai.Provider = (*Provider)(nil)

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	primary, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	features, err := newFeatureEmbedder(config)
	if err != nil {
		return nil, err
	}

	chain, err := ai.NewFallbackEmbedder([]ai.Embedder{
		primary,
		features,
		ai.NewHashEmbedder(),
	})
	if err != nil {
		return nil, err
	}

	annotator, err := newAnnotator(config)
	if err != nil {
		return nil, err
	}

	chatter, err := newChatter(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		embedder:  chain,
		annotator: annotator,
		chatter:   chatter,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the tiered embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Annotator returns the categorization/summary service.
func (p *Provider) Annotator() ai.Annotator {
	return p.annotator
}

// Chatter returns the chat completion service.
func (p *Provider) Chatter() ai.Chatter {
	return p.chatter
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
