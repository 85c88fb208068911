package openai

import (
	"context"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
)

// maxEmbedInput caps the text sent to the embedding provider.
const maxEmbedInput = 8000

// Embedder is the primary embedding tier, backed by an OpenAI-compatible
// embedding API.
type Embedder struct {
	embedder embeddings.Embedder
	logger   *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken(config.APIKey),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates the primary embedding tier.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector for the text, truncated to 8000 characters.
// Provider vectors that are not already core.EmbeddingDim long are
// normalized by truncation or cyclic tiling, so downstream code always
// sees a fixed dimension.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	text = core.Clip(text, maxEmbedInput)

	vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Warn("embedding provider call failed", "err", err)
		return nil, err
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, ErrEmptyEmbedding
	}

	return normalizeDim(vectors[0], core.EmbeddingDim), nil
}

// normalizeDim fits a vector to dim components: longer vectors are
// truncated, shorter ones tiled cyclically.
func normalizeDim(v []float32, dim int) []float32 {
	if len(v) == dim {
		return v
	}
	out := make([]float32, dim)
	for i := range out {
		out[i] = v[i%len(v)]
	}
	return out
}
