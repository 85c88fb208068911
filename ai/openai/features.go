package openai

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
)

const (
	// maxFeatureInput caps the text shown to the feature model.
	maxFeatureInput = 2000

	// featureCount is the number of raw features requested; they are
	// tiled cyclically across the full embedding dimension.
	featureCount = 32
)

// FeatureEmbedder is the secondary embedding tier: it asks a completion
// model to emit numeric pseudo-features when no real embedding provider is
// reachable. Quality is rough, but the vectors still cluster loosely by
// topic, which beats the digest tier.
type FeatureEmbedder struct {
	client llms.Model
	logger *slog.Logger
}

var _ ai.Embedder = (*FeatureEmbedder)(nil)

// newFeatureEmbedder is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newFeatureEmbedder(config *ai.Config) (*FeatureEmbedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &FeatureEmbedder{
		client: client,
		logger: slog.Default().With("component", "feature-embedder"),
	}, nil
}

// NewFeatureEmbedder creates the LLM pseudo-feature embedding tier.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewFeatureEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newFeatureEmbedder(config)
}

// EmbedText asks the model for 32 comma-separated features in [-1,1] and
// tiles them across core.EmbeddingDim dimensions. Malformed numeric output
// with no valid token at all is an error, so the fallback chain moves on.
func (e *FeatureEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	text = core.Clip(text, maxFeatureInput)

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(featurePrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(text)},
		},
	}

	response, err := e.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.0),
		llms.WithMaxTokens(256),
	)
	if err != nil {
		e.logger.Warn("feature completion failed", "err", err)
		return nil, err
	}
	if len(response.Choices) < 1 {
		return nil, ErrEmptyCompletion
	}

	features, err := parseFeatures(response.Choices[0].Content)
	if err != nil {
		e.logger.Warn("feature output unparseable", "err", err)
		return nil, err
	}

	vector := make([]float32, core.EmbeddingDim)
	for i := range vector {
		vector[i] = features[i%len(features)]
	}
	return vector, nil
}

// parseFeatures extracts numeric tokens from a comma-separated completion.
// Non-numeric tokens are skipped, values are clamped to [-1,1], and at
// most featureCount features are kept. Zero valid tokens is an error.
func parseFeatures(raw string) ([]float32, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == ' ' || r == '\t'
	})

	features := make([]float32, 0, featureCount)
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		value, err := strconv.ParseFloat(field, 32)
		if err != nil {
			continue
		}
		features = append(features, clamp(float32(value)))
		if len(features) == featureCount {
			break
		}
	}

	if len(features) == 0 {
		return nil, ErrNoValidFeatures
	}
	return features, nil
}

func clamp(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
