package openai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/recall/core"
)

func TestParseFeatures(t *testing.T) {
	t.Run("comma separated", func(t *testing.T) {
		got, err := parseFeatures("0.5, -0.25, 0, 1")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.5, -0.25, 0, 1}, got)
	})

	t.Run("skips junk tokens", func(t *testing.T) {
		got, err := parseFeatures("0.5, abc, 0.25, sure! here")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.5, 0.25}, got)
	})

	t.Run("clamps out of range values", func(t *testing.T) {
		got, err := parseFeatures("3.5, -42")
		require.NoError(t, err)
		assert.Equal(t, []float32{1, -1}, got)
	})

	t.Run("newline separated", func(t *testing.T) {
		got, err := parseFeatures("0.1\n0.2\n0.3")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, got)
	})

	t.Run("capped at feature count", func(t *testing.T) {
		parts := make([]string, featureCount+10)
		for i := range parts {
			parts[i] = "0.5"
		}
		got, err := parseFeatures(strings.Join(parts, ", "))
		require.NoError(t, err)
		assert.Len(t, got, featureCount)
	})

	t.Run("no numeric tokens is an error", func(t *testing.T) {
		_, err := parseFeatures("I cannot help with that.")
		assert.ErrorIs(t, err, ErrNoValidFeatures)
	})
}

func TestFeatureEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("tiles features across full dimension", func(t *testing.T) {
		model := &fakeModel{reply: "0.5, -0.5, 0.25, -0.25"}
		embedder := &FeatureEmbedder{client: model, logger: testLogger()}

		vector, err := embedder.EmbedText(ctx, "some text")
		require.NoError(t, err)
		require.Len(t, vector, core.EmbeddingDim)

		features := []float32{0.5, -0.5, 0.25, -0.25}
		for i, v := range vector {
			assert.Equal(t, features[i%len(features)], v)
		}
	})

	t.Run("model failure propagates", func(t *testing.T) {
		model := &fakeModel{err: errors.New("connection refused")}
		embedder := &FeatureEmbedder{client: model, logger: testLogger()}

		_, err := embedder.EmbedText(ctx, "some text")
		assert.Error(t, err)
	})

	t.Run("empty completion is an error", func(t *testing.T) {
		embedder := &FeatureEmbedder{client: emptyModel{}, logger: testLogger()}

		_, err := embedder.EmbedText(ctx, "some text")
		assert.ErrorIs(t, err, ErrEmptyCompletion)
	})

	t.Run("prose completion is an error", func(t *testing.T) {
		model := &fakeModel{reply: "As an assistant, here are the features:"}
		embedder := &FeatureEmbedder{client: model, logger: testLogger()}

		_, err := embedder.EmbedText(ctx, "some text")
		assert.ErrorIs(t, err, ErrNoValidFeatures)
	})
}

func TestNormalizeDim(t *testing.T) {
	t.Run("exact length passes through", func(t *testing.T) {
		v := make([]float32, core.EmbeddingDim)
		assert.Equal(t, core.EmbeddingDim, len(normalizeDim(v, core.EmbeddingDim)))
	})

	t.Run("long vectors are truncated", func(t *testing.T) {
		v := make([]float32, core.EmbeddingDim+512)
		for i := range v {
			v[i] = float32(i)
		}
		got := normalizeDim(v, core.EmbeddingDim)
		require.Len(t, got, core.EmbeddingDim)
		assert.Equal(t, v[:core.EmbeddingDim], got)
	})

	t.Run("short vectors are tiled", func(t *testing.T) {
		v := []float32{1, 2, 3}
		got := normalizeDim(v, 8)
		assert.Equal(t, []float32{1, 2, 3, 1, 2, 3, 1, 2}, got)
	})
}
