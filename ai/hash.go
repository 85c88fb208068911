package ai

import (
	"context"

	"github.com/go-crypt/x/blake2b"

	"github.com/poiesic/recall/core"
)

// HashEmbedder is the terminal embedding tier: a pure, offline expansion
// of a cryptographic digest. It carries no semantic signal, but it is
// deterministic and total, which keeps ingestion and search available when
// every network tier is down.
type HashEmbedder struct{}

var _ Embedder = (*HashEmbedder)(nil)

// NewHashEmbedder creates the digest-based embedder.
func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{}
}

// EmbedText expands a BLAKE2b-256 digest of the text cyclically across
// core.EmbeddingDim dimensions. Each byte b maps to (b/255)-0.5, so every
// component lies in [-0.5, 0.5). Identical text always yields a
// bit-identical vector. The returned error is always nil.
func (h *HashEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	digest, _ := blake2b.New(32, nil)
	digest.Write([]byte(text))
	sum := digest.Sum(nil)

	vector := make([]float32, core.EmbeddingDim)
	for i := range vector {
		b := sum[i%len(sum)]
		vector[i] = float32(b)/255.0 - 0.5
	}
	return vector, nil
}
