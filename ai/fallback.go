package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/recall/core"
)

// tierTimeout bounds a single tier attempt so a stalled provider cannot
// starve the ingestion pipeline.
const tierTimeout = 30 * time.Second

// FallbackEmbedder tries an ordered list of embedding tiers and returns
// the first valid result. Tiers are explicit state rather than nested
// error handling: each attempt has its own failure boundary, and the
// final tier is expected to be total (see HashEmbedder), which makes the
// chain a total function of its input.
type FallbackEmbedder struct {
	tiers   []Embedder
	timeout time.Duration
	logger  *slog.Logger
}

var _ Embedder = (*FallbackEmbedder)(nil)

// FallbackOption configures a FallbackEmbedder.
type FallbackOption func(*FallbackEmbedder)

// WithTierTimeout overrides the per-tier attempt timeout.
func WithTierTimeout(timeout time.Duration) FallbackOption {
	return func(f *FallbackEmbedder) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithFallbackLogger sets a custom logger.
// Default is slog.Default().
func WithFallbackLogger(logger *slog.Logger) FallbackOption {
	return func(f *FallbackEmbedder) {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
	}
}

// NewFallbackEmbedder creates a fallback chain over the given tiers, tried
// in order. Callers should place a total tier last; the chain itself makes
// no attempt to recover when every tier fails.
func NewFallbackEmbedder(tiers []Embedder, opts ...FallbackOption) (*FallbackEmbedder, error) {
	if len(tiers) == 0 {
		return nil, ErrNoEmbeddingTiers
	}
	for _, tier := range tiers {
		if tier == nil {
			return nil, ErrNilEmbeddingTier
		}
	}

	f := &FallbackEmbedder{
		tiers:   tiers,
		timeout: tierTimeout,
		logger:  slog.Default().With("component", "fallback-embedder"),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// EmbedText attempts each tier in order under a bounded timeout and
// returns the first core.EmbeddingDim-length vector produced. A tier that
// errors, produces a wrong-length vector, or exceeds its timeout falls
// through to the next.
func (f *FallbackEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	var lastErr error

	for i, tier := range f.tiers {
		vector, err := f.embedWithTimeout(ctx, tier, text)
		if err != nil {
			lastErr = err
			f.logger.Debug("embedding tier failed, falling through",
				"tier", i, "err", err)
			continue
		}
		if len(vector) != core.EmbeddingDim {
			lastErr = fmt.Errorf("%w: tier %d returned %d dimensions",
				ErrBadEmbeddingDim, i, len(vector))
			f.logger.Warn("embedding tier returned wrong dimension",
				"tier", i, "dims", len(vector))
			continue
		}
		if i > 0 {
			f.logger.Info("embedding resolved by fallback tier", "tier", i)
		}
		return vector, nil
	}

	return nil, fmt.Errorf("all embedding tiers failed: %w", lastErr)
}

func (f *FallbackEmbedder) embedWithTimeout(ctx context.Context, tier Embedder, text string) ([]float32, error) {
	tierCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	return tier.EmbedText(tierCtx, text)
}
