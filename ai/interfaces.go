package ai

import (
	"context"

	"github.com/poiesic/recall/core"
)

// Embedder converts text into a fixed-length vector for semantic
// similarity search. Implementations must be thread-safe.
type Embedder interface {
	// EmbedText generates a core.EmbeddingDim-length vector for the text.
	// Returns an error if embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Annotator produces LLM-backed annotations for extracted content.
// Implementations must be thread-safe.
type Annotator interface {
	// Categorize returns 1-3 short topic labels for the content.
	// On any failure it returns the fallback label list, never an error
	// that blocks ingestion.
	Categorize(ctx context.Context, content, title string) []string

	// Summarize returns a 1-2 sentence summary of the content, or ""
	// when summarization fails or produces nothing.
	Summarize(ctx context.Context, content string) string
}

// Chatter generates a conversational completion from a system instruction,
// prior turns and the new user message. Implementations must be
// thread-safe.
type Chatter interface {
	// Respond requests a bounded-length completion. Returns an error on
	// provider failure; callers decide the user-visible fallback.
	Respond(ctx context.Context, system string, history []core.ChatMessage, message string) (string, error)
}

// Provider aggregates the AI services for convenient initialization and
// lifecycle management.
type Provider interface {
	// Embedder returns the text embedding service, already wrapped in the
	// availability fallback chain.
	Embedder() Embedder

	// Annotator returns the categorization/summary service.
	Annotator() Annotator

	// Chatter returns the chat completion service.
	Chatter() Chatter

	// Close releases resources held by the provider and its services.
	Close() error
}
