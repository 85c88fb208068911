package mock

import (
	"context"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
)

// MockEmbedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields.
type MockEmbedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, a deterministic digest vector is returned.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	callCount int
	fallback  *ai.HashEmbedder
}

var _ ai.Embedder = (*MockEmbedder)(nil)

// NewMockEmbedder creates a mock embedder with deterministic defaults.
// Note: Returns concrete type to allow test assertions.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{fallback: ai.NewHashEmbedder()}
}

// EmbedText returns the injected result, or a digest vector of the text.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return m.fallback.EmbedText(ctx, text)
}

// CallCount returns the number of times EmbedText was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// MockAnnotator is a test double for ai.Annotator.
type MockAnnotator struct {
	// CategorizeFunc is called by Categorize if set.
	CategorizeFunc func(ctx context.Context, content, title string) []string

	// SummarizeFunc is called by Summarize if set.
	SummarizeFunc func(ctx context.Context, content string) string

	callCount int
}

var _ ai.Annotator = (*MockAnnotator)(nil)

// NewMockAnnotator creates a mock annotator with static defaults.
func NewMockAnnotator() *MockAnnotator {
	return &MockAnnotator{}
}

// Categorize returns the injected labels, or ["Test"].
func (m *MockAnnotator) Categorize(ctx context.Context, content, title string) []string {
	m.callCount++

	if m.CategorizeFunc != nil {
		return m.CategorizeFunc(ctx, content, title)
	}
	return []string{"Test"}
}

// Summarize returns the injected summary, or a fixed sentence.
func (m *MockAnnotator) Summarize(ctx context.Context, content string) string {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, content)
	}
	return "A test summary."
}

// CallCount returns the number of times any method was called.
func (m *MockAnnotator) CallCount() int {
	return m.callCount
}

// MockChatter is a test double for ai.Chatter.
type MockChatter struct {
	// RespondFunc is called by Respond if set.
	RespondFunc func(ctx context.Context, system string, history []core.ChatMessage, message string) (string, error)

	callCount int
}

var _ ai.Chatter = (*MockChatter)(nil)

// NewMockChatter creates a mock chatter that echoes the user message.
func NewMockChatter() *MockChatter {
	return &MockChatter{}
}

// Respond returns the injected response, or echoes the message.
func (m *MockChatter) Respond(ctx context.Context, system string, history []core.ChatMessage, message string) (string, error) {
	m.callCount++

	if m.RespondFunc != nil {
		return m.RespondFunc(ctx, system, history, message)
	}
	return "echo: " + message, nil
}

// CallCount returns the number of times Respond was called.
func (m *MockChatter) CallCount() int {
	return m.callCount
}

// MockProvider aggregates the mock services behind ai.Provider.
type MockProvider struct {
	embedder  *MockEmbedder
	annotator *MockAnnotator
	chatter   *MockChatter
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a provider whose services all use mock defaults.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		annotator: NewMockAnnotator(),
		chatter:   NewMockChatter(),
	}
}

// Embedder returns the mock embedder as ai.Embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Annotator returns the mock annotator as ai.Annotator.
func (p *MockProvider) Annotator() ai.Annotator {
	return p.annotator
}

// Chatter returns the mock chatter as ai.Chatter.
func (p *MockProvider) Chatter() ai.Chatter {
	return p.chatter
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder exposes the concrete embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockAnnotator exposes the concrete annotator for test assertions.
func (p *MockProvider) GetMockAnnotator() *MockAnnotator {
	return p.annotator
}

// GetMockChatter exposes the concrete chatter for test assertions.
func (p *MockProvider) GetMockChatter() *MockChatter {
	return p.chatter
}
