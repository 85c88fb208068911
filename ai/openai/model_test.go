package openai

import (
	"context"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
)

// fakeModel is a scripted llms.Model. It records the messages of the
// last call so tests can assert on prompt construction.
type fakeModel struct {
	reply    string
	err      error
	received []llms.MessageContent
}

var _ llms.Model = (*fakeModel)(nil)

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.received = messages
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.reply}},
	}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, _ ...llms.CallOption) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

// emptyModel returns a response with no choices.
type emptyModel struct{}

var _ llms.Model = (*emptyModel)(nil)

func (emptyModel) GenerateContent(context.Context, []llms.MessageContent, ...llms.CallOption) (*llms.ContentResponse, error) {
	return &llms.ContentResponse{}, nil
}

func (emptyModel) Call(context.Context, string, ...llms.CallOption) (string, error) {
	return "", nil
}

func testLogger() *slog.Logger {
	return slog.Default()
}
