package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
)

// Chatter implements ai.Chatter using OpenAI-compatible chat APIs.
type Chatter struct {
	client llms.Model
	logger *slog.Logger
}

var _ ai.Chatter = (*Chatter)(nil)

// newChatter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newChatter(config *ai.Config) (*Chatter, error) {
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

	return &Chatter{
		client: client,
		logger: slog.Default().With("component", "openai-chatter"),
	}, nil
}

// NewChatter creates a chat completion service.
//
// Returns ai.Chatter interface to enforce abstraction.
func NewChatter(config *ai.Config) (ai.Chatter, error) {
	return newChatter(config)
}

// Respond requests a completion for the conversation. Moderate temperature
// favors helpful variety over determinism; output is capped at 500 tokens.
func (c *Chatter) Respond(ctx context.Context, system string, history []core.ChatMessage, message string) (string, error) {
	content := make([]llms.MessageContent, 0, len(history)+2)
	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeSystem,
		Parts: []llms.ContentPart{llms.TextPart(system)},
	})

	for _, turn := range history {
		role := llms.ChatMessageTypeHuman
		if turn.Role == "assistant" {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(turn.Content)},
		})
	}

	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(message)},
	})

	response, err := c.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(500),
	)
	if err != nil {
		c.logger.Warn("chat completion failed", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", ErrEmptyCompletion
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
