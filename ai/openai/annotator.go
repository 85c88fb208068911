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
	"context"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
)

const (
	// maxCategories caps the labels kept per item.
	maxCategories = 3

	// maxCategorizeInput and maxSummarizeInput cap the content shown to
	// the model for each task.
	maxCategorizeInput = 2000
	maxSummarizeInput  = 3000
)

// FallbackCategory is assigned when categorization fails or yields
// nothing. Items always carry at least one label.
const FallbackCategory = "Uncategorized"

// Annotator implements ai.Annotator using OpenAI-compatible chat APIs.
// Both operations absorb provider failures: annotation must never block
// ingestion.
type Annotator struct {
	client llms.Model
	logger *slog.Logger
}

var _ ai.Annotator = (*Annotator)(nil)

// newAnnotator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAnnotator(config *ai.Config) (*Annotator, error) {
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

	return &Annotator{
		client: client,
		logger: slog.Default().With("component", "openai-annotator"),
	}, nil
}

// NewAnnotator creates a new annotator using the provided configuration.
//
// Returns ai.Annotator interface to enforce abstraction.
func NewAnnotator(config *ai.Config) (ai.Annotator, error) {
	return newAnnotator(config)
}

// Categorize returns 1-3 short topic labels for the content. Any call
// failure or empty response degrades to the fallback label.
func (a *Annotator) Categorize(ctx context.Context, content, title string) []string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString("Title: ")
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Content: ")
	sb.WriteString(core.Clip(content, maxCategorizeInput))

	raw, err := a.complete(ctx, categorizePrompt,
		"Categorize this content:\n\n"+sb.String(),
		llms.WithTemperature(0.3),
		llms.WithMaxTokens(50),
	)
	if err != nil {
		a.logger.Warn("categorization failed", "err", err)
		return []string{FallbackCategory}
	}

	categories := ParseCategories(raw)
	if len(categories) == 0 {
		return []string{FallbackCategory}
	}
	return categories
}

// Summarize returns a brief summary of the content, or "" on failure.
// Callers treat the empty string as "no summary".
func (a *Annotator) Summarize(ctx context.Context, content string) string {
	content = core.Clip(content, maxSummarizeInput)

	summary, err := a.complete(ctx, summarizePrompt, content,
		llms.WithTemperature(0.3),
		llms.WithMaxTokens(100),
	)
	if err != nil {
		a.logger.Warn("summarization failed", "err", err)
		return ""
	}
	return strings.TrimSpace(summary)
}

func (a *Annotator) complete(ctx context.Context, system, user string, opts ...llms.CallOption) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(system)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(user)},
		},
	}

	response, err := a.client.GenerateContent(ctx, content, opts...)
	if err != nil {
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", ErrEmptyCompletion
	}
	return response.Choices[0].Content, nil
}

// ParseCategories splits a comma-separated completion into trimmed,
// non-empty labels, capped at maxCategories.
func ParseCategories(raw string) []string {
	parts := strings.Split(raw, ",")
	categories := make([]string, 0, maxCategories)
	for _, part := range parts {
		label := strings.TrimSpace(part)
		if label == "" {
			continue
		}
		categories = append(categories, label)
		if len(categories) == maxCategories {
			break
		}
	}
	return categories
}
