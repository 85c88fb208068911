package chat

import (
	"strings"

	"github.com/poiesic/recall/core"
)

// previewLimit caps the per-item content preview in the system prompt.
const previewLimit = 200

// basePrompt is the assistant persona used for every turn.
const basePrompt = `You are a helpful assistant for a personal content library.
The user saves links, videos, posts and notes; you help them recall and
discuss what they saved. Answer using the saved content provided below
whenever it is relevant, and say so plainly when nothing saved relates
to the question.`

// buildSystemPrompt renders the persona plus the retrieved items. With
// no context items the persona stands alone, the model is not told an
// empty library exists.
func buildSystemPrompt(items []*core.Item) string {
	var sb strings.Builder
	sb.WriteString(basePrompt)

	if len(items) == 0 {
		return sb.String()
	}

	sb.WriteString("\n\nUSER'S SAVED CONTENT:\n")
	for _, item := range items {
		sb.WriteString("\n[")
		sb.WriteString(string(item.Platform))
		sb.WriteString("] ")
		if item.Title != "" {
			sb.WriteString(item.Title)
		} else {
			sb.WriteString("(untitled)")
		}
		sb.WriteByte('\n')

		if len(item.Categories) > 0 {
			sb.WriteString("Categories: ")
			sb.WriteString(strings.Join(item.Categories, ", "))
			sb.WriteByte('\n')
		}

		sb.WriteString(preview(item))
		sb.WriteByte('\n')

		if item.SourceURL != "" {
			sb.WriteString("Source: ")
			sb.WriteString(item.SourceURL)
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// preview picks the best available description of an item's content:
// AI summary, then extracted text, then description.
func preview(item *core.Item) string {
	for _, candidate := range []string{item.AISummary, item.ExtractedText, item.Description} {
		if candidate != "" {
			return core.Clip(candidate, previewLimit)
		}
	}
	return "(no content preview)"
}
