package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EmbeddingDim is the fixed dimension of every vector handed to the index.
const EmbeddingDim = 1024

// Platform identifies where a piece of content originated.
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformTelegram  Platform = "telegram"
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformGeneric   Platform = "generic"
)

// ContentType classifies the kind of content an item holds.
type ContentType string

const (
	ContentTypeLink  ContentType = "link"
	ContentTypeVideo ContentType = "video"
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
)

// NewItemID generates an opaque unique identifier for a saved item.
func NewItemID() string {
	return uuid.New().String()
}

// Submission is the transient input to ingestion. It is consumed once and
// never persisted as such.
type Submission struct {
	Content  string
	Notes    string
	Platform Platform // optional explicit override, empty means "detect"
}

// Extraction is the transient result of classification plus metadata
// extraction for a single submission.
type Extraction struct {
	SourceURL     string
	Platform      Platform
	ContentType   ContentType
	RawContent    string
	Title         string
	Description   string
	ThumbnailURL  string
	ExtractedText string
}

// Item is the durable unit produced by ingestion. Items are created once
// and never mutated by the pipeline; deletion is a storage concern.
type Item struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	Platform      Platform          `json:"source_platform"`
	SourceURL     string            `json:"source_url,omitempty"`
	ContentType   ContentType       `json:"content_type"`
	Title         string            `json:"title,omitempty"`
	Description   string            `json:"description,omitempty"`
	ThumbnailURL  string            `json:"thumbnail_url,omitempty"`
	RawContent    string            `json:"raw_content"`
	ExtractedText string            `json:"extracted_text,omitempty"`
	AISummary     string            `json:"ai_summary,omitempty"`
	Categories    []string          `json:"categories"`
	Notes         string            `json:"notes,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// SearchableText builds the text that represents an item in the vector
// index: title, description and extracted text joined in that order.
func (i *Item) SearchableText() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{i.Title, i.Description, i.ExtractedText} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return i.RawContent
	}
	return strings.Join(parts, " ")
}

// SearchHit is an ephemeral nearest-neighbor match returned by the vector
// index. Hits are produced per query and never stored.
type SearchHit struct {
	ItemID     string
	UserID     string
	Score      float32
	Title      string
	Categories []string
	Platform   Platform
}

// ChatMessage is a single turn of a conversation.
type ChatMessage struct {
	Role    string // "user" or "assistant"
	Content string
}
