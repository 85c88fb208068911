package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name    string
		sub     *Submission
		wantErr error
	}{
		{
			name: "valid plain text",
			sub:  &Submission{Content: "remember to read this later"},
		},
		{
			name: "valid with explicit platform",
			sub:  &Submission{Content: "https://t.me/somechannel/42", Platform: PlatformTelegram},
		},
		{
			name:    "nil submission",
			sub:     nil,
			wantErr: ErrInvalidSubmission,
		},
		{
			name:    "empty content",
			sub:     &Submission{Content: ""},
			wantErr: ErrEmptyContent,
		},
		{
			name:    "whitespace-only content",
			sub:     &Submission{Content: "   \n\t  "},
			wantErr: ErrEmptyContent,
		},
		{
			name:    "oversized content",
			sub:     &Submission{Content: strings.Repeat("x", MaxContentBytes+1)},
			wantErr: ErrContentTooLarge,
		},
		{
			name:    "unknown platform override",
			sub:     &Submission{Content: "hello", Platform: Platform("myspace")},
			wantErr: ErrInvalidPlatform,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmission(tt.sub)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateItem(t *testing.T) {
	valid := func() *Item {
		return &Item{
			ID:          NewItemID(),
			UserID:      "user-1",
			Platform:    PlatformGeneric,
			ContentType: ContentTypeText,
			RawContent:  "some content",
			Categories:  []string{"Uncategorized"},
		}
	}

	t.Run("valid item", func(t *testing.T) {
		assert.NoError(t, ValidateItem(valid()))
	})

	t.Run("missing id", func(t *testing.T) {
		item := valid()
		item.ID = ""
		assert.ErrorIs(t, ValidateItem(item), ErrInvalidItem)
	})

	t.Run("missing user id", func(t *testing.T) {
		item := valid()
		item.UserID = ""
		assert.ErrorIs(t, ValidateItem(item), ErrEmptyUserID)
	})

	t.Run("empty raw content", func(t *testing.T) {
		item := valid()
		item.RawContent = ""
		assert.ErrorIs(t, ValidateItem(item), ErrEmptyContent)
	})

	t.Run("bad content type", func(t *testing.T) {
		item := valid()
		item.ContentType = ContentType("audio")
		assert.ErrorIs(t, ValidateItem(item), ErrInvalidContentType)
	})
}

func TestSearchableText(t *testing.T) {
	t.Run("joins title description and extracted text", func(t *testing.T) {
		item := &Item{Title: "A Title", Description: "a description", ExtractedText: "body text"}
		assert.Equal(t, "A Title a description body text", item.SearchableText())
	})

	t.Run("skips empty fields", func(t *testing.T) {
		item := &Item{Title: "A Title", ExtractedText: "body text"}
		assert.Equal(t, "A Title body text", item.SearchableText())
	})

	t.Run("falls back to raw content", func(t *testing.T) {
		item := &Item{RawContent: "raw"}
		assert.Equal(t, "raw", item.SearchableText())
	})
}

func TestNewItemID(t *testing.T) {
	a, b := NewItemID(), NewItemID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
