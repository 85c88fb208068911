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


package core

import (
	"fmt"
	"strings"
)

// MaxContentBytes caps the size of a single submission. Oversized payloads
// are rejected before any pipeline stage runs.
const MaxContentBytes = 512 * 1024

// ValidateSubmission validates a Submission according to domain rules.
//
// Validation rules:
//   - Content must not be empty or whitespace-only
//   - Content must not exceed MaxContentBytes
//   - Platform, when set, must be a known value
//
// NOT validated (populated downstream):
//   - Notes (free-form, optional)
func ValidateSubmission(sub *Submission) error {
	if sub == nil {
		return fmt.Errorf("%w: submission is nil", ErrInvalidSubmission)
	}

	if strings.TrimSpace(sub.Content) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSubmission, ErrEmptyContent)
	}

	if len(sub.Content) > MaxContentBytes {
		return fmt.Errorf("%w: %w", ErrInvalidSubmission, ErrContentTooLarge)
	}

	if sub.Platform != "" {
		if err := ValidatePlatform(sub.Platform); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
		}
	}

	return nil
}

// ValidateItem validates an Item before it is handed to storage.
//
// Validation rules:
//   - ID and UserID must not be empty
//   - RawContent must not be empty
//   - Platform and ContentType must be known values
//
// NOT validated (degraded-but-valid states are allowed):
//   - Title, Description, ExtractedText, AISummary (may all be empty)
//   - Categories (annotation failure leaves the fallback label)
func ValidateItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidItem)
	}

	if item.ID == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidItem)
	}

	if item.UserID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyUserID)
	}

	if item.RawContent == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyContent)
	}

	if err := ValidatePlatform(item.Platform); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	if err := ValidateContentType(item.ContentType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	return nil
}

// ValidatePlatform validates that a Platform has a known value.
func ValidatePlatform(p Platform) error {
	switch p {
	case PlatformTwitter, PlatformYouTube, PlatformTikTok, PlatformTelegram,
		PlatformWhatsApp, PlatformInstagram, PlatformFacebook, PlatformGeneric:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidPlatform, string(p))
}

// ValidateContentType validates that a ContentType has a known value.
func ValidateContentType(ct ContentType) error {
	switch ct {
	case ContentTypeLink, ContentTypeVideo, ContentTypeText, ContentTypeImage:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidContentType, string(ct))
}
