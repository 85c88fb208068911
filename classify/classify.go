package classify

import (
	"regexp"
	"strings"

	"github.com/poiesic/recall/core"
)

// platformPatterns maps a platform to the URL patterns that identify it.
// The table is ordered: the first platform with a matching pattern wins.
type platformPatterns struct {
	platform core.Platform
	patterns []*regexp.Regexp
}

var platformTable = []platformPatterns{
	{core.PlatformYouTube, compileAll(
		`(?i)youtube\.com/watch`,
		`(?i)youtu\.be/`,
		`(?i)youtube\.com/shorts`,
	)},
	{core.PlatformTwitter, compileAll(
		`(?i)twitter\.com/`,
		`(?i)\bx\.com/`,
	)},
	{core.PlatformTikTok, compileAll(
		`(?i)tiktok\.com/`,
	)},
	{core.PlatformInstagram, compileAll(
		`(?i)instagram\.com/`,
	)},
	{core.PlatformFacebook, compileAll(
		`(?i)facebook\.com/`,
		`(?i)\bfb\.com/`,
	)},
	{core.PlatformTelegram, compileAll(
		`(?i)\bt\.me/`,
		`(?i)telegram\.me/`,
	)},
	{core.PlatformWhatsApp, compileAll(
		`(?i)wa\.me/`,
		`(?i)chat\.whatsapp\.com/`,
	)},
}

var (
	pureURLPattern     = regexp.MustCompile(`^https?://\S+$`)
	embeddedURLPattern = regexp.MustCompile(`https?://[^\s<>"'\)\]]+`)
	imageExtPattern    = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)(\?|$)`)
)

func compileAll(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(expr)
	}
	return compiled
}

// titleLimit is the length at which plain-text titles are ellipsized.
const titleLimit = 100

// DetectPlatform identifies the source platform of a URL. Unrecognized
// URLs map to the generic platform.
func DetectPlatform(url string) core.Platform {
	for _, entry := range platformTable {
		for _, pattern := range entry.patterns {
			if pattern.MatchString(url) {
				return entry.platform
			}
		}
	}
	return core.PlatformGeneric
}

// DetectContentType classifies a URL given its platform. Video platforms
// always yield video; image file extensions yield image; everything else
// is a link.
func DetectContentType(url string, platform core.Platform) core.ContentType {
	if platform == core.PlatformYouTube || platform == core.PlatformTikTok {
		return core.ContentTypeVideo
	}
	if imageExtPattern.MatchString(url) {
		return core.ContentTypeImage
	}
	return core.ContentTypeLink
}

// IsURL reports whether the entire trimmed content is a single URL.
func IsURL(content string) bool {
	return pureURLPattern.MatchString(strings.TrimSpace(content))
}

// ExtractURL returns the first URL embedded in free text, or "" when the
// text contains none.
func ExtractURL(content string) string {
	return embeddedURLPattern.FindString(content)
}

// Classify maps raw submitted content to a best-effort Extraction. It
// never fails: ambiguous input degrades to generic/text.
//
// Three shapes of input are recognized:
//   - the whole content is a URL
//   - a URL is embedded inside free text (a forwarded message, say)
//   - plain text with no URL at all
//
// In embedded-URL mode the full original text is preserved as RawContent
// and ExtractedText, while SourceURL carries only the URL; metadata
// extraction later merges on top (see package extract).
func Classify(content string) core.Extraction {
	if IsURL(content) {
		url := strings.TrimSpace(content)
		platform := DetectPlatform(url)
		return core.Extraction{
			SourceURL:   url,
			Platform:    platform,
			ContentType: DetectContentType(url, platform),
			RawContent:  content,
		}
	}

	if url := ExtractURL(content); url != "" {
		platform := DetectPlatform(url)
		return core.Extraction{
			SourceURL:     url,
			Platform:      platform,
			ContentType:   DetectContentType(url, platform),
			RawContent:    content,
			ExtractedText: content,
		}
	}

	return core.Extraction{
		Platform:      core.PlatformGeneric,
		ContentType:   core.ContentTypeText,
		RawContent:    content,
		Title:         TruncateTitle(content),
		ExtractedText: content,
	}
}

// TruncateTitle derives a title from plain text: the first 100 characters,
// ellipsized when the text is longer. Characters, not bytes, so multibyte
// text is never torn mid-rune.
func TruncateTitle(content string) string {
	if clipped := core.Clip(content, titleLimit); clipped != content {
		return clipped + "..."
	}
	return content
}
