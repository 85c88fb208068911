package extract

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	readability "github.com/go-shiori/go-readability"

	"github.com/poiesic/recall/core"
)

const (
	// fetchTimeout bounds a single metadata fetch, redirects included.
	fetchTimeout = 10 * time.Second

	// maxExtractedText caps the boilerplate-stripped body text.
	maxExtractedText = 5000

	// Fallback title/description lengths used in embedded-URL mode when
	// the page itself yields nothing.
	embeddedTitleLimit       = 100
	embeddedDescriptionLimit = 200

	userAgent = "Mozilla/5.0 (compatible; recall/1.0; +https://github.com/poiesic/recall)"
)

// Metadata holds what could be derived from a fetched page. All fields are
// optional; a failed fetch yields the zero value.
type Metadata struct {
	Title         string
	Description   string
	ThumbnailURL  string
	ExtractedText string
}

// Extractor fetches URLs and derives page metadata. Extraction is strictly
// best-effort: it never returns an error, so ingestion always proceeds with
// whatever could be recovered.
type Extractor struct {
	client *resty.Client
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// WithTimeout overrides the per-fetch timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Extractor) {
		if timeout > 0 {
			e.client.SetTimeout(timeout)
		}
	}
}

// NewExtractor creates a metadata extractor with a 10 second fetch timeout.
func NewExtractor(opts ...Option) *Extractor {
	client := resty.New().
		SetTimeout(fetchTimeout).
		SetHeader("User-Agent", userAgent)

	e := &Extractor{
		client: client,
		logger: slog.Default().With("component", "extractor"),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract fetches the URL following redirects and derives title,
// description, thumbnail and body text. Social-card annotations take
// precedence over the plain title element and generic description tag.
// Any transport, timeout or non-2xx failure yields an empty Metadata.
func (e *Extractor) Extract(ctx context.Context, pageURL string) Metadata {
	resp, err := e.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		e.logger.Warn("metadata fetch failed", "url", pageURL, "err", err)
		return Metadata{}
	}
	if !resp.IsSuccess() {
		e.logger.Warn("metadata fetch returned non-success status",
			"url", pageURL, "status", resp.StatusCode())
		return Metadata{}
	}

	body := resp.Body()
	md := parseHead(body)
	md.ExtractedText = extractBodyText(body, pageURL)

	e.logger.Debug("extracted metadata",
		"url", pageURL,
		"title", md.Title != "",
		"text_len", len(md.ExtractedText))

	return md
}

// parseHead pulls title/description/thumbnail out of the document head.
func parseHead(body []byte) Metadata {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Metadata{}
	}

	var md Metadata

	md.Title = metaContent(doc, `meta[property="og:title"]`)
	md.Description = metaContent(doc, `meta[property="og:description"]`)
	md.ThumbnailURL = metaContent(doc, `meta[property="og:image"]`)

	if md.Title == "" {
		md.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if md.Description == "" {
		md.Description = metaContent(doc, `meta[name="description"]`)
	}

	return md
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// extractBodyText strips boilerplate (navigation, ads, chrome) and returns
// up to maxExtractedText characters of main content.
func extractBodyText(body []byte, pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		parsed = nil
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return ""
	}

	text := strings.TrimSpace(article.TextContent)
	return Truncate(text, maxExtractedText)
}

// Merge folds fetched metadata into a classified extraction.
//
// In pure-URL mode the metadata is taken as-is. In embedded-URL mode (the
// submission was free text carrying a URL) the original message substitutes
// for a missing title/description and is prepended to the extracted text,
// so the user's own words stay searchable.
func Merge(ext core.Extraction, md Metadata) core.Extraction {
	embedded := ext.SourceURL != "" && strings.TrimSpace(ext.RawContent) != ext.SourceURL

	if !embedded {
		ext.Title = md.Title
		ext.Description = md.Description
		ext.ThumbnailURL = md.ThumbnailURL
		ext.ExtractedText = md.ExtractedText
		return ext
	}

	message := ext.RawContent

	ext.Title = md.Title
	if ext.Title == "" {
		ext.Title = Truncate(message, embeddedTitleLimit)
	}

	ext.Description = md.Description
	if ext.Description == "" {
		ext.Description = Truncate(message, embeddedDescriptionLimit)
	}

	ext.ThumbnailURL = md.ThumbnailURL

	combined := strings.TrimSpace(message + "\n\n" + md.ExtractedText)
	ext.ExtractedText = Truncate(combined, maxExtractedText)

	return ext
}

// Truncate clips s to at most limit characters, never splitting a rune.
func Truncate(s string, limit int) string {
	return core.Clip(s, limit)
}
