package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"path"
	"runtime"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/classify"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/extract"
	"github.com/poiesic/recall/index"
	"github.com/poiesic/recall/storage"
)

// summarizeThreshold is the minimum extracted text length that warrants
// an AI summary. Short snippets speak for themselves.
const summarizeThreshold = 100

// Pipeline orchestrates saving content for a user: classification,
// metadata extraction, annotation, storage and indexing.
type Pipeline struct {
	items     storage.ItemRepository
	gateway   *index.Gateway
	annotator ai.Annotator
	extractor *extract.Extractor
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for batch saves.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	items storage.ItemRepository,
	gateway *index.Gateway,
	annotator ai.Annotator,
	extractor *extract.Extractor,
	opts ...Option,
) (*Pipeline, error) {
	if items == nil {
		return nil, ErrItemRepositoryRequired
	}
	if gateway == nil {
		return nil, ErrGatewayRequired
	}
	if annotator == nil {
		return nil, ErrAnnotatorRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		items:     items,
		gateway:   gateway,
		annotator: annotator,
		extractor: extractor,
		pool:      pool,
		logger:    slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Save runs the full ingestion flow for one submission and returns the
// stored item. Extraction, annotation and indexing failures degrade;
// only validation and storage failures abort.
func (p *Pipeline) Save(ctx context.Context, userID string, sub *core.Submission) (*core.Item, error) {
	if userID == "" {
		return nil, core.ErrEmptyUserID
	}
	if err := core.ValidateSubmission(sub); err != nil {
		return nil, err
	}

	ext := classify.Classify(sub.Content)

	if ext.SourceURL != "" {
		md := p.extractor.Extract(ctx, ext.SourceURL)
		ext = extract.Merge(ext, md)
	}

	// Explicit platform wins over detection, content type stays detected.
	if sub.Platform != "" {
		ext.Platform = sub.Platform
	}

	annotated := ext.ExtractedText
	if annotated == "" {
		annotated = ext.RawContent
	}
	categories := p.annotator.Categorize(ctx, annotated, ext.Title)

	var summary string
	if utf8.RuneCountInString(ext.ExtractedText) > summarizeThreshold {
		summary = p.annotator.Summarize(ctx, ext.ExtractedText)
	}

	item := &core.Item{
		ID:            core.NewItemID(),
		UserID:        userID,
		Platform:      ext.Platform,
		SourceURL:     ext.SourceURL,
		ContentType:   ext.ContentType,
		Title:         ext.Title,
		Description:   ext.Description,
		ThumbnailURL:  ext.ThumbnailURL,
		RawContent:    ext.RawContent,
		ExtractedText: ext.ExtractedText,
		AISummary:     summary,
		Categories:    categories,
		Notes:         sub.Notes,
	}

	stored, err := p.items.AddItem(ctx, item)
	if err != nil {
		return nil, err
	}

	if err := p.gateway.UpsertItem(ctx, stored); err != nil {
		// The item is durable; it stays reachable through the keyword
		// fallback until a reindex run catches it up.
		p.logger.Warn("vector indexing failed, item saved unindexed",
			"item_id", stored.ID, "err", err)
	}

	p.logger.Info("item saved",
		"item_id", stored.ID,
		"user_id", userID,
		"platform", stored.Platform,
		"content_type", stored.ContentType)
	return stored, nil
}

// SaveBatch saves independent submissions in parallel on the worker
// pool. The returned items are the successes in submission order; the
// error joins every per-item failure.
func (p *Pipeline) SaveBatch(ctx context.Context, userID string, subs []*core.Submission) ([]*core.Item, error) {
	if len(subs) == 0 {
		return nil, nil
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]*core.Item, len(subs))
		errs    = make([]error, len(subs))
	)

	for i, sub := range subs {
		wg.Add(1)
		i, sub := i, sub
		if err := p.pool.Submit(func() {
			defer wg.Done()
			item, err := p.Save(ctx, userID, sub)
			mu.Lock()
			results[i], errs[i] = item, err
			mu.Unlock()
		}); err != nil {
			wg.Done()
			mu.Lock()
			errs[i] = err
			mu.Unlock()
		}
	}
	wg.Wait()

	items := make([]*core.Item, 0, len(subs))
	for _, item := range results {
		if item != nil {
			items = append(items, item)
		}
	}
	return items, errors.Join(errs...)
}

// SaveImage stores an image item referencing an already-uploaded blob.
// No metadata extraction runs; the filename becomes the title and the
// notes drive annotation.
func (p *Pipeline) SaveImage(ctx context.Context, userID, imageURL, notes string) (*core.Item, error) {
	if userID == "" {
		return nil, core.ErrEmptyUserID
	}
	if strings.TrimSpace(imageURL) == "" {
		return nil, core.ErrEmptyContent
	}

	title := imageTitle(imageURL)
	annotated := notes
	if annotated == "" {
		annotated = title
	}
	categories := p.annotator.Categorize(ctx, annotated, title)

	item := &core.Item{
		ID:          core.NewItemID(),
		UserID:      userID,
		Platform:    core.PlatformGeneric,
		SourceURL:   imageURL,
		ContentType: core.ContentTypeImage,
		Title:       title,
		RawContent:  imageURL,
		Categories:  categories,
		Notes:       notes,
	}

	stored, err := p.items.AddItem(ctx, item)
	if err != nil {
		return nil, err
	}

	if err := p.gateway.UpsertItem(ctx, stored); err != nil {
		p.logger.Warn("vector indexing failed, image saved unindexed",
			"item_id", stored.ID, "err", err)
	}
	return stored, nil
}

// Release releases the worker pool. The pipeline should not be used
// after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// imageTitle derives a human-readable title from an image URL.
func imageTitle(imageURL string) string {
	if u, err := url.Parse(imageURL); err == nil && u.Path != "" {
		if base := path.Base(u.Path); base != "/" && base != "." {
			return base
		}
	}
	return classify.TruncateTitle(imageURL)
}
