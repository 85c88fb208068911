package ingestion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/ai/mock"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/extract"
	"github.com/poiesic/recall/index"
	"github.com/poiesic/recall/index/memory"
	badgerstore "github.com/poiesic/recall/storage/badger"
)

const articleHTML = `<!DOCTYPE html>
<html><head>
<title>Plain Title</title>
<meta property="og:title" content="Understanding Goroutines">
<meta property="og:description" content="A deep dive into Go's scheduler.">
<meta property="og:image" content="https://img.example.com/thumb.png">
</head><body>
<article>
<h1>Understanding Goroutines</h1>
<p>Goroutines are lightweight threads managed by the Go runtime rather than
the operating system. They start with small stacks that grow and shrink as
needed, which makes it practical to run hundreds of thousands of them in a
single process without exhausting memory.</p>
<p>The scheduler multiplexes goroutines onto a small number of OS threads
using a work-stealing algorithm. When a goroutine blocks on a syscall, the
runtime hands its thread to another runnable goroutine, keeping every core
busy without any intervention from the programmer.</p>
</article>
</body></html>`

type testEnv struct {
	pipeline *Pipeline
	provider *mock.MockProvider
	index    *memory.Index
}

func newTestEnv(t *testing.T, embedder ai.Embedder) *testEnv {
	t.Helper()

	repo, _, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	provider := mock.NewMockProvider()
	if embedder == nil {
		embedder = provider.Embedder()
	}

	idx := memory.New()
	gateway, err := index.NewGateway(idx, embedder)
	require.NoError(t, err)

	pipeline, err := NewPipeline(repo, gateway, provider.Annotator(), extract.NewExtractor())
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return &testEnv{pipeline: pipeline, provider: provider, index: idx}
}

func TestNewPipeline(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := NewPipeline(nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrItemRepositoryRequired)

	_, err = NewPipeline(env.pipeline.items, nil, nil, nil)
	assert.ErrorIs(t, err, ErrGatewayRequired)

	_, err = NewPipeline(env.pipeline.items, env.pipeline.gateway, nil, nil)
	assert.ErrorIs(t, err, ErrAnnotatorRequired)

	_, err = NewPipeline(env.pipeline.items, env.pipeline.gateway, env.pipeline.annotator, nil)
	assert.ErrorIs(t, err, ErrExtractorRequired)
}

func TestSavePlainText(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	item, err := env.pipeline.Save(ctx, "user-1", &core.Submission{
		Content: "remember to compare pgx and database/sql for the migration",
		Notes:   "from standup",
	})
	require.NoError(t, err)

	assert.Equal(t, core.PlatformGeneric, item.Platform)
	assert.Equal(t, core.ContentTypeText, item.ContentType)
	assert.Equal(t, "remember to compare pgx and database/sql for the migration", item.Title)
	assert.Equal(t, []string{"Test"}, item.Categories)
	assert.Equal(t, "from standup", item.Notes)
	assert.Empty(t, item.AISummary, "short text gets no summary")
	assert.Equal(t, 1, env.index.Len())
}

func TestSummarizeThresholdCountsCharacters(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	t.Run("short multibyte text gets no summary", func(t *testing.T) {
		item, err := env.pipeline.Save(ctx, "user-1", &core.Submission{
			Content: strings.Repeat("заметка ", 10), // 80 chars, well over 100 bytes
		})
		require.NoError(t, err)
		assert.Empty(t, item.AISummary)
	})

	t.Run("long multibyte text is summarized", func(t *testing.T) {
		item, err := env.pipeline.Save(ctx, "user-1", &core.Submission{
			Content: strings.Repeat("заметка ", 20),
		})
		require.NoError(t, err)
		assert.Equal(t, "A test summary.", item.AISummary)
	})
}

func TestSaveURL(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, articleHTML)
	}))
	defer server.Close()

	t.Run("pure url save", func(t *testing.T) {
		env := newTestEnv(t, nil)

		item, err := env.pipeline.Save(ctx, "user-1", &core.Submission{Content: server.URL + "/post"})
		require.NoError(t, err)

		assert.Equal(t, core.ContentTypeLink, item.ContentType)
		assert.Equal(t, server.URL+"/post", item.SourceURL)
		assert.Equal(t, "Understanding Goroutines", item.Title)
		assert.Equal(t, "A deep dive into Go's scheduler.", item.Description)
		assert.Equal(t, "https://img.example.com/thumb.png", item.ThumbnailURL)
		assert.Contains(t, item.ExtractedText, "work-stealing")
		assert.Equal(t, "A test summary.", item.AISummary, "long extraction gets a summary")
	})

	t.Run("explicit platform override", func(t *testing.T) {
		env := newTestEnv(t, nil)

		item, err := env.pipeline.Save(ctx, "user-1", &core.Submission{
			Content:  server.URL + "/post",
			Platform: core.PlatformTelegram,
		})
		require.NoError(t, err)
		assert.Equal(t, core.PlatformTelegram, item.Platform)
		assert.Equal(t, core.ContentTypeLink, item.ContentType, "override never touches content type")
	})

	t.Run("embedded url keeps message text", func(t *testing.T) {
		env := newTestEnv(t, nil)

		message := "check this article out " + server.URL + "/post"
		item, err := env.pipeline.Save(ctx, "user-1", &core.Submission{Content: message})
		require.NoError(t, err)

		assert.Equal(t, message, item.RawContent)
		assert.Equal(t, "Understanding Goroutines", item.Title)
		assert.Contains(t, item.ExtractedText, "check this article out")
	})
}

func TestSaveExtractorFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	t.Run("pure url stays bare", func(t *testing.T) {
		item, err := env.pipeline.Save(ctx, "user-1", &core.Submission{
			Content: "http://127.0.0.1:1/unreachable",
		})
		require.NoError(t, err, "a dead extractor never blocks a save")
		assert.Empty(t, item.Title)
		assert.Empty(t, item.ExtractedText)
	})

	t.Run("embedded url falls back to message prefixes", func(t *testing.T) {
		message := "worth reading later http://127.0.0.1:1/unreachable because of the charts"
		item, err := env.pipeline.Save(ctx, "user-1", &core.Submission{Content: message})
		require.NoError(t, err)
		assert.Equal(t, message, item.Title, "short message becomes the title whole")
		assert.Equal(t, message, item.Description)
	})
}

func TestSaveIndexingFailureDegrades(t *testing.T) {
	ctx := context.Background()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(context.Context, string) ([]float32, error) {
		return nil, errors.New("all tiers down")
	}
	env := newTestEnv(t, embedder)

	item, err := env.pipeline.Save(ctx, "user-1", &core.Submission{Content: "important note"})
	require.NoError(t, err, "indexing failure must not lose the item")
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 0, env.index.Len())
}

func TestSaveValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	_, err := env.pipeline.Save(ctx, "", &core.Submission{Content: "x"})
	assert.ErrorIs(t, err, core.ErrEmptyUserID)

	_, err = env.pipeline.Save(ctx, "user-1", nil)
	assert.ErrorIs(t, err, core.ErrInvalidSubmission)

	_, err = env.pipeline.Save(ctx, "user-1", &core.Submission{Content: "   "})
	assert.ErrorIs(t, err, core.ErrInvalidSubmission)
}

func TestSaveBatch(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	subs := []*core.Submission{
		{Content: "first note"},
		{Content: "   "}, // invalid
		{Content: "second note"},
	}

	items, err := env.pipeline.SaveBatch(ctx, "user-1", subs)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidSubmission)
	require.Len(t, items, 2)
	assert.Equal(t, 2, env.index.Len())
}

func TestSaveImage(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	item, err := env.pipeline.SaveImage(ctx, "user-1",
		"https://blobs.example.com/uploads/sunset-pier.jpg", "vacation shot")
	require.NoError(t, err)

	assert.Equal(t, core.ContentTypeImage, item.ContentType)
	assert.Equal(t, core.PlatformGeneric, item.Platform)
	assert.Equal(t, "sunset-pier.jpg", item.Title)
	assert.Equal(t, "vacation shot", item.Notes)
	assert.Equal(t, 1, env.index.Len())

	_, err = env.pipeline.SaveImage(ctx, "user-1", "  ", "")
	assert.ErrorIs(t, err, core.ErrEmptyContent)
}

func TestSaveBatchParallelism(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	subs := make([]*core.Submission, 20)
	for i := range subs {
		subs[i] = &core.Submission{Content: fmt.Sprintf("note number %d about %s", i, strings.Repeat("go ", i+1))}
	}

	items, err := env.pipeline.SaveBatch(ctx, "user-1", subs)
	require.NoError(t, err)
	assert.Len(t, items, 20)
	assert.Equal(t, 20, env.index.Len())
}
