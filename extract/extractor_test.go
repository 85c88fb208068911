package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/poiesic/recall/classify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Plain Title</title>
  <meta property="og:title" content="OG Title">
  <meta property="og:description" content="OG description of the article.">
  <meta property="og:image" content="https://cdn.example.com/thumb.jpg">
  <meta name="description" content="Meta description.">
</head>
<body>
  <nav>Home | About | Contact</nav>
  <article>
    <h1>OG Title</h1>
    <p>This is the main body of the article. It talks about something
    interesting at considerable length so that the readability pass has
    enough material to keep it as primary content. The paragraph keeps
    going with more and more detail about the subject matter at hand.</p>
    <p>A second paragraph continues the discussion with further detail,
    examples and enough words to stay above extraction thresholds.</p>
  </article>
  <footer>Copyright</footer>
</body>
</html>`

const bareHTML = `<!DOCTYPE html>
<html>
<head><title>Bare Page</title><meta name="description" content="Just a description."></head>
<body><p>short</p></body>
</html>`

func TestExtractPrefersSocialCard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	e := NewExtractor()
	md := e.Extract(context.Background(), srv.URL)

	assert.Equal(t, "OG Title", md.Title)
	assert.Equal(t, "OG description of the article.", md.Description)
	assert.Equal(t, "https://cdn.example.com/thumb.jpg", md.ThumbnailURL)
	assert.Contains(t, md.ExtractedText, "main body of the article")
	assert.LessOrEqual(t, len(md.ExtractedText), 5000)
}

func TestExtractFallsBackToTitleTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(bareHTML))
	}))
	defer srv.Close()

	e := NewExtractor()
	md := e.Extract(context.Background(), srv.URL)

	assert.Equal(t, "Bare Page", md.Title)
	assert.Equal(t, "Just a description.", md.Description)
	assert.Empty(t, md.ThumbnailURL)
}

func TestExtractFollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/moved" {
			http.Redirect(w, r, "/final", http.StatusMovedPermanently)
			return
		}
		_, _ = w.Write([]byte(bareHTML))
	}))
	defer target.Close()

	e := NewExtractor()
	md := e.Extract(context.Background(), target.URL+"/moved")
	assert.Equal(t, "Bare Page", md.Title)
}

func TestExtractNeverFails(t *testing.T) {
	t.Run("unreachable host", func(t *testing.T) {
		e := NewExtractor(WithTimeout(500 * time.Millisecond))
		md := e.Extract(context.Background(), "http://127.0.0.1:1/nothing")
		assert.Equal(t, Metadata{}, md)
	})

	t.Run("server error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		e := NewExtractor()
		assert.Equal(t, Metadata{}, e.Extract(context.Background(), srv.URL))
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(2 * time.Second)
		}))
		defer srv.Close()

		e := NewExtractor(WithTimeout(100 * time.Millisecond))
		assert.Equal(t, Metadata{}, e.Extract(context.Background(), srv.URL))
	})
}

func TestMergePureURLMode(t *testing.T) {
	ext := classify.Classify("https://example.com/article")
	md := Metadata{Title: "T", Description: "D", ThumbnailURL: "TH", ExtractedText: "body"}

	merged := Merge(ext, md)

	assert.Equal(t, "T", merged.Title)
	assert.Equal(t, "D", merged.Description)
	assert.Equal(t, "TH", merged.ThumbnailURL)
	assert.Equal(t, "body", merged.ExtractedText)
	assert.Equal(t, "https://example.com/article", merged.RawContent)
}

func TestMergeEmbeddedURLMode(t *testing.T) {
	msg := "Check this out https://example.com/article"
	ext := classify.Classify(msg)
	require.Equal(t, "https://example.com/article", ext.SourceURL)

	t.Run("metadata present wins", func(t *testing.T) {
		merged := Merge(ext, Metadata{Title: "Page Title", Description: "Page D", ExtractedText: "page body"})

		assert.Equal(t, "Page Title", merged.Title)
		assert.Equal(t, "Page D", merged.Description)
		// The original message is prepended to the page body.
		assert.Equal(t, msg+"\n\npage body", merged.ExtractedText)
		assert.Equal(t, msg, merged.RawContent)
	})

	t.Run("metadata missing substitutes message prefix", func(t *testing.T) {
		merged := Merge(ext, Metadata{})

		assert.Equal(t, msg, merged.Title) // message shorter than 100 chars
		assert.Equal(t, msg, merged.Description)
		assert.Equal(t, msg, merged.ExtractedText)
		assert.Equal(t, msg, merged.RawContent)
	})

	t.Run("long message prefixes are clipped", func(t *testing.T) {
		long := strings.Repeat("m", 300) + " https://example.com/article"
		merged := Merge(classify.Classify(long), Metadata{})

		assert.Len(t, merged.Title, 100)
		assert.Len(t, merged.Description, 200)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abcd", 2))
	assert.Equal(t, "héll", Truncate("héllo", 4))
}

func TestMergeMultibyteMessage(t *testing.T) {
	message := strings.Repeat("сообщение ", 30) + "https://example.com/a"
	merged := Merge(classify.Classify(message), Metadata{})

	assert.True(t, utf8.ValidString(merged.Title))
	assert.Equal(t, 100, utf8.RuneCountInString(merged.Title))
	assert.True(t, utf8.ValidString(merged.Description))
	assert.Equal(t, 200, utf8.RuneCountInString(merged.Description))
}
