package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const articlePage = `
<!DOCTYPE html>
<html>
<head>
  <title>Fallback Title</title>
  <meta property="og:title" content="Markets Rally On Strong Earnings">
</head>
<body>
  <nav><p></p></nav>
  <article>
    <p>Stock markets rallied sharply on Tuesday.</p>
    <p>Analysts credited strong quarterly earnings across the banking sector.</p>
  </article>
  <footer><p>Unrelated footer text outside the article.</p></footer>
</body>
</html>`

func TestExtract(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articlePage))
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client(), "")
	article, err := extractor.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	if article.Title != "Markets Rally On Strong Earnings" {
		t.Fatalf("unexpected title: %s", article.Title)
	}
	if !strings.HasPrefix(article.Text, "Markets Rally On Strong Earnings. ") {
		t.Fatalf("text does not start with title: %s", article.Text)
	}
	if !strings.Contains(article.Text, "rallied sharply") {
		t.Fatalf("body text missing: %s", article.Text)
	}
	if strings.Contains(article.Text, "footer text") {
		t.Fatalf("footer leaked into article text: %s", article.Text)
	}
}

func TestExtractFallsBackToTitleTag(t *testing.T) {
	t.Parallel()

	page := `<html><head><title>Plain Title</title></head><body>
	<p>Some long enough paragraph of article text to pass the length check.</p>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client(), "")
	article, err := extractor.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if article.Title != "Plain Title" {
		t.Fatalf("unexpected title: %s", article.Title)
	}
}

func TestExtractNoContent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Short</title></head><body><p>tiny</p></body></html>`))
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client(), "")
	_, err := extractor.Extract(context.Background(), server.URL)
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestExtractMissingTitle(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
		<p>A reasonably long body of article text without any page title at all.</p>
		</body></html>`))
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client(), "")
	_, err := extractor.Extract(context.Background(), server.URL)
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestExtractHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client(), "")
	if _, err := extractor.Extract(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestExtractSetsUserAgent(t *testing.T) {
	t.Parallel()

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(articlePage))
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client(), "custom-agent/1.0")
	if _, err := extractor.Extract(context.Background(), server.URL); err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if gotUA != "custom-agent/1.0" {
		t.Fatalf("unexpected user agent: %s", gotUA)
	}
}
