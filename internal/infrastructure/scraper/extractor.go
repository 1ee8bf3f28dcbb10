package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsVerifier/internal/domain"
	"NewsVerifier/internal/ports"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	// Pages yielding less text than this are treated as having no
	// usable article content.
	minContentLength = 50
)

// ErrNoContent marks pages where no usable article text could be
// extracted (paywalls, scripts-only pages, empty shells).
var ErrNoContent = errors.New("no usable article content")

// Extractor fetches a news page and extracts its title and body text.
type Extractor struct {
	client    *http.Client
	userAgent string
}

var _ ports.ArticleExtractor = (*Extractor)(nil)

// NewExtractor wires an HTTP client; a browser-like User-Agent improves
// fetch success on news sites.
func NewExtractor(client *http.Client, userAgent string) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Extractor{client: client, userAgent: userAgent}
}

// Extract downloads the page and returns "Title. Body" text. Pages
// without a title or with less than minContentLength characters of text
// yield ErrNoContent.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (domain.Article, error) {
	doc, err := e.fetchDocument(ctx, pageURL)
	if err != nil {
		return domain.Article{}, err
	}

	title := extractTitle(doc)
	body := extractBody(doc)

	text := strings.TrimSpace(title)
	if text != "" && body != "" {
		text = text + ". " + body
	} else if body != "" {
		text = body
	}

	if title == "" || len(text) < minContentLength {
		return domain.Article{}, fmt.Errorf("%w: %s", ErrNoContent, pageURL)
	}

	return domain.Article{URL: pageURL, Title: title, Text: text}, nil
}

func (e *Extractor) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return doc, nil
}

func extractTitle(doc *goquery.Document) string {
	if title, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if t := strings.TrimSpace(title); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractBody collects paragraph text, preferring <article> scope when
// present so navigation and footer noise is left out.
func extractBody(doc *goquery.Document) string {
	scope := doc.Find("article")
	if scope.Length() == 0 {
		scope = doc.Selection
	}

	var parts []string
	scope.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, " ")
}
