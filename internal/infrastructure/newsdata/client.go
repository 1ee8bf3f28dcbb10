package newsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"NewsVerifier/internal/domain"
	"NewsVerifier/internal/ports"
)

const (
	defaultEndpoint = "https://newsdata.io/api/1/news"

	// Keys shorter than this cannot be valid; the check is skipped
	// instead of burning a doomed request.
	minAPIKeyLength = 20

	headlineQuery   = "technology OR finance OR politics"
	headlineSize    = 10
	corroborateSize = 5

	// Corroboration threshold: more matches than this counts as high.
	highCorroboration = 5
)

// Client talks to the NewsData.io search API.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	logger   *slog.Logger
}

var _ ports.NewsSearcher = (*Client)(nil)

// NewClient creates a reusable API client.
func NewClient(endpoint, apiKey string, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

type apiResult struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Content     string `json:"content"`
	SourceID    string `json:"source_id"`
	PubDate     string `json:"pubDate"`
}

type apiResponse struct {
	Status       string      `json:"status"`
	Message      string      `json:"message"`
	TotalResults int         `json:"totalResults"`
	Results      []apiResult `json:"results"`
	NextPage     string      `json:"nextPage"`
}

// TopHeadlines fetches the live feed entries.
func (c *Client) TopHeadlines(ctx context.Context) ([]domain.Headline, error) {
	if !c.keyUsable() {
		return nil, fmt.Errorf("news API key missing or invalid")
	}

	resp, err := c.search(ctx, headlineQuery, headlineSize, "")
	if err != nil {
		return nil, err
	}

	headlines := make([]domain.Headline, 0, len(resp.Results))
	for _, res := range resp.Results {
		if res.Title == "" || res.Link == "" {
			continue
		}
		headlines = append(headlines, domain.Headline{
			Title:       res.Title,
			URL:         res.Link,
			Description: res.Description,
			Source:      res.SourceID,
			PublishedAt: parsePubDate(res.PubDate),
		})
	}
	return headlines, nil
}

// Corroborate searches for coverage of the given title and grades the
// result count. Failures are folded into an explicit Corroboration
// variant rather than returned as an error; the caller renders it as-is.
func (c *Client) Corroborate(ctx context.Context, title string) domain.Corroboration {
	if !c.keyUsable() {
		return domain.Corroboration{Level: domain.CorroborationSkipped}
	}

	resp, err := c.search(ctx, title, corroborateSize, "")
	if err != nil {
		c.logger.Warn("corroboration check failed", "error", err)
		return domain.Corroboration{Level: domain.CorroborationFailed, Message: err.Error()}
	}

	total := resp.TotalResults
	switch {
	case total > highCorroboration:
		return domain.Corroboration{Level: domain.CorroborationHigh, Count: total}
	case total > 0:
		return domain.Corroboration{Level: domain.CorroborationLow, Count: total}
	default:
		return domain.Corroboration{Level: domain.CorroborationNone}
	}
}

// CollectLabeled pages through recent coverage and returns up to target
// examples labeled as real, for training-corpus collection.
func (c *Client) CollectLabeled(ctx context.Context, query string, target int) ([]domain.LabeledExample, error) {
	if !c.keyUsable() {
		return nil, fmt.Errorf("news API key missing or invalid")
	}

	var examples []domain.LabeledExample
	page := ""
	for len(examples) < target {
		resp, err := c.search(ctx, query, headlineSize, page)
		if err != nil {
			return examples, err
		}

		added := 0
		for _, res := range resp.Results {
			if res.Title == "" || res.Content == "" {
				continue
			}
			examples = append(examples, domain.LabeledExample{
				Text:  res.Title + ". " + res.Content,
				Label: domain.VerdictReal.Label(),
			})
			added++
		}
		c.logger.Info("collected page", "new", added, "total", len(examples))

		if resp.NextPage == "" || len(resp.Results) == 0 {
			break
		}
		page = resp.NextPage

		// Stay under the API rate limit between pages.
		select {
		case <-ctx.Done():
			return examples, ctx.Err()
		case <-time.After(time.Second):
		}
	}

	return examples, nil
}

func (c *Client) search(ctx context.Context, query string, size int, page string) (*apiResponse, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("country", "us,gb,in")
	params.Set("size", strconv.Itoa(size))
	if page != "" {
		params.Set("page", page)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news API returned %s", resp.Status)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Status == "error" {
		return nil, fmt.Errorf("news API error: %s", parsed.Message)
	}

	return &parsed, nil
}

func (c *Client) keyUsable() bool {
	return len(strings.TrimSpace(c.apiKey)) >= minAPIKeyLength
}

func parsePubDate(raw string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
