package newsdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"NewsVerifier/internal/domain"
)

const testAPIKey = "test-api-key-0123456789abcdef"

func newsServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, testAPIKey, nil)
	client.http = server.Client()
	return server, client
}

func TestTopHeadlines(t *testing.T) {
	t.Parallel()

	_, client := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("apikey") != testAPIKey {
			t.Errorf("missing apikey param")
		}
		if q.Get("language") != "en" {
			t.Errorf("unexpected language: %s", q.Get("language"))
		}
		if q.Get("size") != "10" {
			t.Errorf("unexpected size: %s", q.Get("size"))
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":       "success",
			"totalResults": 2,
			"results": []map[string]string{
				{"title": "Headline One", "link": "https://example.org/1",
					"description": "first", "source_id": "example",
					"pubDate": "2026-08-28 10:00:00"},
				{"title": "", "link": "https://example.org/skipped"},
				{"title": "Headline Two", "link": "https://example.org/2"},
			},
		})
	})

	headlines, err := client.TopHeadlines(context.Background())
	if err != nil {
		t.Fatalf("TopHeadlines error: %v", err)
	}

	if len(headlines) != 2 {
		t.Fatalf("expected 2 headlines, got %d", len(headlines))
	}
	if headlines[0].Title != "Headline One" || headlines[0].Source != "example" {
		t.Fatalf("unexpected first headline: %+v", headlines[0])
	}
	if headlines[0].PublishedAt.IsZero() {
		t.Fatal("pubDate not parsed")
	}
}

func TestTopHeadlinesWithoutKey(t *testing.T) {
	t.Parallel()

	client := NewClient("http://unused.invalid", "short", nil)
	if _, err := client.TopHeadlines(context.Background()); err == nil {
		t.Fatal("expected error for invalid API key")
	}
}

func TestCorroborateLevels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		total int
		want  domain.CorroborationLevel
	}{
		{12, domain.CorroborationHigh},
		{6, domain.CorroborationHigh},
		{5, domain.CorroborationLow},
		{1, domain.CorroborationLow},
		{0, domain.CorroborationNone},
	}

	for _, tc := range cases {
		total := tc.total
		_, client := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": "success", "totalResults": total,
			})
		})

		got := client.Corroborate(context.Background(), "some headline")
		if got.Level != tc.want {
			t.Fatalf("totalResults=%d: expected %s, got %s", tc.total, tc.want, got.Level)
		}
	}
}

func TestCorroborateSkippedWithoutKey(t *testing.T) {
	t.Parallel()

	client := NewClient("http://unused.invalid", "short", nil)
	got := client.Corroborate(context.Background(), "anything")
	if got.Level != domain.CorroborationSkipped {
		t.Fatalf("expected skipped, got %s", got.Level)
	}
}

func TestCorroborateFailure(t *testing.T) {
	t.Parallel()

	_, client := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	got := client.Corroborate(context.Background(), "anything")
	if got.Level != domain.CorroborationFailed {
		t.Fatalf("expected failed, got %s", got.Level)
	}
	if got.Message == "" {
		t.Fatal("failure message missing")
	}
}

func TestCorroborateAPIError(t *testing.T) {
	t.Parallel()

	_, client := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "error", "message": "plan limit reached",
		})
	})

	got := client.Corroborate(context.Background(), "anything")
	if got.Level != domain.CorroborationFailed {
		t.Fatalf("expected failed, got %s", got.Level)
	}
	if !strings.Contains(got.Message, "plan limit reached") {
		t.Fatalf("unexpected message: %s", got.Message)
	}
}

func TestCollectLabeledPaging(t *testing.T) {
	t.Parallel()

	page := 0
	_, client := newsServer(t, func(w http.ResponseWriter, r *http.Request) {
		page++
		resp := map[string]any{
			"status": "success",
			"results": []map[string]string{
				{"title": "Story", "content": "Body of the story"},
				{"title": "No Content"},
			},
		}
		if page == 1 {
			if r.URL.Query().Get("page") != "" {
				t.Errorf("first request should have no page token")
			}
			resp["nextPage"] = "token-2"
		} else if r.URL.Query().Get("page") != "token-2" {
			t.Errorf("expected page token on second request, got %q", r.URL.Query().Get("page"))
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	examples, err := client.CollectLabeled(context.Background(), "tech", 2)
	if err != nil {
		t.Fatalf("CollectLabeled error: %v", err)
	}

	if len(examples) != 2 {
		t.Fatalf("expected 2 examples, got %d", len(examples))
	}
	for _, ex := range examples {
		if ex.Label != 1 {
			t.Fatalf("collected examples must be labeled real, got %d", ex.Label)
		}
		if !strings.Contains(ex.Text, "Story. Body") {
			t.Fatalf("unexpected text: %s", ex.Text)
		}
	}
	if page != 2 {
		t.Fatalf("expected 2 pages fetched, got %d", page)
	}
}
