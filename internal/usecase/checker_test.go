package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsVerifier/internal/domain"
	"NewsVerifier/internal/infrastructure/scraper"
	"NewsVerifier/internal/predict"
)

type stubExtractor struct {
	article domain.Article
	err     error
}

func (s *stubExtractor) Extract(ctx context.Context, pageURL string) (domain.Article, error) {
	if s.err != nil {
		return domain.Article{}, s.err
	}
	article := s.article
	article.URL = pageURL
	return article, nil
}

type stubPredictor struct {
	verdict domain.Verdict
	err     error
}

func (s *stubPredictor) Ready() bool { return s.err == nil }

func (s *stubPredictor) Check(text string) (domain.Verdict, error) {
	return s.verdict, s.err
}

type stubSearcher struct {
	corroboration domain.Corroboration
	headlines     []domain.Headline
	lastTitle     string
	calls         int
}

func (s *stubSearcher) TopHeadlines(ctx context.Context) ([]domain.Headline, error) {
	s.calls++
	return s.headlines, nil
}

func (s *stubSearcher) Corroborate(ctx context.Context, title string) domain.Corroboration {
	s.lastTitle = title
	return s.corroboration
}

type recordingRepo struct {
	records []domain.CheckRecord
}

func (r *recordingRepo) SaveCheck(ctx context.Context, record domain.CheckRecord) error {
	r.records = append(r.records, record)
	return nil
}

func (r *recordingRepo) RecentChecks(ctx context.Context, limit int) ([]domain.CheckRecord, error) {
	return r.records, nil
}

func TestCheckURL(t *testing.T) {
	t.Parallel()

	searcher := &stubSearcher{corroboration: domain.Corroboration{Level: domain.CorroborationHigh, Count: 9}}
	repo := &recordingRepo{}
	checker := NewChecker(CheckerDeps{
		Extractor: &stubExtractor{article: domain.Article{
			Title: "Markets Rally",
			Text:  "Markets Rally. Stocks climbed across the board.",
		}},
		Predictor:  &stubPredictor{verdict: domain.VerdictReal},
		Searcher:   searcher,
		Repository: repo,
	})

	result, err := checker.CheckURL(context.Background(), "https://example.org/story")
	require.NoError(t, err)

	assert.Equal(t, domain.SourceURL, result.Source)
	assert.Equal(t, domain.VerdictReal, result.Verdict)
	assert.Equal(t, domain.CorroborationHigh, result.Corroboration.Level)
	assert.Equal(t, "Markets Rally", searcher.lastTitle)
	assert.False(t, result.CheckedAt.IsZero())

	require.Len(t, repo.records, 1)
	assert.Equal(t, "https://example.org/story", repo.records[0].URL)
	assert.Equal(t, domain.VerdictReal, repo.records[0].Verdict)
}

func TestCheckURLNoContent(t *testing.T) {
	t.Parallel()

	checker := NewChecker(CheckerDeps{
		Extractor: &stubExtractor{err: scraper.ErrNoContent},
		Predictor: &stubPredictor{verdict: domain.VerdictReal},
	})

	_, err := checker.CheckURL(context.Background(), "https://example.org/empty")
	require.ErrorIs(t, err, ErrNoContent)
}

func TestCheckURLModelUnavailable(t *testing.T) {
	t.Parallel()

	checker := NewChecker(CheckerDeps{
		Extractor: &stubExtractor{article: domain.Article{
			Title: "Anything",
			Text:  "Anything. Long enough body of text for the check.",
		}},
		Predictor: &stubPredictor{err: predict.ErrModelUnavailable},
	})

	_, err := checker.CheckURL(context.Background(), "https://example.org/story")
	require.ErrorIs(t, err, ErrModelUnavailable)
}

func TestCheckTextSkipsCorroboration(t *testing.T) {
	t.Parallel()

	searcher := &stubSearcher{corroboration: domain.Corroboration{Level: domain.CorroborationHigh}}
	checker := NewChecker(CheckerDeps{
		Predictor: &stubPredictor{verdict: domain.VerdictFake},
		Searcher:  searcher,
	})

	result, err := checker.CheckText(context.Background(), "Buy miracle cure now!!!")
	require.NoError(t, err)

	assert.Equal(t, domain.SourceText, result.Source)
	assert.Equal(t, domain.VerdictFake, result.Verdict)
	assert.Equal(t, domain.CorroborationSkipped, result.Corroboration.Level)
	assert.Empty(t, searcher.lastTitle, "text checks must not hit the search API")
}

func TestCheckTextTruncatesTitle(t *testing.T) {
	t.Parallel()

	checker := NewChecker(CheckerDeps{Predictor: &stubPredictor{verdict: domain.VerdictFake}})

	long := ""
	for i := 0; i < 20; i++ {
		long += "abcdefghij"
	}
	result, err := checker.CheckText(context.Background(), long)
	require.NoError(t, err)
	assert.Len(t, []rune(result.Title), 50)
	assert.Equal(t, long, result.ArticleText)
}

func TestFeedUsesCache(t *testing.T) {
	t.Parallel()

	cached := []domain.Headline{{Title: "Cached", URL: "https://example.org/cached"}}
	searcher := &stubSearcher{headlines: []domain.Headline{{Title: "Fresh"}}}
	fake := &fakeCache{data: cached, ok: true}

	feed := NewFeed(searcher, fake, nil)
	headlines, err := feed.Headlines(context.Background())
	require.NoError(t, err)

	assert.Equal(t, cached, headlines)
	assert.Zero(t, searcher.calls, "cache hit must not reach the API")
}

func TestFeedFallsThroughOnMiss(t *testing.T) {
	t.Parallel()

	searcher := &stubSearcher{headlines: []domain.Headline{{Title: "Fresh", URL: "https://example.org/f"}}}
	fake := &fakeCache{}

	feed := NewFeed(searcher, fake, nil)
	headlines, err := feed.Headlines(context.Background())
	require.NoError(t, err)

	require.Len(t, headlines, 1)
	assert.Equal(t, "Fresh", headlines[0].Title)
	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, headlines, fake.stored, "miss must re-warm the cache")
}

func TestFeedRefreshWarmsCache(t *testing.T) {
	t.Parallel()

	searcher := &stubSearcher{headlines: []domain.Headline{{Title: "Warmed"}}}
	fake := &fakeCache{}

	feed := NewFeed(searcher, fake, nil)
	feed.Refresh(time.Now())

	require.Len(t, fake.stored, 1)
	assert.Equal(t, "Warmed", fake.stored[0].Title)
}

type fakeCache struct {
	data   []domain.Headline
	ok     bool
	stored []domain.Headline
}

func (f *fakeCache) Get(ctx context.Context) ([]domain.Headline, bool) {
	return f.data, f.ok
}

func (f *fakeCache) Set(ctx context.Context, headlines []domain.Headline) error {
	f.stored = headlines
	return nil
}
