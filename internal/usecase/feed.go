package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"NewsVerifier/internal/domain"
	"NewsVerifier/internal/ports"
)

// Feed serves the live headline feed, backed by an optional cache.
type Feed struct {
	searcher ports.NewsSearcher
	cache    ports.HeadlineCache
	logger   *slog.Logger
}

// NewFeed wires the searcher with an optional cache (nil disables caching).
func NewFeed(searcher ports.NewsSearcher, cache ports.HeadlineCache, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Feed{searcher: searcher, cache: cache, logger: logger}
}

// Headlines returns the current feed, serving from cache when possible.
func (f *Feed) Headlines(ctx context.Context) ([]domain.Headline, error) {
	if f.cache != nil {
		if headlines, ok := f.cache.Get(ctx); ok {
			return headlines, nil
		}
	}
	return f.refresh(ctx)
}

// Refresh re-warms the cache; used as the scheduler job.
func (f *Feed) Refresh(now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := f.refresh(ctx); err != nil {
		f.logger.Warn("headline refresh failed", "error", err)
	}
}

func (f *Feed) refresh(ctx context.Context) ([]domain.Headline, error) {
	if f.searcher == nil {
		return nil, fmt.Errorf("news searcher is not configured")
	}

	headlines, err := f.searcher.TopHeadlines(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, headlines); err != nil {
			f.logger.Warn("headline cache write failed", "error", err)
		}
	}
	return headlines, nil
}
