package ports

import (
	"context"
	"time"

	"NewsVerifier/internal/domain"
)

// ArticleExtractor pulls readable article text out of a news page URL.
type ArticleExtractor interface {
	Extract(ctx context.Context, pageURL string) (domain.Article, error)
}

// Predictor classifies normalized article text as real or fake.
type Predictor interface {
	Ready() bool
	Check(text string) (domain.Verdict, error)
}

// NewsSearcher talks to the external news search API.
type NewsSearcher interface {
	TopHeadlines(ctx context.Context) ([]domain.Headline, error)
	Corroborate(ctx context.Context, title string) domain.Corroboration
}

// CheckRepository persists completed credibility checks for history/audit.
type CheckRepository interface {
	SaveCheck(ctx context.Context, record domain.CheckRecord) error
	RecentChecks(ctx context.Context, limit int) ([]domain.CheckRecord, error)
}

// HeadlineCache stores the live feed between refreshes.
type HeadlineCache interface {
	Get(ctx context.Context) ([]domain.Headline, bool)
	Set(ctx context.Context, headlines []domain.Headline) error
}

// Scheduler drives recurring background jobs (cache warming).
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
