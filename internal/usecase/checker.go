package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"NewsVerifier/internal/domain"
	"NewsVerifier/internal/infrastructure/scraper"
	"NewsVerifier/internal/ports"
	"NewsVerifier/internal/predict"
)

// ErrNoContent is surfaced when a URL yields no usable article text.
var ErrNoContent = errors.New("could not extract article content")

// ErrModelUnavailable is surfaced when the model pair failed to load at
// startup; the service keeps serving in degraded mode.
var ErrModelUnavailable = errors.New("model unavailable")

// CheckerDeps wires the driven adapters into the check pipeline.
// Repository may be nil (persistence disabled).
type CheckerDeps struct {
	Extractor  ports.ArticleExtractor
	Predictor  ports.Predictor
	Searcher   ports.NewsSearcher
	Repository ports.CheckRepository
	Logger     *slog.Logger
}

// Checker implements the credibility-check workflow: extract, classify,
// corroborate, persist.
type Checker struct {
	extractor  ports.ArticleExtractor
	predictor  ports.Predictor
	searcher   ports.NewsSearcher
	repository ports.CheckRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewChecker constructs the orchestration component.
func NewChecker(deps CheckerDeps) *Checker {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Checker{
		extractor:  deps.Extractor,
		predictor:  deps.Predictor,
		searcher:   deps.Searcher,
		repository: deps.Repository,
		logger:     logger,
		now:        time.Now,
	}
}

// CheckURL scrapes the page, classifies its text, and cross-checks the
// title against external coverage.
func (c *Checker) CheckURL(ctx context.Context, pageURL string) (domain.CheckResult, error) {
	article, err := c.extractor.Extract(ctx, pageURL)
	if err != nil {
		if errors.Is(err, scraper.ErrNoContent) {
			return domain.CheckResult{}, fmt.Errorf("%w: %s", ErrNoContent, pageURL)
		}
		return domain.CheckResult{}, fmt.Errorf("extract article: %w", err)
	}

	verdict, err := c.predictor.Check(article.Text)
	if err != nil {
		if errors.Is(err, predict.ErrModelUnavailable) {
			return domain.CheckResult{}, ErrModelUnavailable
		}
		return domain.CheckResult{}, fmt.Errorf("classify article: %w", err)
	}

	corroboration := domain.Corroboration{Level: domain.CorroborationSkipped}
	if c.searcher != nil {
		corroboration = c.searcher.Corroborate(ctx, article.Title)
	}

	result := domain.CheckResult{
		Source:        domain.SourceURL,
		URL:           pageURL,
		Title:         article.Title,
		ArticleText:   article.Text,
		Verdict:       verdict,
		Corroboration: corroboration,
		CheckedAt:     c.now(),
	}
	c.persist(ctx, result)
	return result, nil
}

// CheckText classifies raw text pasted by the user. The external
// cross-check is skipped: there is no reliable title to search for.
func (c *Checker) CheckText(ctx context.Context, text string) (domain.CheckResult, error) {
	verdict, err := c.predictor.Check(text)
	if err != nil {
		if errors.Is(err, predict.ErrModelUnavailable) {
			return domain.CheckResult{}, ErrModelUnavailable
		}
		return domain.CheckResult{}, fmt.Errorf("classify text: %w", err)
	}

	title := text
	if runes := []rune(title); len(runes) > 50 {
		title = string(runes[:50])
	}

	result := domain.CheckResult{
		Source:        domain.SourceText,
		Title:         title,
		ArticleText:   text,
		Verdict:       verdict,
		Corroboration: domain.Corroboration{Level: domain.CorroborationSkipped},
		CheckedAt:     c.now(),
	}
	c.persist(ctx, result)
	return result, nil
}

func (c *Checker) persist(ctx context.Context, result domain.CheckResult) {
	if c.repository == nil {
		return
	}

	record := domain.CheckRecord{
		Source:        result.Source,
		URL:           result.URL,
		Title:         result.Title,
		Verdict:       result.Verdict,
		Corroboration: result.Corroboration.Level,
		CheckedAt:     result.CheckedAt,
	}
	if err := c.repository.SaveCheck(ctx, record); err != nil {
		c.logger.Warn("persist check failed", "url", result.URL, "error", err)
	}
}
