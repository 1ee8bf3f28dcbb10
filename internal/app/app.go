package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"NewsVerifier/internal/config"
	"NewsVerifier/internal/infrastructure/cache"
	"NewsVerifier/internal/infrastructure/newsdata"
	"NewsVerifier/internal/infrastructure/scheduler"
	"NewsVerifier/internal/infrastructure/scraper"
	"NewsVerifier/internal/infrastructure/storage"
	"NewsVerifier/internal/logging"
	"NewsVerifier/internal/ports"
	"NewsVerifier/internal/predict"
	"NewsVerifier/internal/usecase"
	"NewsVerifier/internal/web"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	router    http.Handler
	refresher ports.Scheduler
	feed      *usecase.Feed
}

// New builds a runnable application instance. A missing model pair is
// not fatal: the service starts in degraded mode and every check
// reports the model as unavailable.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	serving, err := predict.Load(cfg.Model.VectorizerPath, cfg.Model.ClassifierPath)
	if err != nil {
		baseLogger.Warn("model artifacts not loaded, serving degraded",
			"vectorizer", cfg.Model.VectorizerPath,
			"classifier", cfg.Model.ClassifierPath,
			"error", err)
		serving = predict.NewServingContext(nil)
	}

	extractor := scraper.NewExtractor(
		&http.Client{Timeout: cfg.Scraper.Timeout},
		cfg.Scraper.UserAgent,
	)
	searcher := newsdata.NewClient(cfg.NewsAPI.Endpoint, cfg.NewsAPI.APIKey,
		baseLogger.With("component", "newsdata"))

	var repository ports.CheckRepository
	if cfg.Database.DSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		db, dbErr := storage.Open(ctx, cfg.Database.DSN)
		cancel()
		if dbErr != nil {
			baseLogger.Warn("check history disabled", "error", dbErr)
		} else {
			repository = storage.NewPostgresRepository(db)
		}
	}

	var headlineCache ports.HeadlineCache
	if cfg.Redis.Addr != "" {
		headlineCache = cache.NewRedisHeadlineCache(cfg.Redis.Addr, cfg.Redis.TTL,
			baseLogger.With("component", "cache"))
	}

	checker := usecase.NewChecker(usecase.CheckerDeps{
		Extractor:  extractor,
		Predictor:  serving,
		Searcher:   searcher,
		Repository: repository,
		Logger:     baseLogger.With("component", "checker"),
	})
	feed := usecase.NewFeed(searcher, headlineCache, baseLogger.With("component", "feed"))

	handler := web.NewHandler(checker, feed, baseLogger.With("component", "web"))
	router := web.NewRouter(handler, baseLogger, cfg.Server.Debug)

	var refresher ports.Scheduler
	if headlineCache != nil {
		refresher = scheduler.NewTickerScheduler(cfg.Redis.RefreshInterval)
	}

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		router:    router,
		refresher: refresher,
		feed:      feed,
	}
}

// Run serves HTTP until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if a.refresher != nil {
		if err := a.refresher.Start(ctx, a.feed.Refresh); err != nil {
			a.logger.Warn("headline refresher not started", "error", err)
		}
		defer a.refresher.Stop(context.Background())
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
