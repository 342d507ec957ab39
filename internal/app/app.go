package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/sync/errgroup"

	"github.com/sidra/content-factory/internal/adapter/provider/genhttp"
	"github.com/sidra/content-factory/internal/adapter/provider/llm"
	"github.com/sidra/content-factory/internal/auth"
	"github.com/sidra/content-factory/internal/config"
	"github.com/sidra/content-factory/internal/generation"
	"github.com/sidra/content-factory/internal/metrics"
	authsvc "github.com/sidra/content-factory/internal/service/auth"
	"github.com/sidra/content-factory/internal/service/catalog"
	"github.com/sidra/content-factory/internal/service/content"
	"github.com/sidra/content-factory/internal/transport/dataloader"
	"github.com/sidra/content-factory/internal/transport/middleware"
	"github.com/sidra/content-factory/internal/transport/rest"
)

const rateLimitCleanup = time.Minute

// Run is the application entry point. It loads configuration, opens the
// configured storage, wires services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.close()

	m := metrics.New()
	handler, stop := newHandler(cfg, store, m, logger)
	defer stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newHandler wires services and transport over store. The returned stop
// func releases background resources.
func newHandler(cfg *config.Config, store *storage, m *metrics.Metrics, logger *slog.Logger) (http.Handler, func()) {
	gen := newGenerator(cfg.Generation, m, logger)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authService := authsvc.NewService(logger, jwtManager, cfg.Auth)
	contentService := content.NewService(logger, store.cards, store.ideas, store.tx, gen, m)
	catalogService := catalog.NewService(logger, store.categories)

	var limiter *middleware.RateLimiter
	stop := func() {}
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(rateLimitCleanup)
		stop = limiter.Stop
	}

	handler := rest.NewRouter(rest.RouterDeps{
		Auth:        rest.NewAuthHandler(authService, logger),
		Content:     rest.NewContentHandler(contentService, logger),
		Categories:  rest.NewCategoryHandler(catalogService, logger),
		Health:      rest.NewHealthHandler(BuildVersion(), rest.HealthCheck{Name: store.driver, Pinger: store.health}),
		Tokens:      authService,
		Loaders:     &dataloader.Repos{Ideas: store.ideas},
		Metrics:     m,
		RateLimiter: limiter,
		RateLimit:   cfg.RateLimit,
		CORS:        cfg.CORS,
		Logger:      logger,
	})
	return handler, stop
}

// newGenerator returns the placeholder generator, or Claude or the HTTP
// generator backed by it when configured. Ideas are cached either way.
func newGenerator(cfg config.GenerationConfig, m *metrics.Metrics, logger *slog.Logger) generation.Generator {
	mock := generation.NewMock(nil)

	var gen generation.Generator = mock
	switch {
	case cfg.AnthropicAPIKey != "":
		client := llm.New(cfg.AnthropicAPIKey, cfg.AnthropicModel, logger, option.WithRequestTimeout(cfg.Timeout))
		gen = generation.WithFallback(client, mock, logger, m)
	case cfg.Endpoint != "":
		client := genhttp.New(cfg.Endpoint, cfg.Timeout, logger)
		gen = generation.WithFallback(client, mock, logger, m)
	}
	return generation.WithCache(gen, cfg.CacheTTL, cfg.CacheCleanup)
}
