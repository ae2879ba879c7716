package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/devanshsoni09/prep-platform/internal/auth"
	"github.com/devanshsoni09/prep-platform/internal/auth/jwt"
	"github.com/devanshsoni09/prep-platform/internal/config"
	"github.com/devanshsoni09/prep-platform/internal/db/repository"
	"github.com/devanshsoni09/prep-platform/internal/insights"
	"github.com/devanshsoni09/prep-platform/internal/logging"
	"github.com/devanshsoni09/prep-platform/internal/mockinterview"
	"github.com/devanshsoni09/prep-platform/internal/problem"
	"github.com/devanshsoni09/prep-platform/internal/problem/ai"
	"github.com/devanshsoni09/prep-platform/internal/progress"
	"github.com/devanshsoni09/prep-platform/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool   *pgxpool.Pool
	redis  *redis.Client
	gemini *ai.Client
	http   *http.Server
}

// New bootstraps config, logger, Postgres, Redis, the Gemini client and the
// HTTP server. A missing GEMINI_API_KEY is not fatal: the platform runs in
// offline mode and serves deterministic sample content.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	userRepo := repository.NewUserRepository(pool)
	problemRepo := repository.NewProblemRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)

	tokenCfg := jwt.TokenConfig{
		AccessSecret:  []byte(cfg.Security.JWTSecret),
		RefreshSecret: []byte(cfg.Security.JWTSecret + "_refresh"),
		Issuer:        cfg.Name,
	}
	authSvc := auth.NewService(userRepo, tokenCfg, logger)
	authHandlers := auth.NewHTTPHandlers(authSvc, logger)

	var geminiClient *ai.Client
	var generator problem.TextGenerator
	if cfg.Gemini.APIKey != "" {
		geminiClient, err = ai.NewClient(ctx, ai.Config{
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Gemini.Model,
			Timeout:     cfg.Gemini.Timeout,
			Temperature: float32(cfg.Gemini.Temperature),
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("init gemini: %w", err)
		}
		generator = geminiClient
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set; running in offline mode with sample content")
	}

	problemSvc := problem.NewService(generator, problemRepo, submissionRepo, logger)
	problemHandler := problem.NewHTTPHandler(problemSvc, logger)

	insightsCache := insights.NewCache(redisClient, cfg.Insights.CacheTTL)
	insightsSvc := insights.NewService(generator, insightsCache, logger)
	insightsHandler := insights.NewHTTPHandler(insightsSvc, logger)

	progressSvc := progress.NewService(redisClient, logger, cfg.Progress.TopN)
	progressHandler := progress.NewHTTPHandler(progressSvc, logger)

	mockHandler := mockinterview.NewHandler(problemSvc, authSvc, progressSvc, logger)
	mockHTTPHandler := mockinterview.NewHTTPHandler(problemSvc, progressSvc, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, server.Handlers{
		Auth:            authHandlers,
		AuthMiddleware:  auth.Middleware(authSvc, logger),
		GenerateProblem: problemHandler.HandleGenerate,
		InsightsGet:     insightsHandler.HandleGet,
		InsightsRefresh: insightsHandler.HandleRefresh,
		MockProblem:     mockHTTPHandler.HandleProblem,
		MockEvaluate:    mockHTTPHandler.HandleEvaluate,
		InterviewWS:     mockHandler.HandleWebSocket,
		ProgressTop:     progressHandler.HandleTop,
		ProgressMe:      progressHandler.HandleMe,
	})

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		gemini: geminiClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	if a.gemini != nil {
		if err := a.gemini.Close(); err != nil {
			a.logger.Error().Err(err).Msg("gemini shutdown error")
		}
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
