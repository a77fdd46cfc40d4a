package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/WidadAlkibsi/TriviaProject/internal/config"
	"github.com/WidadAlkibsi/TriviaProject/internal/db/repository"
	"github.com/WidadAlkibsi/TriviaProject/internal/logging"
	"github.com/WidadAlkibsi/TriviaProject/internal/question"
	"github.com/WidadAlkibsi/TriviaProject/internal/server"
)

// Application aggregates shared infrastructure (store, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps the logger, question store, optional Redis cache and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Str("store", cfg.Trivia.StoreDriver).Msg("starting application bootstrap")

	a := &Application{cfg: cfg, logger: logger}
	pings := make(map[string]server.PingFunc)

	store, err := a.openStore(ctx, pings)
	if err != nil {
		return nil, err
	}

	if cfg.Redis.Enabled() {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		client := a.redis
		pings["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		store = question.NewCachedStore(store, question.NewCache(client, cfg.Redis.CacheTTL), logger)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("question snapshot cache enabled")
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; question snapshot cache disabled")
	}

	var rnd question.RandSource
	if cfg.Trivia.QuizSeed != 0 {
		rnd = question.NewSeededSource(cfg.Trivia.QuizSeed)
		logger.Warn().Uint64("seed", cfg.Trivia.QuizSeed).Msg("quiz draws are seeded")
	}

	questionSvc := question.NewService(store, question.ServiceOptions{
		PageSize: cfg.Trivia.QuestionsPerPage,
		Rand:     rnd,
	}, logger)

	questionHTTP := question.NewHTTPHandler(questionSvc, logger)
	quizStream := question.NewStreamHandler(questionSvc, server.NewWSUpgrader(cfg.CORS), logger)

	a.http = server.NewHTTPServer(cfg, logger, pings, questionHTTP, quizStream.HandleWebSocket)
	return a, nil
}

func (a *Application) openStore(ctx context.Context, pings map[string]server.PingFunc) (question.Store, error) {
	switch a.cfg.Trivia.StoreDriver {
	case config.StoreDriverMemory:
		if a.cfg.Trivia.SeedFile == "" {
			a.logger.Warn().Msg("memory store started empty (SEED_FILE not set)")
			return repository.NewMemoryStore(nil, nil), nil
		}
		store, err := repository.LoadSeedFile(a.cfg.Trivia.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("seed memory store: %w", err)
		}
		return store, nil

	default:
		poolCfg, err := pgxpool.ParseConfig(a.cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("parse postgres config: %w", err)
		}
		if a.cfg.Postgres.MaxConns > 0 {
			poolCfg.MaxConns = int32(a.cfg.Postgres.MaxConns)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.pool = pool
		pings["postgres"] = pool.Ping
		return repository.NewQuestionRepository(pool), nil
	}
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	a.close()

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}
