package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pointsbazaar/market-engine/internal/cache"
	redisCache "github.com/pointsbazaar/market-engine/internal/cache/redis"
	"github.com/pointsbazaar/market-engine/internal/config"
	"github.com/pointsbazaar/market-engine/internal/database"
	"github.com/pointsbazaar/market-engine/internal/database/postgres"
	"github.com/pointsbazaar/market-engine/internal/leaderboard"
	"github.com/pointsbazaar/market-engine/internal/ledger"
	"github.com/pointsbazaar/market-engine/internal/lifecycle"
	"github.com/pointsbazaar/market-engine/internal/market"
	"github.com/pointsbazaar/market-engine/internal/oracle"
	"github.com/pointsbazaar/market-engine/internal/reward"
	"github.com/pointsbazaar/market-engine/internal/scheduler"
	"github.com/pointsbazaar/market-engine/internal/server"
	"github.com/pointsbazaar/market-engine/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	if err := run(cfg); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	pool, err := database.NewPool(cfg.GetDBConnString(), 10, 5*time.Minute, 30*time.Minute)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.InitSchema(ctx, pool); err != nil {
		return err
	}
	if cfg.SeedDemoData {
		if err := database.SeedDemoData(ctx, pool); err != nil {
			return err
		}
	}

	// Cache invalidation signal. Redis is optional: without it the
	// leaderboard cache falls back to TTL-only freshness.
	var (
		invalidator cache.Invalidator = cache.Noop{}
		subscriber  cache.Subscriber  = cache.Noop{}
	)
	if cfg.RedisAddr != "" {
		redisClient, err := redisCache.New(ctx, redisCache.ClientConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer redisClient.Close()

		sig := redisCache.NewSignal(redisClient)
		invalidator = sig
		subscriber = sig
	} else {
		slog.Warn("REDIS_ADDR not set, leaderboard invalidation disabled")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	marketRepo := postgres.NewMarketRepository(pool)

	// Oracle
	resolver, err := oracle.NewOpenAIResolver(oracle.OpenAIConfig{
		APIKey:  cfg.OpenAIKey,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.OracleTimeout,
	})
	if err != nil {
		return err
	}

	// Services
	svcs := server.Services{
		Ledger:      ledger.NewService(ledgerRepo, invalidator),
		Reward:      reward.NewService(userRepo, invalidator, cfg.DailyReward),
		Markets:     market.NewService(marketRepo),
		Lifecycle:   lifecycle.NewService(marketRepo, resolver, invalidator, cfg.OracleTimeout),
		Leaderboard: leaderboard.NewService(userRepo, subscriber),
	}

	// Leaderboard cache invalidation listener
	go func() {
		if err := svcs.Leaderboard.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Leaderboard watch stopped", "error", err)
		}
	}()

	// Background sweep: close expired markets, resolve what is ready
	jobPool := worker.NewPool(2, 16)
	jobPool.Start()
	defer jobPool.Stop()

	sched := scheduler.New(jobPool)
	sweep := &worker.SweepJob{Lifecycle: svcs.Lifecycle, Timeout: 2 * time.Minute}
	if err := sched.Schedule(cfg.SweepSchedule, sweep); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, pool, svcs)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
