// Package app assembles storage, caches and services from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lifetracker/config"
	"lifetracker/internal/api"
	"lifetracker/internal/repository"
	"lifetracker/internal/repository/memory"
	"lifetracker/internal/repository/postgres"
	"lifetracker/internal/service/auth"
	"lifetracker/internal/service/board"
	"lifetracker/internal/service/health"
	"lifetracker/internal/service/tracker"
	"lifetracker/internal/stats"
	"lifetracker/pkg/db"
	"lifetracker/pkg/redis"
	"lifetracker/pkg/util"
)

type App struct {
	Config *config.Config
	Pool   *pgxpool.Pool // nil with the memory driver
	Redis  *goredis.Client
	Repos  *repository.Repositories

	Auth    *auth.Service
	Boards  *board.Service
	Tracker *tracker.Service
	Health  *health.Service

	logger *zap.Logger
}

// OpenRepositories connects the configured storage driver. Postgres schemas
// are migrated before use.
func OpenRepositories(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.Repositories, *pgxpool.Pool, error) {
	if cfg.DB.Driver == memory.Driver {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.New(), nil, nil
	}

	pool, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		return nil, nil, err
	}
	applied, err := db.Migrate(ctx, pool, logger)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	if len(applied) > 0 {
		logger.Info("Applied migrations", zap.Strings("versions", applied))
	}
	return postgres.New(pool, logger), pool, nil
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	repos, pool, err := OpenRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Pool: pool, Repos: repos, logger: logger}

	var limiter auth.LoginLimiter = auth.NoopLimiter{}
	if cfg.Redis.Enabled() {
		rdb, err := redis.NewRedisClient(cfg.Redis, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Redis = rdb
		counter := util.NewAttemptCounter(rdb, cfg.Auth.LoginWindow)
		limiter = auth.NewRedisLimiter(counter, cfg.Auth.MaxLoginAttempts, logger)
	}

	gap, err := stats.ParseSmokingGapPolicy(cfg.Tracking.SmokingMissingDay, cfg.Tracking.SmokingMissingCigarettes)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Auth = auth.NewService(repos.Users, cfg.JWT.Secret, cfg.JWT.TTL, limiter, logger)
	a.Boards = board.NewService(repos.Boards, repos.Tasks, logger)
	a.Tracker = tracker.NewService(repos.Habits, repos.HabitRecords, repos.Smoking,
		tracker.Options{DefaultDays: cfg.Tracking.DefaultDays, SmokingGap: gap}, logger)
	var food health.FoodSearcher
	if fc := health.NewFoodClient(cfg.FoodAPI, logger); fc.Configured() {
		food = fc
	} else {
		logger.Info("Food API credentials not set, meal search uses the built-in catalog")
	}
	a.Health = health.NewService(repos, food, logger)
	return a, nil
}

func (a *App) Deps() api.Deps {
	return api.Deps{
		Config:  a.Config,
		Repos:   a.Repos,
		Auth:    a.Auth,
		Boards:  a.Boards,
		Tracker: a.Tracker,
		Health:  a.Health,
		Redis:   a.Redis,
		Logger:  a.logger,
	}
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.logger.Warn("Failed to close redis", zap.Error(err))
		}
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
}
