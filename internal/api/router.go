package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lifetracker/config"
	"lifetracker/internal/model"
	"lifetracker/internal/repository"
	"lifetracker/internal/service/auth"
	"lifetracker/internal/service/board"
	"lifetracker/internal/service/health"
	"lifetracker/internal/service/record"
	"lifetracker/internal/service/tracker"
	"lifetracker/pkg/rbac"
)

// Deps is everything the router wires together. Redis may be nil.
type Deps struct {
	Config  *config.Config
	Repos   *repository.Repositories
	Auth    *auth.Service
	Boards  *board.Service
	Tracker *tracker.Service
	Health  *health.Service
	Redis   *redis.Client
	Logger  *zap.Logger
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(RecoveryMiddleware(d.Logger), TraceMiddleware(), LoggingMiddleware(d.Logger), MetricsMiddleware())

	// Health endpoints (放在最前面)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if d.Repos.Ping != nil {
			if err := d.Repos.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_not_ready"})
				return
			}
		}
		if d.Redis != nil {
			if err := d.Redis.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis_not_ready"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")
	if rl := d.Config.RateLimit; rl.RequestsPerSecond > 0 {
		apiGroup.Use(NewRateLimiter(rl.RequestsPerSecond, rl.Burst, d.Logger).Middleware())
	}

	// Public
	authHandler := NewAuthHandler(d.Auth, d.Config.IsProduction(), d.Logger)
	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/auth/logout", authHandler.Logout)
	apiGroup.GET("/auth/me", authHandler.Me)

	// Protected
	protected := apiGroup.Group("")
	protected.Use(SessionMiddleware(d.Auth, d.Logger))
	{
		NewBoardHandler(d.Boards, d.Logger).Register(protected)

		repos, log := d.Repos, d.Logger
		NewResource(record.NewService[model.Expense](repos.Expenses, record.Expense, log), log).Register(protected, "/expenses")
		NewResource(record.NewService[model.Income](repos.Incomes, record.Income, log), log).Register(protected, "/incomes")
		NewResource(record.NewService[model.Loan](repos.Lendings, record.Lending, log), log).Register(protected, "/lendings")
		NewResource(record.NewService[model.Loan](repos.Borrowings, record.Borrowing, log), log).Register(protected, "/borrowings")
		NewResource(record.NewService[model.Investment](repos.Investments, record.Investment, log), log).Register(protected, "/investments")
		NewResource(record.NewService[model.Diet](repos.Diets, record.Diet, log), log).Register(protected, "/diets")
		NewResource(record.NewService[model.DietEntry](repos.DietEntries, record.DietEntry, log), log).Register(protected, "/diet-entries")
		NewResource(record.NewService[model.Exercise](repos.Exercises, record.Exercise, log), log).WithDefaultDays(7).Register(protected, "/exercises")
		NewResource(record.NewService[model.WeightEntry](repos.Weights, record.Weight, log), log).Register(protected, "/weight-entries")

		habits := NewResource(record.NewService[model.Habit](repos.Habits, record.Habit, log), log)
		NewTrackerHandler(habits, d.Tracker, log).Register(protected)
		NewHealthHandler(d.Health, log).Register(protected)

		debug := NewDebugHandler(repos, d.Config.App.Env, d.Config.JWT.Secret != "", log)
		protected.GET("/debug", RequirePermission(rbac.PermissionDebugRead), debug.Debug)
	}

	return r
}
