package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lifetracker/config"
	"lifetracker/internal/api"
	"lifetracker/internal/app"
	pkgconfig "lifetracker/pkg/config"
	"lifetracker/pkg/logger"
)

func main() {
	// Load config
	cfg, err := config.Load(pkgconfig.GetEnv("CONFIG_DIR", "config"))
	if err != nil {
		panic(err)
	}

	log := logger.NewLoggerWithLevel(cfg.Log.Level)
	defer log.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage, redis and services
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Initialization failed", zap.Error(err))
	}
	defer a.Close()

	// Router
	router := api.NewRouter(a.Deps())

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("Starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.App.Env),
			zap.String("db_driver", a.Repos.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server start failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
