package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasks_api/internal/config"
	httpServer "tasks_api/internal/http"
	"tasks_api/internal/http/middleware"
	"tasks_api/internal/logger"
	"tasks_api/internal/repository"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	gin.SetMode(gin.ReleaseMode)

	store, err := repository.Open(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to open task store", "driver", cfg.StoreDriver, "error", err)
	}
	defer store.Close()

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer middleware.CloseRedisRateLimiter()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           httpServer.NewRouter(store, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "driver", cfg.StoreDriver, "version", cfg.AppVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
