package http

import (
	"tasks_api/internal/config"
	"tasks_api/internal/http/handlers"
	"tasks_api/internal/http/middleware"
	"tasks_api/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the engine with the ambient middleware and every route.
func NewRouter(store repository.TaskStore, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics(), middleware.CORS())
	RegisterRoutes(r, store, cfg)
	return r
}

func RegisterRoutes(r *gin.Engine, store repository.TaskStore, cfg *config.Config) {
	h := handlers.NewHandler(store, cfg.StoreDriver, cfg.AppVersion)

	// Health checks (no rate limiting)
	r.GET("/health", h.Health.Health)
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	tasks := r.Group("/tasks")
	tasks.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	{
		tasks.GET("/all", h.Tasks.ListTasks)
		tasks.GET("", h.Tasks.GetTask)
		tasks.POST("", h.Tasks.CreateTask)
		tasks.PUT("", h.Tasks.UpdateTask)
		tasks.DELETE("", h.Tasks.DeleteTask)
	}
}
