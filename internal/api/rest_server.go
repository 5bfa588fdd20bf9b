// Package api HTTP-сервис генерации уровней
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/annel0/dungeon-gen/internal/logging"
	"github.com/annel0/dungeon-gen/internal/middleware"
	"github.com/annel0/dungeon-gen/internal/pipeline"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RestServer представляет REST API сервер
type RestServer struct {
	router       *gin.Engine
	httpServer   *http.Server
	port         string
	maxLevelSize int
	defaults     pipeline.Params
	generator    *pipeline.Generator
	metrics      *ServerMetrics
	log          *logging.Logger
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port         string          // адрес, например ":8088"
	MaxLevelSize int             // максимальная сторона уровня
	Defaults     pipeline.Params // параметры для незаданных полей запроса
	ServiceName  string          // имя для otelgin и префикс метрик
	// Registry регистр метрик; nil означает новый приватный регистр
	Registry *prometheus.Registry
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}
	if config.MaxLevelSize <= 0 {
		config.MaxLevelSize = 512
	}
	if config.ServiceName == "" {
		config.ServiceName = "levelgen"
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}
	if config.Defaults.Type == "" {
		config.Defaults = pipeline.DefaultParams()
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logging.GetAPILogger()

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	router.Use(middleware.NewRequestLogger(log).Handler())
	router.Use(otelgin.Middleware(config.ServiceName))

	promMw := middleware.NewPrometheusMiddleware(config.ServiceName+"_api", config.Registry, config.Registry)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	rs := &RestServer{
		router:       router,
		port:         config.Port,
		maxLevelSize: config.MaxLevelSize,
		defaults:     config.Defaults,
		generator:    pipeline.NewGenerator(pipeline.WithMetrics(pipeline.NewMetrics(config.Registry))),
		metrics:      NewServerMetrics(),
		log:          log,
	}
	rs.setupRoutes()
	rs.httpServer = &http.Server{
		Addr:              rs.port,
		Handler:           rs.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return rs
}

// setupRoutes настраивает маршруты API
func (rs *RestServer) setupRoutes() {
	// Middleware для CORS
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	rs.router.GET("/health", rs.handleHealth)

	api := rs.router.Group("/api")
	{
		api.GET("/levels/types", rs.handleLevelTypes)
		api.POST("/levels", rs.handleGenerate)
		api.GET("/stats", rs.handleStats)
	}
}

// Handler http.Handler сервера (для тестов и встраивания)
func (rs *RestServer) Handler() http.Handler {
	return rs.router
}

// Metrics счётчики сервера
func (rs *RestServer) Metrics() *ServerMetrics {
	return rs.metrics
}

// Start запускает сервер и блокируется до его остановки
func (rs *RestServer) Start() error {
	rs.log.Info("🌐 REST API сервер запущен на %s", rs.port)
	if err := rs.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("rest server: %w", err)
	}
	return nil
}

// Stop останавливает сервер, дожидаясь текущих запросов
func (rs *RestServer) Stop(ctx context.Context) error {
	rs.log.Info("🛑 Остановка REST API сервера")
	return rs.httpServer.Shutdown(ctx)
}
