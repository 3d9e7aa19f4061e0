// Package api exposes Zilean's HTTP surface: catalog ingestion, IMDb
// correlation search, and release-title parsing.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/funkypenguin/zilean-go/internal/config"
	"github.com/funkypenguin/zilean-go/internal/logger"
	"github.com/funkypenguin/zilean-go/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	// HTTPReadTimeout defines the maximum duration for reading the entire request.
	HTTPReadTimeout = 15 * time.Second
	// HTTPWriteTimeout defines the maximum duration before timing out writes.
	HTTPWriteTimeout = 15 * time.Second
	// HTTPIdleTimeout defines the maximum amount of time to wait for the next request.
	HTTPIdleTimeout = 60 * time.Second
)

// Server is Zilean's HTTP server.
type Server struct {
	config   *config.Config
	services *service.Container
	logger   *logger.Logger
	engine   *gin.Engine
	server   *http.Server
}

// NewServer builds the HTTP server and registers every route.
func NewServer(cfg *config.Config, services *service.Container, log *logger.Logger) *Server {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(loggingMiddleware(log))
	engine.Use(corsMiddleware())

	if cfg.Auth.APIKey != "" {
		engine.Use(apiKeyMiddleware(cfg.Auth.APIKey))
	}

	s := &Server{config: cfg, services: services, logger: log, engine: engine}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := s.engine.Group("/api/v1")

	imdb := v1.Group("/imdb")
	imdb.POST("/ingest", s.handleImdbIngest)
	imdb.GET("/ingest", s.handleImdbIngestStatus)
	imdb.POST("/search", s.handleImdbSearch)

	dmm := v1.Group("/dmm")
	dmm.GET("/ingest", s.handleDmmIngestStream)

	torrents := v1.Group("/torrents")
	torrents.POST("/parse", s.handleParseTorrents)

	v1.POST("/shutdown", s.handleShutdown)

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Zilean API Server"})
	})
}

// Start begins listening for HTTP requests on the configured address.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  HTTPReadTimeout,
		WriteTimeout: HTTPWriteTimeout,
		IdleTimeout:  HTTPIdleTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func loggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info("HTTP Request",
			"method", param.Method,
			"path", param.Path,
			"status", param.StatusCode,
			"latency", param.Latency,
			"ip", param.ClientIP,
		)
		return ""
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-API-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func apiKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/ping" {
			c.Next()
			return
		}

		providedKey := c.GetHeader("X-API-Key")
		if providedKey == "" {
			providedKey = c.Query("apikey")
		}
		if providedKey != apiKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
