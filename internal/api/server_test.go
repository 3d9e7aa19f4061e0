package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/funkypenguin/zilean-go/internal/config"
	"github.com/funkypenguin/zilean-go/internal/logger"
	"github.com/funkypenguin/zilean-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPingHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Log: config.LogConfig{Level: "error"}}
	log := logger.New(cfg.Log)
	services := &service.Container{}

	server := NewServer(cfg, services, log)

	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	server.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestAPIKeyMiddleware_RejectsMissingKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Log:  config.LogConfig{Level: "error"},
		Auth: config.AuthConfig{APIKey: "secret"},
	}
	log := logger.New(cfg.Log)
	services := &service.Container{}

	server := NewServer(cfg, services, log)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/imdb/search", nil)
	w := httptest.NewRecorder()
	server.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIKeyMiddleware_AllowsPing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Log:  config.LogConfig{Level: "error"},
		Auth: config.AuthConfig{APIKey: "secret"},
	}
	log := logger.New(cfg.Log)
	services := &service.Container{}

	server := NewServer(cfg, services, log)

	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	server.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
