package server

import (
	"errors"
	"fmt"
	"net/http"

	ginhandler "paginated-user-service/internal/adapter/gin/handler"
	"paginated-user-service/internal/adapter/gin/middleware"
	ginrouter "paginated-user-service/internal/adapter/gin/router"
	"paginated-user-service/internal/config"

	"go.uber.org/zap"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	Gin    *http.Server
}

// New creates a new server instance
func New(
	cfg *config.Config,
	l *zap.Logger,
	handler *ginhandler.UserHandler,
	store ginrouter.Pinger,
	rateLimiter *middleware.RateLimiter,
) *Server {
	return &Server{
		Config: cfg,
		Logger: l,
		Gin:    SetupGinServer(handler, store, rateLimiter, ":"+cfg.App.Port, l),
	}
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running",
		zap.String("address", s.Gin.Addr),
		zap.String("swagger", "http://localhost"+s.Gin.Addr+"/swagger/index.html"),
	)

	if err := s.Gin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}
	return nil
}
