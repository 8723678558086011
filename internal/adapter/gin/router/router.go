package router

import (
	"context"
	_ "embed"
	"net/http"
	"time"

	"paginated-user-service/internal/adapter/gin/handler"
	"paginated-user-service/internal/adapter/gin/middleware"
	"paginated-user-service/pkg/logger"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// SpecPath is where the OpenAPI document is served.
const SpecPath = "/swagger/openapi.json"

const healthTimeout = 2 * time.Second

//go:embed openapi.json
var openAPISpec []byte

// Pinger reports whether the user store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetupRouter configures and returns a Gin router with all routes and middleware.
// rateLimiter may be nil.
func SetupRouter(
	userHandler *handler.UserHandler,
	store Pinger,
	rateLimiter *middleware.RateLimiter,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(logger.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(rateLimiter.Handler())

	router.GET("/health", healthHandler(store, log))

	swaggerUI := httpSwagger.Handler(httpSwagger.URL(SpecPath))
	router.GET("/swagger/*any", func(c *gin.Context) {
		if c.Request.URL.Path == SpecPath {
			c.Data(http.StatusOK, "application/json", openAPISpec)
			return
		}
		swaggerUI(c.Writer, c.Request)
	})

	users := router.Group("/api/users")
	{
		users.POST("/seed", userHandler.SeedUsers)
		users.GET("", userHandler.ListUsers)
	}

	return router
}

func healthHandler(store Pinger, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.WithContext(ctx, log).Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}
