package di

import (
	"context"
	"fmt"

	"paginated-user-service/cmd/api/infrastructure"
	ginhandler "paginated-user-service/internal/adapter/gin/handler"
	"paginated-user-service/internal/adapter/gin/middleware"
	"paginated-user-service/internal/adapter/repository/coalesced"
	"paginated-user-service/internal/config"
	"paginated-user-service/internal/usecase/user"
	redisclient "paginated-user-service/pkg/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Store       infrastructure.UserStore
	RedisClient *redisclient.Client
	UserUC      user.UserUsecase
	RateLimiter *middleware.RateLimiter
	GinHandler  *ginhandler.UserHandler

	closeStore infrastructure.CloseFunc
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	store, closeStore, err := infrastructure.NewUserStore(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user store: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
	if err != nil {
		_ = closeStore(context.Background())
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	var limiterClient *redis.Client
	if rdb != nil {
		limiterClient = rdb.Client
	}
	rateLimiter := middleware.NewRateLimiter(
		limiterClient,
		middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
			Enabled:           cfg.RateLimit.Enabled,
		},
		l,
	)

	repo := coalesced.NewUserRepository(store, l)
	userUC := user.New(repo, l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		Store:       store,
		RedisClient: rdb,
		UserUC:      userUC,
		RateLimiter: rateLimiter,
		GinHandler:  ginhandler.NewUserHandler(userUC, l),
		closeStore:  closeStore,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close(ctx context.Context) error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.closeStore != nil {
		if err := c.closeStore(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close user store: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
