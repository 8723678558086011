package coalesced

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	domain "paginated-user-service/internal/domain/user"
	"paginated-user-service/internal/usecase/user"
	"paginated-user-service/pkg/logger"
)

const countKey = "users:count"

// UserRepository wraps a store repository so that concurrent Count calls
// share a single round-trip. Nothing is retained once the shared call returns.
type UserRepository struct {
	next  user.Repository
	log   *zap.Logger
	group singleflight.Group
}

// NewUserRepository creates a new coalescing decorator around next.
func NewUserRepository(next user.Repository, log *zap.Logger) *UserRepository {
	return &UserRepository{next: next, log: log}
}

// InsertMany delegates to the wrapped repository.
func (r *UserRepository) InsertMany(ctx context.Context, users []domain.User) (int64, error) {
	return r.next.InsertMany(ctx, users)
}

// List delegates to the wrapped repository.
func (r *UserRepository) List(ctx context.Context, skip, limit int64) ([]domain.User, error) {
	return r.next.List(ctx, skip, limit)
}

// Count joins an in-flight count if there is one. The shared call is detached
// from any one caller's cancellation; each caller still stops waiting when its
// own ctx is done.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ch := r.group.DoChan(countKey, func() (any, error) {
		return r.next.Count(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		if res.Shared {
			logger.WithContext(ctx, r.log).Debug("count shared with concurrent request")
		}
		return res.Val.(int64), nil
	}
}
