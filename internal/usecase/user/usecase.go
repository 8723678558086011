package user

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domain "paginated-user-service/internal/domain/user"
	apperrors "paginated-user-service/pkg/errors"
	"paginated-user-service/pkg/logger"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// (e.g., MongoDB, PostgreSQL) to be used interchangeably.
type Repository interface {
	InsertMany(ctx context.Context, users []domain.User) (int64, error) // Bulk insert, returns inserted count
	List(ctx context.Context, skip, limit int64) ([]domain.User, error) // Page in natural store order
	Count(ctx context.Context) (int64, error)                           // Count the whole collection
}

// Usecase implements the business logic for seeding and listing users.
type Usecase struct {
	repo Repository  // Repository for data access
	log  *zap.Logger // Logger for structured logging
}

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, log: log}
}

// SeedUsers writes the synthetic user set in a single bulk insert.
// Repeated calls append duplicates.
func (uc *Usecase) SeedUsers(ctx context.Context) (*SeedUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	users := GenerateSeedUsers()

	log.Info("seeding users", zap.Int("count", len(users)))

	n, err := uc.repo.InsertMany(ctx, users)
	if err != nil {
		log.Error("failed to seed users", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to seed users", err)
	}

	log.Info("users seeded", zap.Int64("inserted", n))
	return &SeedUsersResponse{Inserted: n, Message: SeedMessage}, nil
}

// ListUsers retrieves one page of users together with collection totals.
// Count and page are read independently, so totals may be stale relative to the page
// under concurrent inserts.
func (uc *Usecase) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	params := domain.NewParams(in.Page, in.Limit)

	log.Info("listing users", zap.Int64("page", params.Page), zap.Int64("limit", params.Limit))

	var (
		total       int64
		domainUsers []domain.User
	)

	// Count and page are independent reads; issuing them together gives no
	// weaker consistency than issuing them in sequence.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.repo.Count(gctx)
		if err != nil {
			return err
		}
		total = n
		return nil
	})
	g.Go(func() error {
		us, err := uc.repo.List(gctx, params.Skip(), params.Limit)
		if err != nil {
			return err
		}
		domainUsers = us
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("failed to list users", zap.Int64("page", params.Page), zap.Int64("limit", params.Limit), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to list users", err)
	}

	pagination := domain.NewPagination(total, params)

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = User{
			ID:    du.ID,
			Name:  du.Name,
			Email: du.Email,
			Age:   du.Age,
		}
	}

	return &ListUsersResponse{
		TotalUsers:  pagination.Total,
		TotalPages:  pagination.TotalPages,
		CurrentPage: pagination.Page,
		Users:       users,
	}, nil
}
