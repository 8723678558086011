package gormdb

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"paginated-user-service/internal/domain/user"
	"paginated-user-service/pkg/logger"
)

// insertBatchSize bounds the rows per INSERT statement.
const insertBatchSize = 100

// UserRepoGorm implements the Repository interface on a SQL table through GORM.
type UserRepoGorm struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoGorm creates a new instance of UserRepoGorm.
func NewUserRepoGorm(db *gorm.DB, log *zap.Logger) *UserRepoGorm {
	return &UserRepoGorm{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
// Email carries no unique constraint; seeding appends duplicates.
type UserSchema struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"not null"`
	Email string `gorm:"not null;index"`
	Age   int    `gorm:"not null"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// Migrate creates or updates the users table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserSchema{})
}

// InsertMany inserts users in a single transaction of batched statements.
func (r *UserRepoGorm) InsertMany(ctx context.Context, users []user.User) (int64, error) {
	if len(users) == 0 {
		return 0, nil
	}

	models := make([]UserSchema, len(users))
	for i, u := range users {
		models[i] = UserSchema{Name: u.Name, Email: u.Email, Age: u.Age}
	}

	res := r.db.WithContext(ctx).CreateInBatches(&models, insertBatchSize)
	if res.Error != nil {
		logger.WithContext(ctx, r.log).Error("failed to insert users in db", zap.Int("count", len(users)), zap.Error(res.Error))
		return 0, fmt.Errorf("failed to insert users: %w", res.Error)
	}

	return res.RowsAffected, nil
}

// List retrieves a page of users without an ORDER BY, so rows come back in table order.
func (r *UserRepoGorm) List(ctx context.Context, skip, limit int64) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Offset(int(skip)).Limit(int(limit)).Find(&models).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to list users from db", zap.Int64("skip", skip), zap.Int64("limit", limit), zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, m := range models {
		users[i] = user.User{
			ID:    strconv.FormatInt(m.ID, 10),
			Name:  m.Name,
			Email: m.Email,
			Age:   m.Age,
		}
	}

	return users, nil
}

// Count returns the number of rows in the users table.
func (r *UserRepoGorm) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&UserSchema{}).Count(&n).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to count users in db", zap.Error(err))
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// Ping checks the underlying connection.
func (r *UserRepoGorm) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
