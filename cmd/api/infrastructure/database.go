package infrastructure

import (
	"context"
	"fmt"
	"time"

	"paginated-user-service/internal/adapter/db/gormdb"
	"paginated-user-service/internal/adapter/db/mongodb"
	"paginated-user-service/internal/config"
	"paginated-user-service/internal/usecase/user"
	"paginated-user-service/pkg/logger"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UserStore is a user repository that can report its own reachability.
type UserStore interface {
	user.Repository
	Ping(ctx context.Context) error
}

// CloseFunc releases a store connection.
type CloseFunc func(ctx context.Context) error

// NewUserStore connects the backend selected by STORE_DRIVER.
func NewUserStore(ctx context.Context, cfg *config.Config, l *zap.Logger) (UserStore, CloseFunc, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		return NewMongoStore(ctx, cfg, l)
	case config.DriverPostgres, config.DriverSQLite:
		db, err := NewDatabase(cfg, l)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func(context.Context) error { return CloseDatabase(db) }
		return gormdb.NewUserRepoGorm(db, l), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// NewMongoStore connects to MONGO_URL and returns a repository over the users collection.
func NewMongoStore(ctx context.Context, cfg *config.Config, l *zap.Logger) (UserStore, CloseFunc, error) {
	timeout := time.Duration(cfg.Mongo.ConnectTimeoutSeconds) * time.Second
	monitor := logger.NewMongoMonitor(l, cfg.Logger.SlowQuerySeconds)

	client, err := mongodb.Connect(ctx, cfg.Mongo.URL, timeout, monitor)
	if err != nil {
		return nil, nil, err
	}

	dbName := mongodb.DatabaseName(cfg.Mongo.URL, cfg.Mongo.Database)
	coll := client.Database(dbName).Collection(mongodb.CollectionName)

	l.Info("MongoDB connected successfully",
		zap.String("database", dbName),
		zap.String("collection", mongodb.CollectionName),
	)

	return mongodb.NewUserRepoMongo(coll, l), client.Disconnect, nil
}

// NewDatabase opens the SQL store with GORM and migrates the users table.
func NewDatabase(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	gormLogger := logger.NewGormLogger(l, cfg.Logger.SlowQuerySeconds, cfg.Logger.Level)

	var dialector gorm.Dialector
	if cfg.Store.Driver == config.DriverSQLite {
		dialector = sqlite.Open(cfg.Store.SQLitePath)
	} else {
		dialector = pgdriver.Open(cfg.DB.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := gormdb.Migrate(db); err != nil {
		_ = CloseDatabase(db)
		return nil, fmt.Errorf("failed to migrate users table: %w", err)
	}

	l.Info("database connected successfully", zap.String("driver", cfg.Store.Driver))

	return db, nil
}

// CloseDatabase closes the database connection
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
