package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"paginated-user-service/internal/domain/user"
	"paginated-user-service/pkg/logger"
)

// CollectionName is the collection holding user documents.
const CollectionName = "users"

// UserRepoMongo implements the Repository interface on a MongoDB collection.
type UserRepoMongo struct {
	coll *mongo.Collection
	log  *zap.Logger
}

// NewUserRepoMongo creates a new instance of UserRepoMongo.
func NewUserRepoMongo(coll *mongo.Collection, log *zap.Logger) *UserRepoMongo {
	return &UserRepoMongo{coll: coll, log: log}
}

// userDocument is the stored shape of a user.
type userDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
	Age   int                `bson:"age"`
}

// InsertMany writes users in one bulk insert. No uniqueness is enforced here.
func (r *UserRepoMongo) InsertMany(ctx context.Context, users []user.User) (int64, error) {
	if len(users) == 0 {
		return 0, nil
	}

	docs := make([]any, len(users))
	for i, u := range users {
		docs[i] = userDocument{Name: u.Name, Email: u.Email, Age: u.Age}
	}

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		logger.WithContext(ctx, r.log).Error("failed to insert users", zap.Int("count", len(users)), zap.Error(err))
		return 0, fmt.Errorf("failed to insert users: %w", err)
	}

	return int64(len(res.InsertedIDs)), nil
}

// List returns up to limit users after skipping skip, in natural order.
func (r *UserRepoMongo) List(ctx context.Context, skip, limit int64) ([]user.User, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		logger.WithContext(ctx, r.log).Error("failed to find users", zap.Int64("skip", skip), zap.Int64("limit", limit), zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		logger.WithContext(ctx, r.log).Error("failed to decode users", zap.Error(err))
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]user.User, len(docs))
	for i, d := range docs {
		users[i] = user.User{
			ID:    d.ID.Hex(),
			Name:  d.Name,
			Email: d.Email,
			Age:   d.Age,
		}
	}

	return users, nil
}

// Count returns the number of documents in the collection.
func (r *UserRepoMongo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		logger.WithContext(ctx, r.log).Error("failed to count users", zap.Error(err))
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// Ping checks that the primary is reachable.
func (r *UserRepoMongo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}
