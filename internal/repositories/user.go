package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayerecipes/recipes-api/internal/logger"
	"github.com/ayerecipes/recipes-api/internal/models"
)

const usersCollection = "users"

type UserReadRepository struct {
	col *mongo.Collection
}

func NewUserReadRepository(db *mongo.Database) *UserReadRepository {
	return &UserReadRepository{col: db.Collection(usersCollection)}
}

// GetByEmail returns the user with the given email, or nil when no such
// user exists.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	var user models.UserDB
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)

	logger.Log.Infow("users find one",
		"email", email,
		"error", err,
	)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

type UserWriteRepository struct {
	col *mongo.Collection
}

func NewUserWriteRepository(db *mongo.Database) *UserWriteRepository {
	return &UserWriteRepository{col: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique index on email so the store itself
// rejects the loser of a concurrent duplicate registration.
func (r *UserWriteRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Save inserts a new user and returns the stored document with its
// assigned identifier.
func (r *UserWriteRepository) Save(ctx context.Context, email, passwordHash, name string) (*models.UserDB, error) {
	user := models.UserDB{
		Email:     email,
		Password:  passwordHash,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	res, err := r.col.InsertOne(ctx, user)

	logger.Log.Infow("users insert one",
		"email", email,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.New("unexpected inserted id type")
	}
	user.ID = id

	return &user, nil
}
