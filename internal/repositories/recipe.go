package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayerecipes/recipes-api/internal/logger"
	"github.com/ayerecipes/recipes-api/internal/models"
)

const recipesCollection = "recipes"

type RecipeReadRepository struct {
	col *mongo.Collection
}

func NewRecipeReadRepository(db *mongo.Database) *RecipeReadRepository {
	return &RecipeReadRepository{col: db.Collection(recipesCollection)}
}

// GetByID returns the recipe with the given identifier, or nil when no
// such recipe exists.
func (r *RecipeReadRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.RecipeDB, error) {
	var recipe models.RecipeDB
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)

	logger.Log.Infow("recipes find one",
		"id", id.Hex(),
		"error", err,
	)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

// ListByUserID returns up to limit recipes owned by the given user.
func (r *RecipeReadRepository) ListByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.RecipeDB, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().SetLimit(limit))

	logger.Log.Infow("recipes find",
		"user_id", userID.Hex(),
		"limit", limit,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	recipes := make([]models.RecipeDB, 0)
	if err := cur.All(ctx, &recipes); err != nil {
		return nil, err
	}

	return recipes, nil
}

// Count returns the total number of recipe documents.
func (r *RecipeReadRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

type RecipeWriteRepository struct {
	col *mongo.Collection
}

func NewRecipeWriteRepository(db *mongo.Database) *RecipeWriteRepository {
	return &RecipeWriteRepository{col: db.Collection(recipesCollection)}
}

// Save inserts a new recipe and returns the stored document with its
// assigned identifier.
func (r *RecipeWriteRepository) Save(ctx context.Context, recipe *models.RecipeDB) (*models.RecipeDB, error) {
	res, err := r.col.InsertOne(ctx, recipe)

	logger.Log.Infow("recipes insert one",
		"title", recipe.Title,
		"user_id", recipe.UserID.Hex(),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.New("unexpected inserted id type")
	}

	stored := *recipe
	stored.ID = id
	return &stored, nil
}

// Update applies the given field set to a recipe and returns the document
// after the update, or nil when the identifier matched nothing.
func (r *RecipeWriteRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.RecipeDB, error) {
	var recipe models.RecipeDB
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&recipe)

	logger.Log.Infow("recipes find one and update",
		"id", id.Hex(),
		"fields", fields,
		"error", err,
	)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

// Delete removes a recipe by identifier and reports whether a document
// was actually deleted.
func (r *RecipeWriteRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})

	logger.Log.Infow("recipes delete one",
		"id", id.Hex(),
		"error", err,
	)

	if err != nil {
		return false, err
	}

	return res.DeletedCount == 1, nil
}
