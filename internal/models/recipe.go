package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipeDB represents a recipe document in the recipes collection.
// ImageURL stores the durable blob locator; presigned download URLs are
// derived from it per request and never persisted.
type RecipeDB struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Ingredients []string           `bson:"ingredients" json:"ingredients"`
	Steps       []string           `bson:"steps" json:"steps"`
	ImageURL    string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// CreateRecipe carries the caller-supplied fields of a new recipe.
type CreateRecipe struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	ImageURL    string   `json:"image_url"`
}

// UpdateRecipe carries a partial update. Nil pointers mean "field omitted";
// an explicit JSON null is treated the same way, matching the source API.
type UpdateRecipe struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Ingredients *[]string `json:"ingredients"`
	Steps       *[]string `json:"steps"`
	ImageURL    *string   `json:"image_url"`
}

// Empty reports whether no field was provided at all.
func (u *UpdateRecipe) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Ingredients == nil &&
		u.Steps == nil && u.ImageURL == nil
}
