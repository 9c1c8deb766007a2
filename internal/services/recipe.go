package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayerecipes/recipes-api/internal/logger"
	"github.com/ayerecipes/recipes-api/internal/models"
)

// Error variables
var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrInvalidRecipeID = errors.New("invalid recipe id")
	ErrTitleRequired   = errors.New("title is required")
)

// maxListRecipes caps how many recipes a single listing returns.
const maxListRecipes = 100

// RecipeReader defines read-only operations for recipes.
type RecipeReader interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.RecipeDB, error)
	ListByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.RecipeDB, error)
}

// RecipeWriter defines write operations for recipes.
type RecipeWriter interface {
	Save(ctx context.Context, recipe *models.RecipeDB) (*models.RecipeDB, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.RecipeDB, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// FileStorage defines the blob store operations the service relies on.
type FileStorage interface {
	PresignUpload(ctx context.Context, fileName, contentType string) (key, uploadURL, fileURL string, err error)
	PresignDownload(ctx context.Context, fileURL string) (string, error)
	Delete(ctx context.Context, fileURL string) bool
}

// URLCache caches presigned download URLs keyed by locator.
type URLCache interface {
	Get(ctx context.Context, locator string) (string, error)
	Set(ctx context.Context, locator, url string) error
}

// RecipeService implements owner-scoped recipe CRUD on top of the document
// store and the blob store.
type RecipeService struct {
	users   UserReader
	reader  RecipeReader
	writer  RecipeWriter
	storage FileStorage
	urls    URLCache
}

// NewRecipeService creates a new RecipeService instance. urls may be nil,
// in which case every image locator is signed directly.
func NewRecipeService(users UserReader, reader RecipeReader, writer RecipeWriter, storage FileStorage, urls URLCache) *RecipeService {
	return &RecipeService{
		users:   users,
		reader:  reader,
		writer:  writer,
		storage: storage,
		urls:    urls,
	}
}

// Create persists a new recipe owned by the user behind ownerEmail.
func (svc *RecipeService) Create(ctx context.Context, ownerEmail string, req models.CreateRecipe) (*models.RecipeDB, error) {
	user, err := svc.users.GetByEmail(ctx, ownerEmail)
	if err != nil {
		logger.Log.Errorw("failed to resolve owner", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserDoesNotExist
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	recipe := &models.RecipeDB{
		Title:       req.Title,
		Description: req.Description,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		ImageURL:    req.ImageURL,
		UserID:      user.ID,
		CreatedAt:   time.Now().UTC(),
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = []string{}
	}
	if recipe.Steps == nil {
		recipe.Steps = []string{}
	}

	return svc.writer.Save(ctx, recipe)
}

// List returns the caller's recipes, capped at 100, with every image
// locator rewritten to a fresh time-limited download URL.
func (svc *RecipeService) List(ctx context.Context, ownerEmail string) ([]models.RecipeDB, error) {
	user, err := svc.users.GetByEmail(ctx, ownerEmail)
	if err != nil {
		logger.Log.Errorw("failed to resolve owner", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserDoesNotExist
	}

	recipes, err := svc.reader.ListByUserID(ctx, user.ID, maxListRecipes)
	if err != nil {
		logger.Log.Errorw("failed to list recipes", "err", err)
		return nil, err
	}

	for i := range recipes {
		if recipes[i].ImageURL != "" {
			recipes[i].ImageURL = svc.downloadURL(ctx, recipes[i].ImageURL)
		}
	}

	return recipes, nil
}

// Get fetches a recipe by identifier. Not owner-restricted, matching the
// source API the clients depend on.
func (svc *RecipeService) Get(ctx context.Context, idHex string) (*models.RecipeDB, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, ErrInvalidRecipeID
	}

	recipe, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "err", err)
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}

	if recipe.ImageURL != "" {
		recipe.ImageURL = svc.downloadURL(ctx, recipe.ImageURL)
	}

	return recipe, nil
}

// Update applies the provided fields to a recipe. An update with no fields
// returns the stored record unchanged.
func (svc *RecipeService) Update(ctx context.Context, idHex string, req models.UpdateRecipe) (*models.RecipeDB, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, ErrInvalidRecipeID
	}

	if req.Empty() {
		recipe, err := svc.reader.GetByID(ctx, id)
		if err != nil {
			logger.Log.Errorw("failed to get recipe", "err", err)
			return nil, err
		}
		if recipe == nil {
			return nil, ErrRecipeNotFound
		}
		return recipe, nil
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Ingredients != nil {
		fields["ingredients"] = *req.Ingredients
	}
	if req.Steps != nil {
		fields["steps"] = *req.Steps
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}

	recipe, err := svc.writer.Update(ctx, id, fields)
	if err != nil {
		logger.Log.Errorw("failed to update recipe", "err", err)
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}

	return recipe, nil
}

// Delete removes a recipe. When the record carries an image locator, one
// blob deletion is attempted first; its failure never blocks the record
// deletion.
func (svc *RecipeService) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return ErrInvalidRecipeID
	}

	recipe, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "err", err)
		return err
	}
	if recipe == nil {
		return ErrRecipeNotFound
	}

	if recipe.ImageURL != "" {
		if ok := svc.storage.Delete(ctx, recipe.ImageURL); !ok {
			logger.Log.Errorw("failed to delete recipe image", "id", idHex, "locator", recipe.ImageURL)
		}
	}

	deleted, err := svc.writer.Delete(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete recipe", "err", err)
		return err
	}
	if !deleted {
		return ErrRecipeNotFound
	}

	return nil
}

// PresignUpload issues a time-limited upload URL and the canonical locator
// for a new image.
func (svc *RecipeService) PresignUpload(ctx context.Context, fileName, contentType string) (uploadURL, fileURL string, err error) {
	_, uploadURL, fileURL, err = svc.storage.PresignUpload(ctx, fileName, contentType)
	if err != nil {
		logger.Log.Errorw("failed to presign upload", "err", err)
		return "", "", err
	}
	return uploadURL, fileURL, nil
}

// downloadURL rewrites a locator to a presigned download URL, consulting
// the cache first. Rewrite failures fall back to the stored locator.
func (svc *RecipeService) downloadURL(ctx context.Context, locator string) string {
	if svc.urls != nil {
		if url, err := svc.urls.Get(ctx, locator); err == nil && url != "" {
			return url
		}
	}

	url, err := svc.storage.PresignDownload(ctx, locator)
	if err != nil {
		logger.Log.Errorw("failed to presign download", "locator", locator, "err", err)
		return locator
	}

	if svc.urls != nil {
		_ = svc.urls.Set(ctx, locator, url)
	}

	return url
}
