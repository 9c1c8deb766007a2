package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayerecipes/recipes-api/internal/logger"
	"github.com/ayerecipes/recipes-api/internal/middlewares"
	"github.com/ayerecipes/recipes-api/internal/models"
	"github.com/ayerecipes/recipes-api/internal/services"
)

// RecipeCreator defines the interface that the service must implement.
type RecipeCreator interface {
	Create(ctx context.Context, ownerEmail string, rec models.CreateRecipe) (*models.RecipeDB, error)
}

// RecipeErrorResponse represents an error response for the recipe endpoints
// swagger:model RecipeErrorResponse
type RecipeErrorResponse struct {
	// Error message
	// default: Recipe not found
	Error string `json:"error"`
}

// NewRecipeCreateHandler returns an HTTP handler for recipe creation.
// @Summary Create a recipe
// @Description Creates a recipe owned by the authenticated user.
// @Tags recipes
// @Accept json
// @Produce json
// @Param createRecipe body models.CreateRecipe true "Recipe to create"
// @Success 201 {object} models.RecipeDB "Recipe created"
// @Failure 400 {object} handlers.RecipeErrorResponse "Invalid request / title required"
// @Failure 401 {object} handlers.RecipeErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.RecipeErrorResponse "Owner not found"
// @Security BearerAuth
// @Router /recipes [post]
func NewRecipeCreateHandler(svc RecipeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, ok := middlewares.SubjectFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(RecipeErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		var req models.CreateRecipe
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(RecipeErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		recipe, err := svc.Create(r.Context(), email, req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTitleRequired):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(RecipeErrorResponse{
					Error: "title is required",
				})
			case errors.Is(err, services.ErrUserDoesNotExist):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(RecipeErrorResponse{
					Error: "User not found",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(RecipeErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(recipe)
	}
}
