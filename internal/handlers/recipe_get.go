package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayerecipes/recipes-api/internal/logger"
	"github.com/ayerecipes/recipes-api/internal/models"
	"github.com/ayerecipes/recipes-api/internal/services"
)

// RecipeGetter defines the interface that the service must implement.
type RecipeGetter interface {
	Get(ctx context.Context, id string) (*models.RecipeDB, error)
}

// NewRecipeGetHandler returns an HTTP handler fetching a single recipe.
// @Summary Get a recipe
// @Description Returns a recipe by its identifier, with the image locator rewritten to a presigned download link.
// @Tags recipes
// @Produce json
// @Param id path string true "Recipe identifier"
// @Success 200 {object} models.RecipeDB "Recipe found"
// @Failure 400 {object} handlers.RecipeErrorResponse "Malformed identifier"
// @Failure 404 {object} handlers.RecipeErrorResponse "Recipe not found"
// @Router /recipes/{id} [get]
func NewRecipeGetHandler(svc RecipeGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		recipe, err := svc.Get(r.Context(), id)
		if err != nil {
			writeRecipeError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(recipe)
	}
}

// writeRecipeError maps service errors of the id-addressed recipe
// endpoints onto HTTP statuses.
func writeRecipeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidRecipeID):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(RecipeErrorResponse{
			Error: "Invalid recipe ID",
		})
	case errors.Is(err, services.ErrRecipeNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(RecipeErrorResponse{
			Error: "Recipe not found",
		})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(RecipeErrorResponse{
			Error: "Internal server error",
		})
	}
}
