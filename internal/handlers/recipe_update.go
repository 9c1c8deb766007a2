package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayerecipes/recipes-api/internal/models"
)

// RecipeUpdater defines the interface that the service must implement.
type RecipeUpdater interface {
	Update(ctx context.Context, id string, upd models.UpdateRecipe) (*models.RecipeDB, error)
}

// NewRecipeUpdateHandler returns an HTTP handler for partial recipe updates.
// @Summary Update a recipe
// @Description Applies a partial update. Absent fields keep their stored values; an empty body returns the stored recipe unchanged.
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path string true "Recipe identifier"
// @Param updateRecipe body models.UpdateRecipe true "Fields to update"
// @Success 200 {object} models.RecipeDB "Updated recipe"
// @Failure 400 {object} handlers.RecipeErrorResponse "Malformed identifier / invalid request"
// @Failure 404 {object} handlers.RecipeErrorResponse "Recipe not found"
// @Router /recipes/{id} [put]
func NewRecipeUpdateHandler(svc RecipeUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateRecipe
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(RecipeErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		recipe, err := svc.Update(r.Context(), id, req)
		if err != nil {
			writeRecipeError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(recipe)
	}
}
