package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RecipeDeleter defines the interface that the service must implement.
type RecipeDeleter interface {
	Delete(ctx context.Context, id string) error
}

// NewRecipeDeleteHandler returns an HTTP handler for recipe deletion.
// @Summary Delete a recipe
// @Description Deletes a recipe and, best effort, its stored image.
// @Tags recipes
// @Param id path string true "Recipe identifier"
// @Success 204 "Recipe deleted"
// @Failure 400 {object} handlers.RecipeErrorResponse "Malformed identifier"
// @Failure 404 {object} handlers.RecipeErrorResponse "Recipe not found"
// @Router /recipes/{id} [delete]
func NewRecipeDeleteHandler(svc RecipeDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := svc.Delete(r.Context(), id); err != nil {
			writeRecipeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
