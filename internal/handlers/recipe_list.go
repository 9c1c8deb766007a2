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

// RecipeLister defines the interface that the service must implement.
type RecipeLister interface {
	List(ctx context.Context, ownerEmail string) ([]models.RecipeDB, error)
}

// NewRecipeListHandler returns an HTTP handler listing the caller's recipes.
// @Summary List recipes
// @Description Returns the recipes owned by the authenticated user, with image locators rewritten to presigned download links.
// @Tags recipes
// @Produce json
// @Success 200 {array} models.RecipeDB "Recipes of the caller"
// @Failure 401 {object} handlers.RecipeErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.RecipeErrorResponse "Owner not found"
// @Security BearerAuth
// @Router /recipes [get]
func NewRecipeListHandler(svc RecipeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, ok := middlewares.SubjectFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(RecipeErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		recipes, err := svc.List(r.Context(), email)
		if err != nil {
			switch {
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

		if recipes == nil {
			recipes = []models.RecipeDB{}
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(recipes)
	}
}
