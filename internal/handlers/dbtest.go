package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ayerecipes/recipes-api/internal/logger"
)

// RecipeCounter defines the interface that the service must implement.
type RecipeCounter interface {
	Count(ctx context.Context) (int64, error)
}

// DBTestResponse represents the database connectivity check response
// swagger:model DBTestResponse
type DBTestResponse struct {
	// Status
	// default: ok
	Status string `json:"status"`

	// Message
	// default: Database connection is healthy
	Message string `json:"message"`

	// Number of stored recipes
	TotalRecipes int64 `json:"total_recipes"`
}

// NewDBTestHandler returns a handler probing database connectivity.
// @Summary Database connectivity check
// @Tags service
// @Produce json
// @Success 200 {object} handlers.DBTestResponse "Database reachable"
// @Failure 500 {object} handlers.RecipeErrorResponse "Database unreachable"
// @Router /db-test [get]
func NewDBTestHandler(svc RecipeCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := svc.Count(r.Context())
		if err != nil {
			logger.Log.Errorw("database check failed", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(RecipeErrorResponse{
				Error: "database connection failed: " + err.Error(),
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DBTestResponse{
			Status:       "ok",
			Message:      "Database connection is healthy",
			TotalRecipes: total,
		})
	}
}
