package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayerecipes/recipes-api/internal/logger"
	"github.com/ayerecipes/recipes-api/internal/models"
	"github.com/ayerecipes/recipes-api/internal/services"
)

// Verifier defines the interface that the service must implement.
type Verifier interface {
	Verify(ctx context.Context, token string) (*models.UserDB, error)
}

// VerifyResponse represents a successful token verification
// swagger:model VerifyResponse
type VerifyResponse struct {
	// Success flag
	// default: true
	Success bool `json:"success"`

	// Email of the token subject
	// default: ann@example.com
	Email string `json:"email"`

	// Display name of the token subject
	// default: Ann
	Name string `json:"name"`
}

// NewVerifyHandler returns an HTTP handler for session token verification.
// @Summary Verify a session token
// @Description Validates the token passed in the query string and returns the profile of its subject.
// @Tags auth
// @Produce json
// @Param token query string true "Session token"
// @Success 200 {object} handlers.VerifyResponse "Token is valid"
// @Failure 401 {object} handlers.AuthErrorResponse "Missing or invalid token"
// @Failure 404 {object} handlers.AuthErrorResponse "Token subject no longer exists"
// @Router /auth/verify [get]
func NewVerifyHandler(svc Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(AuthErrorResponse{
				Error: "token is required",
			})
			return
		}

		user, err := svc.Verify(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidToken):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(AuthErrorResponse{
					Error: "Invalid or expired token",
				})
			case errors.Is(err, services.ErrUserDoesNotExist):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(AuthErrorResponse{
					Error: "User not found",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(AuthErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(VerifyResponse{
			Success: true,
			Email:   user.Email,
			Name:    user.Name,
		})
	}
}
