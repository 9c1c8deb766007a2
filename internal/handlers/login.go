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

// Loginer defines the interface that the service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*models.UserDB, string, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// default: ann@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary Authenticate a user
// @Description Verifies the credentials and issues a session token. The failure response never reveals whether the email is registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "User login request"
// @Success 200 {object} handlers.AuthResponse "Login successful"
// @Failure 400 {object} handlers.AuthErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.AuthErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AuthErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		user, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(AuthErrorResponse{
					Error: "Invalid email or password",
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

		profile := user.Profile()
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(AuthResponse{
			Success: true,
			Message: "Login successful",
			User:    &profile,
			Token:   token,
		})
	}
}
