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

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, email, password, name string) (*models.UserDB, string, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Email
	// required: true
	// default: ann@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`

	// Display name
	// default: Ann
	Name string `json:"name"`
}

// AuthResponse represents a successful registration or login response
// swagger:model AuthResponse
type AuthResponse struct {
	// Success flag
	// default: true
	Success bool `json:"success"`

	// Human-readable message
	// default: User registered successfully
	Message string `json:"message"`

	// Public profile of the user
	User *models.UserProfile `json:"user,omitempty"`

	// Signed session token
	Token string `json:"token,omitempty"`
}

// AuthErrorResponse represents an error response for the auth endpoints
// swagger:model AuthErrorResponse
type AuthErrorResponse struct {
	// Error message
	// default: User already exists
	Error string `json:"error"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account, hashes the password and issues a session token for the new subject.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.AuthResponse "User successfully registered"
// @Failure 400 {object} handlers.AuthErrorResponse "Email already exists / invalid request"
// @Router /auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AuthErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		if req.Email == "" || req.Password == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AuthErrorResponse{
				Error: "email and password are required",
			})
			return
		}

		user, token, err := svc.Register(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(AuthErrorResponse{
					Error: "User already exists",
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
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(AuthResponse{
			Success: true,
			Message: "User registered successfully",
			User:    &profile,
			Token:   token,
		})
	}
}
