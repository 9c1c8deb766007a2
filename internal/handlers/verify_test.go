package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayerecipes/recipes-api/internal/handlers"
	"github.com/ayerecipes/recipes-api/internal/models"
	"github.com/ayerecipes/recipes-api/internal/services"
)

func TestVerifyHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := &models.UserDB{
		ID:    primitive.NewObjectID(),
		Email: "ann@example.com",
		Name:  "Ann",
	}

	tests := []struct {
		name       string
		target     string
		setupMocks func(svc *handlers.MockVerifier)
		wantStatus int
	}{
		{
			name:   "Success",
			target: "/auth/verify?token=token123",
			setupMocks: func(svc *handlers.MockVerifier) {
				svc.EXPECT().
					Verify(gomock.Any(), "token123").
					Return(user, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "MissingToken",
			target:     "/auth/verify",
			setupMocks: func(svc *handlers.MockVerifier) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "InvalidToken",
			target: "/auth/verify?token=bad",
			setupMocks: func(svc *handlers.MockVerifier) {
				svc.EXPECT().
					Verify(gomock.Any(), "bad").
					Return(nil, services.ErrInvalidToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "SubjectGone",
			target: "/auth/verify?token=token123",
			setupMocks: func(svc *handlers.MockVerifier) {
				svc.EXPECT().
					Verify(gomock.Any(), "token123").
					Return(nil, services.ErrUserDoesNotExist)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := handlers.NewMockVerifier(ctrl)
			tt.setupMocks(svc)

			handler := handlers.NewVerifyHandler(svc)
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestVerifyHandler_SuccessBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := handlers.NewMockVerifier(ctrl)
	svc.EXPECT().
		Verify(gomock.Any(), "token123").
		Return(&models.UserDB{Email: "ann@example.com", Name: "Ann"}, nil)

	handler := handlers.NewVerifyHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/auth/verify?token=token123", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.VerifyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ann@example.com", resp.Email)
	assert.Equal(t, "Ann", resp.Name)
}
