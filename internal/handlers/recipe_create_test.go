package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayerecipes/recipes-api/internal/handlers"
	"github.com/ayerecipes/recipes-api/internal/middlewares"
	"github.com/ayerecipes/recipes-api/internal/models"
	"github.com/ayerecipes/recipes-api/internal/services"
)

func TestRecipeCreateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := &models.RecipeDB{
		ID:     primitive.NewObjectID(),
		Title:  "Pasta",
		UserID: primitive.NewObjectID(),
	}

	tests := []struct {
		name       string
		subject    string
		body       string
		setupMocks func(svc *handlers.MockRecipeCreator)
		wantStatus int
	}{
		{
			name:    "Success",
			subject: "ann@example.com",
			body:    `{"title":"Pasta","ingredients":["flour"]}`,
			setupMocks: func(svc *handlers.MockRecipeCreator) {
				svc.EXPECT().
					Create(gomock.Any(), "ann@example.com", gomock.Any()).
					Return(stored, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "NoSubject",
			subject:    "",
			body:       `{"title":"Pasta"}`,
			setupMocks: func(svc *handlers.MockRecipeCreator) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "InvalidBody",
			subject:    "ann@example.com",
			body:       `{not json`,
			setupMocks: func(svc *handlers.MockRecipeCreator) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "TitleRequired",
			subject: "ann@example.com",
			body:    `{"title":"   "}`,
			setupMocks: func(svc *handlers.MockRecipeCreator) {
				svc.EXPECT().
					Create(gomock.Any(), "ann@example.com", gomock.Any()).
					Return(nil, services.ErrTitleRequired)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "OwnerGone",
			subject: "ghost@example.com",
			body:    `{"title":"Pasta"}`,
			setupMocks: func(svc *handlers.MockRecipeCreator) {
				svc.EXPECT().
					Create(gomock.Any(), "ghost@example.com", gomock.Any()).
					Return(nil, services.ErrUserDoesNotExist)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:    "InternalError",
			subject: "ann@example.com",
			body:    `{"title":"Pasta"}`,
			setupMocks: func(svc *handlers.MockRecipeCreator) {
				svc.EXPECT().
					Create(gomock.Any(), "ann@example.com", gomock.Any()).
					Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := handlers.NewMockRecipeCreator(ctrl)
			tt.setupMocks(svc)

			handler := handlers.NewRecipeCreateHandler(svc)
			req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewBufferString(tt.body))
			if tt.subject != "" {
				req = req.WithContext(middlewares.WithSubject(req.Context(), tt.subject))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRecipeCreateHandler_PassesDecodedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := handlers.NewMockRecipeCreator(ctrl)
	svc.EXPECT().
		Create(gomock.Any(), "ann@example.com", gomock.Any()).
		DoAndReturn(func(_ any, _ string, rec models.CreateRecipe) (*models.RecipeDB, error) {
			require.Equal(t, "Pasta", rec.Title)
			require.Equal(t, []string{"flour", "eggs"}, rec.Ingredients)
			require.Equal(t, []string{"mix", "boil"}, rec.Steps)
			return &models.RecipeDB{Title: rec.Title}, nil
		})

	handler := handlers.NewRecipeCreateHandler(svc)
	body := `{"title":"Pasta","ingredients":["flour","eggs"],"steps":["mix","boil"]}`
	req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewBufferString(body))
	req = req.WithContext(middlewares.WithSubject(req.Context(), "ann@example.com"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.RecipeDB
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Pasta", resp.Title)
}
