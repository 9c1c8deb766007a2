package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayerecipes/recipes-api/internal/handlers"
	"github.com/ayerecipes/recipes-api/internal/storage"
)

func TestPresignHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		body       string
		setupMocks func(svc *handlers.MockUploadPresigner)
		wantStatus int
	}{
		{
			name: "Success",
			body: `{"fileName":"dinner.jpg","contentType":"image/jpeg"}`,
			setupMocks: func(svc *handlers.MockUploadPresigner) {
				svc.EXPECT().
					PresignUpload(gomock.Any(), "dinner.jpg", "image/jpeg").
					Return("https://signed.example/put", "https://bucket.s3.amazonaws.com/recipes/abc-dinner.jpg", nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "MissingFileName",
			body:       `{"contentType":"image/jpeg"}`,
			setupMocks: func(svc *handlers.MockUploadPresigner) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "InvalidBody",
			body:       `{not json`,
			setupMocks: func(svc *handlers.MockUploadPresigner) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "StorageUnavailable",
			body: `{"fileName":"dinner.jpg"}`,
			setupMocks: func(svc *handlers.MockUploadPresigner) {
				svc.EXPECT().
					PresignUpload(gomock.Any(), "dinner.jpg", "").
					Return("", "", storage.ErrBucketNotConfigured)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := handlers.NewMockUploadPresigner(ctrl)
			tt.setupMocks(svc)

			handler := handlers.NewPresignHandler(svc)
			req := httptest.NewRequest(http.MethodPost, "/recipes/presigned-url", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPresignHandler_SuccessBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := handlers.NewMockUploadPresigner(ctrl)
	svc.EXPECT().
		PresignUpload(gomock.Any(), "dinner.jpg", "image/jpeg").
		Return("https://signed.example/put", "https://bucket.s3.amazonaws.com/recipes/abc-dinner.jpg", nil)

	handler := handlers.NewPresignHandler(svc)
	body := `{"fileName":"dinner.jpg","contentType":"image/jpeg"}`
	req := httptest.NewRequest(http.MethodPost, "/recipes/presigned-url", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.PresignResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "https://signed.example/put", resp.UploadURL)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/recipes/abc-dinner.jpg", resp.FileURL)
}
