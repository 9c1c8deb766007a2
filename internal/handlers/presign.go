package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ayerecipes/recipes-api/internal/logger"
)

// UploadPresigner defines the interface that the service must implement.
type UploadPresigner interface {
	PresignUpload(ctx context.Context, fileName, contentType string) (uploadURL, fileURL string, err error)
}

// PresignRequest represents the JSON body for the upload-link endpoint
// swagger:model PresignRequest
type PresignRequest struct {
	// Name of the file to upload
	// required: true
	// default: dinner.jpg
	FileName string `json:"fileName"`

	// MIME type of the upload
	// default: image/jpeg
	ContentType string `json:"contentType"`
}

// PresignResponse represents a successful upload-link response
// swagger:model PresignResponse
type PresignResponse struct {
	// Short-lived URL the client PUTs the file to
	UploadURL string `json:"uploadUrl"`

	// Stable locator to store on the recipe
	FileURL string `json:"fileUrl"`
}

// NewPresignHandler returns an HTTP handler issuing presigned upload links.
// @Summary Request an image upload link
// @Description Issues a short-lived URL for uploading a recipe image directly to object storage, along with the stable locator to save on the recipe.
// @Tags recipes
// @Accept json
// @Produce json
// @Param presignRequest body handlers.PresignRequest true "Upload link request"
// @Success 200 {object} handlers.PresignResponse "Upload link issued"
// @Failure 400 {object} handlers.RecipeErrorResponse "File name is required"
// @Failure 500 {object} handlers.RecipeErrorResponse "Object storage unavailable"
// @Security BearerAuth
// @Router /recipes/presigned-url [post]
func NewPresignHandler(svc UploadPresigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PresignRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(RecipeErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		if req.FileName == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(RecipeErrorResponse{
				Error: "fileName is required",
			})
			return
		}

		uploadURL, fileURL, err := svc.PresignUpload(r.Context(), req.FileName, req.ContentType)
		if err != nil {
			logger.Log.Errorw("presign upload failed", "fileName", req.FileName, "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(RecipeErrorResponse{
				Error: "failed to generate upload URL: " + err.Error(),
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(PresignResponse{
			UploadURL: uploadURL,
			FileURL:   fileURL,
		})
	}
}
