package handlers

import (
	"encoding/json"
	"net/http"
)

// PingResponse represents the health check response
// swagger:model PingResponse
type PingResponse struct {
	// Message
	// default: Pong!
	Message string `json:"message"`
}

// NewPingHandler returns a trivial liveness handler.
// @Summary Health check
// @Tags service
// @Produce json
// @Success 200 {object} handlers.PingResponse "Service is alive"
// @Router /ping [get]
func NewPingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(PingResponse{Message: "Pong!"})
	}
}

// NewRootHandler returns the landing handler with a short service banner.
// @Summary Service banner
// @Tags service
// @Produce json
// @Success 200 {object} handlers.PingResponse "Service banner"
// @Router / [get]
func NewRootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(PingResponse{
			Message: "Recipes API is running. See /swagger/index.html for docs.",
		})
	}
}
