// internal/service/video/interfaces/http_handler.go
package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"foodsy/internal/service/video/application"
	"foodsy/internal/service/video/domain"
)

// VideoHandler 短视频 HTTP 处理器
type VideoHandler struct {
	service *application.VideoService
}

func NewVideoHandler(service *application.VideoService) *VideoHandler {
	return &VideoHandler{service: service}
}

func (h *VideoHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/videos", h.handleListVideos)
	mux.HandleFunc("POST /api/admin/videos", h.handleCreateVideo)
	mux.HandleFunc("PUT /api/admin/videos/{id}", h.handleUpdateVideo)
	mux.HandleFunc("DELETE /api/admin/videos/{id}", h.handleDeleteVideo)
}

func (h *VideoHandler) handleListVideos(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	views, err := h.service.ListVideos(ctx)
	if err != nil {
		writeVideoError(w, err)
		return
	}
	writeVideoJSON(w, http.StatusOK, map[string]interface{}{"success": true, "videos": views})
}

func (h *VideoHandler) handleCreateVideo(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var req application.SaveVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	view, err := h.service.CreateVideo(ctx, &req)
	if err != nil {
		writeVideoError(w, err)
		return
	}
	writeVideoJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "video": view})
}

func (h *VideoHandler) handleUpdateVideo(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var req application.SaveVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	view, err := h.service.UpdateVideo(ctx, r.PathValue("id"), &req)
	if err != nil {
		writeVideoError(w, err)
		return
	}
	writeVideoJSON(w, http.StatusOK, map[string]interface{}{"success": true, "video": view})
}

func (h *VideoHandler) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	if err := h.service.DeleteVideo(ctx, r.PathValue("id")); err != nil {
		writeVideoError(w, err)
		return
	}
	writeVideoJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func writeVideoError(w http.ResponseWriter, err error) {
	var statusCode int
	switch {
	case errors.Is(err, domain.ErrInvalidVideo):
		statusCode = http.StatusBadRequest
	case errors.Is(err, domain.ErrVideoNotFound):
		statusCode = http.StatusNotFound
	default:
		statusCode = http.StatusInternalServerError
	}
	writeVideoJSON(w, statusCode, map[string]interface{}{"success": false, "error": err.Error()})
}

func writeVideoJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
