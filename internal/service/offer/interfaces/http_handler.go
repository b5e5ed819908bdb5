// internal/service/offer/interfaces/http_handler.go
package interfaces

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"foodsy/internal/service/offer/application"
	"foodsy/internal/service/offer/domain"
)

// OfferHandler 封装了优惠服务的 HTTP 处理器
type OfferHandler struct {
	service *application.OfferService
}

// NewOfferHandler 创建一个新的 HTTP 处理器实例
func NewOfferHandler(service *application.OfferService) *OfferHandler {
	return &OfferHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *OfferHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/admin/offers", h.handleCreate)
	mux.HandleFunc("GET /api/admin/offers", h.handleList)
	mux.HandleFunc("PUT /api/admin/offers/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /api/admin/offers/{id}", h.handleDelete)
}

func (h *OfferHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var req application.SaveOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.service.CreateOffer(ctx, &req)
	if err != nil {
		writeOfferError(w, err)
		return
	}
	writeOfferJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "offer": view})
}

func (h *OfferHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	views, err := h.service.ListOffers(ctx)
	if err != nil {
		writeOfferError(w, err)
		return
	}
	writeOfferJSON(w, http.StatusOK, map[string]interface{}{"success": true, "offers": views})
}

func (h *OfferHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid offer id", http.StatusBadRequest)
		return
	}
	var req application.SaveOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.service.UpdateOffer(ctx, id, &req)
	if err != nil {
		writeOfferError(w, err)
		return
	}
	writeOfferJSON(w, http.StatusOK, map[string]interface{}{"success": true, "offer": view})
}

func (h *OfferHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid offer id", http.StatusBadRequest)
		return
	}
	if err := h.service.DeleteOffer(ctx, id); err != nil {
		writeOfferError(w, err)
		return
	}
	writeOfferJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// writeOfferError 根据错误类型返回不同的 HTTP 状态码
func writeOfferError(w http.ResponseWriter, err error) {
	var statusCode int
	switch {
	case errors.Is(err, domain.ErrOfferNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidOffer), errors.Is(err, domain.ErrInvalidRule):
		statusCode = http.StatusBadRequest
	default:
		statusCode = http.StatusInternalServerError
	}
	writeOfferJSON(w, statusCode, map[string]interface{}{"success": false, "error": err.Error()})
}

func writeOfferJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
