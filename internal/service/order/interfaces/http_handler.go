// internal/service/order/interfaces/http_handler.go
package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"foodsy/internal/pkg/sequence"
	"foodsy/internal/service/order/application"
	"foodsy/internal/service/order/domain"
)

const serviceName = "storefront"

// OrderHandler 封装了订单服务的 HTTP 处理器
type OrderHandler struct {
	service *application.OrderApplicationService
}

// NewOrderHandler 创建一个新的 HTTP 处理器实例
func NewOrderHandler(service *application.OrderApplicationService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *OrderHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/orders", h.handlePlaceOrder)
	mux.HandleFunc("GET /api/orders/{id}", h.handleGetOrder)
	mux.HandleFunc("GET /api/admin/orders", h.handleListOrders)
	mux.HandleFunc("PATCH /api/admin/orders/{id}", h.handleUpdateStatus)
}

func (h *OrderHandler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	tracer := otel.Tracer(serviceName)
	ctx, span := tracer.Start(ctx, "http.PlaceOrder")
	defer span.End()

	var req application.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	span.SetAttributes(
		attribute.String("user.id", req.UserID),
		attribute.Int("cart.items", len(req.CartItems)),
	)

	resp, err := h.service.PlaceOrder(ctx, &req)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeOrderJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": resp.Message,
		"order":   resp,
	})
}

func (h *OrderHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	view, err := h.service.GetOrder(ctx, r.PathValue("id"))
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeOrderJSON(w, http.StatusOK, map[string]interface{}{"success": true, "order": view})
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	views, err := h.service.ListOrders(ctx)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeOrderJSON(w, http.StatusOK, map[string]interface{}{"success": true, "orders": views})
}

func (h *OrderHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var req application.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.service.UpdateStatus(ctx, r.PathValue("id"), req.Status)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeOrderJSON(w, http.StatusOK, map[string]interface{}{"success": true, "order": view})
}

// writeOrderError 根据错误类型返回不同的 HTTP 状态码
func writeOrderError(w http.ResponseWriter, err error) {
	var statusCode int
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrInvalidTransition):
		statusCode = http.StatusBadRequest
	case errors.Is(err, domain.ErrOrderNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, sequence.ErrAllocationFailed):
		// 序号分配耗尽重试预算，让客户端稍后重试
		statusCode = http.StatusServiceUnavailable
	default:
		statusCode = http.StatusInternalServerError
	}
	writeOrderJSON(w, statusCode, map[string]interface{}{"success": false, "error": err.Error()})
}

func writeOrderJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
