// internal/service/catalog/interfaces/http_handler.go
package interfaces

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"foodsy/internal/service/catalog/application"
	"foodsy/internal/service/catalog/domain"
)

// CatalogHandler 封装了商品/店铺服务的 HTTP 处理器
type CatalogHandler struct {
	service *application.CatalogService
}

func NewCatalogHandler(service *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.handleListProducts)
	mux.HandleFunc("POST /api/admin/products", h.handleCreateProduct)
	mux.HandleFunc("PUT /api/admin/products/{id}", h.handleUpdateProduct)
	mux.HandleFunc("DELETE /api/admin/products/{id}", h.handleDeleteProduct)

	mux.HandleFunc("GET /api/shops", h.handleListShops)
	mux.HandleFunc("GET /api/shops/{id}", h.handleGetShop)
	mux.HandleFunc("POST /api/admin/shops", h.handleCreateShop)
}

func (h *CatalogHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	views, err := h.service.ListProducts(ctx, r.URL.Query().Get("category"))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeCatalogJSON(w, http.StatusOK, map[string]interface{}{"success": true, "products": views})
}

func (h *CatalogHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var req application.SaveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	view, err := h.service.CreateProduct(ctx, &req)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeCatalogJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "product": view})
}

func (h *CatalogHandler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var req application.SaveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	view, err := h.service.UpdateProduct(ctx, r.PathValue("id"), &req)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeCatalogJSON(w, http.StatusOK, map[string]interface{}{"success": true, "product": view})
}

func (h *CatalogHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	if err := h.service.DeleteProduct(ctx, r.PathValue("id")); err != nil {
		writeCatalogError(w, err)
		return
	}
	writeCatalogJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *CatalogHandler) handleListShops(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	views, err := h.service.ListShops(ctx)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeCatalogJSON(w, http.StatusOK, map[string]interface{}{"success": true, "shops": views})
}

func (h *CatalogHandler) handleGetShop(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid shop id", http.StatusBadRequest)
		return
	}
	view, err := h.service.GetShop(ctx, id)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeCatalogJSON(w, http.StatusOK, map[string]interface{}{"success": true, "shop": view})
}

func (h *CatalogHandler) handleCreateShop(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var req application.SaveShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	view, err := h.service.CreateShop(ctx, &req)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeCatalogJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Shop created successfully",
		"shop":    view,
	})
}

// writeCatalogError 根据错误类型返回不同的 HTTP 状态码
func writeCatalogError(w http.ResponseWriter, err error) {
	var statusCode int
	switch {
	case errors.Is(err, domain.ErrInvalidProduct), errors.Is(err, domain.ErrInvalidShop):
		statusCode = http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrShopNotFound):
		statusCode = http.StatusNotFound
	default:
		statusCode = http.StatusInternalServerError
	}
	writeCatalogJSON(w, statusCode, map[string]interface{}{"success": false, "error": err.Error()})
}

func writeCatalogJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
