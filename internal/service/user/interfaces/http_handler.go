// internal/service/user/interfaces/http_handler.go
package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"foodsy/internal/pkg/sequence"
	"foodsy/internal/service/user/application"
	"foodsy/internal/service/user/domain"
)

// UserHandler 封装了用户服务的 HTTP 处理器
type UserHandler struct {
	service *application.UserService
}

func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users/register", h.handleRegister)
	mux.HandleFunc("GET /api/users/{id}", h.handleGet)
}

func (h *UserHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var req application.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.service.Register(ctx, &req)
	if err != nil {
		writeUserError(w, err)
		return
	}
	writeUserJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "User registered successfully",
		"user":    view,
	})
}

func (h *UserHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	view, err := h.service.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeUserError(w, err)
		return
	}
	writeUserJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": view})
}

// writeUserError 根据错误类型返回不同的 HTTP 状态码
func writeUserError(w http.ResponseWriter, err error) {
	var statusCode int
	switch {
	case errors.Is(err, domain.ErrInvalidUser):
		statusCode = http.StatusBadRequest
	case errors.Is(err, domain.ErrEmailTaken):
		statusCode = http.StatusConflict
	case errors.Is(err, domain.ErrUserNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, sequence.ErrAllocationFailed):
		statusCode = http.StatusServiceUnavailable
	default:
		statusCode = http.StatusInternalServerError
	}
	writeUserJSON(w, statusCode, map[string]interface{}{"success": false, "error": err.Error()})
}

func writeUserJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
