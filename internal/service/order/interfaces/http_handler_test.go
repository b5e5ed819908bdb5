// internal/service/order/interfaces/http_handler_test.go
package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"foodsy/internal/pkg/sequence"
	"foodsy/internal/service/order/application"
	"foodsy/internal/service/order/domain"
)

type memoryOrderRepo struct {
	orders map[string]*domain.Order
}

func (r *memoryOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *memoryOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *memoryOrderRepo) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	order, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func (r *memoryOrderRepo) ListAll(_ context.Context) ([]*domain.Order, error) {
	all := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		all = append(all, o)
	}
	return all, nil
}

type noopNotifier struct{}

func (noopNotifier) NotifyStatusChanged(context.Context, *domain.OrderStatusChanged) error {
	return nil
}

type brokenAllocator struct{}

func (brokenAllocator) Next(context.Context, string, time.Time) (int64, error) {
	return 0, fmt.Errorf("after 3 attempts: %w", sequence.ErrAllocationFailed)
}

func newTestServer(t *testing.T, alloc sequence.Allocator) *httptest.Server {
	t.Helper()
	svc := application.NewOrderApplicationService(
		&memoryOrderRepo{orders: make(map[string]*domain.Order)},
		alloc,
		noopNotifier{},
		nil,
		otel.Tracer("test"),
	)
	mux := http.NewServeMux()
	NewOrderHandler(svc).RegisterRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func placeOrderBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"userId":       "VE-20260228-001",
		"mobileNumber": "9876543210",
		"cartItems": []map[string]interface{}{
			{"productId": "p1", "name": "Chicken Biryani", "price": 12000, "quantity": 2},
		},
		"shop":    map[string]float64{"latitude": 16.9891, "longitude": 82.2475},
		"dropoff": map[string]float64{"latitude": 17.0269, "longitude": 82.2475},
	})
	return body
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestPlaceOrderEndpoint(t *testing.T) {
	server := newTestServer(t, sequence.NewMemoryAllocator())

	resp, err := http.Post(server.URL+"/api/orders", "application/json", bytes.NewReader(placeOrderBody()))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	order := body["order"].(map[string]interface{})
	assert.Regexp(t, `^ORD-\d{8}-001$`, order["orderId"])
	assert.Equal(t, "Confirmed", order["status"])
	assert.Equal(t, float64(29500), order["totalAmount"]) // 24000 + 5500 配送费
}

func TestPlaceOrderEndpoint_InvalidMobileIs400(t *testing.T) {
	server := newTestServer(t, sequence.NewMemoryAllocator())

	body := []byte(`{"userId":"U1","mobileNumber":"12345678","cartItems":[{"productId":"p1","price":100,"quantity":1}]}`)
	resp, err := http.Post(server.URL+"/api/orders", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlaceOrderEndpoint_AllocationFailureIs503(t *testing.T) {
	server := newTestServer(t, brokenAllocator{})

	resp, err := http.Post(server.URL+"/api/orders", "application/json", bytes.NewReader(placeOrderBody()))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGetOrderEndpoint_UnknownIs404(t *testing.T) {
	server := newTestServer(t, sequence.NewMemoryAllocator())

	resp, err := http.Get(server.URL + "/api/orders/ORD-19700101-001")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	server := newTestServer(t, sequence.NewMemoryAllocator())

	resp, err := http.Post(server.URL+"/api/orders", "application/json", bytes.NewReader(placeOrderBody()))
	require.NoError(t, err)
	created := decodeBody(t, resp)
	orderID := created["order"].(map[string]interface{})["orderId"].(string)

	patch := func(status string) *http.Response {
		req, err := http.NewRequest(http.MethodPatch, server.URL+"/api/admin/orders/"+orderID,
			bytes.NewReader([]byte(`{"status":"`+status+`"}`)))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	resp = patch("On the Way")
	body := decodeBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "On the Way", body["order"].(map[string]interface{})["status"])

	// 回退被拒绝
	resp = patch("Preparing")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
