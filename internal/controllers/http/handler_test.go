package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront-order-service/internal/domain"
	"storefront-order-service/internal/mocks"
	"storefront-order-service/internal/services"
)

type testEnv struct {
	router   *gin.Engine
	tx       *mocks.MockTxManager
	carts    *mocks.MockCartRepository
	orders   *mocks.MockOrderRepository
	feedback *mocks.MockFeedbackRepository
	catalog  *mocks.MockCatalogClient
	pub      *mocks.MockPublisher
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		tx:       new(mocks.MockTxManager),
		carts:    new(mocks.MockCartRepository),
		orders:   new(mocks.MockOrderRepository),
		feedback: new(mocks.MockFeedbackRepository),
		catalog:  new(mocks.MockCatalogClient),
		pub:      new(mocks.MockPublisher),
	}
	env.tx.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil).Maybe()

	pricing := services.PricingConfig{PlatformFee: 15, DeliveryFee: 100, TaxRate: 0.05}
	handler := NewHandler(
		services.NewCartService(env.carts, env.catalog),
		services.NewCheckoutService(env.tx, env.carts, env.orders, env.catalog, env.pub, pricing),
		services.NewStatusService(env.tx, env.orders, env.pub),
		services.NewFeedbackService(env.tx, env.orders, env.feedback),
		services.NewOrderQueryService(env.orders),
	)

	r := gin.New()
	handler.RegisterRoutes(r)
	env.router = r
	return env
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderUserID, "alice")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestHandler_RequiresUserHeader(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Checkout_EmptyCartIsBadRequest(t *testing.T) {
	env := newTestEnv()
	env.carts.On("ListByUserForUpdate", mock.Anything, "alice").Return([]domain.CartLine{}, nil)

	w := env.do(http.MethodPost, "/checkout", gin.H{
		"shipping": gin.H{
			"name": "A", "address": "B", "city": "C", "state": "D", "zip": "E",
		},
		"paymentMethod": "COD",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cart is empty")
}

func TestHandler_SetStatus_TerminalIsConflict(t *testing.T) {
	env := newTestEnv()
	delivered := &domain.Order{ID: 9, Username: "alice", Status: domain.StatusDelivered}
	env.orders.On("FindByIDForUpdate", mock.Anything, uint64(9)).Return(delivered, nil)

	w := env.do(http.MethodPatch, "/orders/9/status", gin.H{"status": "Shipped"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_SetStatus_UnknownOrderIsNotFound(t *testing.T) {
	env := newTestEnv()
	env.orders.On("FindByIDForUpdate", mock.Anything, uint64(404)).Return(nil, nil)

	w := env.do(http.MethodPatch, "/orders/404/status", gin.H{"status": "Shipped"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Checkout_StorageFailureHidesDriverError(t *testing.T) {
	env := newTestEnv()
	env.carts.On("ListByUserForUpdate", mock.Anything, "alice").
		Return([]domain.CartLine{{ID: 1, Username: "alice", ProductID: 10, Quantity: 1, DisplayPrice: 100}}, nil)
	env.catalog.On("GetProductById", mock.Anything, uint64(10)).
		Return(nil, errDriver{})

	w := env.do(http.MethodPost, "/checkout", gin.H{
		"shipping": gin.H{
			"name": "A", "address": "B", "city": "C", "state": "D", "zip": "E",
		},
		"paymentMethod": "COD",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "contact support")
	assert.NotContains(t, w.Body.String(), "driver: bad connection")
}

type errDriver struct{}

func (errDriver) Error() string { return "driver: bad connection" }
