package checkoutControllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onewaymotor/storefront-api/checkout"
	cartControllers "github.com/onewaymotor/storefront-api/controllers/cart"
	"github.com/onewaymotor/storefront-api/models"
	"github.com/onewaymotor/storefront-api/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthorizer struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakeAuthorizer) Authorize(_ context.Context, _, _ string, _ int64, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

type fixture struct {
	router *gin.Engine
	carts  *store.CartStore
	auth   *fakeAuthorizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	// Stand-in CDN so the readiness probe passes without the network.
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(cdn.Close)
	t.Setenv("AFFIRM_CDN_BASE_URL", cdn.URL)

	carts := store.NewCartStore()
	auth := &fakeAuthorizer{}
	builder := checkout.NewBuilder(checkout.BuilderConfig{
		MerchantName: "ONE WAY MOTORS",
		OriginBase:   "https://shop.test",
	})
	orch := checkout.NewOrchestrator(builder, checkout.NewLoader(checkout.EnvSandbox), carts, auth, true)

	r := gin.New()
	r.POST("/checkout/affirm", Begin(orch))
	r.POST("/checkout/affirm/result", Result(orch))
	r.POST("/checkout/affirm/retry", Retry(orch))
	return &fixture{router: r, carts: carts, auth: auth}
}

func (f *fixture) do(method, path, cartID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cartID != "" {
		req.Header.Set(cartControllers.CartIDHeader, cartID)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) seedCart(cartID string) {
	f.carts.AddItem(cartID, models.CartLineItem{ID: "m1", Name: "Street Bike 450", Price: 450, Quantity: 1})
}

func TestBeginRequiresCartID(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/checkout/affirm", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "X-Cart-ID")
}

func TestBeginEmptyBodyIsFine(t *testing.T) {
	f := newFixture(t)
	f.seedCart("c1")

	w := f.do(http.MethodPost, "/checkout/affirm", "c1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res checkout.BeginResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res.OrderID)
	require.NotNil(t, res.Payload)
	assert.Equal(t, int64(45000), res.Payload.Total)
}

func TestBeginEmptyCart(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/checkout/affirm", "c1", "{}")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Add products to your cart.")
}

func TestBeginBelowMinimumSpanish(t *testing.T) {
	f := newFixture(t)
	f.carts.AddItem("c1", models.CartLineItem{ID: "m1", Name: "Helmet", Price: 49.99, Quantity: 1})

	w := f.do(http.MethodPost, "/checkout/affirm?lang=es", "c1", "{}")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "demasiado bajo")
}

func TestBeginConflictWhileInFlight(t *testing.T) {
	f := newFixture(t)
	f.seedCart("c1")

	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/checkout/affirm", "c1", "{}").Code)

	w := f.do(http.MethodPost, "/checkout/affirm", "c1", "{}")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestResultSuccessClearsCart(t *testing.T) {
	f := newFixture(t)
	f.seedCart("c1")
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/checkout/affirm", "c1", "{}").Code)

	w := f.do(http.MethodPost, "/checkout/affirm/result", "c1", `{"event":"success","checkout_token":"tok_1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"outcome":"success"`)
	assert.Equal(t, 1, f.auth.calls)
	assert.Empty(t, f.carts.Items("c1"))
}

func TestResultSuccessRequiresToken(t *testing.T) {
	f := newFixture(t)
	f.seedCart("c1")
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/checkout/affirm", "c1", "{}").Code)

	w := f.do(http.MethodPost, "/checkout/affirm/result", "c1", `{"event":"success"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResultUnknownEvent(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/checkout/affirm/result", "c1", `{"event":"shrug"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown event")
}

func TestResultWithoutAttempt(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/checkout/affirm/result", "c1", `{"event":"close"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCloseThenRetry(t *testing.T) {
	f := newFixture(t)
	f.seedCart("c1")

	var began checkout.BeginResult
	require.NoError(t, json.Unmarshal(f.do(http.MethodPost, "/checkout/affirm", "c1", "{}").Body.Bytes(), &began))

	w := f.do(http.MethodPost, "/checkout/affirm/result", "c1", `{"event":"close"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"outcome":"cancelled"`)
	assert.Contains(t, w.Body.String(), `"retryable":true`)

	w = f.do(http.MethodPost, "/checkout/affirm/retry", "c1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var retried checkout.BeginResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &retried))
	assert.Equal(t, began.OrderID, retried.OrderID, "retry reuses the retained order")

	// The retry is one shot.
	w = f.do(http.MethodPost, "/checkout/affirm/retry", "c1", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestValidationErrorNotRetryable(t *testing.T) {
	f := newFixture(t)
	f.seedCart("c1")
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/checkout/affirm", "c1", "{}").Code)

	w := f.do(http.MethodPost, "/checkout/affirm/result", "c1", `{"event":"validation_error"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"retryable":false`)

	w = f.do(http.MethodPost, "/checkout/affirm/retry", "c1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRetryWithoutAttempt(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/checkout/affirm/retry", "c1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
