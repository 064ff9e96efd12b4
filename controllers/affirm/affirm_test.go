package affirmControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.POST("/payment/affirm/authorize", AuthorizeHandler)
	return r
}

func setKeys(t *testing.T) {
	t.Helper()
	t.Setenv("AFFIRM_PUBLIC_API_KEY", "pub_key")
	t.Setenv("AFFIRM_PRIVATE_API_KEY", "priv_key")
}

// fakeProvider stands in for the Affirm server API.
type fakeProvider struct {
	srv          *httptest.Server
	chargeCalls  int32
	captureCalls int32

	chargeStatus  int
	chargeBody    string
	captureStatus int
	captureBody   string
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()
	p := &fakeProvider{
		chargeStatus:  http.StatusOK,
		chargeBody:    `{"id":"CHG-1","status":"authorized"}`,
		captureStatus: http.StatusOK,
		captureBody:   `{"id":"CHG-1","type":"capture"}`,
	}
	p.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/charges":
			atomic.AddInt32(&p.chargeCalls, 1)
			w.WriteHeader(p.chargeStatus)
			w.Write([]byte(p.chargeBody))
		case strings.HasSuffix(r.URL.Path, "/capture"):
			atomic.AddInt32(&p.captureCalls, 1)
			w.WriteHeader(p.captureStatus)
			w.Write([]byte(p.captureBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(p.srv.Close)
	t.Setenv("AFFIRM_API_BASE_URL", p.srv.URL)
	return p
}

func doAuthorize(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/payment/affirm/authorize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)
	return w
}

func TestAuthorizeMissingTokenOrOrder(t *testing.T) {
	setKeys(t)
	provider := newFakeProvider(t)

	for _, body := range []string{
		`{}`,
		`{"checkout_token":"tok"}`,
		`{"order_id":"ORDER-1"}`,
	} {
		w := doAuthorize(t, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		assert.Contains(t, w.Body.String(), "Missing checkout_token or order_id")
	}
	assert.Zero(t, atomic.LoadInt32(&provider.chargeCalls), "no upstream call on invalid input")
}

// Capture without a positive amount must be rejected before any provider
// contact.
func TestAuthorizeCaptureRequiresAmount(t *testing.T) {
	setKeys(t)
	provider := newFakeProvider(t)

	for _, body := range []string{
		`{"checkout_token":"tok","order_id":"ORDER-1","capture":true}`,
		`{"checkout_token":"tok","order_id":"ORDER-1"}`, // capture defaults to true
		`{"checkout_token":"tok","order_id":"ORDER-1","capture":true,"amount_cents":0}`,
		`{"checkout_token":"tok","order_id":"ORDER-1","capture":true,"amount_cents":-5}`,
	} {
		w := doAuthorize(t, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		assert.Contains(t, w.Body.String(), "amount_cents required")
	}
	assert.Zero(t, atomic.LoadInt32(&provider.chargeCalls))
	assert.Zero(t, atomic.LoadInt32(&provider.captureCalls))
}

func TestAuthorizeMissingKeys(t *testing.T) {
	t.Setenv("AFFIRM_PUBLIC_API_KEY", "")
	t.Setenv("AFFIRM_PUBLIC_KEY", "")
	t.Setenv("AFFIRM_PRIVATE_API_KEY", "")
	t.Setenv("AFFIRM_PRIVATE_KEY", "")

	w := doAuthorize(t, `{"checkout_token":"tok","order_id":"ORDER-1","amount_cents":45000}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Missing AFFIRM keys")
}

func TestAuthorizeAndCaptureSuccess(t *testing.T) {
	setKeys(t)
	provider := newFakeProvider(t)

	w := doAuthorize(t, `{"checkout_token":"tok_ok","order_id":"ORDER-1","amount_cents":45000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK      bool            `json:"ok"`
		Charge  json.RawMessage `json:"charge"`
		Capture json.RawMessage `json:"capture"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.JSONEq(t, provider.chargeBody, string(resp.Charge))
	assert.JSONEq(t, provider.captureBody, string(resp.Capture))

	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.chargeCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.captureCalls))
}

func TestAuthorizeWithoutCaptureSkipsCaptureCall(t *testing.T) {
	setKeys(t)
	provider := newFakeProvider(t)

	w := doAuthorize(t, `{"checkout_token":"tok_ok","order_id":"ORDER-1","capture":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.chargeCalls))
	assert.Zero(t, atomic.LoadInt32(&provider.captureCalls))
}

// Provider rejections pass the provider's status through, tagged with the
// failing step.
func TestAuthorizeChargeRejectionPropagates(t *testing.T) {
	setKeys(t)
	provider := newFakeProvider(t)
	provider.chargeStatus = http.StatusUnprocessableEntity
	provider.chargeBody = `{"message":"expired checkout token"}`

	w := doAuthorize(t, `{"checkout_token":"tok_bad","order_id":"ORDER-1","amount_cents":45000}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"step":"charges"`)
	assert.Contains(t, w.Body.String(), "expired checkout token")
	assert.Zero(t, atomic.LoadInt32(&provider.captureCalls), "capture must not run after a failed authorize")
}

func TestAuthorizeCaptureRejectionPropagates(t *testing.T) {
	setKeys(t)
	provider := newFakeProvider(t)
	provider.captureStatus = http.StatusBadRequest
	provider.captureBody = `{"message":"charge already captured"}`

	w := doAuthorize(t, `{"checkout_token":"tok_ok","order_id":"ORDER-1","amount_cents":45000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"step":"capture"`)
	assert.Contains(t, w.Body.String(), "charge already captured")
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.chargeCalls))
}

func TestAuthorizeDiag(t *testing.T) {
	setKeys(t)
	t.Setenv("AFFIRM_ENV", "sandbox")

	w := doAuthorize(t, `{"diag":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_prod":false`)
	assert.Contains(t, w.Body.String(), `"has_affirm_public_key":true`)
}

func TestAuthorizeNonJSONProviderBody(t *testing.T) {
	setKeys(t)
	provider := newFakeProvider(t)
	provider.chargeStatus = http.StatusBadGateway
	provider.chargeBody = `upstream exploded`

	w := doAuthorize(t, `{"checkout_token":"tok","order_id":"ORDER-1","amount_cents":45000}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "upstream exploded")
}
