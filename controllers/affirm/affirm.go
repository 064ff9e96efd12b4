package affirmControllers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	prodAPIBase    = "https://api.affirm.com/api/v2"
	sandboxAPIBase = "https://api.sandbox.affirm.com/api/v2"
)

// By default charges are captured right after authorization; the request
// body can override per call.
const captureDefault = true

type affirmConfig struct {
	baseURL    string
	publicKey  string
	privateKey string
	isProd     bool
}

// getAffirmConfig reads provider settings from the environment on every call.
// AFFIRM_ENV accepts "prod"/"production"; anything else targets sandbox.
// AFFIRM_API_BASE_URL overrides the endpoint (used by tests).
func getAffirmConfig() (affirmConfig, error) {
	envRaw := strings.ToLower(os.Getenv("AFFIRM_ENV"))
	isProd := envRaw == "prod" || envRaw == "production"

	base := os.Getenv("AFFIRM_API_BASE_URL")
	if base == "" {
		if isProd {
			base = prodAPIBase
		} else {
			base = sandboxAPIBase
		}
	}

	pub := os.Getenv("AFFIRM_PUBLIC_API_KEY")
	if pub == "" {
		pub = os.Getenv("AFFIRM_PUBLIC_KEY")
	}
	priv := os.Getenv("AFFIRM_PRIVATE_API_KEY")
	if priv == "" {
		priv = os.Getenv("AFFIRM_PRIVATE_KEY")
	}
	if pub == "" || priv == "" {
		return affirmConfig{}, fmt.Errorf("affirm keys missing")
	}

	return affirmConfig{baseURL: base, publicKey: pub, privateKey: priv, isProd: isProd}, nil
}

// Client talks to the financing provider's server API with server-held
// credentials. It is stateless: each call stands alone and there is no
// idempotency key, so a client retry after a network timeout can
// double-authorize. That gap is inherited from the provider flow and is
// deliberately not papered over here.
type Client struct {
	cfg  affirmConfig
	http *http.Client
}

func NewClient() (*Client, error) {
	cfg, err := getAffirmConfig()
	if err != nil {
		return nil, err
	}
	return &Client{cfg: cfg, http: &http.Client{}}, nil
}

// ChargeResult carries the provider's raw response body alongside the
// decoded charge id and HTTP status.
type ChargeResult struct {
	ID     string
	Status int
	OK     bool
	Body   json.RawMessage
}

func (c *Client) authHeader() string {
	// Basic auth: user = public key, password = private key.
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.cfg.publicKey+":"+c.cfg.privateKey))
}

func (c *Client) post(ctx context.Context, path string, body any) (*ChargeResult, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Affirm: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	result := &ChargeResult{
		Status: resp.StatusCode,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Body:   decodeBody(raw),
	}

	var decoded struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(result.Body, &decoded); err == nil {
		result.ID = decoded.ID
	}
	return result, nil
}

// decodeBody keeps valid JSON as-is and wraps anything else so the caller
// always gets a JSON value back.
func decodeBody(raw []byte) json.RawMessage {
	if json.Valid(raw) && len(bytes.TrimSpace(raw)) > 0 {
		return json.RawMessage(raw)
	}
	wrapped, _ := json.Marshal(map[string]string{"raw": string(raw)})
	return json.RawMessage(wrapped)
}

// CreateCharge authorizes: it redeems the single-use checkout token into a
// charge.
func (c *Client) CreateCharge(ctx context.Context, checkoutToken string) (*ChargeResult, error) {
	return c.post(ctx, "/charges", map[string]string{"checkout_token": checkoutToken})
}

// CaptureCharge finalizes a previously authorized charge.
func (c *Client) CaptureCharge(ctx context.Context, chargeID, orderID string, amountCents int64, carrier, confirmation string) (*ChargeResult, error) {
	body := map[string]any{
		"order_id": orderID,
		"amount":   amountCents,
	}
	if carrier != "" {
		body["shipping_carrier"] = carrier
	}
	if confirmation != "" {
		body["shipping_confirmation"] = confirmation
	}
	return c.post(ctx, "/charges/"+url.PathEscape(chargeID)+"/capture", body)
}

// TokenAuthorizer adapts the per-request-configured client to the checkout
// orchestrator's Authorizer. Config is read from the environment on each
// call, the same way the proxy handler does it.
type TokenAuthorizer struct{}

func (TokenAuthorizer) Authorize(ctx context.Context, checkoutToken, orderID string, amountCents int64, capture bool) error {
	client, err := NewClient()
	if err != nil {
		return err
	}

	charge, err := client.CreateCharge(ctx, checkoutToken)
	if err != nil {
		return err
	}
	if !charge.OK {
		return fmt.Errorf("affirm charges step failed (%d): %s", charge.Status, charge.Body)
	}

	if capture {
		captured, err := client.CaptureCharge(ctx, charge.ID, orderID, amountCents, "", "")
		if err != nil {
			return err
		}
		if !captured.OK {
			return fmt.Errorf("affirm capture step failed (%d): %s", captured.Status, captured.Body)
		}
	}
	return nil
}

// AuthorizeRequest is the proxy's wire format.
type AuthorizeRequest struct {
	Diag                 bool   `json:"diag"`
	CheckoutToken        string `json:"checkout_token"`
	OrderID              string `json:"order_id"`
	AmountCents          *int64 `json:"amount_cents"`
	ShippingCarrier      string `json:"shipping_carrier"`
	ShippingConfirmation string `json:"shipping_confirmation"`
	Capture              *bool  `json:"capture"`
}

// AuthorizeHandler creates a charge from a client-confirmed checkout token
// and, unless told otherwise, captures it. Failures at either provider step
// propagate the provider's status code with a "step" marker so the caller
// can tell authorize-stage from capture-stage rejections.
func AuthorizeHandler(c *gin.Context) {
	var input AuthorizeRequest
	if err := c.ShouldBindJSON(&input); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	// Quick diagnostics: reports configuration without touching the provider.
	if input.Diag {
		diagHandler(c)
		return
	}

	if input.CheckoutToken == "" || input.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing checkout_token or order_id"})
		return
	}

	shouldCapture := captureDefault
	if input.Capture != nil {
		shouldCapture = *input.Capture
	}
	if shouldCapture && (input.AmountCents == nil || *input.AmountCents <= 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount_cents required for capture=true"})
		return
	}

	client, err := NewClient()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing AFFIRM keys"})
		return
	}

	charge, err := client.CreateCharge(c.Request.Context(), input.CheckoutToken)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"step": "charges", "error": err.Error()})
		return
	}
	if !charge.OK {
		c.JSON(charge.Status, gin.H{"step": "charges", "error": charge.Body})
		return
	}

	var captureBody json.RawMessage
	if shouldCapture {
		captured, err := client.CaptureCharge(
			c.Request.Context(),
			charge.ID,
			input.OrderID,
			*input.AmountCents,
			input.ShippingCarrier,
			input.ShippingConfirmation,
		)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"step": "capture", "error": err.Error()})
			return
		}
		if !captured.OK {
			c.JSON(captured.Status, gin.H{"step": "capture", "error": captured.Body})
			return
		}
		captureBody = captured.Body
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "charge": charge.Body, "capture": captureBody})
}

func diagHandler(c *gin.Context) {
	envRaw := strings.ToLower(os.Getenv("AFFIRM_ENV"))
	isProd := envRaw == "prod" || envRaw == "production"
	base := sandboxAPIBase
	if isProd {
		base = prodAPIBase
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"diag": gin.H{
			"env":       envRaw,
			"is_prod":   isProd,
			"base_url":  base,
			"goVersion": runtime.Version(),
			"flags": gin.H{
				"has_affirm_public_key":  os.Getenv("AFFIRM_PUBLIC_API_KEY") != "" || os.Getenv("AFFIRM_PUBLIC_KEY") != "",
				"has_affirm_private_key": os.Getenv("AFFIRM_PRIVATE_API_KEY") != "" || os.Getenv("AFFIRM_PRIVATE_KEY") != "",
			},
		},
	})
}
