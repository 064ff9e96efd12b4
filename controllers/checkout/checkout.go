package checkoutControllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onewaymotor/storefront-api/checkout"
	cartControllers "github.com/onewaymotor/storefront-api/controllers/cart"
	"github.com/onewaymotor/storefront-api/i18n"
	"github.com/onewaymotor/storefront-api/models"
)

func lang(c *gin.Context) i18n.Lang {
	if q := c.Query("lang"); q != "" {
		return i18n.Parse(q)
	}
	return i18n.Parse(c.GetHeader("Accept-Language"))
}

func requireCartID(c *gin.Context) (string, bool) {
	id := c.GetHeader(cartControllers.CartIDHeader)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Cart-ID header is required"})
		return "", false
	}
	c.Header(cartControllers.CartIDHeader, id)
	return id, true
}

// BeginRequest carries the optional checkout-time amounts and buyer block.
// An empty body is fine: no shipping, no tax, no pre-filled customer.
type BeginRequest struct {
	Totals   models.Totals    `json:"totals"`
	Customer *models.Customer `json:"customer"`
}

// POST /checkout/affirm
//
// Validates the cart and opens a financing attempt. The response payload is
// what the client opens the provider modal with; the provider's verdict
// comes back through the result endpoint.
func Begin(o *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := requireCartID(c)
		if !ok {
			return
		}

		var input BeginRequest
		if err := c.ShouldBindJSON(&input); err != nil && err != io.EOF {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		res, err := o.Begin(c.Request.Context(), cartID, input.Totals, input.Customer)
		if err != nil {
			status, key := beginError(err)
			c.JSON(status, gin.H{"error": err.Error(), "message": i18n.T(lang(c), key)})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func beginError(err error) (int, string) {
	switch {
	case errors.Is(err, checkout.ErrCheckoutInFlight):
		return http.StatusConflict, "checkout.in_flight"
	case errors.Is(err, checkout.ErrProviderUnavailable):
		return http.StatusServiceUnavailable, "checkout.not_ready"
	case errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusBadRequest, "checkout.empty_cart"
	case errors.Is(err, checkout.ErrBelowMinimum):
		return http.StatusBadRequest, "checkout.below_minimum"
	default:
		return http.StatusInternalServerError, "checkout.failed"
	}
}

// ResultRequest reports which provider callback fired for the open attempt.
type ResultRequest struct {
	Event         string `json:"event" binding:"required"` // success | fail | validation_error | close
	CheckoutToken string `json:"checkout_token"`
}

// POST /checkout/affirm/result
func Result(o *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := requireCartID(c)
		if !ok {
			return
		}

		var input ResultRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		var (
			sol *checkout.Resolution
			err error
		)
		switch input.Event {
		case "success":
			sol, err = o.HandleSuccess(c.Request.Context(), cartID, input.CheckoutToken)
		case "fail":
			sol, err = o.HandleFail(cartID)
		case "validation_error":
			sol, err = o.HandleValidationError(cartID)
		case "close":
			sol, err = o.HandleClose(cartID)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event: " + input.Event})
			return
		}

		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrMissingToken):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, checkout.ErrNoAttempt):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "message": i18n.T(lang(c), "checkout.no_attempt")})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"outcome":   sol.Outcome,
			"retryable": sol.Retryable,
			"message":   i18n.T(lang(c), sol.MessageKey),
		})
	}
}

// POST /checkout/affirm/retry
//
// Re-opens the retained payload of a failed or cancelled attempt. One shot.
func Retry(o *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := requireCartID(c)
		if !ok {
			return
		}

		res, err := o.Retry(cartID)
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrNoAttempt):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "message": i18n.T(lang(c), "checkout.no_attempt")})
			case errors.Is(err, checkout.ErrNotRetryable):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "message": i18n.T(lang(c), "checkout.retry_failed")})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
