package cardControllers

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	"github.com/onewaymotor/storefront-api/pricing"
)

const (
	maxItemNameLen = 120
	defaultOrigin  = "https://onewaymotor.com"
)

// createSession is swapped out in tests.
var createSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

type cardItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

type checkoutRequest struct {
	Items  []cardItem `json:"items"`
	Origin string     `json:"origin"`
}

// CheckoutHandler builds a hosted card-checkout session from the cart lines
// and returns the redirect URL. Control leaves our pages entirely once the
// client follows it; success and cancel land back on origin with a marker
// query.
func CheckoutHandler(c *gin.Context) {
	secret := os.Getenv("STRIPE_SECRET_KEY")
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing STRIPE_SECRET_KEY env var"})
		return
	}

	var input checkoutRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	if len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items array required"})
		return
	}

	origin := input.Origin
	if !strings.HasPrefix(origin, "http") {
		origin = os.Getenv("SITE_ORIGIN")
		if origin == "" {
			origin = defaultOrigin
		}
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(input.Items))
	for i, it := range input.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			name = fmt.Sprintf("Item %d", i+1)
		}
		if len(name) > maxItemNameLen {
			name = name[:maxItemNameLen]
		}

		qty := it.Qty
		if qty < 1 {
			qty = 1
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("usd"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(name),
				},
				UnitAmount: stripe.Int64(pricing.ToCents(it.Price)),
			},
			Quantity: stripe.Int64(int64(qty)),
		})
	}

	stripe.Key = secret
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(origin + "/?card=success"),
		CancelURL:          stripe.String(origin + "/?card=cancel"),
	}

	sess, err := createSession(params)
	if err != nil {
		msg := err.Error()
		var code string
		if stripeErr, ok := err.(*stripe.Error); ok {
			if stripeErr.Msg != "" {
				msg = stripeErr.Msg
			}
			code = string(stripeErr.Code)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "code": code})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "url": sess.URL})
}
