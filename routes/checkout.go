package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/onewaymotor/storefront-api/checkout"
	affirmControllers "github.com/onewaymotor/storefront-api/controllers/affirm"
	cardControllers "github.com/onewaymotor/storefront-api/controllers/card"
	checkoutControllers "github.com/onewaymotor/storefront-api/controllers/checkout"
)

// SetupCheckoutRoutes registers the financing checkout flow, the server-side
// authorize/capture proxy, and the hosted card checkout.
func SetupCheckoutRoutes(r *gin.Engine, orch *checkout.Orchestrator) {
	affirm := r.Group("/checkout/affirm")
	{
		affirm.POST("", checkoutControllers.Begin(orch))
		affirm.POST("/result", checkoutControllers.Result(orch))
		affirm.POST("/retry", checkoutControllers.Retry(orch))
	}

	payment := r.Group("/payment")
	{
		payment.POST("/affirm/authorize", affirmControllers.AuthorizeHandler)
		payment.POST("/card/checkout", cardControllers.CheckoutHandler)
	}
}
