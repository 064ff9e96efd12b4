package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/onewaymotor/storefront-api/controllers/cart"
	"github.com/onewaymotor/storefront-api/store"
)

// SetupCartRoutes registers the shopper cart endpoints. Carts live in memory
// keyed by the X-Cart-ID header.
func SetupCartRoutes(r *gin.Engine, carts *store.CartStore) {
	cart := r.Group("/cart")
	{
		cart.GET("", cartControllers.GetCart(carts))
		cart.DELETE("", cartControllers.ClearCart(carts))
		cart.POST("/items", cartControllers.AddCartItem(carts))
		cart.PUT("/items/:item_id", cartControllers.SetCartItemQuantity(carts))
		cart.DELETE("/items/:item_id", cartControllers.DeleteCartItem(carts))
		cart.POST("/close", cartControllers.CloseCart(carts))
	}
}
