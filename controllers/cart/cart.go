package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/onewaymotor/storefront-api/models"
	"github.com/onewaymotor/storefront-api/store"
)

// CartIDHeader carries the shopper's cart id. The server mints one when the
// client does not send it, and always echoes it back so the client can keep
// using the same cart.
const CartIDHeader = "X-Cart-ID"

func cartID(c *gin.Context) string {
	id := c.GetHeader(CartIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Header(CartIDHeader, id)
	return id
}

func cartResponse(c *gin.Context, status int, id string, view store.CartView) {
	c.JSON(status, gin.H{"cart_id": id, "cart": view})
}

type CartItemInput struct {
	ID       string  `json:"id" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"gte=0"`
	Quantity int     `json:"qty" binding:"required,min=1"`
	SKU      string  `json:"sku"`
	Image    string  `json:"image"`
	URL      string  `json:"url"`
}

// GET /cart
func GetCart(s *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := cartID(c)
		cartResponse(c, http.StatusOK, id, s.View(id))
	}
}

// POST /cart/items
func AddCartItem(s *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := cartID(c)

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		s.AddItem(id, models.CartLineItem{
			ID:       input.ID,
			Name:     input.Name,
			Price:    input.Price,
			Quantity: input.Quantity,
			SKU:      input.SKU,
			Image:    input.Image,
			URL:      input.URL,
		})
		cartResponse(c, http.StatusCreated, id, s.View(id))
	}
}

// PUT /cart/items/:item_id
func SetCartItemQuantity(s *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := cartID(c)
		itemID := c.Param("item_id")

		var input struct {
			// Pointer so an explicit zero (meaning "remove") binds.
			Quantity *int `json:"qty" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		s.SetQuantity(id, itemID, *input.Quantity)
		cartResponse(c, http.StatusOK, id, s.View(id))
	}
}

// DELETE /cart/items/:item_id
func DeleteCartItem(s *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := cartID(c)
		s.RemoveItem(id, c.Param("item_id"))
		cartResponse(c, http.StatusOK, id, s.View(id))
	}
}

// DELETE /cart
func ClearCart(s *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := cartID(c)
		s.Clear(id)
		c.JSON(http.StatusOK, gin.H{"cart_id": id, "message": "Cart cleared"})
	}
}

// POST /cart/close
func CloseCart(s *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := cartID(c)
		s.Close(id)
		cartResponse(c, http.StatusOK, id, s.View(id))
	}
}
