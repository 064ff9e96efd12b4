package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/onewaymotor/storefront-api/models"
)

type productUpdateInput struct {
	Name         *string  `json:"name"`
	SKU          *string  `json:"sku"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	RegularPrice *float64 `json:"regular_price"`
	Condition    *string  `json:"condition"`
	Year         *int     `json:"year"`
	Engine       *string  `json:"engine"`
	Image        *string  `json:"image"`
	Featured     *bool    `json:"featured"`
	Stock        *int     `json:"stock"`
}

// UpdateProduct patches an existing catalog vehicle by ID. Only fields present
// in the body change.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param("id")
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input productUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.SKU != nil {
			product.SKU = *input.SKU
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			if *input.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
				return
			}
			product.Price = *input.Price
		}
		if input.RegularPrice != nil {
			product.RegularPrice = *input.RegularPrice
		}
		if input.Condition != nil {
			condition := strings.ToLower(strings.TrimSpace(*input.Condition))
			if condition != "new" && condition != "used" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "condition must be new or used"})
				return
			}
			product.Condition = condition
		}
		if input.Year != nil {
			product.Year = *input.Year
		}
		if input.Engine != nil {
			product.Engine = *input.Engine
		}
		if input.Image != nil {
			product.Image = *input.Image
		}
		if input.Featured != nil {
			product.Featured = *input.Featured
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
