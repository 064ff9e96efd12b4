package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/onewaymotor/storefront-api/models"
)

type productInput struct {
	Name         string  `json:"name" binding:"required"`
	SKU          string  `json:"sku"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	RegularPrice float64 `json:"regular_price"`
	Condition    string  `json:"condition"`
	Year         int     `json:"year"`
	Engine       string  `json:"engine"`
	Image        string  `json:"image"`
	Featured     bool    `json:"featured"`
	Stock        int     `json:"stock"`
}

// CreateProduct adds a vehicle to the catalog.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input productInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		condition := strings.ToLower(strings.TrimSpace(input.Condition))
		if condition == "" {
			condition = "new"
		}
		if condition != "new" && condition != "used" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "condition must be new or used"})
			return
		}

		product := models.Product{
			Name:         input.Name,
			SKU:          input.SKU,
			Description:  input.Description,
			Price:        input.Price,
			RegularPrice: input.RegularPrice,
			Condition:    condition,
			Year:         input.Year,
			Engine:       input.Engine,
			Image:        input.Image,
			Featured:     input.Featured,
			Stock:        input.Stock,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
