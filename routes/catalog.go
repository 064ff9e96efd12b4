package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/onewaymotor/storefront-api/controllers/product"
	"github.com/onewaymotor/storefront-api/middleware"
)

// SetupCatalogRoutes registers the public catalog reads and the API-key
// protected admin writes.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))

	admin := r.Group("/admin", middleware.ValidateAPIKey)
	{
		admin.POST("/products", productcontroller.CreateProduct(db))
		admin.PUT("/products/:id", productcontroller.UpdateProduct(db))
		admin.DELETE("/products/:id", productcontroller.DeleteProduct(db))
	}
}
