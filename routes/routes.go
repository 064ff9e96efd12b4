package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/onewaymotor/storefront-api/checkout"
	"github.com/onewaymotor/storefront-api/store"
)

// SetupRoutes is the single entry point that wires up the catalog, cart, and
// payment route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, carts *store.CartStore, orch *checkout.Orchestrator) {
	SetupCatalogRoutes(r, db)
	SetupCartRoutes(r, carts)
	SetupCheckoutRoutes(r, orch)
}
