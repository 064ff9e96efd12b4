package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/onewaymotor/storefront-api/checkout"
	affirmControllers "github.com/onewaymotor/storefront-api/controllers/affirm"
	cartControllers "github.com/onewaymotor/storefront-api/controllers/cart"
	"github.com/onewaymotor/storefront-api/models"
	"github.com/onewaymotor/storefront-api/routes"
	"github.com/onewaymotor/storefront-api/store"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	if err := db.AutoMigrate(&models.Product{}); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "X-API-KEY", cartControllers.CartIDHeader},
		ExposeHeaders:    []string{"Content-Length", cartControllers.CartIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Checkout wiring
	carts := store.NewCartStore()
	loader := checkout.NewLoader(os.Getenv("AFFIRM_ENV"))
	builder := checkout.NewBuilder(checkout.BuilderConfig{
		MerchantName: merchantName(),
		OriginBase:   os.Getenv("SITE_ORIGIN"),
	})
	captureOnAuth := os.Getenv("AFFIRM_CAPTURE") != "false"
	orch := checkout.NewOrchestrator(builder, loader, carts, affirmControllers.TokenAuthorizer{}, captureOnAuth)

	// Setup routes
	routes.SetupRoutes(r, db, carts, orch)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func merchantName() string {
	if name := os.Getenv("MERCHANT_NAME"); name != "" {
		return name
	}
	return "ONE WAY MOTORS"
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}
