package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/trungvu222/youth-handbook-sub003/database"
	"github.com/trungvu222/youth-handbook-sub003/routes"
	"github.com/trungvu222/youth-handbook-sub003/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	// Connect to database
	database.Connect()

	// Auto-migrate models
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("Failed to auto-migrate: %v", err)
	}

	// Initialize Gin
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{envOr("CORS_ORIGIN", "http://localhost:3000")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Register routes
	routes.SetupRoutes(router)

	// Periodically close out activities whose end time has passed
	go func() {
		for {
			time.Sleep(5 * time.Minute)
			services.CompleteExpiredActivities(database.DB)
		}
	}()

	addr := "0.0.0.0:" + envOr("PORT", "8080")
	log.Println("Server running on", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
