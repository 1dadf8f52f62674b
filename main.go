package main

import (
	"log"
	"net/http"

	"prospekt-backend/internal/api"
	"prospekt-backend/internal/config"
	"prospekt-backend/internal/database"
	"prospekt-backend/internal/services/extractor"
	"prospekt-backend/internal/services/prospekt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	if cfg.ExtractorAPIKey == "" {
		log.Println("EXTRACTOR_API_KEY not configured, image extraction disabled")
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.SeedDefaultSupermarkets(db); err != nil {
		log.Fatal("Failed to seed supermarkets:", err)
	}

	// Services
	scanner := prospekt.NewScanner(db, prospekt.NewFetcher())
	extr := extractor.New(cfg.ExtractorAPIKey, cfg.ExtractorBaseURL, cfg.ExtractorModel)

	// Initialize Gin router
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	apiGroup := r.Group("/api/v1")
	handler := api.SetupRoutes(apiGroup, db, scanner, extr)

	// Live scan progress
	r.GET("/ws", handler.ServeWS)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
