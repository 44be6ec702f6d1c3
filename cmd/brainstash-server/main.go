package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brainstash/brainstash/pkg/brainstash/auth"
	"github.com/brainstash/brainstash/pkg/brainstash/brain"
	"github.com/brainstash/brainstash/pkg/brainstash/content"
	"github.com/brainstash/brainstash/pkg/brainstash/database"
	"github.com/brainstash/brainstash/pkg/brainstash/models"
	"github.com/brainstash/brainstash/pkg/brainstash/preview"
	"github.com/brainstash/brainstash/pkg/brainstash/tags"
)

// requireEnv fetches a required configuration variable, exiting the
// process if it is absent
func requireEnv(name string) string {
	value := os.Getenv(name)
	if value == "" {
		log.Fatalf("Fatal error: %s environment variable is not defined", name)
	}
	return value
}

func main() {
	// Required configuration; the process refuses to start without it
	requireEnv("BRAINSTASH_JWT_SECRET")
	jwtExpiry := requireEnv("BRAINSTASH_JWT_EXPIRY")
	dbPath := requireEnv("BRAINSTASH_DB_PATH")
	allowedOrigin := requireEnv("BRAINSTASH_ALLOWED_ORIGIN")

	if _, err := time.ParseDuration(jwtExpiry); err != nil {
		log.Fatalf("Fatal error: BRAINSTASH_JWT_EXPIRY is not a valid duration: %v", err)
	}

	// Connect to database
	if err := database.Connect(dbPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	r := setupRouter(database.GetDB(), allowedOrigin)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting brainstash server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires all handlers under /api/v1
func setupRouter(db *gorm.DB, allowedOrigin string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Liveness endpoints
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running!")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	// Public routes
	authHandler := auth.NewHandler(db)
	authHandler.RegisterRoutes(api)

	brainHandler := brain.NewHandler(db)
	brainHandler.RegisterPublicRoutes(api)

	// Protected routes (bearer token required)
	protected := api.Group("", auth.AuthMiddleware())

	contentHandler := content.NewHandler(db)
	contentHandler.RegisterRoutes(protected)

	tagsHandler := tags.NewHandler(db)
	tagsHandler.RegisterRoutes(protected)

	brainHandler.RegisterRoutes(protected)

	previewHandler := preview.NewHandler()
	previewHandler.RegisterRoutes(protected)

	return r
}
