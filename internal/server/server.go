package server

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	_ "promotions-api/docs" // generated swagger docs
	"promotions-api/internal/auth"
	"promotions-api/internal/handlers"
	"promotions-api/internal/logger"
	"promotions-api/internal/models"
	"promotions-api/internal/repository"
)

// Handler Definitions
var (
	promotionHandler *handlers.PromotionHandler
	healthHandler    *handlers.HealthHandler

	// Database
	database *gorm.DB
)

// InitializeHandlers connects to the store and builds the handler graph.
func InitializeHandlers() {
	// Get database connection string from environment
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		logger.Fatal("Unable to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(&models.Promotion{}); err != nil {
		logger.Fatal("Unable to migrate database schema", zap.Error(err))
	}

	database = db
	promotionRepository := repository.NewPromotionRepository(database)
	commonServices := handlers.NewCommonServices(promotionRepository)

	promotionHandler = handlers.NewPromotionHandler(commonServices)
	healthHandler = handlers.NewHealthHandler()
}

// InitializeRoutes wires middleware and the route table onto the router.
func InitializeRoutes(router *gin.Engine) {
	// Configure and apply CORS middleware
	router.Use(configureCORS())

	// Tag each request so log lines can be correlated
	router.Use(handlers.RequestID())

	// if we are not in production, log the request body
	if os.Getenv("GIN_MODE") != "release" {
		router.Use(handlers.LogRequest())
	}

	// Add Swagger endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check and service index
	router.GET("/health", healthHandler.Health)
	router.GET("/", handlers.Index)

	// Promotions, gated by API key when one is configured
	promotions := router.Group("/promotions", auth.APIKeyAuth())
	{
		promotions.GET("", promotionHandler.ListPromotions)
		promotions.POST("", promotionHandler.CreatePromotion)
		promotions.GET("/:promotion_id", promotionHandler.GetPromotion)
		promotions.PUT("/:promotion_id", promotionHandler.UpdatePromotion)
		promotions.DELETE("/:promotion_id", promotionHandler.DeletePromotion)
		promotions.PUT("/:promotion_id/activate", promotionHandler.ActivatePromotion)
		promotions.PUT("/:promotion_id/deactivate", promotionHandler.DeactivatePromotion)
	}
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		// Default to localhost if not set
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	// Get allowed methods from environment variable
	methodsEnv := os.Getenv("CORS_ALLOWED_METHODS")
	if methodsEnv == "" {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	} else {
		methods := strings.Split(methodsEnv, ",")
		for i, method := range methods {
			methods[i] = strings.TrimSpace(method)
		}
		corsConfig.AllowMethods = methods
	}

	// Get allowed headers from environment variable
	headersEnv := os.Getenv("CORS_ALLOWED_HEADERS")
	if headersEnv == "" {
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", "X-Request-ID"}
	} else {
		headers := strings.Split(headersEnv, ",")
		for i, header := range headers {
			headers[i] = strings.TrimSpace(header)
		}
		corsConfig.AllowHeaders = headers
	}

	// Set credentials allowed
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}
