package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pantryloft/backend/config"
	"github.com/pantryloft/backend/internal/api"
	"github.com/pantryloft/backend/internal/middleware"
	"github.com/pantryloft/backend/internal/service"
)

// SetupRouter configures the application routes. The route strings are
// part of the client contract and must not change. redisClient may be
// nil, in which case the credential endpoints run without rate limiting.
func SetupRouter(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	uploadStore service.UploadStore,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))

	authService := service.NewAuthService(db, cfg.JWTSecret)
	authHandler := api.NewAuthHandler(authService)
	recipeHandler := api.NewRecipeHandler(service.NewRecipeService(db))
	uploadHandler := api.NewUploadHandler(uploadStore)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Credential endpoints, rate limited per client IP when Redis is up.
	credentials := router.Group("")
	if redisClient != nil {
		limiter := middleware.NewCredentialRateLimiter(redisClient)
		credentials.Use(limiter.RateLimitMiddleware())
	}
	{
		credentials.POST("/signup", authHandler.Signup)
		credentials.POST("/login", authHandler.Login)
	}

	// Recipe endpoints require a verified bearer token.
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(authService))
	{
		recipes.GET("", recipeHandler.ListRecipes)
		recipes.GET("/:id", recipeHandler.GetRecipe)
		recipes.POST("", recipeHandler.CreateRecipe)
		recipes.PUT("/:id", recipeHandler.UpdateRecipe)
	}

	router.POST("/upload", uploadHandler.Upload)
	if _, ok := uploadStore.(*service.LocalStore); ok {
		router.Static("/uploads", cfg.UploadDir)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return router
}
