package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/hedlaron/microadventures/config"
	"github.com/hedlaron/microadventures/internal/api/v1/adventure"
	"github.com/hedlaron/microadventures/internal/api/v1/auth"
	userRoutes "github.com/hedlaron/microadventures/internal/api/v1/user"
	"github.com/hedlaron/microadventures/internal/generator"
	"github.com/hedlaron/microadventures/internal/middleware"
	"github.com/hedlaron/microadventures/internal/services"
)

// NewRouter is the composition root: it builds the services, handlers and
// route tree from the shared database and redis handles.
func NewRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *gin.Engine {
	quotaService := services.NewQuotaService(db)
	userService := services.NewUserService(db, redisClient, quotaService)
	denylistService := services.NewDenylistService(redisClient)
	adventureService := services.NewAdventureService(db, redisClient, quotaService, generator.NewClient(cfg))

	authHandler := auth.NewHandler(userService, denylistService, cfg.JWTSecret)
	userHandler := userRoutes.NewHandler(userService, cfg.JWTSecret)
	adventureHandler := adventure.NewHandler(adventureService, quotaService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"}, // Allow frontend origin
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum age for preflight requests
	}))

	authRequired := middleware.AuthMiddleware(cfg.JWTSecret, userService, denylistService)

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1, authHandler, authRequired)

		authorized := v1.Group("/")
		authorized.Use(authRequired)
		{
			userRoutes.RegisterRoutes(authorized, userHandler)
		}

		adventure.RegisterRoutes(v1, authorized, adventureHandler)
	}

	return router
}
