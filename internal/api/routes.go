package api

import (
	"net/http"
	"strings"
	"time"

	"fitbuzz/fitness-api/internal/config"
	"fitbuzz/fitness-api/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all API routes on the given router.
func SetupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
	nutritionService service.NutritionService,
) {
	authHandler := NewAuthHandler(authService, cfg.JWT.Expiration, cfg.IsProduction())
	exerciseHandler := NewExerciseHandler(exerciseService)
	workoutHandler := NewWorkoutHandler(workoutService, cfg.Server.BaseURL)
	nutritionHandler := NewNutritionHandler(nutritionService)

	authMiddleware := AuthMiddleware(authService)

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	apiLimiter := NewIPRateLimiter(apiRateBurst, rateLimitWindow)
	authLimiter := NewIPRateLimiter(authRateBurst, rateLimitWindow)

	api := router.Group("/api")
	api.Use(RateLimitMiddleware(apiLimiter, false))
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
		})

		authGroup := api.Group("/auth")
		authGroup.Use(RateLimitMiddleware(authLimiter, true))
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.POST("/refresh", authHandler.Refresh)

			protected := authGroup.Group("")
			protected.Use(authMiddleware)
			{
				protected.GET("/me", authHandler.GetMe)
				protected.PUT("/me", authHandler.UpdateMe)
				protected.PUT("/change-password", authHandler.ChangePassword)
				protected.DELETE("/delete-account", authHandler.DeleteAccount)
				protected.GET("/stats", authHandler.Stats)
				protected.POST("/upload-avatar", authHandler.UploadAvatar)
				protected.GET("/admin", AdminMiddleware(), authHandler.Admin)
			}
		}

		exercises := api.Group("/exercises")
		exercises.Use(authMiddleware)
		{
			exercises.GET("", exerciseHandler.List)
			exercises.POST("", exerciseHandler.Create)
			exercises.GET("/:id", exerciseHandler.Get)
			exercises.PUT("/:id", exerciseHandler.Update)
			exercises.DELETE("/:id", exerciseHandler.Delete)
		}

		workouts := api.Group("/workouts")
		workouts.Use(authMiddleware)
		{
			workouts.GET("", workoutHandler.List)
			workouts.POST("", workoutHandler.Create)
			workouts.GET("/:id", workoutHandler.Get)
			workouts.PUT("/:id", workoutHandler.Update)
			workouts.DELETE("/:id", workoutHandler.Delete)
			workouts.GET("/:id/share", workoutHandler.Share)
		}

		// Shared workouts are reachable without authentication.
		api.GET("/share/workouts/:id", workoutHandler.GetShared)

		nutrition := api.Group("/nutrition")
		nutrition.Use(authMiddleware)
		{
			nutrition.GET("", nutritionHandler.List)
			nutrition.POST("", nutritionHandler.Create)
			nutrition.PUT("/:id", nutritionHandler.Update)
			nutrition.DELETE("/:id", nutritionHandler.Delete)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
			return
		}
		c.Status(http.StatusNotFound)
	})
}
