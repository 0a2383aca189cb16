package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all API routes on the given engine.
//
// Endpoints take the acting user from the user_id query parameter
// rather than the login token; tying them to JWT claims is a planned
// follow-up (see DESIGN.md).
func SetupRoutes(
	router *gin.Engine,
	authHandler *AuthHandler,
	workoutHandler *WorkoutHandler,
	nutritionHandler *NutritionHandler,
	bodyStatHandler *BodyStatHandler,
	summaryHandler *SummaryHandler,
	syncHandler *SyncHandler,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")

	users := apiGroup.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
		users.GET("/me", authHandler.GetProfile)
		users.PUT("/me", authHandler.UpdateProfile)
		users.DELETE("/me", authHandler.DeleteAccount)
	}

	fitness := apiGroup.Group("/fitness")
	{
		fitness.POST("", workoutHandler.Create)
		fitness.GET("", workoutHandler.List)
		fitness.GET("/recent/:limit", workoutHandler.ListRecent)
		fitness.GET("/:id", workoutHandler.Get)
		fitness.PUT("/:id", workoutHandler.Update)
		fitness.DELETE("/:id", workoutHandler.Delete)
	}

	nutrition := apiGroup.Group("/nutrition")
	{
		nutrition.POST("", nutritionHandler.Create)
		nutrition.GET("", nutritionHandler.List)
		nutrition.GET("/daily/:date", nutritionHandler.ListForDate)
		nutrition.GET("/summary/daily/:date", nutritionHandler.DailySummary)
		nutrition.GET("/:id", nutritionHandler.Get)
		nutrition.PUT("/:id", nutritionHandler.Update)
		nutrition.DELETE("/:id", nutritionHandler.Delete)
	}

	body := apiGroup.Group("/body")
	{
		body.POST("", bodyStatHandler.Create)
		body.GET("", bodyStatHandler.List)
		body.GET("/latest", bodyStatHandler.Latest)
		body.GET("/weight/history", bodyStatHandler.WeightHistory)
		body.GET("/:id", bodyStatHandler.Get)
		body.PUT("/:id", bodyStatHandler.Update)
		body.DELETE("/:id", bodyStatHandler.Delete)
	}

	summary := apiGroup.Group("/summary")
	{
		summary.GET("/daily/:date", summaryHandler.Daily)
		summary.GET("/weekly/:week_start", summaryHandler.Weekly)
		summary.GET("/recent/:days", summaryHandler.Recent)
	}

	analytics := apiGroup.Group("/analytics")
	{
		analytics.GET("/daily", summaryHandler.Daily)
		analytics.GET("/weekly", summaryHandler.Weekly)
		analytics.GET("/streak", summaryHandler.Streak)
		analytics.GET("/progress", summaryHandler.Progress)
	}

	sync := apiGroup.Group("/sync")
	{
		sync.POST("/sync", syncHandler.Sync)
		sync.GET("/sync/status", syncHandler.Status)
	}
}
