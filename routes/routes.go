package routes

import (
	"healthkidz-backend/controllers"
	"healthkidz-backend/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
	}

	// Protected child routes; everything nutrition-related hangs off a child
	children := r.Group("/children")
	children.Use(middlewares.AuthMiddleware())
	{
		children.POST("", controllers.CreateChild)
		children.GET("", controllers.ListChildren)
		children.GET("/:id", controllers.GetChild)
		children.PUT("/:id", controllers.UpdateChild)
		children.DELETE("/:id", controllers.DeleteChild)

		children.POST("/:id/meals", controllers.LogMeal)
		children.GET("/:id/meals", controllers.ListMeals)
		children.GET("/:id/meals/:mealID", controllers.GetMeal)
		children.PUT("/:id/meals/:mealID", controllers.UpdateMeal)
		children.DELETE("/:id/meals/:mealID", controllers.DeleteMeal)

		children.GET("/:id/targets", controllers.GetTargets)
		children.PUT("/:id/targets/override", controllers.UpsertTargetOverride)
		children.GET("/:id/nutrition", controllers.GetDailyNutrition)

		children.GET("/:id/suggestions", controllers.GetSuggestions)
		children.POST("/:id/suggestions/refresh", controllers.RefreshSuggestions)
		children.POST("/:id/suggestions/more", controllers.MoreSuggestions)
		children.DELETE("/:id/suggestions/:suggestionID", controllers.DeleteSuggestion)
	}

	return r
}
