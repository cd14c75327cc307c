package routes

import (
	"github.com/JimmyMcBride/nutrition-tracker-be/controllers"
	"github.com/JimmyMcBride/nutrition-tracker-be/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Public provider proxy
	fatsecret := r.Group("/fatsecret")
	{
		fatsecret.GET("/get-food/:food_id", controllers.GetFood)
		fatsecret.GET("/search-food/:search_expression", controllers.SearchFood)
	}

	// Legacy path shape kept for the existing frontend
	r.GET("/getfooditem/:foodlogID/user/:user_id", middlewares.AuthMiddleware(), controllers.GetFoodItem)

	// Protected user routes
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/user", controllers.GetProfile)
		api.PUT("/user", controllers.UpdateProfile)

		api.POST("/weight", controllers.AddWeight)
		api.POST("/activity-level", controllers.AddActivityLevel)
		api.POST("/macro-ratios", controllers.AddMacroRatios)
		api.POST("/weight-goal", controllers.AddWeightGoal)
		api.GET("/weight-history", controllers.GetWeightHistory)
		api.GET("/caloric-budget", controllers.GetCaloricBudget)
		api.POST("/recalculate", controllers.Recalculate)

		api.GET("/daily-log", controllers.GetDailyLog)
		api.POST("/food-log", controllers.LogFood)
	}

	return r
}
