package main

import (
	"os"

	"github.com/JimmyMcBride/nutrition-tracker-be/config"
	"github.com/JimmyMcBride/nutrition-tracker-be/routes"
)

func main() {
	config.InitDB()
	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	r.Run(":" + port)
}
