package controllers

import (
	"net/http"

	"github.com/JimmyMcBride/nutrition-tracker-be/services"

	"github.com/gin-gonic/gin"
)

const searchResultCap = 10

// GET /fatsecret/get-food/:food_id
//
// Proxies the provider's food record through unchanged.
func GetFood(c *gin.Context) {
	svc := services.NewFatSecretService()

	raw, err := svc.GetFood(c.Request.Context(), c.Param("food_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// GET /fatsecret/search-food/:search_expression
func SearchFood(c *gin.Context) {
	svc := services.NewFatSecretService()

	results, err := svc.SearchFoods(c.Request.Context(), c.Param("search_expression"), searchResultCap)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
