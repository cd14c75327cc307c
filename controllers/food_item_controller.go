package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/JimmyMcBride/nutrition-tracker-be/services"

	"github.com/gin-gonic/gin"
)

// GET /getfooditem/:foodlogID/user/:user_id
//
// The :user_id path segment is kept for API compatibility; the effective user
// is always the one the auth middleware resolved into the context. The local
// lookup runs first so a missing log entry never costs a provider call.
func GetFoodItem(c *gin.Context) {
	userID := c.GetUint("userID")

	foodLogID, err := strconv.ParseUint(c.Param("foodlogID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "foodlogID must be numeric"})
		return
	}

	svc := services.NewFoodLogService(services.NewFatSecretService())
	detail, err := svc.GetFoodItemDetail(c.Request.Context(), userID, uint(foodLogID))
	if err != nil {
		var providerErr *services.ProviderError
		if errors.As(err, &providerErr) && detail != nil {
			// Provider enrichment failed but the local record is good;
			// return both the failure and what we have.
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "food_item": detail})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GET /api/daily-log?from=2026-08-01&to=2026-08-31
//
// Bounds accept YYYY-MM-DD or RFC 3339; a date-only "to" covers its whole day.
func GetDailyLog(c *gin.Context) {
	userID := c.GetUint("userID")

	from, ok := parseLogBound(c, c.Query("from"), false)
	if !ok {
		return
	}
	to, ok := parseLogBound(c, c.Query("to"), true)
	if !ok {
		return
	}

	rows, err := services.GetDailyLog(userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// POST /api/food-log
func LogFood(c *gin.Context) {
	userID := c.GetUint("userID")

	var input services.FoodLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	entry, err := services.AddFoodLog(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func parseLogBound(c *gin.Context, raw string, endOfDay bool) (time.Time, bool) {
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query params are required"})
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from/to must be YYYY-MM-DD or RFC 3339"})
		return time.Time{}, false
	}
	if endOfDay {
		// Last instant of the named day, so the bound stays inclusive.
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, true
}
