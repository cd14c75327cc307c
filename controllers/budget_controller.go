package controllers

import (
	"net/http"
	"time"

	"github.com/JimmyMcBride/nutrition-tracker-be/services"

	"github.com/gin-gonic/gin"
)

// POST /api/weight  { "actual_weight_kg": 82.5, "applicable_date": "2026-08-30" }
func AddWeight(c *gin.Context) {
	userID := c.GetUint("userID")

	var body struct {
		ActualWeightKg float64 `json:"actual_weight_kg" binding:"required"`
		ApplicableDate string  `json:"applicable_date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "actual_weight_kg is required"})
		return
	}
	date, ok := parseOptionalDate(c, body.ApplicableDate)
	if !ok {
		return
	}

	entry, recalc, err := services.AddCurrentWeight(userID, body.ActualWeightKg, date)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"entry": entry}
	attachRecalc(resp, recalc)
	c.JSON(http.StatusCreated, resp)
}

// POST /api/activity-level  { "activity_level": "moderate" }
func AddActivityLevel(c *gin.Context) {
	userID := c.GetUint("userID")

	var body struct {
		ActivityLevel  string `json:"activity_level" binding:"required"`
		ApplicableDate string `json:"applicable_date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity_level is required"})
		return
	}
	date, ok := parseOptionalDate(c, body.ApplicableDate)
	if !ok {
		return
	}

	entry, recalc, err := services.AddActivityLevel(userID, body.ActivityLevel, date)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"entry": entry}
	attachRecalc(resp, recalc)
	c.JSON(http.StatusCreated, resp)
}

// POST /api/macro-ratios  { "fat_ratio": 0.3, "protein_ratio": 0.3, "carb_ratio": 0.4 }
func AddMacroRatios(c *gin.Context) {
	userID := c.GetUint("userID")

	var body struct {
		FatRatio       float64 `json:"fat_ratio" binding:"required"`
		ProteinRatio   float64 `json:"protein_ratio" binding:"required"`
		CarbRatio      float64 `json:"carb_ratio" binding:"required"`
		ApplicableDate string  `json:"applicable_date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fat_ratio, protein_ratio and carb_ratio are required"})
		return
	}
	date, ok := parseOptionalDate(c, body.ApplicableDate)
	if !ok {
		return
	}

	entry, err := services.AddMacroRatios(userID, body.FatRatio, body.ProteinRatio, body.CarbRatio, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// POST /api/weight-goal  { "goal_weekly_weight_change_rate": -0.5, "goal_weight_kg": 75 }
func AddWeightGoal(c *gin.Context) {
	userID := c.GetUint("userID")

	var body struct {
		WeeklyChangeKg float64 `json:"goal_weekly_weight_change_rate" binding:"required"`
		GoalWeightKg   float64 `json:"goal_weight_kg" binding:"required"`
		ApplicableDate string  `json:"applicable_date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal_weekly_weight_change_rate and goal_weight_kg are required"})
		return
	}
	date, ok := parseOptionalDate(c, body.ApplicableDate)
	if !ok {
		return
	}

	entry, err := services.AddWeightGoal(userID, body.WeeklyChangeKg, body.GoalWeightKg, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// GET /api/weight-history
//
// The full weight series in effective-date order, for progress charting.
func GetWeightHistory(c *gin.Context) {
	userID := c.GetUint("userID")

	history, err := services.GetWeightHistory(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// GET /api/caloric-budget
func GetCaloricBudget(c *gin.Context) {
	userID := c.GetUint("userID")

	budget, err := services.GetCurrentBudget(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

// POST /api/recalculate
//
// Manual trigger; unlike the mutation paths, an incomplete profile is a hard
// 422 here because recomputing was the whole point of the request.
func Recalculate(c *gin.Context) {
	userID := c.GetUint("userID")

	entry, err := services.RecalculateBudget(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"caloric_budget": entry})
}

// parseOptionalDate resolves an optional YYYY-MM-DD field, writing the 400
// itself when the value is malformed. Zero time means "today".
func parseOptionalDate(c *gin.Context, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "applicable_date must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}
