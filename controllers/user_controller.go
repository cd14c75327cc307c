package controllers

import (
	"net/http"

	"github.com/JimmyMcBride/nutrition-tracker-be/services"

	"github.com/gin-gonic/gin"
)

// GET /api/user
func GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	profile, err := services.GetUserProfile(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /api/user
//
// A profile change can shift the caloric budget, so the update triggers a
// recalculation. The update succeeds even when the recalculation cannot run;
// the outcome rides along in the response either way.
func UpdateProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	user, recalc, err := services.UpdateUserProfile(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"user": gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"height_cm": user.HeightCm,
		"sex":       user.Sex,
		"dob":       user.DOB.Format("2006-01-02"),
	}}
	attachRecalc(resp, recalc)
	c.JSON(http.StatusOK, resp)
}

func attachRecalc(resp gin.H, recalc services.RecalcOutcome) {
	if recalc.Budget != nil {
		resp["caloric_budget"] = recalc.Budget
	} else if recalc.Err != nil {
		resp["recalculation_warning"] = recalc.Err.Error()
	}
}
