package services

import (
	"errors"
	"time"

	"github.com/JimmyMcBride/nutrition-tracker-be/config"
	"github.com/JimmyMcBride/nutrition-tracker-be/models"
	"github.com/JimmyMcBride/nutrition-tracker-be/utils"

	"gorm.io/gorm"
)

type ProfileInput struct {
	HeightCm float64 `json:"height_cm"`
	Sex      string  `json:"sex"`
	DOB      string  `json:"dob"` // YYYY-MM-DD
}

// GetUserProfile shapes the profile for the API, enriched with the latest
// weight and a BMI reading when both height and weight are known.
func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	err := config.DB.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: "load user", Err: err}
	}

	snap, err := BudgetSnapshotFor(userID)
	if err != nil {
		return nil, err
	}

	out := map[string]interface{}{
		"id":        user.ID,
		"email":     user.Email,
		"height_cm": user.HeightCm,
		"sex":       user.Sex,
	}
	if !user.DOB.IsZero() {
		out["dob"] = user.DOB.Format("2006-01-02")
		out["age"] = utils.CalculateAge(user.DOB)
	}
	if snap.ActualWeightKg != nil {
		out["current_weight_kg"] = *snap.ActualWeightKg
		if bmi, err := utils.CalculateBMI(user.HeightCm, *snap.ActualWeightKg); err == nil {
			out["bmi"] = bmi
			out["bmi_category"] = utils.BMICategory(bmi)
		}
	}
	return out, nil
}

// UpdateUserProfile applies the provided fields only, then triggers one
// budget recalculation. A recalculation failure never fails the update; it is
// reported in the outcome.
func UpdateUserProfile(userID uint, input ProfileInput) (*models.User, RecalcOutcome, error) {
	var user models.User
	err := config.DB.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, RecalcOutcome{}, ErrProfileNotFound
	}
	if err != nil {
		return nil, RecalcOutcome{}, &StoreError{Op: "load user", Err: err}
	}

	var bad []string
	if input.HeightCm != 0 {
		if !utils.PlausibleHeightCm(input.HeightCm) {
			bad = append(bad, "height_cm")
		} else {
			user.HeightCm = input.HeightCm
		}
	}
	if input.Sex != "" {
		if input.Sex != SexMale && input.Sex != SexFemale {
			bad = append(bad, "sex")
		} else {
			user.Sex = input.Sex
		}
	}
	if input.DOB != "" {
		dob, err := time.Parse("2006-01-02", input.DOB)
		if err != nil || !dob.Before(time.Now()) {
			bad = append(bad, "dob")
		} else {
			user.DOB = dob
		}
	}
	if len(bad) > 0 {
		return nil, RecalcOutcome{}, &ValidationError{Fields: bad}
	}

	if err := config.DB.Save(&user).Error; err != nil {
		return nil, RecalcOutcome{}, &StoreError{Op: "update user", Err: err}
	}

	return &user, recalcAfterMutation(userID), nil
}
