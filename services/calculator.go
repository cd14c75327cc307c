package services

import (
	"math"
	"time"

	"github.com/JimmyMcBride/nutrition-tracker-be/utils"
)

const (
	SexMale   = "male"
	SexFemale = "female"
)

// ActivityMultipliers maps each accepted activity level to its TDEE
// multiplier. Single source of truth for activity-level validation.
var ActivityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// kcal in one kg of body fat. Converts a weekly weight-change goal into a
// daily calorie delta.
const kcalPerKgBodyFat = 7700.0

type WeightGoal struct {
	WeeklyChangeKg float64 // negative for loss, positive for gain
	TargetWeightKg float64
}

type BudgetInput struct {
	HeightCm       float64
	Sex            string
	DOB            time.Time
	ActualWeightKg float64
	ActivityLevel  string
	Goal           *WeightGoal

	// Now is the reference date for the age calculation. Zero means
	// time.Now(); tests pin it for determinism.
	Now time.Time
}

type BudgetResult struct {
	BMR           float64 `json:"bmr"`
	TDEE          float64 `json:"tdee"`
	CaloricBudget float64 `json:"caloric_budget"`
}

// BudgetFormula turns biometrics into a daily caloric budget. Implementations
// must be pure: identical input always yields identical output. The formula is
// swappable because no single equation is authoritative.
type BudgetFormula interface {
	Compute(in BudgetInput) (BudgetResult, error)
}

// MifflinStJeor computes BMR with the Mifflin-St Jeor equation, scales it by
// the activity multiplier, and applies the optional weight-goal calorie delta.
// The budget never drops below BMR.
type MifflinStJeor struct{}

func (MifflinStJeor) Compute(in BudgetInput) (BudgetResult, error) {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	if err := validateBudgetInput(in, now); err != nil {
		return BudgetResult{}, err
	}

	age := utils.AgeAt(in.DOB, now)

	bmr := 10*in.ActualWeightKg + 6.25*in.HeightCm - 5*float64(age)
	if in.Sex == SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * ActivityMultipliers[in.ActivityLevel]

	budget := tdee
	if in.Goal != nil {
		budget += in.Goal.WeeklyChangeKg * kcalPerKgBodyFat / 7
		if budget < bmr {
			budget = bmr
		}
	}

	return BudgetResult{
		BMR:           math.Round(bmr),
		TDEE:          math.Round(tdee),
		CaloricBudget: math.Round(budget),
	}, nil
}

// validateBudgetInput collects every missing or implausible field so the
// caller sees the whole problem at once. The calculation never proceeds with
// partial data.
func validateBudgetInput(in BudgetInput, now time.Time) error {
	var bad []string

	if !utils.PlausibleHeightCm(in.HeightCm) {
		bad = append(bad, "height_cm")
	}
	if !utils.PlausibleWeightKg(in.ActualWeightKg) {
		bad = append(bad, "actual_weight_kg")
	}
	if in.Sex != SexMale && in.Sex != SexFemale {
		bad = append(bad, "sex")
	}
	if in.DOB.IsZero() || !in.DOB.Before(now) {
		bad = append(bad, "dob")
	} else if age := utils.AgeAt(in.DOB, now); age < 0 || age > 130 {
		bad = append(bad, "dob")
	}
	if _, ok := ActivityMultipliers[in.ActivityLevel]; !ok {
		bad = append(bad, "activity_level")
	}

	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

// DefaultFormula is what the recalculation trigger uses. Package-level so an
// alternative formula can be swapped in at startup.
var DefaultFormula BudgetFormula = MifflinStJeor{}
