package services

import (
	"errors"
	"log"
	"time"

	"github.com/JimmyMcBride/nutrition-tracker-be/config"
	"github.com/JimmyMcBride/nutrition-tracker-be/models"

	"gorm.io/gorm"
)

// BudgetSnapshot is the current value of every budget-data field for a user:
// for each field, the value from the most recent row (by applicable date) in
// which that field is non-null. Nil means the field has never been recorded.
type BudgetSnapshot struct {
	ActualWeightKg           *float64 `json:"actual_weight_kg,omitempty"`
	ActivityLevel            *string  `json:"activity_level,omitempty"`
	FatRatio                 *float64 `json:"fat_ratio,omitempty"`
	ProteinRatio             *float64 `json:"protein_ratio,omitempty"`
	CarbRatio                *float64 `json:"carb_ratio,omitempty"`
	GoalWeeklyWeightChangeKg *float64 `json:"goal_weekly_weight_change_rate,omitempty"`
	GoalWeightKg             *float64 `json:"goal_weight_kg,omitempty"`
	CaloricBudget            *float64 `json:"caloric_budget,omitempty"`
}

// BudgetSnapshotFor loads the user's budget rows once and folds them into a
// snapshot, instead of running one latest-value query per field.
func BudgetSnapshotFor(userID uint) (*BudgetSnapshot, error) {
	var rows []models.BudgetDataEntry
	if err := config.DB.
		Where("user_id = ?", userID).
		Order("applicable_date DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, &StoreError{Op: "load budget data", Err: err}
	}
	return foldSnapshot(rows), nil
}

// foldSnapshot takes rows already ordered by applicable_date desc, id desc
// (so a backdated insert never shadows a later effective value) and keeps the
// first non-null occurrence of each field.
func foldSnapshot(rows []models.BudgetDataEntry) *BudgetSnapshot {
	snap := &BudgetSnapshot{}
	for _, row := range rows {
		if snap.ActualWeightKg == nil && row.ActualWeightKg != nil {
			snap.ActualWeightKg = row.ActualWeightKg
		}
		if snap.ActivityLevel == nil && row.ActivityLevel != nil {
			snap.ActivityLevel = row.ActivityLevel
		}
		if snap.FatRatio == nil && row.FatRatio != nil {
			snap.FatRatio = row.FatRatio
		}
		if snap.ProteinRatio == nil && row.ProteinRatio != nil {
			snap.ProteinRatio = row.ProteinRatio
		}
		if snap.CarbRatio == nil && row.CarbRatio != nil {
			snap.CarbRatio = row.CarbRatio
		}
		if snap.GoalWeeklyWeightChangeKg == nil && row.GoalWeeklyWeightChangeKg != nil {
			snap.GoalWeeklyWeightChangeKg = row.GoalWeeklyWeightChangeKg
		}
		if snap.GoalWeightKg == nil && row.GoalWeightKg != nil {
			snap.GoalWeightKg = row.GoalWeightKg
		}
		if snap.CaloricBudget == nil && row.CaloricBudget != nil {
			snap.CaloricBudget = row.CaloricBudget
		}
	}
	return snap
}

// CaloricBudgetData is everything the calculator needs, gathered from the
// profile row plus the budget snapshot. Weight and activity stay nil when the
// user has never logged them; only the recalculation trigger treats that as a
// hard failure.
type CaloricBudgetData struct {
	HeightCm       float64
	Sex            string
	DOB            time.Time
	ActualWeightKg *float64
	ActivityLevel  *string
	Goal           *WeightGoal
}

func GetCaloricBudgetData(userID uint) (*CaloricBudgetData, error) {
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

	data := &CaloricBudgetData{
		HeightCm:       user.HeightCm,
		Sex:            user.Sex,
		DOB:            user.DOB,
		ActualWeightKg: snap.ActualWeightKg,
		ActivityLevel:  snap.ActivityLevel,
	}
	if snap.GoalWeeklyWeightChangeKg != nil && snap.GoalWeightKg != nil {
		data.Goal = &WeightGoal{
			WeeklyChangeKg: *snap.GoalWeeklyWeightChangeKg,
			TargetWeightKg: *snap.GoalWeightKg,
		}
	}
	return data, nil
}

// RecalculateBudget gathers the user's current biometric state, runs the
// budget formula, and appends one new budget row carrying only the computed
// budget. Nothing is written when the profile is incomplete.
func RecalculateBudget(userID uint) (*models.BudgetDataEntry, error) {
	data, err := GetCaloricBudgetData(userID)
	if err != nil {
		return nil, err
	}

	var missing []string
	if data.HeightCm <= 0 {
		missing = append(missing, "height_cm")
	}
	if data.Sex == "" {
		missing = append(missing, "sex")
	}
	if data.DOB.IsZero() {
		missing = append(missing, "dob")
	}
	if data.ActualWeightKg == nil {
		missing = append(missing, "actual_weight_kg")
	}
	if data.ActivityLevel == nil {
		missing = append(missing, "activity_level")
	}
	if len(missing) > 0 {
		return nil, &IncompleteProfileError{Missing: missing}
	}

	result, err := DefaultFormula.Compute(BudgetInput{
		HeightCm:       data.HeightCm,
		Sex:            data.Sex,
		DOB:            data.DOB,
		ActualWeightKg: *data.ActualWeightKg,
		ActivityLevel:  *data.ActivityLevel,
		Goal:           data.Goal,
	})
	if err != nil {
		return nil, err
	}

	budget := result.CaloricBudget
	entry := models.BudgetDataEntry{
		UserID:         userID,
		ApplicableDate: today(),
		CaloricBudget:  &budget,
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		return nil, &StoreError{Op: "insert caloric budget", Err: err}
	}
	return &entry, nil
}

// RecalcOutcome is what a mutation reports about its follow-up budget
// recalculation. Err is set instead of failing the mutation itself.
type RecalcOutcome struct {
	Budget *models.BudgetDataEntry
	Err    error
}

// recalcAfterMutation runs the trigger once and logs a failure rather than
// propagating it; the caller's write already succeeded.
func recalcAfterMutation(userID uint) RecalcOutcome {
	entry, err := RecalculateBudget(userID)
	if err != nil {
		log.Printf("[recalc] user %d: %v", userID, err)
		return RecalcOutcome{Err: err}
	}
	return RecalcOutcome{Budget: entry}
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func normalizeApplicableDate(d time.Time) time.Time {
	if d.IsZero() {
		return today()
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// AddCurrentWeight appends a weight observation and triggers one budget
// recalculation for it.
func AddCurrentWeight(userID uint, weightKg float64, applicableDate time.Time) (*models.BudgetDataEntry, RecalcOutcome, error) {
	if weightKg <= 0 {
		return nil, RecalcOutcome{}, &ValidationError{Fields: []string{"actual_weight_kg"}}
	}
	entry := models.BudgetDataEntry{
		UserID:         userID,
		ApplicableDate: normalizeApplicableDate(applicableDate),
		ActualWeightKg: &weightKg,
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		return nil, RecalcOutcome{}, &StoreError{Op: "insert weight", Err: err}
	}
	return &entry, recalcAfterMutation(userID), nil
}

// AddActivityLevel appends an activity-level observation and triggers one
// budget recalculation for it.
func AddActivityLevel(userID uint, level string, applicableDate time.Time) (*models.BudgetDataEntry, RecalcOutcome, error) {
	if _, ok := ActivityMultipliers[level]; !ok {
		return nil, RecalcOutcome{}, &ValidationError{Fields: []string{"activity_level"}}
	}
	entry := models.BudgetDataEntry{
		UserID:         userID,
		ApplicableDate: normalizeApplicableDate(applicableDate),
		ActivityLevel:  &level,
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		return nil, RecalcOutcome{}, &StoreError{Op: "insert activity level", Err: err}
	}
	return &entry, recalcAfterMutation(userID), nil
}

// AddMacroRatios appends a macro-ratio row. Ratios must each sit in (0,1) and
// sum to 1 within rounding slack. Does not trigger a recalculation: ratios
// split the budget, they do not change it.
func AddMacroRatios(userID uint, fat, protein, carb float64, applicableDate time.Time) (*models.BudgetDataEntry, error) {
	var bad []string
	for name, v := range map[string]float64{"fat_ratio": fat, "protein_ratio": protein, "carb_ratio": carb} {
		if v <= 0 || v >= 1 {
			bad = append(bad, name)
		}
	}
	if len(bad) > 0 {
		return nil, &ValidationError{Fields: bad}
	}
	if sum := fat + protein + carb; sum < 0.99 || sum > 1.01 {
		return nil, &ValidationError{Fields: []string{"fat_ratio", "protein_ratio", "carb_ratio"}}
	}

	entry := models.BudgetDataEntry{
		UserID:         userID,
		ApplicableDate: normalizeApplicableDate(applicableDate),
		FatRatio:       &fat,
		ProteinRatio:   &protein,
		CarbRatio:      &carb,
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		return nil, &StoreError{Op: "insert macro ratios", Err: err}
	}
	return &entry, nil
}

// AddWeightGoal appends a weight-goal row. No recalculation here either; the
// goal is picked up the next time weight, activity, or profile changes.
func AddWeightGoal(userID uint, weeklyChangeKg, targetWeightKg float64, applicableDate time.Time) (*models.BudgetDataEntry, error) {
	var bad []string
	// Roughly 2 lbs/week is the accepted safe ceiling either direction.
	if weeklyChangeKg < -1.0 || weeklyChangeKg > 1.0 || weeklyChangeKg == 0 {
		bad = append(bad, "goal_weekly_weight_change_rate")
	}
	if targetWeightKg <= 0 {
		bad = append(bad, "goal_weight_kg")
	}
	if len(bad) > 0 {
		return nil, &ValidationError{Fields: bad}
	}

	entry := models.BudgetDataEntry{
		UserID:                   userID,
		ApplicableDate:           normalizeApplicableDate(applicableDate),
		GoalWeeklyWeightChangeKg: &weeklyChangeKg,
		GoalWeightKg:             &targetWeightKg,
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		return nil, &StoreError{Op: "insert weight goal", Err: err}
	}
	return &entry, nil
}

// WeightEntry is one observed weight, resolved by applicable date for the
// progress views.
type WeightEntry struct {
	ApplicableDate time.Time `json:"applicable_date"`
	ActualWeightKg float64   `json:"actual_weight_kg"`
}

// GetWeightHistory returns every recorded weight in effective-date order,
// insertion order breaking ties. A user with no weights gets an empty series.
func GetWeightHistory(userID uint) ([]WeightEntry, error) {
	var rows []models.BudgetDataEntry
	if err := config.DB.
		Where("user_id = ? AND actual_weight_kg IS NOT NULL", userID).
		Order("applicable_date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, &StoreError{Op: "load weight history", Err: err}
	}

	history := make([]WeightEntry, 0, len(rows))
	for _, row := range rows {
		history = append(history, WeightEntry{
			ApplicableDate: row.ApplicableDate,
			ActualWeightKg: *row.ActualWeightKg,
		})
	}
	return history, nil
}

// CurrentBudget is the latest computed budget plus latest macro ratios.
type CurrentBudget struct {
	CaloricBudget float64  `json:"caloric_budget"`
	FatRatio      *float64 `json:"fat_ratio,omitempty"`
	ProteinRatio  *float64 `json:"protein_ratio,omitempty"`
	CarbRatio     *float64 `json:"carb_ratio,omitempty"`
}

// GetCurrentBudget returns ErrNotFound when no budget has ever been computed
// for the user.
func GetCurrentBudget(userID uint) (*CurrentBudget, error) {
	snap, err := BudgetSnapshotFor(userID)
	if err != nil {
		return nil, err
	}
	if snap.CaloricBudget == nil {
		return nil, ErrNotFound
	}
	return &CurrentBudget{
		CaloricBudget: *snap.CaloricBudget,
		FatRatio:      snap.FatRatio,
		ProteinRatio:  snap.ProteinRatio,
		CarbRatio:     snap.CarbRatio,
	}, nil
}
