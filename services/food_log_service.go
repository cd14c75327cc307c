package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/JimmyMcBride/nutrition-tracker-be/config"
	"github.com/JimmyMcBride/nutrition-tracker-be/models"
)

// FoodProvider is the slice of the provider client the food-log paths need.
// Kept small so tests can stub it and count calls.
type FoodProvider interface {
	GetFood(ctx context.Context, foodID string) (json.RawMessage, error)
}

const dailyLogColumns = `
	fl.id AS food_log_id,
	fl.food_id,
	fl.fatsecret_food_id,
	fl.time_consumed_at,
	fl.time_zone_name,
	fl.time_zone_abbr,
	fl.quantity,
	f.food_name,
	f.serving_desc AS serving_description,
	f.calories_kcal,
	f.fat_g AS fat_grams,
	f.carbs_g AS carbs_grams,
	f.protein_g AS protein_grams`

// GetDailyLog returns the user's food-log rows joined with the catalog,
// limited to consumption timestamps in [from, to] inclusive, oldest first.
// An empty window is an empty slice, not an error.
func GetDailyLog(userID uint, from, to time.Time) ([]models.DailyLogRow, error) {
	rows := make([]models.DailyLogRow, 0)
	err := config.DB.
		Table("food_log AS fl").
		Joins("JOIN foods AS f ON f.id = fl.food_id").
		Select(dailyLogColumns).
		Where("fl.user_id = ? AND fl.time_consumed_at >= ? AND fl.time_consumed_at <= ?", userID, from, to).
		Order("fl.time_consumed_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, &StoreError{Op: "load daily log", Err: err}
	}
	return rows, nil
}

type FoodInput struct {
	FoodName     string  `json:"food_name"`
	ServingDesc  string  `json:"serving_description"`
	CaloriesKcal float64 `json:"calories_kcal"`
	FatG         float64 `json:"fat_grams"`
	CarbsG       float64 `json:"carbs_grams"`
	ProteinG     float64 `json:"protein_grams"`
}

type FoodLogInput struct {
	FoodID          uint       `json:"food_id"`
	FatsecretFoodID string     `json:"fatsecret_food_id"`
	Quantity        float64    `json:"quantity"`
	TimeConsumedAt  time.Time  `json:"time_consumed_at"`
	TimeZoneName    string     `json:"time_zone_name"`
	TimeZoneAbbr    string     `json:"time_zone_abbr"`
	Food            *FoodInput `json:"food,omitempty"` // inline catalog fields when the food isn't cached yet
}

// AddFoodLog creates a log entry, first creating the catalog row when the
// caller supplied inline food fields instead of an existing food_id.
func AddFoodLog(userID uint, input FoodLogInput) (*models.FoodLogEntry, error) {
	var bad []string
	if input.Quantity <= 0 {
		bad = append(bad, "quantity")
	}
	if input.TimeConsumedAt.IsZero() {
		bad = append(bad, "time_consumed_at")
	}
	if input.FoodID == 0 && (input.Food == nil || input.Food.FoodName == "") {
		bad = append(bad, "food_id")
	}
	if len(bad) > 0 {
		return nil, &ValidationError{Fields: bad}
	}

	foodID := input.FoodID
	if foodID == 0 {
		// Reuse the catalog row from a previous log of the same food so
		// repeat logging never duplicates the catalog.
		var existing models.Food
		result := config.DB.
			Where("food_name = ? AND serving_desc = ?", input.Food.FoodName, input.Food.ServingDesc).
			Limit(1).
			Find(&existing)
		if result.Error != nil {
			return nil, &StoreError{Op: "lookup food", Err: result.Error}
		}
		if result.RowsAffected > 0 {
			foodID = existing.ID
		} else {
			food := models.Food{
				FoodName:     input.Food.FoodName,
				ServingDesc:  input.Food.ServingDesc,
				CaloriesKcal: input.Food.CaloriesKcal,
				FatG:         input.Food.FatG,
				CarbsG:       input.Food.CarbsG,
				ProteinG:     input.Food.ProteinG,
			}
			if err := config.DB.Create(&food).Error; err != nil {
				return nil, &StoreError{Op: "insert food", Err: err}
			}
			foodID = food.ID
		}
	}

	entry := models.FoodLogEntry{
		UserID:          userID,
		FoodID:          foodID,
		FatsecretFoodID: input.FatsecretFoodID,
		Quantity:        input.Quantity,
		TimeConsumedAt:  input.TimeConsumedAt,
		TimeZoneName:    input.TimeZoneName,
		TimeZoneAbbr:    input.TimeZoneAbbr,
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		return nil, &StoreError{Op: "insert food log", Err: err}
	}
	return &entry, nil
}

// FoodItemDetail merges a local log row with the provider's record for the
// same food.
type FoodItemDetail struct {
	models.DailyLogRow
	ProviderFood json.RawMessage `json:"provider_food,omitempty"`
}

type FoodLogService struct {
	provider FoodProvider
}

func NewFoodLogService(provider FoodProvider) *FoodLogService {
	return &FoodLogService{provider: provider}
}

// GetFoodItemDetail looks the log entry up locally first — ErrNotFound before
// any provider call — then enriches it with the provider record. On provider
// failure the returned detail still carries the local fields alongside the
// error so callers can degrade instead of dropping data.
func (s *FoodLogService) GetFoodItemDetail(ctx context.Context, userID, foodLogID uint) (*FoodItemDetail, error) {
	var row models.DailyLogRow
	result := config.DB.
		Table("food_log AS fl").
		Joins("JOIN foods AS f ON f.id = fl.food_id").
		Select(dailyLogColumns).
		Where("fl.id = ? AND fl.user_id = ?", foodLogID, userID).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, &StoreError{Op: "load food log entry", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	detail := &FoodItemDetail{DailyLogRow: row}
	if row.FatsecretFoodID == "" {
		return detail, nil
	}

	providerFood, err := s.provider.GetFood(ctx, row.FatsecretFoodID)
	if err != nil {
		return detail, err
	}
	detail.ProviderFood = providerFood
	return detail, nil
}
