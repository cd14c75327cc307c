package models

import (
    "time"

    "gorm.io/gorm"
)

// FoodLogEntry records one consumption event. Immutable once created.
type FoodLogEntry struct {
    gorm.Model
    UserID          uint   `gorm:"index;not null"`
    FoodID          uint   `gorm:"index;not null"`
    FatsecretFoodID string `gorm:"type:varchar(64)"`
    Quantity        float64
    TimeConsumedAt  time.Time `gorm:"index;not null"`
    TimeZoneName    string
    TimeZoneAbbr    string
}

func (FoodLogEntry) TableName() string {
    return "food_log"
}

// DailyLogRow is a food_log row joined with its foods catalog entry, shaped
// for the daily-log endpoint. JSON keys match what the frontend consumed from
// the original API.
type DailyLogRow struct {
    FoodLogID          uint      `gorm:"column:food_log_id" json:"foodLogID"`
    FoodID             uint      `gorm:"column:food_id" json:"foodID"`
    FatsecretFoodID    string    `gorm:"column:fatsecret_food_id" json:"fatSecretFoodID"`
    TimeConsumedAt     time.Time `gorm:"column:time_consumed_at" json:"timeConsumedAt"`
    TimeZoneName       string    `gorm:"column:time_zone_name" json:"timeZoneName"`
    TimeZoneAbbr       string    `gorm:"column:time_zone_abbr" json:"timeZoneAbbr"`
    Quantity           float64   `gorm:"column:quantity" json:"quantity"`
    FoodName           string    `gorm:"column:food_name" json:"foodName"`
    ServingDescription string    `gorm:"column:serving_description" json:"servingDescription"`
    CaloriesKcal       float64   `gorm:"column:calories_kcal" json:"caloriesKcal"`
    FatGrams           float64   `gorm:"column:fat_grams" json:"fatGrams"`
    CarbsGrams         float64   `gorm:"column:carbs_grams" json:"carbsGrams"`
    ProteinGrams       float64   `gorm:"column:protein_grams" json:"proteinGrams"`
}
