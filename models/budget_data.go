package models

import (
    "time"

    "gorm.io/gorm"
)

// BudgetDataEntry is one row of the append-only budget time series. Every
// mutation (new weight, new activity level, new computed budget) inserts a
// fresh row; existing rows are never updated. Any subset of the nullable
// fields may be set together on a single insert.
//
// The current value of a field is the one from the row with the greatest
// ApplicableDate among rows where that field is non-null. Ties on
// ApplicableDate go to the latest insert.
type BudgetDataEntry struct {
    gorm.Model
    UserID         uint      `gorm:"index;not null" json:"user_id"`
    ApplicableDate time.Time `gorm:"index;not null" json:"applicable_date"`

    ActualWeightKg           *float64 `json:"actual_weight_kg,omitempty"`
    ActivityLevel            *string  `json:"activity_level,omitempty"`
    FatRatio                 *float64 `json:"fat_ratio,omitempty"`
    ProteinRatio             *float64 `json:"protein_ratio,omitempty"`
    CarbRatio                *float64 `json:"carb_ratio,omitempty"`
    GoalWeeklyWeightChangeKg *float64 `json:"goal_weekly_weight_change_rate,omitempty"`
    GoalWeightKg             *float64 `json:"goal_weight_kg,omitempty"`
    CaloricBudget            *float64 `json:"caloric_budget,omitempty"`
}

func (BudgetDataEntry) TableName() string {
    return "user_budget_data"
}
