package models

import "gorm.io/gorm"

// A local catalog row for a food the user has logged before. Keyed by our own
// id, not the provider's.
type Food struct {
    gorm.Model
    FoodName     string `gorm:"not null"`
    ServingDesc  string
    CaloriesKcal float64
    FatG         float64
    CarbsG       float64
    ProteinG     float64
}

func (Food) TableName() string {
    return "foods"
}
