package models

import (
    "time"

    "gorm.io/gorm"
)

type User struct {
    gorm.Model
    Email    string `gorm:"uniqueIndex;not null"`
    Password string `gorm:"not null"`
    HeightCm float64
    Sex      string
    DOB      time.Time
}
