package utils

import (
	"errors"
	"time"
)

// Plausibility bounds for biometric input. Values outside these are almost
// certainly unit mix-ups (inches vs cm, lbs vs kg) or typos.
const (
	MinHeightCm = 50.0
	MaxHeightCm = 250.0
	MinWeightKg = 10.0
	MaxWeightKg = 400.0
)

func PlausibleHeightCm(h float64) bool {
	return h >= MinHeightCm && h <= MaxHeightCm
}

func PlausibleWeightKg(w float64) bool {
	return w >= MinWeightKg && w <= MaxWeightKg
}

// AgeAt returns whole years between dob and the reference date.
func AgeAt(dob, at time.Time) int {
	age := at.Year() - dob.Year()
	if at.Before(dob.AddDate(age, 0, 0)) {
		age--
	}
	return age
}

func CalculateAge(dob time.Time) int {
	return AgeAt(dob, time.Now())
}

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	if !PlausibleHeightCm(heightCm) || !PlausibleWeightKg(weightKg) {
		return 0, errors.New("height/weight out of plausible range")
	}

	h := heightCm / 100.0 // to meters
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
