package models

import "time"

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

const (
	ActivitySedentary        = "SEDENTARY"
	ActivityLightlyActive    = "LIGHTLY_ACTIVE"
	ActivityModeratelyActive = "MODERATELY_ACTIVE"
	ActivityVeryActive       = "VERY_ACTIVE"
	ActivityExtremelyActive  = "EXTREMELY_ACTIVE"
)

const (
	GoalWeightLoss  = "WEIGHT_LOSS"
	GoalMuscleGain  = "MUSCLE_GAIN"
	GoalWeightGain  = "WEIGHT_GAIN"
	GoalMaintenance = "MAINTENANCE"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	ProfileURL   string

	EmailVerified           bool   `gorm:"not null;default:false"`
	EmailVerificationToken  string `gorm:"index"`
	EmailVerificationExpiry *time.Time

	// Profile fields are optional until onboarding completes.
	HeightCm      *float64
	WeightKg      *float64
	DateOfBirth   *time.Time `gorm:"type:date"`
	Gender        string
	ActivityLevel string
	Goal          string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

func IsValidGender(value string) bool {
	switch value {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

func IsValidActivityLevel(value string) bool {
	switch value {
	case ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive, ActivityVeryActive, ActivityExtremelyActive:
		return true
	default:
		return false
	}
}

func IsValidGoal(value string) bool {
	switch value {
	case GoalWeightLoss, GoalMuscleGain, GoalWeightGain, GoalMaintenance:
		return true
	default:
		return false
	}
}
