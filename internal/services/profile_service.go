package services

import (
	"errors"
	"time"

	"github.com/nutrilog/nutrilog/internal/models"
)

var (
	ErrInvalidGender        = errors.New("invalid gender")
	ErrInvalidActivityLevel = errors.New("invalid activity level")
	ErrInvalidGoal          = errors.New("invalid goal")
	ErrInvalidHeight        = errors.New("height must be positive")
	ErrInvalidWeight        = errors.New("weight must be positive")
)

type ProfileUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateByID(userID uint, updates map[string]any) error
}

type ProfileService struct {
	users ProfileUserRepository
}

func NewProfileService(users ProfileUserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// ProfileUpdate carries optional profile fields; nil means "leave unchanged".
type ProfileUpdate struct {
	Name          *string
	HeightCm      *float64
	WeightKg      *float64
	DateOfBirth   *time.Time
	Gender        *string
	ActivityLevel *string
	Goal          *string
}

func (service *ProfileService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *ProfileService) UpdateProfile(userID uint, update ProfileUpdate) (models.User, error) {
	updates, err := buildProfileUpdates(update)
	if err != nil {
		return models.User{}, err
	}

	if len(updates) > 0 {
		if err := service.users.UpdateByID(userID, updates); err != nil {
			return models.User{}, err
		}
	}
	return service.users.FindByID(userID)
}

func buildProfileUpdates(update ProfileUpdate) (map[string]any, error) {
	updates := make(map[string]any)

	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.HeightCm != nil {
		if *update.HeightCm <= 0 {
			return nil, ErrInvalidHeight
		}
		updates["height_cm"] = *update.HeightCm
	}
	if update.WeightKg != nil {
		if *update.WeightKg <= 0 {
			return nil, ErrInvalidWeight
		}
		updates["weight_kg"] = *update.WeightKg
	}
	if update.DateOfBirth != nil {
		updates["date_of_birth"] = *update.DateOfBirth
	}
	if update.Gender != nil {
		if !models.IsValidGender(*update.Gender) {
			return nil, ErrInvalidGender
		}
		updates["gender"] = *update.Gender
	}
	if update.ActivityLevel != nil {
		if !models.IsValidActivityLevel(*update.ActivityLevel) {
			return nil, ErrInvalidActivityLevel
		}
		updates["activity_level"] = *update.ActivityLevel
	}
	if update.Goal != nil {
		if !models.IsValidGoal(*update.Goal) {
			return nil, ErrInvalidGoal
		}
		updates["goal"] = *update.Goal
	}

	return updates, nil
}

// NeedsOnboarding reports whether the profile is still incomplete.
// Height, weight and goal gate the dashboard.
func NeedsOnboarding(user *models.User) bool {
	if user == nil {
		return true
	}
	return user.HeightCm == nil || user.WeightKg == nil || user.Goal == ""
}

type NutritionGoals struct {
	Calories      float64
	Protein       float64
	Carbohydrates float64
	Fat           float64
}

// DefaultNutritionGoals applies when the profile is too incomplete to derive goals.
var DefaultNutritionGoals = NutritionGoals{
	Calories:      2000,
	Protein:       150,
	Carbohydrates: 200,
	Fat:           67,
}

func CalculateAge(dateOfBirth *time.Time, now time.Time) *int {
	if dateOfBirth == nil {
		return nil
	}
	age := now.Year() - dateOfBirth.Year()
	anniversary := time.Date(now.Year(), dateOfBirth.Month(), dateOfBirth.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return &age
}

// CalculateBMR uses the Mifflin-St Jeor equation.
// MALE +5, FEMALE -161, OTHER uses the midpoint -78.
func CalculateBMR(weightKg *float64, heightCm *float64, age *int, gender string) *float64 {
	if weightKg == nil || heightCm == nil || age == nil || gender == "" {
		return nil
	}

	bmr := 10*(*weightKg) + 6.25*(*heightCm) - 5*float64(*age)
	switch gender {
	case models.GenderMale:
		bmr += 5
	case models.GenderFemale:
		bmr -= 161
	default:
		bmr -= 78
	}

	rounded := Round2(bmr)
	return &rounded
}

func activityFactor(activityLevel string) float64 {
	switch activityLevel {
	case models.ActivitySedentary:
		return 1.2
	case models.ActivityLightlyActive:
		return 1.375
	case models.ActivityModeratelyActive:
		return 1.55
	case models.ActivityVeryActive:
		return 1.725
	case models.ActivityExtremelyActive:
		return 1.9
	default:
		return 1.2
	}
}

func CalculateTDEE(bmr *float64, activityLevel string) *float64 {
	if bmr == nil || activityLevel == "" {
		return nil
	}
	tdee := Round2(*bmr * activityFactor(activityLevel))
	return &tdee
}

// CalculateNutritionGoals derives daily targets from TDEE and the stated goal.
// Macro ratios and calorie adjustments:
//
//	WEIGHT_LOSS  85% of TDEE, 40/30/30 protein/carb/fat
//	MUSCLE_GAIN 110% of TDEE, 30/40/30
//	WEIGHT_GAIN 115% of TDEE, 25/45/30
//	MAINTENANCE 100% of TDEE, 30/40/30
func CalculateNutritionGoals(tdee *float64, goal string) *NutritionGoals {
	if tdee == nil {
		return nil
	}

	targetCalories := *tdee
	proteinRatio, carbRatio, fatRatio := 0.30, 0.40, 0.30

	switch goal {
	case models.GoalWeightLoss:
		targetCalories = *tdee * 0.85
		proteinRatio, carbRatio, fatRatio = 0.40, 0.30, 0.30
	case models.GoalMuscleGain:
		targetCalories = *tdee * 1.10
	case models.GoalWeightGain:
		targetCalories = *tdee * 1.15
		proteinRatio, carbRatio, fatRatio = 0.25, 0.45, 0.30
	}

	// 1g protein = 4 kcal, 1g carbohydrate = 4 kcal, 1g fat = 9 kcal.
	return &NutritionGoals{
		Calories:      Round2(targetCalories),
		Protein:       Round2(targetCalories * proteinRatio / 4),
		Carbohydrates: Round2(targetCalories * carbRatio / 4),
		Fat:           Round2(targetCalories * fatRatio / 9),
	}
}

// DerivedProfile bundles the read-only fields recomputed on every profile read.
type DerivedProfile struct {
	Age   *int
	BMR   *float64
	TDEE  *float64
	Goals *NutritionGoals
}

func DeriveProfile(user *models.User, now time.Time) DerivedProfile {
	age := CalculateAge(user.DateOfBirth, now)
	bmr := CalculateBMR(user.WeightKg, user.HeightCm, age, user.Gender)
	tdee := CalculateTDEE(bmr, user.ActivityLevel)
	return DerivedProfile{
		Age:   age,
		BMR:   bmr,
		TDEE:  tdee,
		Goals: CalculateNutritionGoals(tdee, user.Goal),
	}
}

// GoalsForUser resolves the user's daily targets, falling back to defaults
// while onboarding data is incomplete.
func GoalsForUser(user *models.User, now time.Time) NutritionGoals {
	derived := DeriveProfile(user, now)
	if derived.Goals == nil {
		return DefaultNutritionGoals
	}
	return *derived.Goals
}
