package api

import (
	"time"

	"github.com/nutrilog/nutrilog/internal/models"
	"github.com/nutrilog/nutrilog/internal/services"
)

const dateOnlyFormat = "2006-01-02"

type authResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ProfileURL    string `json:"profileUrl,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
	Token         string `json:"token,omitempty"`
}

func buildAuthResponse(user *models.User, token string) authResponse {
	return authResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		ProfileURL:    user.ProfileURL,
		EmailVerified: user.EmailVerified,
		Token:         token,
	}
}

type nutritionGoalsView struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
}

type profileResponse struct {
	ID             uint                `json:"id"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	ProfileURL     string              `json:"profileUrl,omitempty"`
	EmailVerified  bool                `json:"emailVerified"`
	Height         *float64            `json:"height,omitempty"`
	Weight         *float64            `json:"weight,omitempty"`
	DateOfBirth    *string             `json:"dateOfBirth,omitempty"`
	Age            *int                `json:"age,omitempty"`
	Gender         string              `json:"gender,omitempty"`
	ActivityLevel  string              `json:"activityLevel,omitempty"`
	Goal           string              `json:"goal,omitempty"`
	BMR            *float64            `json:"bmr,omitempty"`
	TDEE           *float64            `json:"tdee,omitempty"`
	NutritionGoals *nutritionGoalsView `json:"nutritionGoals,omitempty"`
	CreatedAt      string              `json:"createdAt"`
	UpdatedAt      string              `json:"updatedAt"`
}

func buildProfileResponse(user *models.User, now time.Time) profileResponse {
	derived := services.DeriveProfile(user, now)

	response := profileResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		ProfileURL:    user.ProfileURL,
		EmailVerified: user.EmailVerified,
		Height:        user.HeightCm,
		Weight:        user.WeightKg,
		Age:           derived.Age,
		Gender:        user.Gender,
		ActivityLevel: user.ActivityLevel,
		Goal:          user.Goal,
		BMR:           derived.BMR,
		TDEE:          derived.TDEE,
		CreatedAt:     user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     user.UpdatedAt.Format(time.RFC3339),
	}
	if user.DateOfBirth != nil {
		formatted := user.DateOfBirth.Format(dateOnlyFormat)
		response.DateOfBirth = &formatted
	}
	if derived.Goals != nil {
		response.NutritionGoals = &nutritionGoalsView{
			Calories:      derived.Goals.Calories,
			Protein:       derived.Goals.Protein,
			Carbohydrates: derived.Goals.Carbohydrates,
			Fat:           derived.Goals.Fat,
		}
	}
	return response
}

type uploadResponse struct {
	ID         string `json:"id"`
	ImageURL   string `json:"imageUrl"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	UploadedAt string `json:"uploadedAt"`
}

type mealResponse struct {
	ID               string                   `json:"id"`
	ImageURL         string                   `json:"imageUrl,omitempty"`
	FileName         string                   `json:"fileName"`
	Status           string                   `json:"status"`
	DetectedFoods    []models.FoodItem        `json:"detectedFoods,omitempty"`
	NutritionSummary *models.NutritionSummary `json:"nutritionSummary,omitempty"`
	ErrorMessage     string                   `json:"errorMessage,omitempty"`
	UploadedAt       string                   `json:"uploadedAt"`
	AnalyzedAt       *string                  `json:"analyzedAt,omitempty"`
}

func buildMealResponse(meal models.Meal) mealResponse {
	response := mealResponse{
		ID:               meal.ID,
		ImageURL:         meal.ImageURL,
		FileName:         meal.FileName,
		Status:           meal.Status,
		DetectedFoods:    meal.DetectedFoods,
		NutritionSummary: meal.NutritionSummary,
		ErrorMessage:     meal.ErrorMessage,
		UploadedAt:       meal.UploadedAt.Format(time.RFC3339),
	}
	if meal.AnalyzedAt != nil {
		formatted := meal.AnalyzedAt.Format(time.RFC3339)
		response.AnalyzedAt = &formatted
	}
	return response
}

func buildMealResponses(meals []models.Meal) []mealResponse {
	responses := make([]mealResponse, 0, len(meals))
	for _, meal := range meals {
		responses = append(responses, buildMealResponse(meal))
	}
	return responses
}

type foodSearchItemView struct {
	ID               uint                 `json:"id"`
	Code             string               `json:"code"`
	Name             string               `json:"name"`
	Category         string               `json:"category,omitempty"`
	NutritionPer100g models.NutritionInfo `json:"nutritionPer100g"`
}

type foodSearchResponse struct {
	Results      []foodSearchItemView `json:"results"`
	TotalResults int                  `json:"totalResults"`
}

func buildFoodSearchResponse(foods []models.FoodComposition) foodSearchResponse {
	results := make([]foodSearchItemView, 0, len(foods))
	for _, food := range foods {
		results = append(results, foodSearchItemView{
			ID:               food.ID,
			Code:             food.Code,
			Name:             food.Name,
			Category:         food.Category,
			NutritionPer100g: food.Per100g(),
		})
	}
	return foodSearchResponse{Results: results, TotalResults: len(results)}
}

type mealDigestView struct {
	ID         string               `json:"id"`
	ImageURL   string               `json:"imageUrl,omitempty"`
	UploadedAt string               `json:"uploadedAt"`
	Nutrition  models.NutritionInfo `json:"nutrition"`
	FoodItems  []string             `json:"foodItems"`
}

type remainingView struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
}

type dailyStatsResponse struct {
	Date       string               `json:"date"`
	Consumed   models.NutritionInfo `json:"consumed"`
	Goals      nutritionGoalsView   `json:"goals"`
	Remaining  remainingView        `json:"remaining"`
	Meals      []mealDigestView     `json:"meals"`
	TotalMeals int                  `json:"totalMeals"`
}

func buildDailyStatsResponse(stats services.DailyStats) dailyStatsResponse {
	digests := make([]mealDigestView, 0, len(stats.Meals))
	for _, digest := range stats.Meals {
		digests = append(digests, mealDigestView{
			ID:         digest.ID,
			ImageURL:   digest.ImageURL,
			UploadedAt: digest.UploadedAt.Format(time.RFC3339),
			Nutrition:  digest.Nutrition,
			FoodItems:  digest.FoodItems,
		})
	}

	return dailyStatsResponse{
		Date:     stats.Date.Format(dateOnlyFormat),
		Consumed: stats.Consumed,
		Goals: nutritionGoalsView{
			Calories:      stats.Goals.Calories,
			Protein:       stats.Goals.Protein,
			Carbohydrates: stats.Goals.Carbohydrates,
			Fat:           stats.Goals.Fat,
		},
		Remaining: remainingView{
			Calories:      stats.Remaining.Calories,
			Protein:       stats.Remaining.Protein,
			Carbohydrates: stats.Remaining.Carbohydrates,
			Fat:           stats.Remaining.Fat,
		},
		Meals:      digests,
		TotalMeals: stats.TotalMeals,
	}
}
