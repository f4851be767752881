package api

import "github.com/nutrilog/nutrilog/internal/models"

type registerInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	ProfileURL string `json:"profileUrl"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sendVerificationInput struct {
	Email string `json:"email"`
}

type profileInput struct {
	Name          *string  `json:"name"`
	Height        *float64 `json:"height"`
	Weight        *float64 `json:"weight"`
	DateOfBirth   *string  `json:"dateOfBirth"`
	Gender        *string  `json:"gender"`
	ActivityLevel *string  `json:"activityLevel"`
	Goal          *string  `json:"goal"`
}

type manualFoodInput struct {
	Name          string               `json:"name"`
	QuantityGrams float64              `json:"quantityGrams"`
	Nutrition     models.NutritionInfo `json:"nutrition"`
}

type manualEntryInput struct {
	Foods []manualFoodInput `json:"foods"`
}
