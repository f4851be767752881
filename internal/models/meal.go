package models

import "time"

const (
	MealStatusUploaded   = "UPLOADED"
	MealStatusProcessing = "PROCESSING"
	MealStatusAnalyzed   = "ANALYZED"
	MealStatusFailed     = "FAILED"
)

// NutritionInfo holds macro values in grams, calories in kcal.
type NutritionInfo struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	Sugar         float64 `json:"sugar"`
}

type IngredientInfo struct {
	Name          string        `json:"name"`
	QuantityGrams float64       `json:"quantityGrams"`
	Category      string        `json:"category,omitempty"`
	Nutrition     NutritionInfo `json:"nutrition"`
}

// FoodItem is one detected or manually entered food within a meal.
// Confidence is 0..1; manual entries are stored with confidence 1.
type FoodItem struct {
	Name                string           `json:"name"`
	Confidence          float64          `json:"confidence"`
	QuantityGrams       float64          `json:"quantityGrams"`
	Category            string           `json:"category,omitempty"`
	Nutrition           NutritionInfo    `json:"nutrition"`
	IngredientBreakdown []IngredientInfo `json:"ingredientBreakdown,omitempty"`
}

type NutritionSummary struct {
	TotalCalories      float64 `json:"totalCalories"`
	TotalProtein       float64 `json:"totalProtein"`
	TotalCarbohydrates float64 `json:"totalCarbohydrates"`
	TotalFat           float64 `json:"totalFat"`
	TotalFiber         float64 `json:"totalFiber"`
	TotalSugar         float64 `json:"totalSugar"`
}

// Meal is a single nutrition event: an uploaded photo awaiting analysis or an
// already-analyzed manual entry. Only the analysis worker moves Status forward.
type Meal struct {
	ID               string `gorm:"primaryKey"`
	UserID           uint   `gorm:"not null;index"`
	ImageURL         string
	FileName         string
	Status           string            `gorm:"not null;default:UPLOADED;index"`
	DetectedFoods    []FoodItem        `gorm:"serializer:json"`
	NutritionSummary *NutritionSummary `gorm:"serializer:json"`
	ErrorMessage     string
	UploadedAt       time.Time `gorm:"not null;index"`
	AnalyzedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func IsTerminalMealStatus(status string) bool {
	return status == MealStatusAnalyzed || status == MealStatusFailed
}
