package client

// Wire types mirror the server's JSON surface. All nutrition values are
// kilocalories and grams.

type Nutrition struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	Sugar         float64 `json:"sugar"`
}

type NutritionGoals struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
}

type AuthUser struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ProfileURL    string `json:"profileUrl"`
	EmailVerified bool   `json:"emailVerified"`
	Token         string `json:"token"`
}

type Profile struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	ProfileURL     string          `json:"profileUrl"`
	EmailVerified  bool            `json:"emailVerified"`
	Height         *float64        `json:"height"`
	Weight         *float64        `json:"weight"`
	DateOfBirth    *string         `json:"dateOfBirth"`
	Age            *int            `json:"age"`
	Gender         string          `json:"gender"`
	ActivityLevel  string          `json:"activityLevel"`
	Goal           string          `json:"goal"`
	BMR            *float64        `json:"bmr"`
	TDEE           *float64        `json:"tdee"`
	NutritionGoals *NutritionGoals `json:"nutritionGoals"`
}

// NeedsOnboarding reports whether the profile is still missing the fields
// required to derive nutrition goals.
func (profile Profile) NeedsOnboarding() bool {
	return profile.Height == nil || profile.Weight == nil || profile.Goal == ""
}

type ProfileUpdate struct {
	Name          *string  `json:"name,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	DateOfBirth   *string  `json:"dateOfBirth,omitempty"`
	Gender        *string  `json:"gender,omitempty"`
	ActivityLevel *string  `json:"activityLevel,omitempty"`
	Goal          *string  `json:"goal,omitempty"`
}

const (
	MealStatusUploaded   = "UPLOADED"
	MealStatusProcessing = "PROCESSING"
	MealStatusAnalyzed   = "ANALYZED"
	MealStatusFailed     = "FAILED"
)

type FoodItem struct {
	Name          string    `json:"name"`
	Confidence    float64   `json:"confidence"`
	QuantityGrams float64   `json:"quantityGrams"`
	Category      string    `json:"category,omitempty"`
	Nutrition     Nutrition `json:"nutrition"`
}

type NutritionSummary struct {
	TotalCalories      float64 `json:"totalCalories"`
	TotalProtein       float64 `json:"totalProtein"`
	TotalCarbohydrates float64 `json:"totalCarbohydrates"`
	TotalFat           float64 `json:"totalFat"`
	TotalFiber         float64 `json:"totalFiber"`
	TotalSugar         float64 `json:"totalSugar"`
}

type Meal struct {
	ID               string            `json:"id"`
	ImageURL         string            `json:"imageUrl"`
	FileName         string            `json:"fileName"`
	Status           string            `json:"status"`
	DetectedFoods    []FoodItem        `json:"detectedFoods"`
	NutritionSummary *NutritionSummary `json:"nutritionSummary"`
	ErrorMessage     string            `json:"errorMessage"`
	UploadedAt       string            `json:"uploadedAt"`
	AnalyzedAt       *string           `json:"analyzedAt"`
}

type MealList struct {
	Meals      []Meal `json:"meals"`
	TotalMeals int    `json:"totalMeals"`
}

type UploadReceipt struct {
	ID         string `json:"id"`
	ImageURL   string `json:"imageUrl"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	UploadedAt string `json:"uploadedAt"`
}

type FoodSearchItem struct {
	ID               uint      `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	NutritionPer100g Nutrition `json:"nutritionPer100g"`
}

type FoodSearchResult struct {
	Results      []FoodSearchItem `json:"results"`
	TotalResults int              `json:"totalResults"`
}

type MealDigest struct {
	ID         string    `json:"id"`
	ImageURL   string    `json:"imageUrl"`
	UploadedAt string    `json:"uploadedAt"`
	Nutrition  Nutrition `json:"nutrition"`
	FoodItems  []string  `json:"foodItems"`
}

type DailyStats struct {
	Date       string         `json:"date"`
	Consumed   Nutrition      `json:"consumed"`
	Goals      NutritionGoals `json:"goals"`
	Remaining  Nutrition      `json:"remaining"`
	Meals      []MealDigest   `json:"meals"`
	TotalMeals int            `json:"totalMeals"`
}
