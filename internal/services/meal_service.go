package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nutrilog/nutrilog/internal/models"
)

const maxMealImageBytes = 10 << 20 // 10MB

var (
	ErrImageEmpty           = errors.New("image file is empty")
	ErrImageTooLarge        = errors.New("image exceeds the 10MB limit")
	ErrUnsupportedImageType = errors.New("unsupported image format, expected JPEG, PNG or WEBP")
	ErrNoFoodEntries        = errors.New("at least one food entry is required")
	ErrFoodNameRequired     = errors.New("food name is required")
	ErrInvalidFoodQuantity  = errors.New("food quantity must be positive")
)

var supportedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

type MealStore interface {
	Create(meal *models.Meal) error
	FindByIDForUser(mealID string, userID uint) (models.Meal, error)
	ListForUser(userID uint) ([]models.Meal, error)
	Delete(mealID string, userID uint) error
}

type MealService struct {
	meals MealStore
}

func NewMealService(meals MealStore) *MealService {
	return &MealService{meals: meals}
}

func ValidateMealImage(size int64, contentType string) error {
	if size <= 0 {
		return ErrImageEmpty
	}
	if size > maxMealImageBytes {
		return ErrImageTooLarge
	}
	if _, ok := supportedImageTypes[strings.ToLower(strings.TrimSpace(contentType))]; !ok {
		return ErrUnsupportedImageType
	}
	return nil
}

// CreateUploadedMeal records a freshly uploaded image. Analysis is enqueued by
// the caller; the record starts in UPLOADED and is only advanced by the worker.
func (service *MealService) CreateUploadedMeal(userID uint, imageURL string, fileName string, now time.Time) (models.Meal, error) {
	meal := models.Meal{
		ID:         uuid.NewString(),
		UserID:     userID,
		ImageURL:   imageURL,
		FileName:   fileName,
		Status:     models.MealStatusUploaded,
		UploadedAt: now,
	}
	if err := service.meals.Create(&meal); err != nil {
		return models.Meal{}, err
	}
	return meal, nil
}

// ManualFoodEntry is a user-selected catalog item already scaled to its
// actual quantity. Immutable once submitted.
type ManualFoodEntry struct {
	Name          string
	QuantityGrams float64
	Nutrition     models.NutritionInfo
}

func ValidateManualEntries(entries []ManualFoodEntry) error {
	if len(entries) == 0 {
		return ErrNoFoodEntries
	}
	for _, entry := range entries {
		if strings.TrimSpace(entry.Name) == "" {
			return ErrFoodNameRequired
		}
		if entry.QuantityGrams <= 0 {
			return ErrInvalidFoodQuantity
		}
	}
	return nil
}

// CreateManualMeal stores a manual entry as an already-analyzed meal record.
// Manual entries carry full confidence.
func (service *MealService) CreateManualMeal(userID uint, entries []ManualFoodEntry, now time.Time) (models.Meal, error) {
	if err := ValidateManualEntries(entries); err != nil {
		return models.Meal{}, err
	}

	foods := make([]models.FoodItem, 0, len(entries))
	for _, entry := range entries {
		foods = append(foods, models.FoodItem{
			Name:          entry.Name,
			Confidence:    1.0,
			QuantityGrams: entry.QuantityGrams,
			Nutrition:     entry.Nutrition,
		})
	}
	summary := SummarizeFoods(foods)

	analyzedAt := now
	meal := models.Meal{
		ID:               uuid.NewString(),
		UserID:           userID,
		FileName:         "Manual Entry",
		Status:           models.MealStatusAnalyzed,
		DetectedFoods:    foods,
		NutritionSummary: &summary,
		UploadedAt:       now,
		AnalyzedAt:       &analyzedAt,
	}
	if err := service.meals.Create(&meal); err != nil {
		return models.Meal{}, err
	}
	return meal, nil
}

func (service *MealService) GetForUser(mealID string, userID uint) (models.Meal, error) {
	return service.meals.FindByIDForUser(mealID, userID)
}

func (service *MealService) ListForUser(userID uint) ([]models.Meal, error) {
	return service.meals.ListForUser(userID)
}

func (service *MealService) Delete(mealID string, userID uint) error {
	return service.meals.Delete(mealID, userID)
}
