package db

import (
	"time"

	"github.com/nutrilog/nutrilog/internal/models"
	"gorm.io/gorm"
)

type MealRepository struct {
	database *gorm.DB
}

func NewMealRepository(database *gorm.DB) *MealRepository {
	return &MealRepository{database: database}
}

func (repo *MealRepository) Create(meal *models.Meal) error {
	return repo.database.Create(meal).Error
}

func (repo *MealRepository) FindByID(mealID string) (models.Meal, error) {
	var meal models.Meal
	if err := repo.database.Where("id = ?", mealID).First(&meal).Error; err != nil {
		return models.Meal{}, err
	}
	return meal, nil
}

func (repo *MealRepository) FindByIDForUser(mealID string, userID uint) (models.Meal, error) {
	var meal models.Meal
	if err := repo.database.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return models.Meal{}, err
	}
	return meal, nil
}

func (repo *MealRepository) ListForUser(userID uint) ([]models.Meal, error) {
	meals := make([]models.Meal, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (repo *MealRepository) ListAnalyzedForUserBetween(userID uint, from time.Time, to time.Time) ([]models.Meal, error) {
	meals := make([]models.Meal, 0)
	if err := repo.database.
		Where("user_id = ? AND status = ? AND uploaded_at >= ? AND uploaded_at < ?",
			userID, models.MealStatusAnalyzed, from, to).
		Order("uploaded_at ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (repo *MealRepository) Delete(mealID string, userID uint) error {
	result := repo.database.Where("id = ? AND user_id = ?", mealID, userID).Delete(&models.Meal{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *MealRepository) UpdateStatus(mealID string, status string, errorMessage string) error {
	return repo.database.Model(&models.Meal{}).Where("id = ?", mealID).Updates(map[string]any{
		"status":        status,
		"error_message": errorMessage,
	}).Error
}

func (repo *MealRepository) SaveAnalysis(mealID string, foods []models.FoodItem, summary models.NutritionSummary, analyzedAt time.Time) error {
	return repo.database.Model(&models.Meal{ID: mealID}).
		Select("Status", "DetectedFoods", "NutritionSummary", "ErrorMessage", "AnalyzedAt").
		Updates(models.Meal{
			Status:           models.MealStatusAnalyzed,
			DetectedFoods:    foods,
			NutritionSummary: &summary,
			AnalyzedAt:       &analyzedAt,
		}).Error
}

// ListUnfinished returns meals still waiting on analysis, oldest first.
// Used at startup to re-enqueue work interrupted by a restart.
func (repo *MealRepository) ListUnfinished() ([]models.Meal, error) {
	meals := make([]models.Meal, 0)
	if err := repo.database.
		Where("status IN ?", []string{models.MealStatusUploaded, models.MealStatusProcessing}).
		Order("uploaded_at ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}
