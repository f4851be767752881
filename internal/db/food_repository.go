package db

import (
	"errors"
	"strings"

	"github.com/nutrilog/nutrilog/internal/models"
	"gorm.io/gorm"
)

type FoodRepository struct {
	database *gorm.DB
}

func NewFoodRepository(database *gorm.DB) *FoodRepository {
	return &FoodRepository{database: database}
}

func (repo *FoodRepository) Count() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.FoodComposition{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *FoodRepository) CreateBatch(foods []models.FoodComposition) error {
	if len(foods) == 0 {
		return nil
	}
	return repo.database.CreateInBatches(foods, 200).Error
}

func (repo *FoodRepository) FindByID(foodID uint) (models.FoodComposition, error) {
	var food models.FoodComposition
	if err := repo.database.First(&food, foodID).Error; err != nil {
		return models.FoodComposition{}, err
	}
	return food, nil
}

func (repo *FoodRepository) FindByExactName(name string) (models.FoodComposition, error) {
	var food models.FoodComposition
	if err := repo.database.
		Where("lower(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&food).Error; err != nil {
		return models.FoodComposition{}, err
	}
	return food, nil
}

func (repo *FoodRepository) SearchByName(query string, limit int) ([]models.FoodComposition, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	foods := make([]models.FoodComposition, 0)
	if err := repo.database.
		Where("lower(name) LIKE ?", pattern).
		Order("name ASC").
		Limit(limit).
		Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
