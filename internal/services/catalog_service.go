package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/nutrilog/nutrilog/internal/models"
	"github.com/nutrilog/nutrilog/internal/services/catalogdata"
)

type CatalogFoodRepository interface {
	Count() (int64, error)
	CreateBatch(foods []models.FoodComposition) error
	FindByExactName(name string) (models.FoodComposition, error)
	SearchByName(query string, limit int) ([]models.FoodComposition, error)
}

type CatalogService struct {
	foods CatalogFoodRepository
}

func NewCatalogService(foods CatalogFoodRepository) *CatalogService {
	return &CatalogService{foods: foods}
}

// Seed loads the embedded composition data on first start. A non-empty
// catalog is left untouched.
func (service *CatalogService) Seed() error {
	count, err := service.foods.Count()
	if err != nil {
		return fmt.Errorf("count catalog entries: %w", err)
	}
	if count > 0 {
		return nil
	}

	foods, err := parseCatalogCSV(catalogdata.FoodsCSV)
	if err != nil {
		return fmt.Errorf("parse embedded catalog: %w", err)
	}
	if err := service.foods.CreateBatch(foods); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	log.Printf("seeded food catalog with %d entries", len(foods))
	return nil
}

func (service *CatalogService) Search(query string, limit int) ([]models.FoodComposition, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []models.FoodComposition{}, nil
	}
	return service.foods.SearchByName(trimmed, limit)
}

// MatchLabel resolves a detected label to a catalog entry, preferring an
// exact name match over a substring match.
func (service *CatalogService) MatchLabel(label string) (models.FoodComposition, bool, error) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return models.FoodComposition{}, false, nil
	}

	if food, err := service.foods.FindByExactName(trimmed); err == nil {
		return food, true, nil
	}

	matches, err := service.foods.SearchByName(trimmed, 1)
	if err != nil {
		return models.FoodComposition{}, false, err
	}
	if len(matches) == 0 {
		return models.FoodComposition{}, false, nil
	}
	return matches[0], true, nil
}

func parseCatalogCSV(data []byte) ([]models.FoodComposition, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("catalog csv has no data rows")
	}

	foods := make([]models.FoodComposition, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 9 {
			log.Printf("skipping malformed catalog row: %v", row)
			continue
		}
		foods = append(foods, models.FoodComposition{
			Code:          strings.TrimSpace(row[0]),
			Name:          strings.TrimSpace(row[1]),
			Category:      strings.TrimSpace(row[2]),
			Calories:      parseCatalogFloat(row[3]),
			Protein:       parseCatalogFloat(row[4]),
			Carbohydrates: parseCatalogFloat(row[5]),
			Fat:           parseCatalogFloat(row[6]),
			Fiber:         parseCatalogFloat(row[7]),
			Sugar:         parseCatalogFloat(row[8]),
			Source:        "nutrilog-builtin",
		})
	}
	return foods, nil
}

func parseCatalogFloat(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}
