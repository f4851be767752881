package services

import (
	"math"

	"github.com/nutrilog/nutrilog/internal/models"
)

// Round2 rounds to two decimal places, matching the precision the API exposes.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// ScaleNutrition converts per-100g reference values to an actual quantity.
func ScaleNutrition(per100g models.NutritionInfo, quantityGrams float64) models.NutritionInfo {
	factor := quantityGrams / 100
	return models.NutritionInfo{
		Calories:      Round2(per100g.Calories * factor),
		Protein:       Round2(per100g.Protein * factor),
		Carbohydrates: Round2(per100g.Carbohydrates * factor),
		Fat:           Round2(per100g.Fat * factor),
		Fiber:         Round2(per100g.Fiber * factor),
		Sugar:         Round2(per100g.Sugar * factor),
	}
}

// SummarizeFoods sums the per-item nutrition of a meal into its aggregate summary.
func SummarizeFoods(foods []models.FoodItem) models.NutritionSummary {
	var summary models.NutritionSummary
	for _, food := range foods {
		summary.TotalCalories += food.Nutrition.Calories
		summary.TotalProtein += food.Nutrition.Protein
		summary.TotalCarbohydrates += food.Nutrition.Carbohydrates
		summary.TotalFat += food.Nutrition.Fat
		summary.TotalFiber += food.Nutrition.Fiber
		summary.TotalSugar += food.Nutrition.Sugar
	}
	summary.TotalCalories = Round2(summary.TotalCalories)
	summary.TotalProtein = Round2(summary.TotalProtein)
	summary.TotalCarbohydrates = Round2(summary.TotalCarbohydrates)
	summary.TotalFat = Round2(summary.TotalFat)
	summary.TotalFiber = Round2(summary.TotalFiber)
	summary.TotalSugar = Round2(summary.TotalSugar)
	return summary
}
