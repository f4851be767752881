package client

import "math"

// ManualFood is one hand-picked food with nutrition already scaled to its
// quantity, ready for the manual entry endpoint.
type ManualFood struct {
	Name          string    `json:"name"`
	QuantityGrams float64   `json:"quantityGrams"`
	Nutrition     Nutrition `json:"nutrition"`
}

// ManualSelection pairs a catalog search hit with the quantity the user ate.
type ManualSelection struct {
	Food          FoodSearchItem
	QuantityGrams float64
}

// Scaled converts the catalog's per-100g nutrition to the selected quantity.
func (selection ManualSelection) Scaled() ManualFood {
	factor := selection.QuantityGrams / 100
	per100g := selection.Food.NutritionPer100g
	return ManualFood{
		Name:          selection.Food.Name,
		QuantityGrams: selection.QuantityGrams,
		Nutrition: Nutrition{
			Calories:      round2(per100g.Calories * factor),
			Protein:       round2(per100g.Protein * factor),
			Carbohydrates: round2(per100g.Carbohydrates * factor),
			Fat:           round2(per100g.Fat * factor),
			Fiber:         round2(per100g.Fiber * factor),
			Sugar:         round2(per100g.Sugar * factor),
		},
	}
}

// ScaleSelections converts a batch of selections in one go.
func ScaleSelections(selections []ManualSelection) []ManualFood {
	foods := make([]ManualFood, 0, len(selections))
	for _, selection := range selections {
		foods = append(foods, selection.Scaled())
	}
	return foods
}

// SumNutrition totals the scaled foods, for previewing a manual meal before
// submitting it.
func SumNutrition(foods []ManualFood) Nutrition {
	var total Nutrition
	for _, food := range foods {
		total.Calories += food.Nutrition.Calories
		total.Protein += food.Nutrition.Protein
		total.Carbohydrates += food.Nutrition.Carbohydrates
		total.Fat += food.Nutrition.Fat
		total.Fiber += food.Nutrition.Fiber
		total.Sugar += food.Nutrition.Sugar
	}
	total.Calories = round2(total.Calories)
	total.Protein = round2(total.Protein)
	total.Carbohydrates = round2(total.Carbohydrates)
	total.Fat = round2(total.Fat)
	total.Fiber = round2(total.Fiber)
	total.Sugar = round2(total.Sugar)
	return total
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
