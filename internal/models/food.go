package models

// FoodComposition is a catalog entry with nutrition per 100 grams.
type FoodComposition struct {
	ID            uint   `gorm:"primaryKey"`
	Code          string `gorm:"uniqueIndex;not null"`
	Name          string `gorm:"index;not null"`
	Category      string
	Calories      float64
	Protein       float64
	Carbohydrates float64
	Fat           float64
	Fiber         float64
	Sugar         float64
	Source        string
}

func (food FoodComposition) Per100g() NutritionInfo {
	return NutritionInfo{
		Calories:      food.Calories,
		Protein:       food.Protein,
		Carbohydrates: food.Carbohydrates,
		Fat:           food.Fat,
		Fiber:         food.Fiber,
		Sugar:         food.Sugar,
	}
}
