package services

import (
	"time"

	"github.com/nutrilog/nutrilog/internal/models"
)

type StatsMealReader interface {
	ListAnalyzedForUserBetween(userID uint, from time.Time, to time.Time) ([]models.Meal, error)
}

type StatsService struct {
	meals StatsMealReader
}

func NewStatsService(meals StatsMealReader) *StatsService {
	return &StatsService{meals: meals}
}

// RemainingNutrition is goal minus consumed. Values are deliberately not
// floored at zero: a negative value means the goal was exceeded.
type RemainingNutrition struct {
	Calories      float64
	Protein       float64
	Carbohydrates float64
	Fat           float64
}

type MealDigest struct {
	ID         string
	ImageURL   string
	UploadedAt time.Time
	Nutrition  models.NutritionInfo
	FoodItems  []string
}

type DailyStats struct {
	Date       time.Time
	Consumed   models.NutritionInfo
	Goals      NutritionGoals
	Remaining  RemainingNutrition
	Meals      []MealDigest
	TotalMeals int
}

// DateAtLocation truncates an instant to the start of its calendar day.
func DateAtLocation(moment time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	local := moment.In(location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
}

// BuildDailyStats aggregates the user's analyzed meals for one calendar day.
func (service *StatsService) BuildDailyStats(user *models.User, day time.Time, now time.Time, location *time.Location) (DailyStats, error) {
	from := DateAtLocation(day, location)
	to := from.AddDate(0, 0, 1)

	meals, err := service.meals.ListAnalyzedForUserBetween(user.ID, from, to)
	if err != nil {
		return DailyStats{}, err
	}

	consumed := sumMealSummaries(meals)
	goals := GoalsForUser(user, now)
	remaining := RemainingNutrition{
		Calories:      Round2(goals.Calories - consumed.Calories),
		Protein:       Round2(goals.Protein - consumed.Protein),
		Carbohydrates: Round2(goals.Carbohydrates - consumed.Carbohydrates),
		Fat:           Round2(goals.Fat - consumed.Fat),
	}

	return DailyStats{
		Date:       from,
		Consumed:   consumed,
		Goals:      goals,
		Remaining:  remaining,
		Meals:      buildMealDigests(meals),
		TotalMeals: len(meals),
	}, nil
}

func sumMealSummaries(meals []models.Meal) models.NutritionInfo {
	var consumed models.NutritionInfo
	for _, meal := range meals {
		summary := meal.NutritionSummary
		if summary == nil {
			continue
		}
		consumed.Calories += summary.TotalCalories
		consumed.Protein += summary.TotalProtein
		consumed.Carbohydrates += summary.TotalCarbohydrates
		consumed.Fat += summary.TotalFat
		consumed.Fiber += summary.TotalFiber
		consumed.Sugar += summary.TotalSugar
	}
	consumed.Calories = Round2(consumed.Calories)
	consumed.Protein = Round2(consumed.Protein)
	consumed.Carbohydrates = Round2(consumed.Carbohydrates)
	consumed.Fat = Round2(consumed.Fat)
	consumed.Fiber = Round2(consumed.Fiber)
	consumed.Sugar = Round2(consumed.Sugar)
	return consumed
}

func buildMealDigests(meals []models.Meal) []MealDigest {
	digests := make([]MealDigest, 0, len(meals))
	for _, meal := range meals {
		var nutrition models.NutritionInfo
		if summary := meal.NutritionSummary; summary != nil {
			nutrition = models.NutritionInfo{
				Calories:      summary.TotalCalories,
				Protein:       summary.TotalProtein,
				Carbohydrates: summary.TotalCarbohydrates,
				Fat:           summary.TotalFat,
				Fiber:         summary.TotalFiber,
				Sugar:         summary.TotalSugar,
			}
		}

		foodNames := make([]string, 0, len(meal.DetectedFoods))
		for _, food := range meal.DetectedFoods {
			foodNames = append(foodNames, food.Name)
		}

		digests = append(digests, MealDigest{
			ID:         meal.ID,
			ImageURL:   meal.ImageURL,
			UploadedAt: meal.UploadedAt,
			Nutrition:  nutrition,
			FoodItems:  foodNames,
		})
	}
	return digests
}
