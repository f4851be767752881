package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nutrilog/nutrilog/pkg/client"
)

const usage = `nutrilogctl — command line companion for a NutriLog server

Usage:
  nutrilogctl register -name NAME -email EMAIL -password PASSWORD
  nutrilogctl login -email EMAIL -password PASSWORD
  nutrilogctl logout
  nutrilogctl profile
  nutrilogctl profile-set [-height CM] [-weight KG] [-dob YYYY-MM-DD] [-gender G] [-activity A] [-goal G]
  nutrilogctl upload -file PHOTO [-wait]
  nutrilogctl meals
  nutrilogctl meal -id ID
  nutrilogctl delete -id ID
  nutrilogctl search -q QUERY [-limit N]
  nutrilogctl manual -food "NAME:GRAMS" [-food ...]
  nutrilogctl today
  nutrilogctl daily -date YYYY-MM-DD

The server address comes from NUTRILOG_API (default http://localhost:8080).`

func main() {
	log.SetFlags(0)
	godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	sessionPath, err := client.DefaultSessionPath()
	if err != nil {
		log.Fatalf("session path: %v", err)
	}
	apiClient := client.New(envOr("NUTRILOG_API", "http://localhost:8080"), client.NewSessionStore(sessionPath))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, apiClient, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, apiClient *client.Client, command string, args []string) error {
	switch command {
	case "register":
		return runRegister(ctx, apiClient, args)
	case "login":
		return runLogin(ctx, apiClient, args)
	case "logout":
		if err := apiClient.Logout(); err != nil {
			return err
		}
		fmt.Println("signed out")
		return nil
	case "profile":
		return runProfile(ctx, apiClient)
	case "profile-set":
		return runProfileSet(ctx, apiClient, args)
	case "upload":
		return runUpload(ctx, apiClient, args)
	case "meals":
		return runMeals(ctx, apiClient)
	case "meal":
		return runMeal(ctx, apiClient, args)
	case "delete":
		return runDelete(ctx, apiClient, args)
	case "search":
		return runSearch(ctx, apiClient, args)
	case "manual":
		return runManual(ctx, apiClient, args)
	case "today":
		stats, err := apiClient.TodayStats(ctx)
		if err != nil {
			return err
		}
		printStats(stats)
		return nil
	case "daily":
		return runDaily(ctx, apiClient, args)
	case "help", "-h", "--help":
		fmt.Println(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q, run nutrilogctl help", command)
	}
}

func runRegister(ctx context.Context, apiClient *client.Client, args []string) error {
	flags := flag.NewFlagSet("register", flag.ExitOnError)
	name := flags.String("name", "", "display name")
	email := flags.String("email", "", "email address")
	password := flags.String("password", "", "password, 8+ characters")
	flags.Parse(args)

	user, err := apiClient.Register(ctx, client.RegisterInput{Name: *name, Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("registered %s — check %s for the verification link\n", user.Name, user.Email)
	return nil
}

func runLogin(ctx context.Context, apiClient *client.Client, args []string) error {
	flags := flag.NewFlagSet("login", flag.ExitOnError)
	email := flags.String("email", "", "email address")
	password := flags.String("password", "", "password")
	flags.Parse(args)

	user, err := apiClient.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func runProfile(ctx context.Context, apiClient *client.Client) error {
	profile, err := apiClient.GetProfile(ctx)
	if err != nil {
		return err
	}
	printProfile(profile)
	if profile.NeedsOnboarding() {
		fmt.Println("\nprofile incomplete: set height, weight and goal with profile-set to unlock personalized goals")
	}
	return nil
}

func runProfileSet(ctx context.Context, apiClient *client.Client, args []string) error {
	flags := flag.NewFlagSet("profile-set", flag.ExitOnError)
	height := flags.Float64("height", 0, "height in cm")
	weight := flags.Float64("weight", 0, "weight in kg")
	dob := flags.String("dob", "", "date of birth, YYYY-MM-DD")
	gender := flags.String("gender", "", "MALE, FEMALE or OTHER")
	activity := flags.String("activity", "", "SEDENTARY, LIGHTLY_ACTIVE, MODERATELY_ACTIVE, VERY_ACTIVE or EXTREMELY_ACTIVE")
	goal := flags.String("goal", "", "WEIGHT_LOSS, MUSCLE_GAIN, WEIGHT_GAIN or MAINTENANCE")
	flags.Parse(args)

	update := client.ProfileUpdate{}
	if *height > 0 {
		update.Height = height
	}
	if *weight > 0 {
		update.Weight = weight
	}
	if *dob != "" {
		update.DateOfBirth = dob
	}
	if *gender != "" {
		update.Gender = gender
	}
	if *activity != "" {
		update.ActivityLevel = activity
	}
	if *goal != "" {
		update.Goal = goal
	}

	profile, err := apiClient.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	printProfile(profile)
	return nil
}

func runUpload(ctx context.Context, apiClient *client.Client, args []string) error {
	flags := flag.NewFlagSet("upload", flag.ExitOnError)
	path := flags.String("file", "", "meal photo (jpeg, png or webp)")
	wait := flags.Bool("wait", false, "poll until the analysis finishes")
	flags.Parse(args)

	if *path == "" {
		return errors.New("-file is required")
	}
	file, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer file.Close()

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(*path)))
	receipt, err := apiClient.UploadMeal(ctx, filepath.Base(*path), contentType, file)
	if err != nil {
		return err
	}
	fmt.Printf("uploaded %s (%s)\n", receipt.ID, receipt.Status)

	if !*wait {
		fmt.Printf("check progress with: nutrilogctl meal -id %s\n", receipt.ID)
		return nil
	}

	fmt.Println("waiting for analysis...")
	meal, err := apiClient.WaitForAnalysis(ctx, receipt.ID)
	if err != nil {
		return err
	}
	printMeal(meal)
	return nil
}

func runMeals(ctx context.Context, apiClient *client.Client) error {
	list, err := apiClient.ListMeals(ctx)
	if err != nil {
		return err
	}
	for _, meal := range list.Meals {
		calories := 0.0
		if meal.NutritionSummary != nil {
			calories = meal.NutritionSummary.TotalCalories
		}
		fmt.Printf("%s  %-10s  %7.1f kcal  %s\n", meal.ID, meal.Status, calories, meal.FileName)
	}
	fmt.Printf("%d meal(s)\n", list.TotalMeals)
	return nil
}

func runMeal(ctx context.Context, apiClient *client.Client, args []string) error {
	flags := flag.NewFlagSet("meal", flag.ExitOnError)
	id := flags.String("id", "", "meal id")
	flags.Parse(args)

	meal, err := apiClient.GetMeal(ctx, *id)
	if err != nil {
		return err
	}
	printMeal(meal)
	return nil
}

func runDelete(ctx context.Context, apiClient *client.Client, args []string) error {
	flags := flag.NewFlagSet("delete", flag.ExitOnError)
	id := flags.String("id", "", "meal id")
	yes := flags.Bool("yes", false, "skip the confirmation prompt")
	flags.Parse(args)

	if !*yes {
		fmt.Printf("delete meal %s? [y/N] ", *id)
		var answer string
		fmt.Scanln(&answer)
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("aborted")
			return nil
		}
	}

	if err := apiClient.DeleteMeal(ctx, *id); err != nil {
		return err
	}
	fmt.Println("deleted")
	return nil
}

func runSearch(ctx context.Context, apiClient *client.Client, args []string) error {
	flags := flag.NewFlagSet("search", flag.ExitOnError)
	query := flags.String("q", "", "food name to search for")
	limit := flags.Int("limit", 10, "max results")
	flags.Parse(args)

	result, err := apiClient.SearchFoods(ctx, *query, *limit)
	if err != nil {
		return err
	}
	for _, food := range result.Results {
		fmt.Printf("%-28s %7.1f kcal/100g  (%s)\n", food.Name, food.NutritionPer100g.Calories, food.Category)
	}
	fmt.Printf("%d result(s)\n", result.TotalResults)
	return nil
}

type foodArgs []string

func (list *foodArgs) String() string     { return strings.Join(*list, ",") }
func (list *foodArgs) Set(v string) error { *list = append(*list, v); return nil }

func runManual(ctx context.Context, apiClient *client.Client, args []string) error {
	flags := flag.NewFlagSet("manual", flag.ExitOnError)
	var foods foodArgs
	flags.Var(&foods, "food", `food as "NAME:GRAMS", repeatable`)
	flags.Parse(args)

	if len(foods) == 0 {
		return errors.New("at least one -food is required")
	}

	selections := make([]client.ManualSelection, 0, len(foods))
	for _, raw := range foods {
		name, gramsRaw, ok := strings.Cut(raw, ":")
		if !ok {
			return fmt.Errorf("invalid -food %q, expected NAME:GRAMS", raw)
		}
		grams, err := strconv.ParseFloat(gramsRaw, 64)
		if err != nil || grams <= 0 {
			return fmt.Errorf("invalid quantity in -food %q", raw)
		}

		result, err := apiClient.SearchFoods(ctx, name, 1)
		if err != nil {
			return err
		}
		if len(result.Results) == 0 {
			return fmt.Errorf("no catalog match for %q", name)
		}
		selections = append(selections, client.ManualSelection{Food: result.Results[0], QuantityGrams: grams})
	}

	meal, err := apiClient.CreateManualMeal(ctx, client.ScaleSelections(selections))
	if err != nil {
		return err
	}
	printMeal(meal)
	return nil
}

func runDaily(ctx context.Context, apiClient *client.Client, args []string) error {
	flags := flag.NewFlagSet("daily", flag.ExitOnError)
	date := flags.String("date", "", "day to report, YYYY-MM-DD")
	flags.Parse(args)

	stats, err := apiClient.DailyStatsFor(ctx, *date)
	if err != nil {
		return err
	}
	printStats(stats)
	return nil
}

func printProfile(profile client.Profile) {
	fmt.Printf("%s <%s>\n", profile.Name, profile.Email)
	if profile.Height != nil {
		fmt.Printf("  height: %.1f cm\n", *profile.Height)
	}
	if profile.Weight != nil {
		fmt.Printf("  weight: %.1f kg\n", *profile.Weight)
	}
	if profile.Age != nil {
		fmt.Printf("  age: %d\n", *profile.Age)
	}
	if profile.Goal != "" {
		fmt.Printf("  goal: %s (%s)\n", profile.Goal, profile.ActivityLevel)
	}
	if profile.TDEE != nil {
		fmt.Printf("  tdee: %.0f kcal\n", *profile.TDEE)
	}
	if goals := profile.NutritionGoals; goals != nil {
		fmt.Printf("  daily goals: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat\n",
			goals.Calories, goals.Protein, goals.Carbohydrates, goals.Fat)
	}
}

func printMeal(meal client.Meal) {
	fmt.Printf("%s  %s  %s\n", meal.ID, meal.Status, meal.FileName)
	if meal.ErrorMessage != "" {
		fmt.Printf("  error: %s\n", meal.ErrorMessage)
	}
	for _, food := range meal.DetectedFoods {
		fmt.Printf("  %-24s %6.0fg  %7.1f kcal  (%.0f%% confidence)\n",
			food.Name, food.QuantityGrams, food.Nutrition.Calories, food.Confidence*100)
	}
	if summary := meal.NutritionSummary; summary != nil {
		fmt.Printf("  total: %.1f kcal, %.1fg protein, %.1fg carbs, %.1fg fat\n",
			summary.TotalCalories, summary.TotalProtein, summary.TotalCarbohydrates, summary.TotalFat)
	}
}

func printStats(stats client.DailyStats) {
	fmt.Printf("%s — %d meal(s)\n", stats.Date, stats.TotalMeals)
	printProgressRow("calories", stats.Consumed.Calories, stats.Goals.Calories)
	printProgressRow("protein", stats.Consumed.Protein, stats.Goals.Protein)
	printProgressRow("carbs", stats.Consumed.Carbohydrates, stats.Goals.Carbohydrates)
	printProgressRow("fat", stats.Consumed.Fat, stats.Goals.Fat)
}

func printProgressRow(label string, consumed float64, goal float64) {
	percent := client.ProgressPercent(consumed, goal)
	width := int(client.ProgressBarWidth(percent) / 5)
	bar := strings.Repeat("#", width) + strings.Repeat("-", 20-width)
	fmt.Printf("  %-8s [%s] %6.1f / %6.1f  %5.1f%% %s\n",
		label, bar, consumed, goal, percent, client.ClassifyProgress(percent))
}

func envOr(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
