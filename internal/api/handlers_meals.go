package api

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nutrilog/nutrilog/internal/db"
	"github.com/nutrilog/nutrilog/internal/services"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

func (handler *Handler) UploadMeal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "image file is required")
	}
	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	if err := services.ValidateMealImage(fileHeader.Size, contentType); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to read image")
	}
	defer file.Close()
	image, err := io.ReadAll(file)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to read image")
	}

	storedName := uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	if err := os.WriteFile(filepath.Join(handler.uploadsDir, storedName), image, 0o644); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to store image")
	}

	meal, err := handler.mealService.CreateUploadedMeal(user.ID, "/uploads/"+storedName, fileHeader.Filename, time.Now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to record meal")
	}

	// A full queue leaves the record in UPLOADED; it is re-enqueued on the
	// next restart.
	if err := handler.worker.Enqueue(meal.ID, image); err != nil {
		log.Printf("meals: analysis for %s not enqueued: %v", meal.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(uploadResponse{
		ID:         meal.ID,
		ImageURL:   meal.ImageURL,
		Status:     meal.Status,
		Message:    "Image uploaded successfully. Analysis will be performed shortly.",
		UploadedAt: meal.UploadedAt.Format(time.RFC3339),
	})
}

func (handler *Handler) ListMeals(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	meals, err := handler.mealService.ListForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to list meals")
	}

	return c.JSON(fiber.Map{"meals": buildMealResponses(meals), "totalMeals": len(meals)})
}

func (handler *Handler) GetMeal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	meal, err := handler.mealService.GetForUser(c.Params("id"), user.ID)
	if err != nil {
		if db.IsNotFound(err) {
			return apiError(c, fiber.StatusNotFound, "meal not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load meal")
	}

	return c.JSON(buildMealResponse(meal))
}

func (handler *Handler) GetMealAnalysis(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	meal, err := handler.mealService.GetForUser(c.Params("id"), user.ID)
	if err != nil {
		if db.IsNotFound(err) {
			return apiError(c, fiber.StatusNotFound, "meal not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load analysis")
	}

	return c.JSON(buildMealResponse(meal))
}

func (handler *Handler) DeleteMeal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.mealService.Delete(c.Params("id"), user.ID); err != nil {
		if db.IsNotFound(err) {
			return apiError(c, fiber.StatusNotFound, "meal not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete meal")
	}

	return c.JSON(fiber.Map{"deleted": true})
}

func (handler *Handler) SearchFoods(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return apiError(c, fiber.StatusBadRequest, "query parameter q is required")
	}

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return apiError(c, fiber.StatusBadRequest, "limit must be a positive integer")
		}
		limit = min(parsed, maxSearchLimit)
	}

	foods, err := handler.catalogService.Search(query, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to search foods")
	}

	return c.JSON(buildFoodSearchResponse(foods))
}

func (handler *Handler) CreateManualMeal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := manualEntryInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entries := make([]services.ManualFoodEntry, 0, len(input.Foods))
	for _, food := range input.Foods {
		entries = append(entries, services.ManualFoodEntry{
			Name:          food.Name,
			QuantityGrams: food.QuantityGrams,
			Nutrition:     food.Nutrition,
		})
	}

	meal, err := handler.mealService.CreateManualMeal(user.ID, entries, time.Now())
	if err != nil {
		if isManualEntryValidationError(err) {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to record meal")
	}

	return c.Status(fiber.StatusCreated).JSON(buildMealResponse(meal))
}

func isManualEntryValidationError(err error) bool {
	return errors.Is(err, services.ErrNoFoodEntries) ||
		errors.Is(err, services.ErrFoodNameRequired) ||
		errors.Is(err, services.ErrInvalidFoodQuantity)
}
