package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nutrilog/nutrilog/internal/services"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(buildProfileResponse(user, time.Now()))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	update := services.ProfileUpdate{
		Name:          input.Name,
		HeightCm:      input.Height,
		WeightKg:      input.Weight,
		Gender:        input.Gender,
		ActivityLevel: input.ActivityLevel,
		Goal:          input.Goal,
	}
	if input.DateOfBirth != nil {
		parsed, err := time.Parse(dateOnlyFormat, *input.DateOfBirth)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date of birth, expected YYYY-MM-DD")
		}
		update.DateOfBirth = &parsed
	}

	updated, err := handler.profileService.UpdateProfile(user.ID, update)
	if err != nil {
		if isProfileValidationError(err) {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
	}

	return c.JSON(buildProfileResponse(&updated, time.Now()))
}

func isProfileValidationError(err error) bool {
	return errors.Is(err, services.ErrInvalidGender) ||
		errors.Is(err, services.ErrInvalidActivityLevel) ||
		errors.Is(err, services.ErrInvalidGoal) ||
		errors.Is(err, services.ErrInvalidHeight) ||
		errors.Is(err, services.ErrInvalidWeight)
}
