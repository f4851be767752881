package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) TodayStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	now := time.Now()
	stats, err := handler.statsService.BuildDailyStats(user, now, now, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build stats")
	}

	return c.JSON(buildDailyStatsResponse(stats))
}

func (handler *Handler) DailyStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	raw := c.Query("date")
	if raw == "" {
		return apiError(c, fiber.StatusBadRequest, "query parameter date is required")
	}
	day, err := time.ParseInLocation(dateOnlyFormat, raw, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	stats, err := handler.statsService.BuildDailyStats(user, day, time.Now(), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build stats")
	}

	return c.JSON(buildDailyStatsResponse(stats))
}
