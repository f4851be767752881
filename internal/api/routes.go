package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/send-verification-email", handler.SendVerificationEmail)
	auth.Get("/verify-email/:token", handler.VerifyEmail)

	user := api.Group("/user", handler.AuthRequired)
	user.Get("/profile", handler.GetProfile)
	user.Put("/profile", handler.UpdateProfile)

	meals := api.Group("/meals", handler.AuthRequired)
	meals.Get("", handler.ListMeals)
	meals.Post("/upload", handler.UploadMeal)
	meals.Get("/search", handler.SearchFoods)
	meals.Post("/manual", handler.CreateManualMeal)
	meals.Get("/:id", handler.GetMeal)
	meals.Get("/:id/analysis", handler.GetMealAnalysis)
	meals.Delete("/:id", handler.DeleteMeal)

	stats := api.Group("/stats", handler.AuthRequired)
	stats.Get("/today", handler.TodayStats)
	stats.Get("/daily", handler.DailyStats)
}
