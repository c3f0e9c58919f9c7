package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api", handler.LanguageMiddleware)

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("", handler.GetDays)
	days.Get("/:date", handler.GetDay)
	days.Put("/:date", handler.UpsertDay)
	days.Delete("/:date", handler.DeleteDay)

	periods := api.Group("/periods", handler.AuthRequired)
	periods.Get("", handler.GetPeriods)
	periods.Post("", handler.CreatePeriod)
	periods.Delete("/:id", handler.DeletePeriod)

	symptoms := api.Group("/symptoms", handler.AuthRequired)
	symptoms.Get("", handler.GetSymptoms)
	symptoms.Post("", handler.CreateSymptom)
	symptoms.Delete("/:id", handler.DeleteSymptom)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("/cycle", handler.GetCycleSettings)
	settings.Put("/cycle", handler.UpdateCycleSettings)

	cycles := api.Group("/cycle", handler.AuthRequired)
	cycles.Get("/calendar", handler.GetCalendar)
	cycles.Get("/calendar.ics", handler.GetCalendarFeed)
	cycles.Get("/history", handler.GetHistory)
	cycles.Get("/current", handler.GetCurrentCycle)
	cycles.Get("/predictions", handler.GetPredictions)

	app.Use(handler.NotFound)
}
