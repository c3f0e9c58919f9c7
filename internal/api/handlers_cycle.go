package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	month, calendar, err := handler.cycles.Calendar(user.ID, strings.TrimSpace(c.Query("month")))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"month": month, "days": calendar})
}

func (handler *Handler) GetHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	history, err := handler.cycles.History(user.ID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(newHistoryResponse(history))
}

func (handler *Handler) GetPredictions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	predictions, err := handler.cycles.Predictions(user.ID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(newPredictionHistoryResponse(predictions))
}

func (handler *Handler) GetCurrentCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	current, err := handler.cycles.Current(user.ID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(handler.newCurrentCycleResponse(current, handler.currentLanguage(c)))
}

func (handler *Handler) GetCalendarFeed(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	feed, err := handler.cycles.Feed(user.ID, handler.currentLanguage(c))
	if err != nil {
		return handler.serviceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="cycletrack.ics"`)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(feed)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
