package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycletrack/internal/services"
)

type cycleSettingsRequest struct {
	CycleLength     int    `json:"cycle_length"`
	PeriodLength    int    `json:"period_length"`
	LastPeriodStart string `json:"last_period_start"`
}

func (handler *Handler) GetCycleSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	settings, err := handler.settings.LoadCycleSettings(user.ID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(newCycleSettingsResponse(settings))
}

func (handler *Handler) UpdateCycleSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var request cycleSettingsRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	settings, err := handler.settings.UpdateCycleSettings(user.ID, services.CycleSettingsInput{
		CycleLength:        request.CycleLength,
		PeriodLength:       request.PeriodLength,
		LastPeriodStartRaw: request.LastPeriodStart,
	})
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(newCycleSettingsResponse(settings))
}
