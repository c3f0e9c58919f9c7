package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycletrack/internal/services"
)

type dayRequest struct {
	IsPeriod   bool   `json:"is_period"`
	Flow       string `json:"flow"`
	SymptomIDs []uint `json:"symptom_ids"`
	Notes      string `json:"notes"`
}

func (handler *Handler) GetDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	logs, err := handler.days.ListLogs(user.ID, c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	response := make([]dayResponse, 0, len(logs))
	for _, entry := range logs {
		response = append(response, newDayResponse(entry))
	}
	return c.JSON(response)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entry, err := handler.days.GetDay(user.ID, c.Params("date"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(newDayResponse(entry))
}

func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var request dayRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	entry, err := handler.days.UpsertDay(user.ID, c.Params("date"), services.DayEntryInput{
		IsPeriod:   request.IsPeriod,
		Flow:       request.Flow,
		Notes:      request.Notes,
		SymptomIDs: request.SymptomIDs,
	})
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(newDayResponse(entry))
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.days.DeleteDay(user.ID, c.Params("date")); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
