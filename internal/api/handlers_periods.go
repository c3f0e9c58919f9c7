package api

import "github.com/gofiber/fiber/v2"

type periodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Notes     string `json:"notes"`
}

func (handler *Handler) GetPeriods(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.periods.List(user.ID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	response := make([]periodResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, newPeriodResponse(entry))
	}
	return c.JSON(response)
}

func (handler *Handler) CreatePeriod(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var request periodRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	entry, err := handler.periods.Create(user.ID, request.StartDate, request.EndDate, request.Notes)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newPeriodResponse(entry))
}

func (handler *Handler) DeletePeriod(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, valid := parseIDParam(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid period id")
	}
	if err := handler.periods.Delete(user.ID, id); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
