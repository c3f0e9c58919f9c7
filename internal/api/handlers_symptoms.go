package api

import "github.com/gofiber/fiber/v2"

type symptomRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func (handler *Handler) GetSymptoms(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	symptoms, err := handler.symptoms.List(user.ID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	response := make([]symptomResponse, 0, len(symptoms))
	for _, symptom := range symptoms {
		response = append(response, newSymptomResponse(symptom))
	}
	return c.JSON(response)
}

func (handler *Handler) CreateSymptom(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var request symptomRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	symptom, err := handler.symptoms.Create(user.ID, request.Name, request.Icon, request.Color)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newSymptomResponse(symptom))
}

func (handler *Handler) DeleteSymptom(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, valid := parseIDParam(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid symptom id")
	}
	if err := handler.symptoms.Delete(user.ID, id); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
