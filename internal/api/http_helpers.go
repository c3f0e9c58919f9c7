package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycletrack/internal/cycle"
	"github.com/terraincognita07/cycletrack/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

type serviceErrorMapping struct {
	target  error
	status  int
	message string
}

var serviceErrorMappings = []serviceErrorMapping{
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized, "invalid credentials"},
	{services.ErrWeakPassword, fiber.StatusBadRequest, "weak password"},
	{services.ErrEmailTaken, fiber.StatusConflict, "email already registered"},
	{services.ErrUserNotFound, fiber.StatusNotFound, "user not found"},

	{services.ErrInvalidDay, fiber.StatusBadRequest, "invalid date"},
	{services.ErrDayRange, fiber.StatusBadRequest, "invalid date range"},
	{services.ErrDayInFuture, fiber.StatusBadRequest, "date cannot be in the future"},
	{services.ErrDayNotFound, fiber.StatusNotFound, "day not found"},
	{services.ErrInvalidDayFlow, fiber.StatusBadRequest, "invalid flow value"},

	{services.ErrPeriodRangeInvalid, fiber.StatusBadRequest, "invalid period range"},
	{services.ErrPeriodStartInFuture, fiber.StatusBadRequest, "period cannot start in the future"},
	{services.ErrPeriodNotFound, fiber.StatusNotFound, "period not found"},

	{services.ErrInvalidSymptomID, fiber.StatusBadRequest, "invalid symptom id"},
	{services.ErrInvalidSymptomName, fiber.StatusBadRequest, "invalid symptom name"},
	{services.ErrInvalidSymptomColor, fiber.StatusBadRequest, "invalid symptom color"},
	{services.ErrSymptomNotFound, fiber.StatusNotFound, "symptom not found"},
	{services.ErrBuiltinSymptomDeleteForbidden, fiber.StatusBadRequest, "built-in symptom cannot be deleted"},

	{services.ErrSettingsCycleLengthOutOfRange, fiber.StatusBadRequest, "cycle length out of range"},
	{services.ErrSettingsPeriodLengthOutOfRange, fiber.StatusBadRequest, "period length out of range"},
	{services.ErrSettingsPeriodLengthIncompatible, fiber.StatusBadRequest, "period length incompatible with cycle length"},
	{services.ErrSettingsCycleStartDateInvalid, fiber.StatusBadRequest, "invalid last period start"},

	{cycle.ErrInvalidMonth, fiber.StatusBadRequest, "invalid month"},
}

// serviceError maps known service errors to their status and logs the rest
// as internal failures.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			return apiError(c, mapping.status, mapping.message)
		}
	}
	handler.log.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", requestID(c),
		"error", err,
	)
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}
