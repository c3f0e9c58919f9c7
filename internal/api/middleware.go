package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/terraincognita07/cycletrack/internal/models"
)

const (
	contextUserKey      = "user"
	contextLanguageKey  = "lang"
	contextRequestIDKey = "request_id"

	requestIDHeader = "X-Request-ID"
)

// passwordChangeRoutes stay reachable while a reset password is pending.
var passwordChangeRoutes = map[string]struct{}{
	"/api/auth/me":              {},
	"/api/auth/change-password": {},
	"/api/auth/logout":          {},
}

// RequestID tags every request with an id, reusing a sane inbound one.
func RequestID(c *fiber.Ctx) error {
	requestID := strings.TrimSpace(c.Get(requestIDHeader))
	if requestID == "" || len(requestID) > 128 {
		requestID = uuid.NewString()
	}
	c.Locals(contextRequestIDKey, requestID)
	c.Set(requestIDHeader, requestID)
	return c.Next()
}

func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	var language string
	if raw := strings.TrimSpace(c.Query("lang")); raw != "" {
		language = handler.i18n.NormalizeLanguage(raw)
	} else {
		language = handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	}
	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if user.MustChangePassword {
		if _, allowed := passwordChangeRoutes[strings.TrimRight(c.Path(), "/")]; !allowed {
			return apiError(c, fiber.StatusForbidden, "password change required")
		}
	}
	c.Locals(contextUserKey, user)
	return c.Next()
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

func (handler *Handler) currentLanguage(c *fiber.Ctx) string {
	if language, ok := c.Locals(contextLanguageKey).(string); ok && language != "" {
		return language
	}
	return handler.i18n.DefaultLanguage()
}

func requestID(c *fiber.Ctx) string {
	value, _ := c.Locals(contextRequestIDKey).(string)
	return value
}
