package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycletrack/internal/models"
	"github.com/terraincognita07/cycletrack/internal/services"
)

type credentialsRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	RememberMe  bool   `json:"remember_me"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var request credentialsRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.auth.Register(request.Email, request.Password, request.DisplayName)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err != nil {
		return handler.serviceError(c, err)
	}
	handler.log.Info("user registered", "user_id", user.ID, "request_id", requestID(c))

	if err := handler.issueSession(c, &user, request.RememberMe, fiber.StatusCreated); err != nil {
		return handler.serviceError(c, err)
	}
	return nil
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	key := clientKey(c)
	if handler.loginLimiter.blocked(key, handler.now()) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	var request credentialsRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.auth.Authenticate(request.Email, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.fail(key, handler.now())
			handler.log.Warn("login failed", "ip", key, "request_id", requestID(c))
		}
		return handler.serviceError(c, err)
	}
	handler.loginLimiter.reset(key)

	return handler.issueSession(c, &user, request.RememberMe, fiber.StatusOK)
}

func (handler *Handler) issueSession(c *fiber.Ctx, user *models.User, rememberMe bool, status int) error {
	ttl := defaultAuthTokenTTL
	if rememberMe {
		ttl = rememberAuthTokenTTL
	}
	token, err := handler.buildToken(user, ttl)
	if err != nil {
		return err
	}
	handler.setAuthCookie(c, token, ttl, rememberMe)

	return c.Status(status).JSON(fiber.Map{
		"user":       newUserResponse(user),
		"token":      token,
		"expires_at": handler.now().Add(ttl).UTC().Format(time.RFC3339),
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(newUserResponse(user))
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var request changePasswordRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.auth.ChangePassword(user.ID, request.CurrentPassword, request.NewPassword); err != nil {
		return handler.serviceError(c, err)
	}
	handler.log.Info("password changed", "user_id", user.ID, "request_id", requestID(c))
	return c.JSON(fiber.Map{"ok": true})
}
