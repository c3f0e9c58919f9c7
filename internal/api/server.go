package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const accessLogFormat = "${time} ${locals:request_id} ${status} ${latency} ${method} ${path}\n"

type AppOptions struct {
	Name      string
	AccessLog bool
}

// NewApp builds the fiber application with middleware and routes mounted.
func NewApp(handler *Handler, opts AppOptions) *fiber.App {
	name := opts.Name
	if name == "" {
		name = "cycletrack"
	}

	app := fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		ErrorHandler:          handler.errorHandler,
	})

	app.Use(recover.New())
	app.Use(RequestID)
	if opts.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{Format: accessLogFormat}))
	}
	app.Use(compress.New())

	RegisterRoutes(app, handler)
	return app
}

func (handler *Handler) errorHandler(c *fiber.Ctx, err error) error {
	if fiberErr, ok := err.(*fiber.Error); ok {
		return apiError(c, fiberErr.Code, fiberErr.Message)
	}
	return handler.serviceError(c, err)
}
