package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"apluscharge_backend/internal/controller"
	"apluscharge_backend/internal/middleware"
	"apluscharge_backend/pkg/config"
	"apluscharge_backend/pkg/database"
	"apluscharge_backend/pkg/metrics"
)

type Deps struct {
	Config   *config.Config
	Store    database.Store
	Notifier controller.Notifier
	Log      *zap.Logger
	Metrics  *metrics.Metrics
}

// New builds the fiber app with middleware and routes. Store may be nil.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "A Plus Charge API",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(middleware.CORS())

	setupRoutes(app, deps)
	return app
}

func setupRoutes(app *fiber.App, deps Deps) {
	home := controller.NewHomeController(deps.Store, deps.Config.Database.Configured(), deps.Log)
	leads := controller.NewLeadController(deps.Store, deps.Notifier, deps.Config.Email.NotifyEmail, deps.Log, deps.Metrics)
	roi := controller.NewROIController(deps.Metrics)

	app.Get("/", home.Root)
	app.Get("/test", home.Diagnostics)
	app.Get("/metrics", deps.Metrics.Handler())

	api := app.Group("/api")
	api.Post("/leads", leads.CreateLead)
	api.Post("/roi", roi.CalculateROI)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"detail": err.Error(),
	})
}
