// Package app assembles the HTTP application from its layers.
package app

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/workielk/workie-api/internal/api/v1/handlers"
	"github.com/workielk/workie-api/internal/api/v1/middleware"
	"github.com/workielk/workie-api/internal/api/v1/routes"
	"github.com/workielk/workie-api/internal/db/repos"
	"github.com/workielk/workie-api/internal/services"
	"github.com/workielk/workie-api/internal/types"
)

// NewApp wires repositories, services and handlers into a Fiber app
func NewApp(db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(middleware.Logger())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	userRepo := repos.NewUserRepository(db)
	jobRepo := repos.NewJobRepository(db)
	appRepo := repos.NewApplicationRepository(db)

	userService := services.NewUserService(userRepo)
	jobService := services.NewJobService(jobRepo, userRepo)
	applicationService := services.NewApplicationService(appRepo, jobRepo)

	routes.Register(app, routes.Handlers{
		Users:        handlers.NewUserHandler(userService),
		Jobs:         handlers.NewJobHandler(jobService),
		Applications: handlers.NewApplicationHandler(applicationService),
	})

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(types.FailWithError("request failed", err))
}
