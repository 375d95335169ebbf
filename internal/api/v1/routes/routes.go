// Package routes wires the v1 API endpoints to their handlers.
package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/workielk/workie-api/internal/api/v1/handlers"
	"github.com/workielk/workie-api/internal/api/v1/middleware"
)

// Handlers bundles the handler set the v1 routes are built from
type Handlers struct {
	Users        *handlers.UserHandler
	Jobs         *handlers.JobHandler
	Applications *handlers.ApplicationHandler
}

// SetupRoutes configures all the v1 routes
func SetupRoutes(router fiber.Router, h Handlers) {
	// User routes
	users := router.Group("/users")
	users.Post("/", h.Users.CreateUser)
	users.Get("/", h.Users.ListUsers)
	users.Get("/:id", h.Users.GetUser)

	// Job routes; mutations require the actor identity
	jobs := router.Group("/jobs")
	jobs.Get("/", h.Jobs.ListJobs)
	jobs.Get("/:id", h.Jobs.GetJob)
	jobs.Post("/", middleware.Actor(), h.Jobs.CreateJob)
	jobs.Patch("/:id", middleware.Actor(), h.Jobs.UpdateJob)
	jobs.Post("/:id/assign", middleware.Actor(), h.Jobs.AssignWorker)
	jobs.Post("/:id/complete", middleware.Actor(), h.Jobs.CompleteJob)
	jobs.Delete("/:id", middleware.Actor(), h.Jobs.DeleteJob)

	// Applications nested under their job
	jobs.Post("/:id/applications", middleware.Actor(), h.Applications.Apply)
	jobs.Get("/:id/applications", middleware.Actor(), h.Applications.ListByJob)

	// Application lifecycle routes
	apps := router.Group("/applications", middleware.Actor())
	apps.Get("/", h.Applications.ListMine)
	apps.Get("/:id", h.Applications.GetApplication)
	apps.Post("/:id/withdraw", h.Applications.Withdraw)
	apps.Post("/:id/reject", h.Applications.Reject)
	apps.Post("/:id/accept", h.Applications.Accept)
	apps.Post("/:id/start-work", h.Applications.StartWork)
	apps.Post("/:id/complete-work", h.Applications.CompleteWork)
	apps.Post("/:id/release-payment", h.Applications.ReleasePayment)
	apps.Post("/:id/confirm-payment", h.Applications.ConfirmPayment)
	apps.Post("/:id/review", h.Applications.SubmitReview)
	apps.Post("/:id/close", h.Applications.CloseJob)
}

// Register registers the v1 routes
func Register(app *fiber.App, h Handlers) {
	v1Group := app.Group("/api/v1")
	SetupRoutes(v1Group, h)
}
