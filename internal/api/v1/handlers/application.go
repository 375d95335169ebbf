package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/services"
	"github.com/workielk/workie-api/internal/types"
)

// ApplicationHandler handles HTTP requests for application lifecycle
// operations.
type ApplicationHandler struct {
	service *services.Application
}

// NewApplicationHandler creates a new application handler instance
func NewApplicationHandler(service *services.Application) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply handles a worker's application to a job
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	jobID, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "invalid job id")
	}

	var req types.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	app, err := h.service.Apply(c.Context(), actorID(c), uint(jobID), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(types.OK("application submitted", app))
}

// GetApplication handles the request to get an application by id
func (h *ApplicationHandler) GetApplication(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "invalid application id")
	}

	app, err := h.service.GetApplication(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.OK("application found", app))
}

// ListByJob handles the request to list a job's applications
func (h *ApplicationHandler) ListByJob(c *fiber.Ctx) error {
	jobID, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "invalid job id")
	}

	apps, err := h.service.ListByJob(c.Context(), actorID(c), uint(jobID), &models.ListOptions{
		Limit:  c.QueryInt("limit", models.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.OK("applications listed", apps))
}

// ListMine handles the request to list the acting worker's applications
func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	apps, err := h.service.ListByWorker(c.Context(), actorID(c), &models.ListOptions{
		Limit:  c.QueryInt("limit", models.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.OK("applications listed", apps))
}

// transition adapts a no-payload lifecycle call to a handler.
func (h *ApplicationHandler) transition(c *fiber.Ctx, message string,
	fn func(ctx *fiber.Ctx, appID uint) (*models.Application, error)) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "invalid application id")
	}

	app, err := fn(c, uint(id))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.OK(message, app))
}

// Withdraw handles the worker withdrawing a pending application
func (h *ApplicationHandler) Withdraw(c *fiber.Ctx) error {
	return h.transition(c, "application withdrawn", func(c *fiber.Ctx, appID uint) (*models.Application, error) {
		return h.service.Withdraw(c.Context(), actorID(c), appID)
	})
}

// Reject handles the job owner rejecting a pending application
func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	return h.transition(c, "application rejected", func(c *fiber.Ctx, appID uint) (*models.Application, error) {
		return h.service.Reject(c.Context(), actorID(c), appID)
	})
}

// Accept handles the job owner accepting a pending application
func (h *ApplicationHandler) Accept(c *fiber.Ctx) error {
	return h.transition(c, "application accepted", func(c *fiber.Ctx, appID uint) (*models.Application, error) {
		return h.service.Accept(c.Context(), actorID(c), appID)
	})
}

// StartWork handles the worker starting the work
func (h *ApplicationHandler) StartWork(c *fiber.Ctx) error {
	return h.transition(c, "work started", func(c *fiber.Ctx, appID uint) (*models.Application, error) {
		return h.service.StartWork(c.Context(), actorID(c), appID)
	})
}

// CompleteWork handles the worker completing the work
func (h *ApplicationHandler) CompleteWork(c *fiber.Ctx) error {
	return h.transition(c, "work completed", func(c *fiber.Ctx, appID uint) (*models.Application, error) {
		return h.service.CompleteWork(c.Context(), actorID(c), appID)
	})
}

// ReleasePayment handles the job owner releasing payment
func (h *ApplicationHandler) ReleasePayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "invalid application id")
	}

	var req types.ReleasePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	app, err := h.service.ReleasePayment(c.Context(), actorID(c), uint(id), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.OK("payment released", app))
}

// ConfirmPayment handles the worker confirming receipt of payment
func (h *ApplicationHandler) ConfirmPayment(c *fiber.Ctx) error {
	return h.transition(c, "payment confirmed", func(c *fiber.Ctx, appID uint) (*models.Application, error) {
		return h.service.ConfirmPayment(c.Context(), actorID(c), appID)
	})
}

// SubmitReview handles the job owner reviewing the engagement
func (h *ApplicationHandler) SubmitReview(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "invalid application id")
	}

	var req types.SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	app, err := h.service.SubmitReview(c.Context(), actorID(c), uint(id), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.OK("review submitted", app))
}

// CloseJob handles either party closing a settled engagement
func (h *ApplicationHandler) CloseJob(c *fiber.Ctx) error {
	return h.transition(c, "job closed", func(c *fiber.Ctx, appID uint) (*models.Application, error) {
		return h.service.CloseJob(c.Context(), actorID(c), appID)
	})
}
