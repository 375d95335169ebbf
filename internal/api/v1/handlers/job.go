package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/db/repos"
	"github.com/workielk/workie-api/internal/services"
	"github.com/workielk/workie-api/internal/types"
)

// JobHandler handles HTTP requests for job operations
type JobHandler struct {
	service *services.Job
}

// NewJobHandler creates a new job handler instance
func NewJobHandler(service *services.Job) *JobHandler {
	return &JobHandler{service: service}
}

// CreateJob handles the request to post a new job
func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	var req types.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	job, err := h.service.CreateJob(c.Context(), actorID(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(types.OK("job created", job))
}

// GetJob handles the request to get a job by id
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "invalid job id")
	}

	job, err := h.service.GetJob(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.OK("job found", job))
}

// ListJobs handles the request to list jobs with optional filters
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	filter := repos.JobFilter{City: c.Query("city")}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := models.ParseJobStatus(statusStr)
		if err != nil {
			return respondBadRequest(c, err.Error())
		}
		filter.Status = status
	}
	if categoryStr := c.Query("category"); categoryStr != "" {
		category, err := models.ParseJobCategory(categoryStr)
		if err != nil {
			return respondBadRequest(c, err.Error())
		}
		filter.Category = category
	}

	opts := &models.ListOptions{
		Limit:  c.QueryInt("limit", models.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	}
	jobs, total, err := h.service.ListJobs(c.Context(), filter, opts)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.OK("jobs listed", types.ListResponse[models.Job]{
		Rows: jobs,
		Pagination: types.PaginationResponse{
			Total:  total,
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	}))
}

// UpdateJob handles a status-guarded job update
func (h *JobHandler) UpdateJob(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "invalid job id")
	}

	var req types.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	job, err := h.service.UpdateJob(c.Context(), actorID(c), uint(id), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.OK("job updated", job))
}

// AssignWorker handles the request to assign a worker to an open job
func (h *JobHandler) AssignWorker(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "invalid job id")
	}

	var req types.AssignWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}
	if req.WorkerID == 0 {
		return respondBadRequest(c, "worker_id is required")
	}

	job, err := h.service.AssignWorker(c.Context(), actorID(c), uint(id), req.WorkerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.OK("worker assigned", job))
}

// CompleteJob handles the request to mark an in-progress job completed
func (h *JobHandler) CompleteJob(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "invalid job id")
	}

	job, err := h.service.CompleteJob(c.Context(), actorID(c), uint(id))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.OK("job completed", job))
}

// DeleteJob handles the request to soft-delete a job
func (h *JobHandler) DeleteJob(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "invalid job id")
	}

	if err := h.service.DeleteJob(c.Context(), actorID(c), uint(id)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.OK("job deleted", nil))
}
