package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/services"
	"github.com/workielk/workie-api/internal/types"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	service *services.User
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(service *services.User) *UserHandler {
	return &UserHandler{service: service}
}

// CreateUser handles the request to register a user
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req types.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	user, err := h.service.CreateUser(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(types.OK("user created", user))
}

// GetUser handles the request to get a user by id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "invalid user id")
	}

	user, err := h.service.GetUser(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.OK("user found", user))
}

// ListUsers handles the request to list users
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	var role *models.UserRole
	if roleStr := c.Query("role"); roleStr != "" {
		parsed, err := models.ParseUserRole(roleStr)
		if err != nil {
			return respondBadRequest(c, err.Error())
		}
		role = &parsed
	}

	users, err := h.service.ListUsers(c.Context(), role, &models.ListOptions{
		Limit:  c.QueryInt("limit", models.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(types.OK("users listed", users))
}
