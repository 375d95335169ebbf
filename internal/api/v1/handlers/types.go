// Package handlers contains the HTTP handlers for the v1 API.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/workielk/workie-api/internal/api/v1/middleware"
	"github.com/workielk/workie-api/internal/types"
)

// actorID returns the authenticated actor's id from the request locals.
func actorID(c *fiber.Ctx) uint {
	id, _ := c.Locals(middleware.ActorIDKey).(uint)
	return id
}

// respondError maps the lifecycle error taxonomy onto HTTP status
// codes and the standard failure envelope. Anything outside the
// taxonomy is a 500 with the underlying message attached.
func respondError(c *fiber.Ctx, err error) error {
	var (
		notFound   *types.NotFoundError
		forbidden  *types.ForbiddenError
		invalidTx  *types.InvalidTransitionError
		validation *types.ValidationError
		capacity   *types.CapacityExceededError
		duplicate  *types.DuplicateError
		conflict   *types.ConflictError
	)

	switch {
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(types.Fail(notFound.Error()))
	case errors.As(err, &forbidden):
		return c.Status(fiber.StatusForbidden).JSON(types.Fail(forbidden.Error()))
	case errors.As(err, &invalidTx):
		return c.Status(fiber.StatusConflict).JSON(types.Fail(invalidTx.Error()))
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(validation.Error()))
	case errors.As(err, &capacity):
		return c.Status(fiber.StatusConflict).JSON(types.Fail(capacity.Error()))
	case errors.As(err, &duplicate):
		return c.Status(fiber.StatusConflict).JSON(types.Fail(duplicate.Error()))
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(types.Fail(conflict.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.FailWithError("internal server error", err))
	}
}

// respondBadRequest returns a 400 with the given message.
func respondBadRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.Fail(msg))
}
