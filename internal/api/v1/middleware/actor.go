// Package middleware contains the v1 API middleware.
package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/workielk/workie-api/internal/types"
)

// ActorIDKey is the locals key the actor middleware stores the
// authenticated actor's id under.
const ActorIDKey = "actor_id"

// Actor resolves the authenticated actor from the X-User-ID header and
// stores it in the request locals. Token verification happens upstream
// at the gateway; this middleware is only the identity seam the
// lifecycle handlers read from.
func Actor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("X-User-ID")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(types.Fail("missing X-User-ID header"))
		}

		id, err := strconv.ParseUint(header, 10, 64)
		if err != nil || id == 0 {
			return c.Status(fiber.StatusUnauthorized).
				JSON(types.Fail("invalid X-User-ID header"))
		}

		c.Locals(ActorIDKey, uint(id))
		return c.Next()
	}
}
