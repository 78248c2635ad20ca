package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	authsvc "github.com/finansync/finansync-api/internal/auth"
	"github.com/finansync/finansync-api/internal/web/handler"
)

const bearerPrefix = "Bearer "

// New returns a middleware that requires a valid bearer token and stores the
// user id of its claims in fiber.Locals under handler.UserIDLocal.
func New(tokens *authsvc.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			return unauthorized(c, "missing bearer token")
		}

		claims, err := tokens.Parse(strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			log.Debug().Err(err).Str("ip", c.IP()).Msg("rejected bearer token")
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(handler.UserIDLocal, claims.UserID)

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, detail string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return handler.Problem(c, fiber.StatusUnauthorized, "Unauthorized", detail)
}
