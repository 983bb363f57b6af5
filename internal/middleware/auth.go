package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/fieldwise/internal/services"
	"github.com/localnerve/fieldwise/internal/types"
)

// AuthUser validates the session and stores the resolved user id in context.
// Routes behind it reject unauthenticated requests; the session projection
// endpoint resolves the session itself so it can return a null user instead.
func AuthUser(jwtSecret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := SessionToken(c)
		if token == "" {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Session cookie \"" + services.SessionCookieName + "\" not found",
				Type:    "data.authorization.user",
			}
		}

		userID, err := services.ParseSessionToken(jwtSecret, token)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Invalid session",
				Type:    "data.authorization.user",
			}
		}

		c.Locals("userID", userID)

		return c.Next()
	}
}

// SessionToken extracts the raw session token from the session cookie or an
// Authorization bearer header, in that order. Empty when neither is present.
func SessionToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(services.SessionCookieName); cookie != "" {
		return cookie
	}

	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	return ""
}
