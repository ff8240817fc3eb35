package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const apiVersionKey = "apiVersion"

// VersionMiddleware parses the X-Api-Version header and stores it in context
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", "1.0.0")

		// Support version aliases
		if version == "1.0" {
			version = "1.0.0"
		}

		// Store version in context
		c.Locals(apiVersionKey, version)

		return c.Next()
	}
}

// APIVersion returns the negotiated API version for the request.
func APIVersion(c *fiber.Ctx) string {
	if v, ok := c.Locals(apiVersionKey).(string); ok {
		return v
	}
	return "1.0.0"
}
