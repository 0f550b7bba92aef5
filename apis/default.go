package apis

import (
	"invitation_backend/config"

	"github.com/gofiber/fiber/v2"
)

// Index
//
//	@Produce	application/json
//	@Router		/ [get]
//	@Success	200	{object}	fiber.Map
func Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":    "invitation code backend",
		"version":    "1.0.0",
		"api_prefix": config.Config.ApiPrefix,
	})
}

// Health
//
//	@Produce	application/json
//	@Router		/health [get]
//	@Success	200	{object}	fiber.Map
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "invitation-code-system",
	})
}
