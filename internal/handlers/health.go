package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/nftune-store/internal/config"
	"github.com/localnerve/nftune-store/internal/services"
	"gorm.io/gorm"
)

// Health serves GET /healthz outside the API group: database reachability,
// plus the Authorizer in authorizer mode. Unhealthy answers 503.
func Health(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result := services.HealthCheck(c.UserContext(), cfg, db)
		status := fiber.StatusOK
		if !result.Healthy() {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	}
}
