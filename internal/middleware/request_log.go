package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/nftune-store/internal/logger"
)

// RequestLogger writes one structured line per request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		logger.Info("request",
			logger.String("method", c.Method()),
			logger.String("path", c.Path()),
			logger.Int("status", status),
			logger.Duration("latency", time.Since(start)),
			logger.String("caller", Caller(c).String()),
		)
		return err
	}
}
