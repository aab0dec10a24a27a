package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/caterkit/caterkit-api/internal/application/dto"
	"github.com/caterkit/caterkit-api/internal/infrastructure/ratelimit"
	"github.com/caterkit/caterkit-api/pkg/logger"
)

// RateLimitMiddleware guards brute-forceable endpoints, keyed by client IP.
// A failing store denies the request: a broken limiter must not turn into
// an unlimited login endpoint.
func RateLimitMiddleware(store ratelimit.Store, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := store.Allow(c.UserContext(), c.IP())
		if err != nil {
			log.Error().Err(err).Str("ip", c.IP()).Msg("rate limit store failed")
			ok = false
		}
		if !ok {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "too many attempts, try again later",
			})
		}
		return c.Next()
	}
}
