package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/config"
	apperrors "github.com/ARYAN-01-GARG/support-ticketing-system/pkg/util"
)

// RateLimiter bounds request volume per client IP using a fixed window
// counter in Redis. When Redis is unreachable the limiter fails open:
// losing rate limiting is preferable to refusing all traffic.
func RateLimiter(client *redis.Client, cfg config.RateLimitConfig, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.Enabled || client == nil {
			return c.Next()
		}

		key := "ratelimit:" + c.IP()
		ctx := c.UserContext()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := client.Expire(ctx, key, cfg.Window()).Err(); err != nil {
				logger.Warn("rate limiter expire failed", zap.Error(err))
			}
		}
		if count > cfg.MaxRequests {
			c.Set("Retry-After", strconv.Itoa(int(cfg.Window().Seconds())))
			return apperrors.NewDomainError("RATE_LIMITED", "too many requests",
				fiber.StatusTooManyRequests, nil)
		}
		return c.Next()
	}
}
