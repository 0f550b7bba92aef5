package middlewares

import (
	"invitation_backend/config"
	"invitation_backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

var claimLimiter *rate.Limiter

// InitClaimLimiter builds the global claim throughput guard. Call after
// InitConfig.
func InitClaimLimiter() {
	claimLimiter = rate.NewLimiter(
		rate.Limit(config.Config.ClaimRateLimit),
		config.Config.ClaimRateBurst,
	)
}

// ClaimRateLimit caps claim requests per client IP inside a rolling hour,
// with a global limiter in front so a stampede cannot pile up on the
// database. Attach to the claim route only.
func ClaimRateLimit(c *fiber.Ctx) error {
	if claimLimiter != nil && !claimLimiter.Allow() {
		return utils.TooManyRequests("service is busy, try again later")
	}

	ip := utils.GetRealIP(c)
	if count := config.IncrRequestCount("claim:" + ip); count > int64(config.Config.MaxRequestsPerIPPerHour) {
		return utils.TooManyRequests("hourly request limit reached")
	}

	return c.Next()
}
