package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/constants"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const apiKeyScheme = "Apikey "

// APIKeyAuth guards the bank webhook endpoint. The gateway sends a static
// key in the Authorization header; signature verification is not part of
// its default configuration.
func APIKeyAuth(apiKey string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, apiKeyScheme) {
			logger.Warn("Webhook request without api key",
				zap.String("ip", c.IP()))
			return reject(c)
		}

		presented := strings.TrimPrefix(header, apiKeyScheme)
		if subtle.ConstantTimeCompare([]byte(presented), []byte(apiKey)) != 1 {
			logger.Warn("Webhook request with invalid api key",
				zap.String("ip", c.IP()))
			return reject(c)
		}

		return c.Next()
	}
}

func reject(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"code":    constants.ErrCodeInvalidAPIKey,
		"message": constants.GetErrorMessage(constants.ErrCodeInvalidAPIKey),
	})
}
