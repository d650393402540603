package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/company-tracker-api/internal/errors"
)

// RequireWebhookSecret admits Telegram webhook calls whose secret header
// matches secret. An empty secret rejects everything.
func RequireWebhookSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(constants.TelegramSecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			apierrors.Unauthorized(c, apierrors.ErrCodeSecretMismatch, "Webhook secret mismatch")
			return
		}
		c.Next()
	}
}
