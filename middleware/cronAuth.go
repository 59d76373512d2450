package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sripavantejb/GuideXpert-Backend/config"
)

// CronAuthMiddleware guards the cron endpoints with a shared secret, passed
// either as the x-cron-key header or a key query parameter. An unset secret
// locks the endpoints entirely.
func CronAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := config.AppConfig.CronSecret
		supplied := c.GetHeader("x-cron-key")
		if supplied == "" {
			supplied = c.Query("key")
		}

		if secret == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
			zap.L().Warn("cron auth rejected", zap.String("ip", getClientIP(c)))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized",
			})
			return
		}
		c.Next()
	}
}
