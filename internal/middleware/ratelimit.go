package middleware

import (
	"fmt"
	"time"

	"renov-srv/pkg/response"
	"renov-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

const rateWindow = time.Minute

// UserRateLimit is the blanket per-user ceiling. Must run after auth.
func (m Middleware) UserRateLimit() gin.HandlerFunc {
	return m.rateLimit("user", m.rates.PerUser)
}

// CompanyScanRateLimit guards company-scan submission.
func (m Middleware) CompanyScanRateLimit() gin.HandlerFunc {
	return m.rateLimit("scan", m.rates.CompanyScan)
}

// UploadRateLimit guards document and photo uploads.
func (m Middleware) UploadRateLimit() gin.HandlerFunc {
	return m.rateLimit("upload", m.rates.Upload)
}

// rateLimit applies a fixed-window counter per user and bucket. A Redis
// outage fails open: limiting is protective, not load-bearing.
func (m Middleware) rateLimit(bucket string, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sc := scope.GetScopeFromContext(ctx)
		if sc.UserID == "" {
			c.Next()
			return
		}

		key := fmt.Sprintf("rl:%s:%s:%d", bucket, sc.UserID, time.Now().Unix()/int64(rateWindow.Seconds()))
		count, err := m.redis.IncrWithTTL(ctx, key, rateWindow)
		if err != nil {
			m.l.Warnf(ctx, "middleware.rateLimit: Redis unavailable, allowing request: %v", err)
			c.Next()
			return
		}
		if count > int64(perMinute) {
			response.TooManyRequests(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
