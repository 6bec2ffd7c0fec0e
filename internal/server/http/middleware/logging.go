package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drinktab/drinktab/internal/domain/model"
)

// RequestLogger logs information about incoming requests using slog. When
// authentication resolved a principal the record carries its name, so ledger
// mutations can be traced to an account.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", latency),
		}
		if v, ok := c.Get(PrincipalContextKey); ok {
			if p, ok := v.(*model.Principal); ok {
				attrs = append(attrs, slog.String("actor", p.Name))
			}
		}
		logger.Info("http request", attrs...)
	}
}
