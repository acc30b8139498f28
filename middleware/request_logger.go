package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akashkendre1298/vastureports/pkg/logger"
)

// quietPaths are polled by probes and scrapers and logged at debug
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// RequestLogger writes one access line per request, including the size of any report sent back
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
		}
		if query != "" {
			attrs = append(attrs, "query", query)
		}
		if disposition := c.Writer.Header().Get("Content-Disposition"); strings.HasPrefix(disposition, "attachment") {
			attrs = append(attrs, "attachment", disposition)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		log := logger.WithContext(c.Request.Context())
		switch {
		case status >= 500:
			log.Error("request completed", attrs...)
		case status >= 400:
			log.Warn("request completed", attrs...)
		case quietPaths[path]:
			log.Debug("request completed", attrs...)
		default:
			log.Info("request completed", attrs...)
		}
	}
}
