package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const requestIdHeader string = "X-Request-Id"

// RequestLog tags every request with a generated id and emits one access
// log line once the handler chain finishes.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestId := uuid.NewString()
		c.Writer.Header().Set(requestIdHeader, requestId)

		c.Next()

		log.Info().
			Str("requestId", requestId).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("Request handled")
	}
}
