// Package middleware holds the Gin middleware shared by every companion
// route: correlation ids, access logging with PII scrubbing, panic recovery,
// Prometheus instrumentation, idempotency keys, per-IP rate limiting and
// security headers.
package middleware

import (
	"github.com/gin-gonic/gin"
)

// Error codes emitted directly by middleware. Handlers own the rest.
const (
	CodeInternal       = "internal_error"
	CodeRateLimited    = "rate_limited"
	CodeBadIdempotency = "bad_idempotency_key"
)

const (
	msgInternal       = "internal server error"
	msgRateLimited    = "too many requests, slow down"
	msgBadIdempotency = "Idempotency-Key must be 1-%d characters of [A-Za-z0-9._~:-]"
)

// abortJSON stops the chain with the same envelope the handlers use.
func abortJSON(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": RequestIDFrom(c),
		"code":       code,
		"message":    msg,
	})
}
