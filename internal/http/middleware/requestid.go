package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID carries the correlation id in both directions.
const HeaderRequestID = "X-Request-ID"

const (
	ctxRequestID    = "request_id"
	maxRequestIDLen = 128
)

// RequestID adopts a caller-supplied X-Request-ID when it looks sane and
// mints a UUID otherwise. The id is echoed on the response and stored in
// the context for RequestIDFrom.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if !acceptableRequestID(id) {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestIDFrom returns the id assigned by RequestID, falling back to the
// response header for contexts built outside the middleware chain.
func RequestIDFrom(c *gin.Context) string {
	if id := c.GetString(ctxRequestID); id != "" {
		return id
	}
	return c.Writer.Header().Get(HeaderRequestID)
}

// acceptableRequestID limits inbound ids to printable ASCII without spaces
// so they are safe to log and echo.
func acceptableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
