package middleware

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey lets clients retry profile and note writes safely.
const HeaderIdempotencyKey = "Idempotency-Key"

const (
	ctxIdemKey    = "idempotency.key"
	ctxIdemReplay = "idempotency.replay"
	ctxRateBypass = "ratelimit.bypass"

	defaultIdemMaxLen = 200
)

var defaultIdemPattern = regexp.MustCompile(`^[A-Za-z0-9._~:-]+$`)

// IdempotencyOptions bounds what counts as a valid key. Zero values select
// 200 characters and the token alphabet [A-Za-z0-9._~:-].
type IdempotencyOptions struct {
	MaxLen  int
	Pattern *regexp.Regexp
}

// IdempotencyLookup reports whether scope+key already has a live stored
// result. The scope is the matched route template. Expiry is the lookup's
// concern.
type IdempotencyLookup func(ctx context.Context, scope, key string, now time.Time) (bool, error)

// IdempotencyValidator checks the Idempotency-Key header on write methods,
// keeps the key for GetIdempotencyKey and, given a lookup, flags requests
// that will be answered from a stored result. Flagged requests bypass the
// rate limiter. Lookup failures are logged and the request proceeds as new.
// Safe methods ignore the header.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = defaultIdemMaxLen
	}
	pattern := opts.Pattern
	if pattern == nil {
		pattern = defaultIdemPattern
	}
	badKey := fmt.Sprintf(msgBadIdempotency, maxLen)

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || !isWrite(c.Request.Method) {
			c.Next()
			return
		}
		if len(key) > maxLen || !pattern.MatchString(key) {
			abortJSON(c, http.StatusBadRequest, CodeBadIdempotency, badKey)
			return
		}
		c.Set(ctxIdemKey, key)

		if lookup != nil {
			found, err := lookup(c.Request.Context(), c.FullPath(), key, time.Now().UTC())
			switch {
			case err != nil:
				LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
			case found:
				c.Set(ctxIdemReplay, true)
				c.Set(ctxRateBypass, true)
			}
		}
		c.Next()
	}
}

// GetIdempotencyKey returns the validated key, if the request carried one.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	k := c.GetString(ctxIdemKey)
	return k, k != ""
}

// IsReplay reports whether a stored result exists for this request's key.
func IsReplay(c *gin.Context) bool {
	return c.GetBool(ctxIdemReplay)
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
