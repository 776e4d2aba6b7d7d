package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	ctxLogger   = "logger"
	maxQueryLog = 2048
	redacted    = "[REDACTED]"
)

// AccessLogOptions selects what the access log is allowed to see.
//
// With Redact set, emails, phone numbers and UUIDs are replaced in the query
// string and header values. Profile and note lookups carry the mother's email
// in the query, so production keeps this on. MaskHeaders are blanked
// entirely, on top of Authorization, Cookie and Set-Cookie.
type AccessLogOptions struct {
	Redact      bool
	MaskHeaders []string
}

// AccessLog emits one structured line per request after the handler runs,
// at info for 2xx/3xx, warn for 4xx and error for 5xx. It also stores a
// request-scoped logger for LoggerFrom. Bodies are never logged.
func AccessLog(opts AccessLogOptions) gin.HandlerFunc {
	s := newScrubber(opts)
	return func(c *gin.Context) {
		start := time.Now()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		rid := RequestIDFrom(c)

		scoped := log.With().
			Str("request_id", rid).
			Str("method", c.Request.Method).
			Str("route", route).
			Logger()
		c.Set(ctxLogger, &scoped)

		query := s.text(truncate(c.Request.URL.RawQuery, maxQueryLog))
		headers := s.headers(c.Request.Header)

		c.Next()

		status := c.Writer.Status()
		ev := levelFor(&scoped, status)
		ev.Str("query", query).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Bool("replayed", IsReplay(c))
		if len(headers) > 0 {
			ev.Interface("headers", headers)
		}
		if len(c.Errors) > 0 {
			ev.Str("errors", s.text(c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}
		ev.Msg("request")
	}
}

// LoggerFrom returns the request-scoped logger installed by AccessLog, or
// the global logger when none is present.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(ctxLogger); ok {
		if lg, ok := v.(*zerolog.Logger); ok && lg != nil {
			return lg
		}
	}
	return &log.Logger
}

func levelFor(lg *zerolog.Logger, status int) *zerolog.Event {
	switch {
	case status >= http.StatusInternalServerError:
		return lg.Error()
	case status >= http.StatusBadRequest:
		return lg.Warn()
	default:
		return lg.Info()
	}
}

// UUIDs go first so the loose phone pattern cannot eat their digit groups.
var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+(?:@|%40)[a-z0-9.\-]+\.[a-z]{2,}`)
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

type scrubber struct {
	redact bool
	masked map[string]bool
}

func newScrubber(opts AccessLogOptions) scrubber {
	s := scrubber{
		redact: opts.Redact,
		masked: map[string]bool{
			"Authorization": true,
			"Cookie":        true,
			"Set-Cookie":    true,
		},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.TrimSpace(h); h != "" {
			s.masked[http.CanonicalHeaderKey(h)] = true
		}
	}
	return s
}

func (s scrubber) text(v string) string {
	if !s.redact || v == "" {
		return v
	}
	v = uuidRE.ReplaceAllString(v, "[REDACTED:id]")
	v = emailRE.ReplaceAllString(v, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(v, "[REDACTED:phone]")
}

// headers flattens h for logging. Masked headers are always blanked; the
// remaining values are only logged when redaction is on.
func (s scrubber) headers(h http.Header) map[string]string {
	if !s.redact {
		return nil
	}
	out := make(map[string]string, len(h))
	for k, vv := range h {
		if s.masked[http.CanonicalHeaderKey(k)] {
			out[k] = redacted
			continue
		}
		out[k] = s.text(strings.Join(vv, ", "))
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
