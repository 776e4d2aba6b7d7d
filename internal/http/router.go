// Package httpapi wires the HTTP transport (Gin) to the companion services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, compression,
// metrics, CORS, security headers, idempotency, and rate limiting.
package httpapi

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tbourn/newmum-companion/docs"
	"github.com/tbourn/newmum-companion/internal/config"
	"github.com/tbourn/newmum-companion/internal/http/handlers"
	"github.com/tbourn/newmum-companion/internal/http/middleware"
	"github.com/tbourn/newmum-companion/internal/services"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// Deps are the backends the routes are built on. Idem may be nil, which
// turns idempotent replays off (the Mongo backend has no key store).
type Deps struct {
	Store services.DocumentStore
	Idem  services.IdempotencyStore
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. AccessLog, scrubbing PII unless LOG_REDACT is off
//  4. Recovery: capture panics after logger
//  5. Body size limiter and gzip
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per IP, bypass on replay)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(middleware.AccessLogOptions{
		Redact:      cfg.LogRedact,
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		idempotencyLookup(deps.Idem),
	))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	r.Use(allowRequestedHeaders(), cors.New(corsConfig(cfg.CORS)))

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
		PrivatePaths: []string{
			joinPath(cfg.APIBasePath, "/profile"),
			joinPath(cfg.APIBasePath, "/notes"),
		},
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(
		services.NewProfileService(deps.Store, deps.Idem, cfg.IdempotencyTTL),
		services.NewNoteService(deps.Store, deps.Idem, cfg.IdempotencyTTL),
		services.ContentService{},
	)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/", h.Root)
		api.GET("/schema", h.Schema)

		api.POST("/profile", h.CreateProfile)
		api.GET("/profile", h.GetProfile)

		api.GET("/content/weeks", h.GetWeek)
		api.GET("/content/weeks/all", h.ListWeeks)
		api.GET("/content/birth", h.GetBirth)
		api.GET("/content/search", h.SearchContent)

		api.POST("/notes", h.CreateNote)
		api.GET("/notes", h.ListNotes)
	}
}

// idempotencyLookup adapts the key store to the middleware callback. A nil
// store yields a nil lookup, so keys are validated but never replayed.
func idempotencyLookup(idem services.IdempotencyStore) middleware.IdempotencyLookup {
	if idem == nil {
		return nil
	}
	return func(ctx context.Context, scope, key string, now time.Time) (bool, error) {
		_, ok, err := idem.Lookup(ctx, scope, key, now)
		return ok, err
	}
}

// corsConfig accepts any origin unless an allowlist is configured. The
// origin is echoed rather than "*" so credentialed requests work. Allowed
// request headers come from allowRequestedHeaders, so none are listed here.
func corsConfig(c config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders: []string{
			middleware.HeaderRequestID, "Content-Length", "Retry-After",
			handlers.HeaderIdempotencyReplayed,
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(c.AllowedOrigins) == 0 {
		cc.AllowOriginFunc = func(string) bool { return true }
	} else {
		cc.AllowOrigins = c.AllowedOrigins
	}
	return cc
}

// headerToken matches one field name in Access-Control-Request-Headers.
var headerToken = regexp.MustCompile("^[!#$%&'*+.^_`|~0-9A-Za-z-]+$")

// allowRequestedHeaders answers a preflight with the headers it asked for.
// "*" is not honoured on credentialed requests, so every header is allowed
// by echoing the list. It must run before the CORS handler, which aborts
// preflights and leaves Access-Control-Allow-Headers alone when it has no
// list of its own.
func allowRequestedHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodOptions || c.GetHeader("Origin") == "" {
			c.Next()
			return
		}
		var names []string
		for _, v := range c.Request.Header.Values("Access-Control-Request-Headers") {
			for _, name := range strings.Split(v, ",") {
				if name = strings.TrimSpace(name); headerToken.MatchString(name) {
					names = append(names, strings.ToLower(name))
				}
			}
		}
		if len(names) > 0 {
			c.Header("Access-Control-Allow-Headers", strings.Join(names, ","))
		}
		c.Next()
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// joinPath prefixes p with the API base path, treating "/" as root.
func joinPath(base, p string) string {
	return strings.TrimSuffix(base, "/") + p
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
