// Package config reads the companion's settings from the environment.
//
// Every key has a default, so an empty environment yields a runnable local
// setup: SQLite in ./newmum.db, port 8000, no tracing. Malformed values are
// reported rather than silently replaced by their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	StoreSQL   = "sql"
	StoreMongo = "mongo"
)

// SQL dialects.
const (
	DBSQLite   = "sqlite"
	DBPostgres = "postgres"
)

// CORSConfig holds the origin allowlist. Empty means any origin.
type CORSConfig struct {
	AllowedOrigins []string
}

type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig controls trace export over OTLP/gRPC.
type OTELConfig struct {
	Enabled     bool
	Endpoint    string
	Insecure    bool
	ServiceName string
	SampleRatio float64
}

// StoreConfig picks where profiles and notes live. DBPath is used by
// SQLite, DatabaseURL by Postgres and the Mongo fields by the mongo driver.
type StoreConfig struct {
	Driver        string
	DBDriver      string
	DBPath        string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
}

type Config struct {
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	GinMode           string

	LogLevel       string
	LogPretty      bool
	LogRedact      bool
	SwaggerEnabled bool
	APIBasePath    string

	Store StoreConfig

	RateRPS   float64
	RateBurst int

	CORS     CORSConfig
	Security SecurityConfig

	// IdempotencyTTL is how long a stored Idempotency-Key answers retries.
	IdempotencyTTL time.Duration

	OTEL OTELConfig
}

// Load reads, normalizes and validates the configuration. All problems are
// returned together.
func Load() (Config, error) {
	var e env
	cfg := Config{
		Port:              e.str("PORT", "8000"),
		ReadTimeout:       e.duration("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: e.duration("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      e.duration("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       e.duration("IDLE_TIMEOUT", time.Minute),
		MaxHeaderBytes:    e.integer("MAX_HEADER_BYTES", 1<<20),
		GinMode:           e.lower("GIN_MODE", "release"),

		LogLevel:       e.lower("LOG_LEVEL", "info"),
		LogPretty:      e.flag("LOG_PRETTY", false),
		LogRedact:      e.flag("LOG_REDACT", true),
		SwaggerEnabled: e.flag("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(e.str("API_BASE_PATH", "/")),

		Store: StoreConfig{
			Driver:        e.lower("STORE_DRIVER", StoreSQL),
			DBDriver:      e.lower("DB_DRIVER", DBSQLite),
			DBPath:        e.str("DB_PATH", "newmum.db"),
			DatabaseURL:   e.str("DATABASE_URL", ""),
			MongoURI:      e.str("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase: e.str("MONGO_DATABASE", "newmum"),
		},

		RateRPS:   e.float("RATE_RPS", 5),
		RateBurst: e.integer("RATE_BURST", 10),

		CORS: CORSConfig{AllowedOrigins: splitCSV(e.str("CORS_ALLOWED_ORIGINS", ""))},
		Security: SecurityConfig{
			EnableHSTS: e.flag("ENABLE_HSTS", false),
			HSTSMaxAge: e.duration("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		IdempotencyTTL: e.duration("IDEMPOTENCY_TTL", 24*time.Hour),

		OTEL: OTELConfig{
			Enabled:     e.flag("OTEL_ENABLED", false),
			Endpoint:    e.str("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    e.flag("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: e.str("OTEL_SERVICE_NAME", "newmum-companion"),
			SampleRatio: e.float("OTEL_TRACES_SAMPLER_ARG", 1),
		},
	}
	cfg.normalize()
	return cfg, errors.Join(append(e.errs, cfg.Validate())...)
}

// Addr is the listen address.
func (c Config) Addr() string { return ":" + c.Port }

func (c *Config) normalize() {
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
	if c.GinMode != "debug" && c.GinMode != "test" {
		c.GinMode = "release"
	}
	if c.Store.DBDriver == "postgresql" || c.Store.DBDriver == "pg" {
		c.Store.DBDriver = DBPostgres
	}
}

// Validate reports every out-of-range or missing setting.
func (c Config) Validate() error {
	var errs []error
	check := func(bad bool, format string, args ...any) {
		if bad {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		check(true, "LOG_LEVEL %q is not one of debug, info, warn, error, fatal, panic", c.LogLevel)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		check(true, "PORT %q must be numeric", c.Port)
	}
	check(c.ReadTimeout <= 0 || c.ReadHeaderTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0,
		"READ_TIMEOUT, READ_HEADER_TIMEOUT, WRITE_TIMEOUT and IDLE_TIMEOUT must be positive")
	check(c.MaxHeaderBytes <= 0, "MAX_HEADER_BYTES must be positive")
	errs = append(errs, c.Store.validate())
	check(c.RateRPS < 0, "RATE_RPS must not be negative")
	check(c.RateBurst < 1, "RATE_BURST must be at least 1")
	check(c.Security.HSTSMaxAge < 0, "HSTS_MAX_AGE must not be negative")
	check(c.IdempotencyTTL <= 0, "IDEMPOTENCY_TTL must be positive")
	check(c.OTEL.SampleRatio < 0 || c.OTEL.SampleRatio > 1, "OTEL_TRACES_SAMPLER_ARG must be within [0,1]")
	return errors.Join(errs...)
}

func (s StoreConfig) validate() error {
	blank := func(v string) bool { return strings.TrimSpace(v) == "" }
	switch s.Driver {
	case StoreSQL:
		switch s.DBDriver {
		case DBSQLite:
			if blank(s.DBPath) {
				return errors.New("DB_PATH is required for sqlite")
			}
		case DBPostgres:
			if blank(s.DatabaseURL) {
				return errors.New("DATABASE_URL is required for postgres")
			}
		default:
			return fmt.Errorf("DB_DRIVER %q is not one of sqlite, postgres", s.DBDriver)
		}
	case StoreMongo:
		if blank(s.MongoURI) || blank(s.MongoDatabase) {
			return errors.New("MONGO_URI and MONGO_DATABASE are required for mongo")
		}
	default:
		return fmt.Errorf("STORE_DRIVER %q is not one of sql, mongo", s.Driver)
	}
	return nil
}

// env reads typed variables and remembers the ones that failed to parse.
// Unset and empty variables take the default.
type env struct {
	errs []error
}

func (e *env) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

func (e *env) lower(key, def string) string { return strings.ToLower(e.str(key, def)) }

func parsed[T any](e *env, key string, def T, parse func(string) (T, error)) T {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	out, err := parse(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: cannot parse %q", key, v))
		return def
	}
	return out
}

func (e *env) integer(key string, def int) int { return parsed(e, key, def, strconv.Atoi) }

func (e *env) duration(key string, def time.Duration) time.Duration {
	return parsed(e, key, def, time.ParseDuration)
}

func (e *env) float(key string, def float64) float64 {
	return parsed(e, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func (e *env) flag(key string, def bool) bool {
	return parsed(e, key, def, parseBool)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeBasePath yields "/" or a path with a leading and no trailing slash.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	return "/" + p
}
