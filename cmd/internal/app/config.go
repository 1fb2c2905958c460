package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	// DatabaseURL selects the Postgres backend when set. When empty the
	// server runs on an embedded bbolt file at BoltPath.
	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32
	BoltPath    string

	// If true, /readyz returns 503 unless the DB is configured and reachable.
	ReadinessRequireDB bool

	// If true, NOTEKEEP_TOKEN_HMAC_KEY MUST be set (>= 32 bytes) and session
	// token hashing must be HMAC-based.
	RequireTokenHMAC bool

	MetricsEnabled bool

	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	CORSMaxAgeSeconds    int
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:  EnvString("NOTEKEEP_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:  EnvString("NOTEKEEP_LOG_LEVEL", "info"),
		LogFormat: EnvString("NOTEKEEP_LOG_FORMAT", "json"),

		ReadHeaderTimeout: EnvDuration("NOTEKEEP_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("NOTEKEEP_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("NOTEKEEP_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("NOTEKEEP_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("NOTEKEEP_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("NOTEKEEP_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("NOTEKEEP_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("NOTEKEEP_DB_MIN_CONNS", 0),
		BoltPath:    EnvString("NOTEKEEP_BOLT_PATH", "notekeep.db"),

		ReadinessRequireDB: EnvBool("NOTEKEEP_READINESS_REQUIRE_DB", false),

		RequireTokenHMAC: EnvBool("NOTEKEEP_REQUIRE_TOKEN_HMAC", false),

		MetricsEnabled: EnvBool("NOTEKEEP_METRICS_ENABLED", true),

		CORSAllowedOrigins:   EnvStringSlice("NOTEKEEP_CORS_ALLOWED_ORIGINS"),
		CORSAllowCredentials: EnvBool("NOTEKEEP_CORS_ALLOW_CREDENTIALS", true),
		CORSMaxAgeSeconds:    EnvInt("NOTEKEEP_CORS_MAX_AGE_SECONDS", 600),
	}
}
