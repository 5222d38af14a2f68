package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	ShareLink   ShareLinkConfig   `yaml:"sharelink"`
	Outbox      OutboxConfig      `yaml:"outbox"`
	RateLimit   RateLimitConfig   `yaml:"ratelimit"`
	Attachments AttachmentsConfig `yaml:"attachments"`
	Log         LogConfig         `yaml:"log"`
	CORS        CORSConfig        `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds JWT validation settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"careloop"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// ShareLinkConfig holds share link issuance and retention settings.
type ShareLinkConfig struct {
	DefaultTTL       time.Duration `yaml:"default_ttl"        env:"SHARELINK_DEFAULT_TTL"        env-default:"168h"`
	PurgeAfterExpiry time.Duration `yaml:"purge_after_expiry" env:"SHARELINK_PURGE_AFTER_EXPIRY" env-default:"720h"`
}

// OutboxConfig holds notification outbox retention settings. Delivery itself
// runs in a separate worker process against the outbox contract.
type OutboxConfig struct {
	Retention time.Duration `yaml:"retention" env:"OUTBOX_RETENTION" env-default:"720h"`
}

// RateLimitConfig holds the fixed-window limiter settings for the public
// share resolution endpoint.
type RateLimitConfig struct {
	ResolveMaxRequests int           `yaml:"resolve_max_requests" env:"RATELIMIT_RESOLVE_MAX_REQUESTS" env-default:"30"`
	ResolveWindow      time.Duration `yaml:"resolve_window"       env:"RATELIMIT_RESOLVE_WINDOW"       env-default:"60s"`
	SweepIdleAfter     time.Duration `yaml:"sweep_idle_after"     env:"RATELIMIT_SWEEP_IDLE_AFTER"     env-default:"24h"`
}

// AttachmentsConfig holds the client settings for the external attachment
// store. The store itself is a separate system; this backend only asks it to
// re-parent blobs after triage.
type AttachmentsConfig struct {
	BaseURL string        `yaml:"base_url" env:"ATTACHMENTS_BASE_URL" env-default:"http://localhost:8081"`
	Timeout time.Duration `yaml:"timeout"  env:"ATTACHMENTS_TIMEOUT"  env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
