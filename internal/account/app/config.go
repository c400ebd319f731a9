package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/wishlane/accounts/pkg/jwtx"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	DatabaseFile string // Path to SQLite database file (default: ./accounts.db)

	AccessSecret  string        // Required: HMAC secret for access tokens
	RefreshSecret string        // Required: HMAC secret for refresh tokens, distinct from AccessSecret
	AccessTTL     time.Duration // Access token lifetime (default: 30m)
	RefreshTTL    time.Duration // Refresh token lifetime (default: 30d)

	TransportSecret  string        // Required: key for the client-side password obfuscation
	PasswordHashCost int           // bcrypt cost (default: bcrypt.MinCost, the historical setting)
	LinkTTL          time.Duration // Activation/reset link lifetime (default: 24h)

	APIURL    string // Public base URL of this service, embedded in activation links
	ClientURL string // Public base URL of the web client, used for redirects and reset links

	FeaturedUserID string // Optional: promotional account spliced into listings
	StatsOnRefresh bool   // Return admin counters from /refresh (default: true, matching the legacy client)

	SecureCookies bool // Mark the refresh cookie Secure (default: true outside dev)

	SMTPHost     string // Optional: SMTP relay; empty falls back to the log mailer
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	MinioEndpoint  string // Optional: object storage; empty disables file cleanup
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	HousekeepingInterval time.Duration // Maintenance sweep interval (default: 24h)
}

func LoadConfig() Config {
	// Best-effort .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	env := getEnvOrDefault("ENV", "dev")

	return Config{
		Env:       env,
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "accounts.db"),

		AccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		RefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		AccessTTL:     getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:    getEnvDurationOrDefault("REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),

		TransportSecret:  os.Getenv("TRANSPORT_SECRET"),
		PasswordHashCost: getEnvIntOrDefault("PASSWORD_HASH_COST", bcrypt.MinCost),
		LinkTTL:          getEnvDurationOrDefault("LINK_TTL", 24*time.Hour),

		APIURL:    getEnvOrDefault("API_URL", "http://localhost:8080"),
		ClientURL: getEnvOrDefault("CLIENT_URL", "http://localhost:3000"),

		FeaturedUserID: os.Getenv("FEATURED_USER_ID"),
		StatsOnRefresh: getEnvBoolOrDefault("STATS_ON_REFRESH", true),

		SecureCookies: getEnvBoolOrDefault("SECURE_COOKIES", env != "dev"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    os.Getenv("MINIO_BUCKET"),
		MinioUseSSL:    getEnvBoolOrDefault("MINIO_USE_SSL", false),

		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 24*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
