package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	AppEnv      string
	AppBaseURL  string
	CORSOrigins string

	// Rate limits per client IP per minute; 0 disables.
	RateLimit     int
	AuthRateLimit int

	// Database
	DBType         string // postgres or sqlite
	DatabaseURL    string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBPath         string
	DBMaxOpenConns int

	// Sessions
	JWTSecret         string
	JWTAccessExpiry   time.Duration
	JWTRefreshExpiry  time.Duration
	SessionCookieName string
	CookieSecure      bool

	// Invitations and sign-up
	InvitationExpiry    time.Duration
	ProfilePollAttempts int
	ProfilePollDelay    time.Duration

	// Observability
	LogLevel         string
	LogRetentionDays int
	SentryDSN        string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real env vars take precedence.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		AppBaseURL:  getEnv("APP_BASE_URL", "http://localhost:8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		RateLimit:     getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		AuthRateLimit: getEnvAsInt("AUTH_RATE_LIMIT_PER_MINUTE", 20),

		DBType:         getEnv("DB_TYPE", "postgres"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "nocodedb"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		DBPath:         getEnv("DB_PATH", "nocodedb.sqlite"),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 50),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:   parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry:  parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "session"),
		CookieSecure:      getEnvAsBool("COOKIE_SECURE", false),

		InvitationExpiry:    parseDuration(getEnv("INVITATION_EXPIRY", "168h"), 7*24*time.Hour),
		ProfilePollAttempts: getEnvAsInt("PROFILE_POLL_ATTEMPTS", 15),
		ProfilePollDelay:    parseDuration(getEnv("PROFILE_POLL_DELAY", "300ms"), 300*time.Millisecond),

		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogRetentionDays: getEnvAsInt("LOG_RETENTION_DAYS", 30),
		SentryDSN:        getEnv("SENTRY_DSN", ""),
	}
}

// Validate reports the first setting the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	switch c.DBType {
	case "postgres", "postgresql":
		if c.DatabaseURL == "" && c.DBPassword == "" {
			return errors.New("DB_PASSWORD or DATABASE_URL environment variable is required")
		}
	case "sqlite":
		if c.DBPath == "" {
			return errors.New("DB_PATH environment variable is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE: %s", c.DBType)
	}
	return nil
}

func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
