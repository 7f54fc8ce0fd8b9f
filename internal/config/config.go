package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the service configuration read from the environment.
type Config struct {
	ServiceName string
	Port        string
	LogLevel    slog.Level

	DB DatabaseConfig

	NatsURL string

	TracingEnabled bool
	OtelEndpoint   string

	JWTSecret string

	CorsAllowOrigins    string
	RateLimitMax        int
	RateLimitExpiration int // seconds
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// URL builds the pgx connection string.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Load reads .env.dev when present and then the process environment.
func Load() *Config {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables")
	}

	return &Config{
		ServiceName: getEnv("SERVICE_NAME", "training-center"),
		Port:        getEnv("APP_PORT", "8080"),
		LogLevel:    parseLevel(getEnv("LOG_LEVEL", "info")),

		DB: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "training_center"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		},

		NatsURL: os.Getenv("NATS_URL"),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OtelEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "jaeger:4317"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		CorsAllowOrigins:    getEnv("CORS_ALLOW_ORIGINS", "*"),
		RateLimitMax:        getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitExpiration: getEnvInt("RATE_LIMIT_EXPIRATION", 60),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil || intValue <= 0 {
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
