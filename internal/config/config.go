package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	CORSOrigin     string
	LoginRateLimit int
	LogLevel       string
	LogFormat      string
	ResetDB        bool
	SwaggerHost    string

	DBDriver    string
	DatabaseDSN string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret       string
	JWTExpiresHours int
	JWTIssuer       string

	EditionName      string
	EditionPublisher string

	WebPort              string
	APIURL               string
	SessionLifetimeHours int
}

// Load reads an optional .env file and builds Config from the environment
// with sensible defaults. Variables already set win over the file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("APP_PORT", "3000"),
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:8080"),
		LoginRateLimit: getEnvInt("LOGIN_RATE_LIMIT", 10),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		ResetDB:        os.Getenv("RESET_DB") == "true",
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),

		DBDriver:    getEnv("DB_DRIVER", "mysql"),
		DatabaseDSN: getEnv("DATABASE_DSN", "user:password@tcp(localhost:3306)/newsroom?charset=utf8mb4&parseTime=True&loc=UTC"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTExpiresHours: getEnvInt("JWT_EXPIRES_HOURS", 8),
		JWTIssuer:       getEnv("JWT_ISSUER", "newsroom_app"),

		EditionName:      getEnv("EDITION_NAME", "Daily Edition"),
		EditionPublisher: getEnv("EDITION_PUBLISHER", "Newsroom"),

		WebPort:              getEnv("WEB_PORT", "8080"),
		APIURL:               getEnv("NEXT_PUBLIC_API_URL", "http://localhost:3000"),
		SessionLifetimeHours: getEnvInt("SESSION_LIFETIME_HOURS", 8),
	}
}

// JWTExpiry is the configured token lifetime.
func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiresHours) * time.Hour
}

// SessionLifetime is the configured front-end session lifetime.
func (c *Config) SessionLifetime() time.Duration {
	return time.Duration(c.SessionLifetimeHours) * time.Hour
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
