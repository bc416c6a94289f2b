// internal/config/config.go
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config carries everything the server reads from the environment.
type Config struct {
	Addr        string // listen address
	DatabaseURL string // empty disables persistence
	RedisAddr   string // empty disables action history
	JWTSecret   string
	LogLevel    string
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads .env if present, then the environment, with defaults suitable
// for local play.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not read .env")
	}
	return Config{
		Addr:        envOr("DINK_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		JWTSecret:   envOr("JWT_SECRET", "dink-dev-secret"),
		LogLevel:    envOr("LOG_LEVEL", "info"),
	}
}
