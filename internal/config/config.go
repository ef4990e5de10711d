// Package config reads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Env          string   // "production" or anything else for development
	HTTPAddr     string   // listen address for cmd/server
	DatabaseURL  string   // optional postgres snapshot sink
	KafkaBrokers []string // optional event brokers
	LogLevel     string
}

// Load reads a .env file if present, then the environment. Missing keys fall
// back to development defaults; nothing here is fatal.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:          getenv("ENV", "development"),
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		LogLevel:     getenv("LOG_LEVEL", "info"),
	}
}

// NewLogger builds the process logger: JSON output in production, console
// output otherwise, level taken from LOG_LEVEL.
func (c Config) NewLogger() (*zap.Logger, error) {
	var zapCfg zap.Config
	if c.Env == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
