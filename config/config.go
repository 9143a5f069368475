package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the task manager service.
type Config struct {
	Address        string
	MongoURI       string
	MongoDatabase  string
	JWTSecret      string
	JaegerAddress  string
	TokenDuration  time.Duration
	DefaultStatus  string
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Address:       strings.TrimSpace(os.Getenv("ADDRESS")),
		MongoURI:      strings.TrimSpace(os.Getenv("MONGO_DB_URI")),
		MongoDatabase: strings.TrimSpace(os.Getenv("MONGO_DB_NAME")),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JaegerAddress: strings.TrimSpace(os.Getenv("JAEGER_ADDRESS")),
		DefaultStatus: strings.TrimSpace(os.Getenv("DEFAULT_TASK_STATUS")),
		TokenDuration: parseDuration(strings.TrimSpace(os.Getenv("TOKEN_DURATION_HOURS"))),
	}

	if cfg.Address == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		cfg.Address = ":" + port
	}

	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "taskmanager"
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "change-me-in-production"
	}

	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = 24 * time.Hour
	}

	// New tasks without an explicit status start as Pending.
	if cfg.DefaultStatus == "" {
		cfg.DefaultStatus = "Pending"
	}

	if cfg.JaegerAddress == "" {
		cfg.JaegerAddress = "http://localhost:14268/api/traces"
	}

	if origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowedOrigins = []string{"*"}
	}

	if cfg.MongoURI == "" {
		return cfg, fmt.Errorf("MONGO_DB_URI is required")
	}

	return cfg, nil
}

func parseDuration(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	var hours int
	if _, err := fmt.Sscanf(raw, "%d", &hours); err != nil || hours <= 0 {
		return 0
	}
	return time.Duration(hours) * time.Hour
}
