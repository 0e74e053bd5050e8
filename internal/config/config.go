// Package config provides environment-driven configuration for the server
// and its integrations.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds everything the HTTP server needs to start. Required
// values fail fast at startup rather than on first use.
type ServerConfig struct {
	Port        int
	DatabaseURL string

	// Gemini API key for AI content generation.
	GeminiAPIKey string

	// Redis address for wizard session storage. Empty selects the in-memory
	// store, which is fine for a single instance.
	RedisAddr string

	// Stripe secret key for checkout and subscription lookups. Empty disables
	// the billing endpoints.
	StripeSecretKey string
}

// NewServerConfig creates the server configuration from environment
// variables. It reads DATABASE_URL and GEMINI_API_KEY (required), and
// PORT, REDIS_ADDR, STRIPE_SECRET_KEY (optional).
func NewServerConfig() (*ServerConfig, error) {
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080" // default
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %v", err)
	}

	config := &ServerConfig{
		Port:            port,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *ServerConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	return nil
}
