package config

import (
	"os"
	"strings"
)

const (
	defaultGenerationServiceURL = "http://127.0.0.1:8000"
	defaultSessionSecret        = "dev-session-secret-change-me"
	environmentProduction       = "production"
)

// Config holds the application configuration
// Note: brand, channel, label/reason and language catalogs are compiled in
// (see internal/catalog) and are not configurable here
type Config struct {
	// Environment
	Environment string
	Port        string

	// Generation service base URL; requests go to {URL}/generate
	GenerationServiceURL string

	// Signs the browser session cookie
	SessionSecret string

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

func Load() *Config {
	return &Config{
		Environment:          getEnv("ENVIRONMENT", "development"),
		Port:                 getEnv("PORT", "3000"),
		GenerationServiceURL: strings.TrimRight(getEnv("GENERATION_SERVICE_URL", defaultGenerationServiceURL), "/"),
		SessionSecret:        getEnv("SESSION_SECRET", defaultSessionSecret),
		SentryDSN:            getEnv("SENTRY_DSN", ""),
		LangfusePublicKey:    getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:    getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:         getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:      getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// IsProduction returns true when running with ENVIRONMENT=production
func (c *Config) IsProduction() bool {
	return c.Environment == environmentProduction
}

// UsesDefaultSessionSecret reports whether SESSION_SECRET was left unset
func (c *Config) UsesDefaultSessionSecret() bool {
	return c.SessionSecret == defaultSessionSecret
}
