package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string
	SiteURL       string
	CORSOrigins   []string

	// Supabase (remote offer store, keyword catalog, identity)
	SupabaseURL        string
	SupabaseServiceKey string

	// AWS configuration
	AWSRegion    string
	DraftsTable  string
	EventBusName string

	// External collaborators
	GitHubAPIBaseURL  string
	PaymentAPIBaseURL string
	PaymentAPIKey     string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Dynamic configuration file (optional)
	DynamicConfigPath string

	// Logging and features
	LogLevel      string
	EnableMetrics bool
	EnableCORS    bool
	EnableEvents  bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		SiteURL:       getEnv("SITE_URL", "https://app-prove.com"),
		CORSOrigins: strings.Split(
			getEnv("CORS_ORIGINS", "http://localhost:3000,https://app-prove.com"), ","),

		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),

		AWSRegion:    getEnv("AWS_REGION", "eu-west-1"),
		DraftsTable:  getEnv("DRAFTS_TABLE", "appprove-drafts"),
		EventBusName: getEnv("EVENT_BUS_NAME", "appprove-events"),

		GitHubAPIBaseURL:  getEnv("GITHUB_API_BASE_URL", "https://api.github.com"),
		PaymentAPIBaseURL: getEnv("PAYMENT_API_BASE_URL", ""),
		PaymentAPIKey:     getEnv("PAYMENT_API_KEY", ""),

		JWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", ""),

		DynamicConfigPath: getEnv("DYNAMIC_CONFIG_PATH", ""),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
		EnableEvents:  getEnvBool("ENABLE_EVENTS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required")
	}
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("SUPABASE_JWT_SECRET is required in production")
		}
		if c.DraftsTable == "" {
			return fmt.Errorf("DRAFTS_TABLE is required")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
