package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Advisor provider names accepted by ADVISOR_PROVIDER.
const (
	AdvisorProviderGemini = "gemini"
	AdvisorProviderRules  = "rules"
)

// Config holds application configuration
type Config struct {
	// Server
	Env                string
	Port               string
	FrontendURL        string
	CORSAllowedOrigins []string

	// Database
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	SQLitePath     string
	MigrationsPath string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Google sign-in
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	// Advisor
	AdvisorProvider string
	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string // empty selects the SDK default endpoint
	AdvisorTimeout  time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Env:         getEnv("ENV", "development"),
		Port:        getEnv("PORT", "5000"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "cashnote"),
		DBPassword:     getEnv("DB_PASSWORD", "cashnote"),
		DBName:         getEnv("DB_NAME", "cashnote"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		SQLitePath:     getEnv("SQLITE_PATH", "cashnote.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", ""),

		AdvisorProvider: strings.ToLower(getEnv("ADVISOR_PROVIDER", AdvisorProviderGemini)),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", ""),
	}

	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", cfg.FrontendURL))
	cfg.JWTExpirationDur = getDuration("JWT_EXPIRES_IN", 7*24*time.Hour)
	cfg.AdvisorTimeout = getDuration("ADVISOR_TIMEOUT", 30*time.Second)

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: must be postgres or sqlite", cfg.DBDriver)
	}

	switch cfg.AdvisorProvider {
	case AdvisorProviderGemini, AdvisorProviderRules:
	default:
		return nil, fmt.Errorf("invalid ADVISOR_PROVIDER %q: must be %s or %s",
			cfg.AdvisorProvider, AdvisorProviderGemini, AdvisorProviderRules)
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// GoogleOAuthEnabled reports whether Google sign-in credentials are present.
func (c *Config) GoogleOAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.TrimRight(p, "/"))
		}
	}
	return out
}
