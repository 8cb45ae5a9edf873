package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DBUrl              string
	SupabaseUrl        string
	SupabaseKey        string
	SupabaseServiceKey string
	SupabaseJWTSecret  string
	FrontendURL        string
	// Stripe Configuration
	StripeSecretKey     string
	StripeWebhookSecret string
	StripePriceID       string // Default subscription price for checkout
	// Internal email routes shared secret (x-totl-internal-email-key)
	InternalEmailKey string
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
}

func LoadConfig() (*Config, error) {
	// .env only exists locally; ignored in production
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),
		// Strip trailing slash to avoid double slashes when joining paths
		SupabaseUrl:        strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseKey:        getEnv("SUPABASE_KEY", getEnv("SUPABASE_ANON_KEY", "")),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_KEY", getEnv("SUPABASE_SERVICE_ROLE_KEY", "")),
		SupabaseJWTSecret:  getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		FrontendURL:        strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Stripe
		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		StripePriceID:       getEnv("STRIPE_PRICE_ID", ""),
		// Internal email key
		InternalEmailKey: getEnv("TOTL_INTERNAL_EMAIL_KEY", ""),
		// SMTP
		SMTPHost:      getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@totl.app"),
		// Redis/Upstash
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate limiting
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.StripeWebhookSecret == "" {
		log.Println("WARNING: STRIPE_WEBHOOK_SECRET not configured. Webhook route will reject all events.")
	}
	if cfg.InternalEmailKey == "" {
		log.Println("WARNING: TOTL_INTERNAL_EMAIL_KEY not configured. Internal email routes will be unavailable.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
