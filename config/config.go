package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Env            string // development | production
	DBUrl          string
	StorageBackend string // postgres | memory
	FrontendURL    string
	UploadDir      string
	// Auth
	JWTSecret      string
	JWTExpiresDays int
	AdminSecretKey string
	// Admin bootstrap over HTTP is opt-in; the CLI path is the default.
	AdminBootstrapHTTP bool
	// SMTP Configuration (application notifications)
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	NotifyEmailTo string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitAuthThreshold   int
	RateLimitUploadThreshold int
}

func LoadConfig() (*Config, error) {
	// Only effective locally, ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("APP_ENV", "development"),
		DBUrl:          getEnv("DATABASE_URL", ""),
		StorageBackend: getEnv("STORAGE_BACKEND", "postgres"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		// Auth
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpiresDays:     getEnvInt("JWT_EXPIRES_DAYS", 30),
		AdminSecretKey:     getEnv("ADMIN_SECRET_KEY", ""),
		AdminBootstrapHTTP: getEnvBool("ADMIN_BOOTSTRAP_HTTP", false),
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),
		NotifyEmailTo: getEnv("NOTIFY_EMAIL_TO", ""),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitAuthThreshold:   getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", 10),
		RateLimitUploadThreshold: getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 10),
	}

	// Basic validation to avoid confusing failures later
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Issued tokens will not survive restarts securely.")
	}
	if cfg.StorageBackend == "postgres" && cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
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

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
