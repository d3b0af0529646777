package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	CORSOrigins []string
	// Logging
	LogLevel string
	LogFile  string
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Operator mailbox that receives "contact created" notifications
	NotificationMail string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Postal code directory (ViaCEP)
	PostalCodeAPIURL   string
	PostalCodeCacheTTL time.Duration
	PostalCodeTimeout  time.Duration
	// Notification queue
	NotificationQueue   string
	QueueMaxAttempts    int
	QueueRetryBackoff   time.Duration
	QueueEmbeddedWorker bool
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; in production the variables come from the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		CORSOrigins: getEnvList("CORS_ALLOWED_ORIGINS", nil),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
		// SMTP Configuration
		SMTPHost:         getEnv("SMTP_HOST", "localhost"),
		SMTPPort:         getEnv("SMTP_PORT", "1025"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:    getEnv("SMTP_FROM_EMAIL", "noreply@example.com"),
		NotificationMail: getEnv("NOTIFICATION_MAIL", "teste@example.com"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Postal code directory
		PostalCodeAPIURL:   strings.TrimRight(getEnv("POSTAL_CODE_API_URL", "https://viacep.com.br"), "/"),
		PostalCodeCacheTTL: getEnvDuration("POSTAL_CODE_CACHE_TTL", 2*time.Hour),
		PostalCodeTimeout:  getEnvDuration("POSTAL_CODE_TIMEOUT", 5*time.Second),
		// Notification queue
		NotificationQueue:   getEnv("NOTIFICATION_QUEUE", "back_emails"),
		QueueMaxAttempts:    getEnvInt("QUEUE_MAX_ATTEMPTS", 3),
		QueueRetryBackoff:   getEnvDuration("QUEUE_RETRY_BACKOFF", 5*time.Second),
		QueueEmbeddedWorker: getEnvBool("QUEUE_EMBEDDED_WORKER", true),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),    // 1 minute window
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100), // 100 requests per window
	}

	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{cfg.FrontendURL}
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Cache, queue and rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// RateLimitWindow is the rate limiting window as a duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
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

// getEnvDuration accepts Go duration strings ("2h", "90s")
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping empty items
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, strings.TrimRight(item, "/"))
		}
	}
	return out
}
