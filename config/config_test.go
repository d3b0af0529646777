package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/contacts")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "back_emails", cfg.NotificationQueue)
	assert.Equal(t, 2*time.Hour, cfg.PostalCodeCacheTTL)
	assert.Equal(t, "https://viacep.com.br", cfg.PostalCodeAPIURL)
	assert.Equal(t, 100, cfg.RateLimitGlobalThreshold)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow())
	assert.Equal(t, 3, cfg.QueueMaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.QueueRetryBackoff)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("POSTAL_CODE_API_URL", "http://cep.local/")
	t.Setenv("POSTAL_CODE_CACHE_TTL", "30m")
	t.Setenv("QUEUE_MAX_ATTEMPTS", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test/, ,http://b.test")
	t.Setenv("NOTIFICATION_MAIL", "ops@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://cep.local", cfg.PostalCodeAPIURL)
	assert.Equal(t, 30*time.Minute, cfg.PostalCodeCacheTTL)
	assert.Equal(t, 3, cfg.QueueMaxAttempts)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "ops@example.com", cfg.NotificationMail)
}
