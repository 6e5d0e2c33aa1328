package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://jobs.example.com ,")
	t.Setenv("MEILISEARCH_HOST", "meili")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "change-me", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://jobs.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "http://meili:7700", cfg.MeiliSearchHost)
	assert.Equal(t, 5*time.Second, cfg.RateLimitApply)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("production without secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown broker", func(t *testing.T) {
		t.Setenv("EVENT_BROKER", "carrier-pigeon")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_APPLY", "soon")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "app", DBPass: "pw", DBName: "jobs", DBPort: "5433"}
	assert.Equal(t, "host=db user=app password=pw dbname=jobs port=5433 sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "postgres://app@db/jobs"
	assert.Equal(t, "postgres://app@db/jobs", cfg.DSN())
}
