package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("S3_BUCKET", "")

	cfg := Load()

	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, 30*24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.CacheEnabled())
	assert.False(t, cfg.StorageEnabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("S3_BUCKET", "rooms")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.CacheEnabled())
	assert.True(t, cfg.StorageEnabled())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "abc")
	t.Setenv("CACHE_TTL", "-5m")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}
