package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("SEARCH_CACHE_TTL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, BackendPostgres, cfg.StorageBackend)
	assert.Equal(t, time.Minute, cfg.SearchCacheTTL)
	assert.False(t, cfg.UseRedis())
	assert.False(t, cfg.UseS3())
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", BackendMemory)
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SEARCH_CACHE_TTL", "15s")
	t.Setenv("VERIFY_EMAIL_DOMAIN", "true")
	t.Setenv("S3_BUCKET", "cars")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com,")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 15*time.Second, cfg.SearchCacheTTL)
	assert.True(t, cfg.VerifyEmailDomain)
	assert.True(t, cfg.UseS3())
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	t.Setenv("SEARCH_CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, time.Minute, cfg.SearchCacheTTL)
}
