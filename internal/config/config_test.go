package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv は設定関連の環境変数をすべて未設定に戻します。
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD",
		"JWT_SECRET", "UPLOAD_DIR", "CACHE_TTL",
	}
	for _, k := range keys {
		// t.Setenv registers the restore; unset so defaults apply
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestNew_RequiresJWTSecret(t *testing.T) {
	clearEnv(t)

	_, err := New()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "blogdb", cfg.DBName)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestNew_ExplicitValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}

func TestNew_InvalidCacheTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CACHE_TTL", "soon")

	_, err := New()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_TTL")
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "blog",
		DBPassword: "secret",
		DBName:     "blogdb",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=blog password=secret dbname=blogdb sslmode=disable",
		cfg.DSN())
}

func TestConfig_RedisAddr(t *testing.T) {
	tests := []struct {
		name string
		host string
		port string
		want string
	}{
		{"configured", "redis.internal", "6379", "redis.internal:6379"},
		{"not configured", "", "6379", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{RedisHost: tt.host, RedisPort: tt.port}
			assert.Equal(t, tt.want, cfg.RedisAddr())
		})
	}
}
