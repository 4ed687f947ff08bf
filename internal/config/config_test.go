package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("IsProduction checks environment", func(t *testing.T) {
		assert.True(t, (&Config{Environment: "production"}).IsProduction())
		assert.False(t, (&Config{Environment: "development"}).IsProduction())
		assert.False(t, (&Config{}).IsProduction())
	})
}

func TestValidate(t *testing.T) {
	t.Run("development accepts the default secret", func(t *testing.T) {
		cfg := &Config{Environment: "development", SessionSecret: "dev-secret-change-me"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("production rejects short secret", func(t *testing.T) {
		cfg := &Config{Environment: "production", SessionSecret: "short"}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_SECRET")
	})

	t.Run("production rejects known weak secret", func(t *testing.T) {
		cfg := &Config{Environment: "production", SessionSecret: "password"}
		require.Error(t, cfg.Validate())
	})

	t.Run("production accepts a strong secret", func(t *testing.T) {
		cfg := &Config{
			Environment:   "production",
			SessionSecret: "0123456789abcdef0123456789abcdef",
		}
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"PORT":           os.Getenv("PORT"),
		"ENVIRONMENT":    os.Getenv("ENVIRONMENT"),
		"DATABASE_URL":   os.Getenv("DATABASE_URL"),
		"REDIS_URL":      os.Getenv("REDIS_URL"),
		"SESSION_SECRET": os.Getenv("SESSION_SECRET"),
		"LOG_LEVEL":      os.Getenv("LOG_LEVEL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads config with defaults", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Unsetenv("PORT")
		os.Unsetenv("ENVIRONMENT")
		os.Unsetenv("SESSION_SECRET")
		os.Unsetenv("LOG_LEVEL")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
		assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("loads custom values", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("PORT", "3000")
		os.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("fails without required values", func(t *testing.T) {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("REDIS_URL")

		_, err := Load()
		assert.Error(t, err)
	})
}
