package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "APP_VERSION", "SHUTDOWN_TIMEOUT",
		"DB_DRIVER", "DB_SQLITE_PATH", "DB_MAX_OPEN_CONNS", "DB_CONN_MAX_LIFETIME",
		"CORS_ALLOW_ORIGINS", "REDIS_URL", "STATS_CACHE_TTL", "NATS_URL", "NATS_SUBJECT_PREFIX",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./tasks.db", cfg.Database.SQLitePath)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8080"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, 30*time.Second, cfg.Redis.StatsTTL)
	assert.Equal(t, "tasks.events", cfg.NATS.SubjectPrefix)
	assert.False(t, cfg.CacheEnabled())
	assert.False(t, cfg.EventsEnabled())
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("NATS_URL", "nats://localhost:4222")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
	assert.True(t, cfg.CacheEnabled())
	assert.True(t, cfg.EventsEnabled())
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "DB_DRIVER", "mysql"},
		{"bad duration", "SHUTDOWN_TIMEOUT", "soon"},
		{"bad int", "DB_MAX_OPEN_CONNS", "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestValidate_StatsTTLOnlyCheckedWithRedis(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Port: "8000", ShutdownTimeout: time.Second},
		Database: DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"},
		CORS:     CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Redis.URL = "redis://localhost:6379"
	assert.Error(t, cfg.Validate())

	cfg.Redis.StatsTTL = time.Second
	assert.NoError(t, cfg.Validate())
}
