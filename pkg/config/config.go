package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Redis    RedisConfig // stats cache, optional
	NATS     NATSConfig  // task events, optional
	Log      LogConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Env             string
	Version         string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver     string // sqlite, postgres
	SQLitePath string // ./tasks.db or :memory:

	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string // silent, error, warn, info
}

type CORSConfig struct {
	AllowOrigins []string
}

// RedisConfig for the statistics cache. An empty URL disables caching.
type RedisConfig struct {
	URL      string // redis://localhost:6379
	Password string
	DB       int
	StatsTTL time.Duration
}

// NATSConfig for task lifecycle events. An empty URL disables publishing.
type NATSConfig struct {
	URL           string // nats://localhost:4222
	SubjectPrefix string
	JetStream     bool
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string // logs/app.log
	MaxSize    int    // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

func LoadConfig() (*Config, error) {
	// a missing .env is fine, plain environment variables are used instead
	_ = godotenv.Load()

	var errs []error
	intEnv := func(key, def string) int {
		v, err := strconv.Atoi(getEnv(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return v
	}
	durationEnv := func(key, def string) time.Duration {
		v, err := time.ParseDuration(getEnv(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return v
	}

	config := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "Task Tracker API"),
			Port:            getEnv("APP_PORT", "8000"),
			Env:             getEnv("APP_ENV", "development"),
			Version:         getEnv("APP_VERSION", "2.0.0"),
			ShutdownTimeout: durationEnv("SHUTDOWN_TIMEOUT", "10s"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			SQLitePath:      getEnv("DB_SQLITE_PATH", "./tasks.db"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			DBName:          getEnv("DB_NAME", "task_tracker"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    intEnv("DB_MAX_OPEN_CONNS", "25"),
			MaxIdleConns:    intEnv("DB_MAX_IDLE_CONNS", "5"),
			ConnMaxLifetime: durationEnv("DB_CONN_MAX_LIFETIME", "30m"),
			LogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		},
		CORS: CORSConfig{
			AllowOrigins: parseList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:8080")),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       intEnv("REDIS_DB", "0"),
			StatsTTL: durationEnv("STATS_CACHE_TTL", "30s"),
		},
		NATS: NATSConfig{
			URL:           getEnv("NATS_URL", ""),
			SubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "tasks.events"),
			JetStream:     getEnv("NATS_JETSTREAM", "false") == "true",
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    intEnv("LOG_MAX_SIZE", "100"),
			MaxBackups: intEnv("LOG_MAX_BACKUPS", "5"),
			MaxAge:     intEnv("LOG_MAX_AGE", "30"),
			Compress:   getEnv("LOG_COMPRESS", "true") == "true",
		},
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that parsing alone cannot catch.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.SQLitePath == "" {
			errs = append(errs, errors.New("DB_SQLITE_PATH must not be empty"))
		}
	case "postgres":
		if c.Database.Host == "" || c.Database.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}

	if c.App.Port == "" {
		errs = append(errs, errors.New("APP_PORT must not be empty"))
	}
	if c.App.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.Database.ConnMaxLifetime < 0 {
		errs = append(errs, errors.New("DB_CONN_MAX_LIFETIME must not be negative"))
	}
	if c.Redis.URL != "" && c.Redis.StatsTTL <= 0 {
		errs = append(errs, errors.New("STATS_CACHE_TTL must be positive"))
	}
	if len(c.CORS.AllowOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOW_ORIGINS must list at least one origin"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// parseList splits a comma-separated value, dropping blanks.
// "a, b,," -> ["a", "b"]
func parseList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// CacheEnabled reports whether a Redis URL is configured.
func (c *Config) CacheEnabled() bool {
	return c.Redis.URL != ""
}

// EventsEnabled reports whether a NATS URL is configured.
func (c *Config) EventsEnabled() bool {
	return c.NATS.URL != ""
}
