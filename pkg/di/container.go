package di

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-tracker-api/application/serviceimpl"
	"task-tracker-api/domain/ports"
	"task-tracker-api/domain/repositories"
	"task-tracker-api/infrastructure/database"
	"task-tracker-api/infrastructure/messaging"
	natspkg "task-tracker-api/infrastructure/nats"
	redispkg "task-tracker-api/infrastructure/redis"
	"task-tracker-api/interfaces/api/handlers"
	"task-tracker-api/pkg/config"
	"task-tracker-api/pkg/logger"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redispkg.Client // nil when REDIS_URL is empty
	NATSClient  *natspkg.Client  // nil when NATS_URL is empty

	// Ports
	StatsCache     ports.StatsCachePort
	EventPublisher ports.TaskEventPublisherPort

	// Repositories
	TaskRepository repositories.TaskRepository

	// Services
	TaskService *serviceimpl.TaskServiceImpl
}

func NewContainer() *Container {
	return &Container{}
}

// NewContainerWithConfig skips environment loading, for tests and tools.
func NewContainerWithConfig(cfg *config.Config) *Container {
	return &Container{Config: cfg}
}

func (c *Container) Initialize() error {
	if c.Config == nil {
		if err := c.initConfig(); err != nil {
			return err
		}
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	c.initRepositories()
	c.initServices()

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
		Service:    c.Config.App.Name,
		Version:    c.Config.App.Version,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	dbCfg := c.Config.Database
	db, err := database.NewDatabase(database.DatabaseConfig{
		Driver:          dbCfg.Driver,
		Host:            dbCfg.Host,
		Port:            dbCfg.Port,
		User:            dbCfg.User,
		Password:        dbCfg.Password,
		DBName:          dbCfg.DBName,
		SSLMode:         dbCfg.SSLMode,
		SQLitePath:      dbCfg.SQLitePath,
		MaxOpenConns:    dbCfg.MaxOpenConns,
		MaxIdleConns:    dbCfg.MaxIdleConns,
		ConnMaxLifetime: dbCfg.ConnMaxLifetime,
		LogLevel:        dbCfg.LogLevel,
	})
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "driver", dbCfg.Driver)

	if err := database.Migrate(c.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("Database migrated")

	// Redis is optional; without it stats are computed on every request
	if c.Config.CacheEnabled() {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, stats cache disabled", "error", err)
		} else {
			c.RedisClient = redisClient
			c.StatsCache = redispkg.NewStatsCache(redisClient)
		}
	}

	// NATS is optional; without it events are dropped
	if c.Config.EventsEnabled() {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{
			URL:           c.Config.NATS.URL,
			SubjectPrefix: c.Config.NATS.SubjectPrefix,
			JetStream:     c.Config.NATS.JetStream,
		})
		if err != nil {
			logger.Warn("NATS unavailable, task events disabled", "error", err)
		} else {
			c.NATSClient = natsClient
			c.EventPublisher = natspkg.NewPublisher(natsClient)
		}
	}
	if c.EventPublisher == nil {
		c.EventPublisher = messaging.NewNoopEventPublisher()
	}

	return nil
}

func (c *Container) initRepositories() {
	c.TaskRepository = database.NewTaskRepository(c.DB)
	logger.Info("Repositories initialized")
}

func (c *Container) initServices() {
	opts := []serviceimpl.TaskServiceOption{
		serviceimpl.WithEventPublisher(c.EventPublisher),
	}
	if c.StatsCache != nil {
		opts = append(opts, serviceimpl.WithStatsCache(c.StatsCache, c.Config.Redis.StatsTTL))
	}
	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, opts...)

	logger.Info("Services initialized",
		"stats_cache", c.StatsCache != nil,
		"events", c.NATSClient != nil,
	)
}

// Cleanup releases connections in reverse order of creation. It stops early
// only if ctx expires.
func (c *Container) Cleanup(ctx context.Context) error {
	logger.Info("Starting cleanup...")

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		} else {
			logger.Info("NATS connection closed")
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if c.DB != nil {
		if err := database.Close(c.DB); err != nil {
			logger.Warn("Failed to close database connection", "error", err)
			return err
		}
		logger.Info("Database connection closed")
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		TaskService:   c.TaskService,
		HealthService: c.TaskService,
		AppVersion:    c.Config.App.Version,
		Now:           time.Now,
	}
}
