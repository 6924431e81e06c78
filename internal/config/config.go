package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values for DATABASE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	AppPort         string
	Environment     string
	LogLevel        string
	ShutdownTimeout time.Duration

	Database Database

	SeedOnStart bool

	RabbitMQURL   string
	RabbitMQQueue string

	CORSAllowOrigins string
	RateLimitMax     int
	RateLimitWindow  time.Duration
}

// Database holds the storage backend settings.
type Database struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

// IsProduction reports whether the service runs with production defaults.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads configuration from the environment, an optional .env file and an
// optional CONFIG_FILE.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", "5s")

	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=inventory port=5432 sslmode=disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("DATABASE_SLOW_THRESHOLD", "200ms")

	v.SetDefault("SEED_ON_START", true)

	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")

	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_MAX", 0)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppPort:         v.GetString("APP_PORT"),
		Environment:     strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		LogLevel:        strings.TrimSpace(v.GetString("LOG_LEVEL")),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		Database: Database{
			Driver:          strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER"))),
			DSN:             v.GetString("DATABASE_DSN"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
			SlowThreshold:   v.GetDuration("DATABASE_SLOW_THRESHOLD"),
		},
		SeedOnStart:      v.GetBool("SEED_ON_START"),
		RabbitMQURL:      strings.TrimSpace(v.GetString("RABBITMQ_URL")),
		RabbitMQQueue:    v.GetString("RABBITMQ_QUEUE"),
		CORSAllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		RateLimitMax:     v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow:  v.GetDuration("RATE_LIMIT_WINDOW"),
	}

	if !strings.Contains(cfg.AppPort, ":") {
		cfg.AppPort = ":" + cfg.AppPort
	}

	switch cfg.Database.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite, DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.Database.Driver)
	}

	if cfg.RabbitMQURL != "" && cfg.RabbitMQQueue == "" {
		return Config{}, fmt.Errorf("RABBITMQ_QUEUE is required when RABBITMQ_URL is set")
	}

	return cfg, nil
}
