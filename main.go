package main

import (
	"context"
	"fmt"
	"time"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/handlers"
	"inventory/internal/logger"
	"inventory/internal/metrics"
	"inventory/internal/repositories"
	"inventory/internal/seed"
	"inventory/internal/server"
	"inventory/internal/services"
	"inventory/pkg/rabbitmq"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.Load,
			newLogger,
			newDatabase,
			newProductRepository,
			newPublisher,
			metrics.New,
			services.NewProductService,
			handlers.NewProductHandler,
			newHealthHandler,
			server.NewApp,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Invoke(seedStore),
		fx.Invoke(server.Run),
	)
	app.Run()
}

func newLogger(lc fx.Lifecycle, cfg config.Config) (*zap.Logger, error) {
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Production: cfg.IsProduction()})
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
	return log, nil
}

// newDatabase opens the configured database. The memory driver has none and
// yields a nil handle.
func newDatabase(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("using in-memory product store, data is lost on restart")
		return nil, nil
	}

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return database.Close(db)
		},
	})
	return db, nil
}

func newProductRepository(db *gorm.DB) repositories.ProductRepository {
	if db == nil {
		return repositories.NewMemoryProductRepository()
	}
	return repositories.NewGORMProductRepository(db)
}

// newPublisher connects to RabbitMQ when a URL is configured. It returns a nil
// interface otherwise, which turns event publishing off.
func newPublisher(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (services.MessagePublisher, error) {
	if cfg.RabbitMQURL == "" {
		log.Info("RABBITMQ_URL not set, product events disabled")
		return nil, nil
	}

	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
	if err != nil {
		return nil, err
	}
	log.Info("publishing product events", zap.String("queue", client.Queue()))
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func newHealthHandler(db *gorm.DB, log *zap.Logger) *handlers.HealthHandler {
	if db == nil {
		return handlers.NewHealthHandler(nil, log)
	}
	return handlers.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db, 2*time.Second)
	}, log)
}

func seedStore(cfg config.Config, repo repositories.ProductRepository, log *zap.Logger) error {
	if !cfg.SeedOnStart {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := seed.Run(ctx, repo, log); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	return nil
}
