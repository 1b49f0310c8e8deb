// Command propertybase serves the property structure and the component
// hierarchy over REST and publishes component changes to Kafka.
package main

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/propertyhub/internal/pkg/config"
	"github.com/gartstein/propertyhub/internal/pkg/metrics"
	"github.com/gartstein/propertyhub/internal/pkg/server"
	"github.com/gartstein/propertyhub/internal/propertybase/controller"
	"github.com/gartstein/propertyhub/internal/propertybase/db"
	"github.com/gartstein/propertyhub/internal/propertybase/events"
	"github.com/gartstein/propertyhub/internal/propertybase/handlers"
	"go.uber.org/zap"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Log, "propertybase")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	repo, err := connectDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	producer := initProducer(cfg, logger)
	if p, ok := producer.(*events.Producer); ok {
		defer p.Close()
	}

	structureSvc := controller.NewStructureService(repo, logger)
	componentSvc := controller.NewComponentService(repo, producer, logger)
	handler := handlers.NewHandler(structureSvc, componentSvc, logger)

	router := handler.Router(handlers.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		Metrics:   metrics.New("propertybase"),
		Health:    repo.Ping,
	})

	if err := server.NewServer(cfg.HTTPPort, router, logger).Run(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("Property base stopped properly")
}

func loadConfig() (*config.PropertyBase, error) {
	var cfg config.PropertyBase
	path := config.Path("PROPERTYBASE_CONFIG", filepath.Join("config", "propertybase.yaml"))
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.Defaults()
	return &cfg, nil
}

// connectDatabase retries until PostgreSQL accepts connections or a minute
// has passed.
func connectDatabase(cfg *config.PropertyBase, logger *zap.Logger) (*db.Repository, error) {
	dbConf := &db.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = time.Minute

	var repo *db.Repository
	err := backoff.RetryNotify(func() error {
		var err error
		repo, err = db.NewRepository(dbConf)
		return err
	}, policy, func(err error, next time.Duration) {
		logger.Warn("Database not ready, retrying", zap.Error(err), zap.Duration("next", next))
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := repo.Ping(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// initProducer falls back to dropping events when no brokers are
// configured, so the service can run without Kafka locally.
func initProducer(cfg *config.PropertyBase, logger *zap.Logger) controller.EventProducer {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Warn("No Kafka brokers configured, component events are discarded")
		return events.NopProducer{}
	}
	producer, err := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	if err != nil {
		logger.Fatal("failed to initialize Kafka producer", zap.Error(err))
	}
	return producer
}
