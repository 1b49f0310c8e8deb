// Command core is the gateway the front-ends call. It fronts the property
// base and the lease system and runs the add-component process.
package main

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/gartstein/propertyhub/internal/core/adapters"
	"github.com/gartstein/propertyhub/internal/core/adapters/leasing"
	"github.com/gartstein/propertyhub/internal/core/adapters/propertybase"
	"github.com/gartstein/propertyhub/internal/core/cache"
	"github.com/gartstein/propertyhub/internal/core/processes"
	"github.com/gartstein/propertyhub/internal/core/routes"
	"github.com/gartstein/propertyhub/internal/pkg/auth"
	"github.com/gartstein/propertyhub/internal/pkg/config"
	"github.com/gartstein/propertyhub/internal/pkg/metrics"
	"github.com/gartstein/propertyhub/internal/pkg/middleware"
	"github.com/gartstein/propertyhub/internal/pkg/server"
	"github.com/gartstein/propertyhub/internal/propertybase/events"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const rateLimitCleanupInterval = 5 * time.Minute

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Log, cfg.ServiceName)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New("core")

	readCache, health := initCache(ctx, cfg, logger)
	consumer := initInvalidation(ctx, cfg, readCache, logger)

	pbClient := adapters.NewClient("propertybase", cfg.PropertyBase,
		auth.NewServiceToken(cfg.ServiceName, cfg.JWTSecret), m, logger)
	leasingClient := adapters.NewClient("leasing", cfg.Leasing, nil, m, logger)

	pb := propertybase.New(pbClient, readCache)
	addComponent := processes.NewAddComponent(pb, m, logger)
	handler := routes.NewHandler(pb, leasing.New(leasingClient), addComponent, logger)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger)
	stop := make(chan struct{})
	defer close(stop)
	limiter.StartCleanup(rateLimitCleanupInterval, stop)

	router := handler.Router(routes.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.CORSOrigins,
		Metrics:        m,
		RateLimiter:    limiter,
		Health:         health,
	})

	if err := server.NewServer(cfg.HTTPPort, router, logger).Run(); err != nil {
		logger.Error("server failed", zap.Error(err))
	}

	cancel()
	if consumer != nil {
		consumer.Wait()
		consumer.Close()
	}
	logger.Info("Core stopped properly")
}

func loadConfig() (*config.Core, error) {
	var cfg config.Core
	path := config.Path("CORE_CONFIG", filepath.Join("config", "core.yaml"))
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.Defaults()
	return &cfg, nil
}

// initCache connects the Redis read cache when an address is configured.
// Without one, reads always go upstream.
func initCache(ctx context.Context, cfg *config.Core, logger *zap.Logger) (*cache.Cache, func(context.Context) error) {
	if cfg.Redis.Addr == "" {
		logger.Info("Redis not configured, read cache disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable at startup, cache reads will miss", zap.Error(err))
	}

	health := func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
	return cache.New(cache.NewRedisKV(client), cfg.Redis.TTL, logger), health
}

// initInvalidation subscribes the cache to property base component events.
func initInvalidation(ctx context.Context, cfg *config.Core, c *cache.Cache, logger *zap.Logger) *events.Consumer {
	if c == nil || len(cfg.Kafka.Brokers) == 0 {
		return nil
	}
	consumer := events.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, logger)
	consumer.RegisterHandler(cache.NewInvalidator(c, logger).HandleEvent)
	consumer.Start(ctx)
	return consumer
}
