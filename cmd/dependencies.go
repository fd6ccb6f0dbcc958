package cmd

import (
	"context"
	"fmt"

	"goodwill-valuation/config"
	"goodwill-valuation/internal/events"
	"goodwill-valuation/internal/model"
	"goodwill-valuation/internal/service"
	"goodwill-valuation/pkg/cache"
	"goodwill-valuation/pkg/database"
	"goodwill-valuation/pkg/logger"
	appMiddleware "goodwill-valuation/pkg/middleware"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type eventPublisher interface {
	service.EventPublisher
	Close()
}

type AppDependency struct {
	db        *database.DB
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	echo      *echo.Echo
	cache     cache.Cache
	redis     *redis.Client
	publisher eventPublisher
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	db, err := database.NewDB(ctx, cfg.DB, log)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&model.ValuationRow{}); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("Database schema migrated", zap.String("driver", cfg.DB.Driver))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(appMiddleware.RequestLogger(log))
	e.Use(appMiddleware.WithContext(cfg.API.RequestTimeout))
	e.Use(appMiddleware.NewRateLimiterMiddleware(cfg.API))

	appCache, redisClient := newCache(ctx, cfg.Cache, log)

	return &AppDependency{
		cfg:       cfg,
		log:       log,
		validator: goValidator.New(),
		db:        db,
		echo:      e,
		cache:     appCache,
		redis:     redisClient,
		publisher: newEventPublisher(cfg.Kafka, log),
	}, nil
}

// newCache returns the shared redis cache when configured and reachable,
// otherwise the in-process cache.
func newCache(ctx context.Context, cfg config.Cache, log *logger.Logger) (cache.Cache, *redis.Client) {
	if cfg.Driver != "redis" {
		return cache.NewCache(cfg.DefaultExpiration, cfg.CleanupInterval), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, falling back to in-memory cache",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err),
		)
		_ = client.Close()
		return cache.NewCache(cfg.DefaultExpiration, cfg.CleanupInterval), nil
	}

	log.Info("Using redis cache", zap.String("addr", cfg.RedisAddr))
	return cache.NewRedisCache(client, cfg.KeyPrefix, cfg.DefaultExpiration, log), client
}

// newEventPublisher falls back to a no-op publisher when Kafka is not
// configured or unreachable; events never gate the API.
func newEventPublisher(cfg config.Kafka, log *logger.Logger) eventPublisher {
	if !cfg.Enabled() {
		log.Info("Kafka disabled, lifecycle events are not published")
		return events.NoopPublisher{}
	}

	producer, err := events.NewProducer(cfg, log)
	if err != nil {
		log.Warn("Failed to connect to Kafka, lifecycle events are not published",
			zap.Error(err),
			zap.Strings("brokers", cfg.Brokers),
		)
		return events.NoopPublisher{}
	}
	log.Info("Kafka producer started", zap.String("topic", cfg.Topic))
	return producer
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	if d.publisher != nil {
		d.publisher.Close()
	}
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			d.log.Warn("Failed to close redis client", zap.Error(err))
		}
	}
	defer func() { _ = d.log.Sync() }()
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
