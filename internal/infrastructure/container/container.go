// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/mealforge/v1/internal/application/household"
	"github.com/mealforge/v1/internal/application/planner"
	"github.com/mealforge/v1/internal/infrastructure/ai/openai"
	"github.com/mealforge/v1/internal/infrastructure/cache"
	"github.com/mealforge/v1/internal/infrastructure/config"
	"github.com/mealforge/v1/internal/infrastructure/http/server"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
	gormRepo "github.com/mealforge/v1/internal/infrastructure/persistence/gorm"
	"github.com/mealforge/v1/internal/infrastructure/persistence/postgres"
	"github.com/mealforge/v1/internal/infrastructure/persistence/sqlite"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/mealforge/v1/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	MonitoringModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: !cfg.IsProduction(),
		})
	},
)

// DatabaseModule provides the database connection
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		logLevel := gormLogger.Silent
		if !cfg.IsProduction() {
			logLevel = gormLogger.Warn
		}

		switch cfg.Database.Driver {
		case "postgres":
			db, err := postgres.SetupDatabase(cfg.PostgresDSN(), logLevel)
			if err != nil {
				return nil, fmt.Errorf("failed to setup postgres database: %w", err)
			}
			log.Info("Connected to PostgreSQL database",
				zap.String("host", cfg.Database.Host),
				zap.String("database", cfg.Database.Database))
			return db, nil
		default:
			db, err := sqlite.SetupDatabase(cfg.Database.Path, logLevel)
			if err != nil {
				return nil, fmt.Errorf("failed to setup sqlite database: %w", err)
			}
			log.Info("Connected to SQLite database", zap.String("path", cfg.Database.Path))
			return db, nil
		}
	},
)

// CacheModule provides the suggestion cache
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
		if !cfg.Redis.Enabled {
			log.Info("Suggestion cache disabled")
			return cache.NewNoopCache()
		}
		redisCache, err := cache.NewRedisCache(cfg.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, suggestion caching disabled", zap.Error(err))
			return cache.NewNoopCache()
		}
		log.Info("Connected to Redis suggestion cache",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port))
		return redisCache
	},
)

// MonitoringModule provides Prometheus metrics
var MonitoringModule = fx.Provide(
	monitoring.NewMetrics,
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewInventoryRepository,
	gormRepo.NewHistoryRepository,
	gormRepo.NewReviewRepository,
	gormRepo.NewPreferenceRepository,
	gormRepo.NewPlanRepository,
	gormRepo.NewShoppingRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	// Chat-completions client
	func(cfg *config.Config, metrics *monitoring.Metrics, log *zap.Logger) outbound.ChatService {
		return openai.NewClient(cfg.AI, metrics, log)
	},

	// Context assembler
	func(
		cfg *config.Config,
		inventory outbound.InventoryRepository,
		history outbound.HistoryRepository,
		reviews outbound.ReviewRepository,
		preferences outbound.PreferenceRepository,
		log *zap.Logger,
	) (*planner.ContextAssembler, error) {
		zone := time.Local
		if cfg.Planner.Timezone != "" {
			loaded, err := time.LoadLocation(cfg.Planner.Timezone)
			if err != nil {
				return nil, fmt.Errorf("invalid planner.timezone: %w", err)
			}
			zone = loaded
		}
		return planner.NewContextAssembler(
			inventory, history, reviews, preferences,
			cfg.Planner.DefaultCalorieGoal, zone, log,
		), nil
	},

	// Planning engine
	func(
		cfg *config.Config,
		assembler *planner.ContextAssembler,
		chat outbound.ChatService,
		plans outbound.PlanRepository,
		shopping outbound.ShoppingRepository,
		inventory outbound.InventoryRepository,
		cacheRepo outbound.CacheRepository,
		log *zap.Logger,
	) *planner.Service {
		return planner.NewService(assembler, chat, plans, shopping, inventory, cacheRepo, planner.Options{
			MaxAttempts: cfg.AI.MaxRetries + 1,
			CacheTTL:    cfg.Redis.CacheTTL,
		}, log)
	},

	// Household record keeping
	household.NewService,
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule registers application lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Mealforge",
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Mealforge")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
