// Package container wires the application together using Uber FX.
package container

import (
	"context"

	"github.com/redis/go-redis/v9"
	chatapp "github.com/vothanhthong/yummyai/internal/application/chat"
	cookbookapp "github.com/vothanhthong/yummyai/internal/application/cookbook"
	mealplanapp "github.com/vothanhthong/yummyai/internal/application/mealplan"
	suggestionsapp "github.com/vothanhthong/yummyai/internal/application/suggestions"
	"github.com/vothanhthong/yummyai/internal/infrastructure/ai/openrouter"
	"github.com/vothanhthong/yummyai/internal/infrastructure/auth"
	"github.com/vothanhthong/yummyai/internal/infrastructure/cache"
	"github.com/vothanhthong/yummyai/internal/infrastructure/config"
	"github.com/vothanhthong/yummyai/internal/infrastructure/http/apiserver"
	"github.com/vothanhthong/yummyai/internal/infrastructure/monitoring"
	gormrepo "github.com/vothanhthong/yummyai/internal/infrastructure/persistence/gorm"
	"github.com/vothanhthong/yummyai/internal/ports/inbound"
	"github.com/vothanhthong/yummyai/internal/ports/outbound"
	"github.com/vothanhthong/yummyai/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module provides all dependency injection modules.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration.
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging.
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the GORM connection.
var DatabaseModule = fx.Provide(
	gormrepo.Connect,
)

// CacheModule provides the optional Redis-backed identifier cache.
var CacheModule = fx.Provide(
	cache.NewRedisClient,
	cache.NewIdentifierCache,
)

// RepositoryModule provides the persistence gateway implementations.
var RepositoryModule = fx.Provide(
	gormrepo.NewChatRepository,
	gormrepo.NewCookbookRepository,
	gormrepo.NewSuggestionRepository,
	gormrepo.NewMealPlanRepository,
)

// ServiceModule provides the application services.
var ServiceModule = fx.Provide(
	fx.Annotate(
		openrouter.NewClient,
		fx.As(new(outbound.AIService)),
	),
	auth.NewTokenService,
	monitoring.NewMetrics,

	chatapp.NewService,
	func(s *chatapp.Service) inbound.ChatService { return s },

	fx.Annotate(
		cookbookapp.NewService,
		fx.As(new(inbound.CookbookService)),
	),
	fx.Annotate(
		suggestionsapp.NewService,
		fx.As(new(inbound.SuggestionService)),
	),
	fx.Annotate(
		mealplanapp.NewService,
		fx.As(new(inbound.MealPlanService)),
	),
)

// HTTPModule provides the API server.
var HTTPModule = fx.Provide(
	apiserver.NewServer,
)

// LifecycleModule registers startup and shutdown hooks.
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks starts the HTTP server on application start
// and drains everything on stop: the server first, then the pending
// chat persistence writes, then the database and cache connections.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	chatService *chatapp.Service,
	server *apiserver.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("failed to shut down HTTP server", zap.Error(err))
			}

			// Chat persistence is fire-and-forget; let in-flight
			// writes land before the database goes away.
			chatService.FlushAll()

			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("failed to close database connection", zap.Error(err))
				}
			}

			if redisClient != nil {
				if err := redisClient.Close(); err != nil {
					log.Error("failed to close redis connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
