package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/motorline/car-catalog/internal/api/http"
	"github.com/motorline/car-catalog/internal/api/http/handlers"
	"github.com/motorline/car-catalog/internal/auth"
	"github.com/motorline/car-catalog/internal/config"
	"github.com/motorline/car-catalog/internal/events"
	"github.com/motorline/car-catalog/internal/observability"
	"github.com/motorline/car-catalog/internal/persistence"
	"github.com/motorline/car-catalog/internal/repository"
	"github.com/motorline/car-catalog/internal/service"
	"github.com/motorline/car-catalog/internal/storage"
	"github.com/motorline/car-catalog/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	permissionRepo := repository.NewPermissionRepository(pool)
	groupRepo := repository.NewGroupRepository(pool)
	brandRepo := repository.NewBrandRepository(pool)
	imageRepo := repository.NewImageRepository(pool)
	carRepo := repository.NewCarRepository(pool)

	tokenManager, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}
	tokenStore := auth.NewRedisTokenStore(redis.Client, cfg.Auth.TokenTTL())

	imageStore, err := storage.NewImageStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Fatal("failed to init image store", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(userRepo, tokenManager, tokenStore, dispatcher)
	catalogService := service.NewCatalogService(carRepo, brandRepo, imageRepo, imageStore, dispatcher)
	accessService := service.NewAccessService(userRepo, roleRepo, permissionRepo, groupRepo, cfg.Auth.BcryptCost)
	auditService := service.NewAuditService(dispatcher, logger, metrics)
	worker.StartAuditWorker(auditService)

	authMiddleware := auth.NewMiddleware(authService.Authenticator(), logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(accessService),
		Cars:           handlers.NewCarsHandler(catalogService),
		Brands:         handlers.NewBrandsHandler(catalogService),
		Images:         handlers.NewImagesHandler(catalogService),
		Access:         handlers.NewAccessHandler(accessService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
