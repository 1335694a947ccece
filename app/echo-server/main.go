package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retroFinder/app/echo-server/metrics"
	"retroFinder/app/echo-server/router"
	"retroFinder/business/catalog"
	"retroFinder/business/finder"
	"retroFinder/internal/middleware"
	"retroFinder/internal/repository/memory"
	psqlRepo "retroFinder/internal/repository/postgres"
	redisRepo "retroFinder/internal/repository/redis"
	"retroFinder/internal/rest"
	"retroFinder/pkg/config"
	"retroFinder/pkg/database"
	redisdb "retroFinder/pkg/database/redis"
	"retroFinder/pkg/logger"
	"retroFinder/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

const sessionGCInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting Retro Game Finder", "version", cfg.App.Version)

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redisdb.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer func() {
			if err := redisdb.CloseRedisClient(redisClient); err != nil {
				logger.Error("Failed to close Redis", "error", err)
			}
		}()
		logger.Info("Redis connected successfully")
	}

	// Init repo
	catalogRepo := psqlRepo.NewCatalogRepository(db)
	finderCfgRepo := psqlRepo.NewFinderConfigRepository(db)
	finderRepo := psqlRepo.NewFinderRepository(db, cfg.Finder.SessionTTL)

	var (
		sessionRepo finder.SessionRepository
		expiring    finder.ExpiringStore
	)
	switch cfg.Finder.SessionStore {
	case "redis":
		sessionRepo = redisRepo.NewSessionRepository(redisClient, cfg.Finder.SessionTTL)
	case "postgres":
		sessionRepo = finderRepo
		expiring = finderRepo
	default:
		memRepo := memory.NewSessionRepository(cfg.Finder.SessionTTL)
		sessionRepo = memRepo
		expiring = memRepo
	}
	logger.Info("Finder session store ready", "store", cfg.Finder.SessionStore, "ttl", cfg.Finder.SessionTTL.String())

	// Init service
	catalogService := catalog.NewCatalogService(catalogRepo)
	finderService := finder.NewFinderService(
		catalogRepo,
		sessionRepo,
		finderRepo,
		finderCfgRepo,
		cfg.Finder.Profile,
		engineConfig(cfg.Finder),
	)

	// Init handler
	catalogHandler := rest.NewCatalogHandler(catalogService)
	finderHandler := rest.NewFinderHandler(finderService)
	finderAdminHandler := rest.NewFinderAdminHandler(finderCfgRepo, finderService, cfg.Finder.Profile)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Trace())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}))

	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	healthChecks := map[string]func(context.Context) error{
		"postgres": database.HealthCheck(db),
	}
	if redisClient != nil {
		healthChecks["redis"] = redisdb.HealthCheck(redisClient)
	}

	// Setup routes
	router.SetupOpsRoutes(e, healthChecks)
	api := e.Group("/api/v1")
	router.SetupFinderRoutes(api, finderHandler)
	router.SetupFinderAdminRoutes(api, finderHandler, finderAdminHandler, authRequired, adminOnly)
	router.SetupCatalogRoutes(api, catalogHandler, authRequired, adminOnly)

	gcCtx, stopGC := context.WithCancel(context.Background())
	defer stopGC()
	go finder.RunSessionGC(gcCtx, expiring, sessionGCInterval)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

// engineConfig overlays the environment overrides on the engine defaults.
func engineConfig(env config.FinderConfig) finder.Config {
	cfg := finder.DefaultConfig()

	if env.TotalRounds > 0 {
		cfg.TotalRounds = env.TotalRounds
	}
	if env.BudgetThreshold > 0 {
		cfg.BudgetThreshold = env.BudgetThreshold
	}
	if env.PremiumThreshold > 0 {
		cfg.PremiumThreshold = env.PremiumThreshold
	}
	if env.RecommendationCount > 0 {
		cfg.RecommendationCount = env.RecommendationCount
	}
	if env.SecondaryCount > 0 {
		cfg.SecondaryCount = env.SecondaryCount
	}
	cfg.Jitter = env.Jitter
	cfg.Seed = env.Seed

	return cfg
}
