package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	analyticshandlers "github.com/architect/kidlearn/internal/analytics/handlers"
	analyticsrepo "github.com/architect/kidlearn/internal/analytics/repository"
	analyticsservices "github.com/architect/kidlearn/internal/analytics/services"
	"github.com/architect/kidlearn/internal/common/database"
	commonhandlers "github.com/architect/kidlearn/internal/common/handlers"
	"github.com/architect/kidlearn/internal/common/health"
	"github.com/architect/kidlearn/internal/common/middleware"
	"github.com/architect/kidlearn/internal/progress/cache"
	progresshandlers "github.com/architect/kidlearn/internal/progress/handlers"
	progressrepo "github.com/architect/kidlearn/internal/progress/repository"
	progressservices "github.com/architect/kidlearn/internal/progress/services"
	"github.com/architect/kidlearn/internal/seed"
	userhandlers "github.com/architect/kidlearn/internal/users/handlers"
	usermodels "github.com/architect/kidlearn/internal/users/models"
	userrepo "github.com/architect/kidlearn/internal/users/repository"
	userservices "github.com/architect/kidlearn/internal/users/services"
	"github.com/architect/kidlearn/pkg/config"
	"github.com/architect/kidlearn/pkg/logger"
	"github.com/architect/kidlearn/pkg/timeutil"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// userDirectory adapts the users service to the directory interfaces the
// progress and analytics services consume. Late-bound because the users
// service itself depends on the progress service for lifecycle cascades.
type userDirectory struct {
	users *userservices.Service
}

func (d *userDirectory) FindUser(ctx context.Context, id string) (*usermodels.User, error) {
	return d.users.FindUser(ctx, id)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Build repositories for the configured store
	db, userRepository, progressRepository, analyticsRepository, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Optional Redis leaderboard cache
	var redisClient *redis.Client
	var leaderboardCache *cache.LeaderboardCache
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		leaderboardCache = cache.NewLeaderboardCache(redisClient)
		logger.Info("leaderboard cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	clock := timeutil.SystemClock{}

	// Wire services; the user directory is late-bound to break the
	// users -> progress -> users cycle
	directory := &userDirectory{}
	analyticsService := analyticsservices.NewService(analyticsRepository, directory, clock)
	progressService := progressservices.NewService(progressRepository, directory, analyticsService, leaderboardCache, clock)
	userService := userservices.NewService(userRepository, progressService, clock)
	directory.users = userService

	if cfg.Server.Env == "development" && cfg.Server.DemoData {
		seed.Demo(context.Background(), userService, progressService, analyticsService)
	}

	// Create Gin engine
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(cors.Default())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())

	// Health check endpoints
	healthHandler := commonhandlers.NewHealthHandler(health.NewChecker(db, redisClient))
	router.GET("/health", healthHandler.Health)
	router.GET("/health/readiness", healthHandler.Readiness)
	router.GET("/health/liveness", healthHandler.Liveness)

	userHandler := userhandlers.NewUserHandler(userService)
	progressHandler := progresshandlers.NewProgressHandler(progressService)
	analyticsHandler := analyticshandlers.NewAnalyticsHandler(analyticsService)

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		progress := api.Group("/progress")
		{
			progress.GET("/user/:userId", progressHandler.GetProgress)
			progress.PUT("/user/:userId", progressHandler.UpdateProgress)
			progress.POST("/user/:userId/reset", progressHandler.ResetProgress)
			progress.GET("/leaderboard", progressHandler.GetLeaderboard)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/users/:userId", analyticsHandler.GetUserAnalytics)
			analytics.POST("/users/:userId/activity", analyticsHandler.RecordActivity)
			analytics.POST("/users/:userId/session", analyticsHandler.StartSession)
			analytics.POST("/users/:userId/milestone", analyticsHandler.AddMilestone)
			analytics.GET("/users/:userId/recommendations", analyticsHandler.GetRecommendations)
			analytics.GET("/users/:userId/parental-summary", analyticsHandler.GetParentalSummary)
		}
	}

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting KidLearn server",
		zap.String("address", address),
		zap.String("env", cfg.Server.Env),
		zap.String("store", cfg.Database.Type),
	)

	if err := router.Run(address); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildRepositories constructs the storage layer: in-process maps by
// default, gorm-backed sqlite or postgres when configured. The returned DB
// handle is nil for the memory store.
func buildRepositories(cfg *config.Config) (*gorm.DB, userrepo.Repository, progressrepo.Repository, analyticsrepo.Repository, error) {
	if cfg.Database.Type == "memory" {
		return nil, userrepo.NewMemoryRepository(), progressrepo.NewMemoryRepository(), analyticsrepo.NewMemoryRepository(), nil
	}

	if cfg.Database.Type == "sqlite" && cfg.Database.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return nil, nil, nil, nil, err
		}
	}

	db, err := database.Connect(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	users, err := userrepo.NewGormRepository(db)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	progress, err := progressrepo.NewGormRepository(db)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	analytics, err := analyticsrepo.NewGormRepository(db)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return db, users, progress, analytics, nil
}
