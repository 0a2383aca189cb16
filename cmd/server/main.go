package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fittrack/backend/internal/api"
	"fittrack/backend/internal/config"
	"fittrack/backend/internal/repository/postgres"
	"fittrack/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("FATAL: JWT_SECRET must be set")
	}

	logger, err := buildLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// --- Database Connection ---
	db, err := postgres.Connect(cfg.Database.DSN)
	if err != nil {
		sugar.Fatalw("could not connect to database", "error", err)
	}
	sugar.Info("database connection established")

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db)
	workoutRepo := postgres.NewWorkoutRepository(db)
	nutritionRepo := postgres.NewNutritionRepository(db)
	statRepo := postgres.NewBodyStatRepository(db)

	// --- Services ---
	hasher := service.NewBcryptHasher(bcrypt.DefaultCost)
	authService := service.NewAuthService(userRepo, hasher, cfg.JWT.Secret, cfg.JWT.Expiration, sugar)
	workoutService := service.NewWorkoutService(workoutRepo, userRepo)
	nutritionService := service.NewNutritionService(nutritionRepo, userRepo)
	statService := service.NewBodyStatService(statRepo, userRepo)
	summaryService := service.NewSummaryService(userRepo, workoutRepo, nutritionRepo, statRepo)
	syncService := service.NewSyncService(userRepo, workoutRepo, nutritionRepo, statRepo, sugar)

	// --- Router ---
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(api.RequestID(), api.RequestLogger(sugar), gin.Recovery())

	api.SetupRoutes(
		router,
		api.NewAuthHandler(authService),
		api.NewWorkoutHandler(workoutService),
		api.NewNutritionHandler(nutritionService),
		api.NewBodyStatHandler(statService),
		api.NewSummaryHandler(summaryService),
		api.NewSyncHandler(syncService),
	)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sugar.Infow("server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("listen and serve failed", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugar.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		sugar.Fatalw("server forced to shutdown", "error", err)
	}
	sugar.Info("server exiting")
}

func buildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		parsed, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = parsed
	}
	return cfg.Build()
}
