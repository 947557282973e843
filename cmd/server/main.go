package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"entrena/gym-app/internal/api"
	"entrena/gym-app/internal/cache"
	"entrena/gym-app/internal/config"
	"entrena/gym-app/internal/dataaccess"
	"entrena/gym-app/internal/repository/mongo"
	"entrena/gym-app/internal/service"
	"entrena/gym-app/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting gym app server")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established", zap.String("database", cfg.Database.Name))

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureRoutineIndexes(ctx, appDB.Collection("routines"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureTrainingLogIndexes(ctx, appDB.Collection("training_logs"))
		mongo.EnsureNotificationIndexes(ctx, appDB.Collection("notifications"))
		logger.Info("index creation process completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.Fatal("failed to initialize S3 storage", zap.Error(err))
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	routineRepo := mongo.NewMongoRoutineRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	trainingLogRepo := mongo.NewMongoTrainingLogRepository(appDB)
	notificationRepo := mongo.NewMongoNotificationRepository(appDB)

	// --- Read Cache ---
	cacheStore := cache.NewStore(cache.Options{
		Capacity: cfg.Cache.Capacity,
		TTL:      cfg.Cache.TTL,
	})

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cacheStore, cfg.JWT.Secret, cfg.JWT.Expiration)
	dataService := dataaccess.NewDataService(
		userRepo,
		routineRepo,
		exerciseRepo,
		trainingLogRepo,
		notificationRepo,
		cacheStore,
		logger,
	)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret, cfg.ImageKit.PrivateKey, authService, dataService, fileStorage)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("server starting", zap.String("address", cfg.Server.Address))

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen and serve error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
