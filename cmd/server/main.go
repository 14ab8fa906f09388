package main

import (
	"alcyxob/fitness-admin/internal/api"
	"alcyxob/fitness-admin/internal/auth"
	"alcyxob/fitness-admin/internal/config"
	"alcyxob/fitness-admin/internal/media"
	"alcyxob/fitness-admin/internal/repository"
	"alcyxob/fitness-admin/internal/repository/memory"
	"alcyxob/fitness-admin/internal/repository/mongo"
	"alcyxob/fitness-admin/internal/service"
	"alcyxob/fitness-admin/internal/session"
	"alcyxob/fitness-admin/internal/storage"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Fitness Admin API
// @version 1.0
// @description Content administration for the fitness catalogue: categories,
// @description workout types, levels, exercises, plans, users and media.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Fitness Admin Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Document Store ---
	store, closeStore, err := openStore(cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: Could not open document store: %v", err)
	}
	defer closeStore()

	// --- Image Host ---
	log.Println("Initializing image host...")
	host, err := newImageHost(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize image host: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := repository.NewUserRepository(store)
	settingsRepo := repository.NewAdminSettingsRepository(store)
	deps := api.Dependencies{
		Categories:    repository.NewCategoryRepository(store),
		WorkoutTypes:  repository.NewWorkoutTypeRepository(store),
		Levels:        repository.NewLevelRepository(store),
		Exercises:     repository.NewExerciseRepository(store),
		WorkoutPlans:  repository.NewWorkoutPlanRepository(store),
		PlanExercises: repository.NewPlanExerciseRepository(store),
		Users:         userRepo,
		Favorites:     repository.NewUserFavoriteRepository(store),
		Sessions:      repository.NewWorkoutSessionRepository(store),
		Progress:      repository.NewUserProgressRepository(store),
		Settings:      settingsRepo,
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	provider := auth.NewProvider(store, cfg.JWT.Secret, cfg.JWT.Expiration)
	deps.AuthService = service.NewAuthService(provider, userRepo, settingsRepo)
	deps.MediaService = service.NewMediaService(
		host,
		repository.NewMediaAssetRepository(store),
		media.NewHTTPLoader(cfg.Media.HTTPTimeout),
		cfg.Media.DefaultFolder,
		cfg.Media.FrameDelay,
	)
	deps.Guard = session.NewGuard(cfg.Admin.LoginPath, cfg.Admin.DashboardPath)
	deps.SessionMaxAge = cfg.JWT.Expiration
	deps.MaxUploadSize = cfg.Media.MaxUploadSize

	// --- Initialize Gin Engine ---
	router := gin.New()
	router.Use(gin.Logger(), gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("ERROR: Panic while serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
	}), api.CORS(cfg.CORS))

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, deps)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

// openStore connects the configured document store. The returned func
// releases it.
func openStore(cfg config.DatabaseConfig) (repository.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Println("WARN: Using the in-memory document store, data is lost on exit")
		return memory.NewStore(), func() {}, nil
	case config.DriverMongo:
		client, err := mongo.ConnectDB(cfg.URI, cfg.ConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.Name)
		log.Println("Database connection established.")

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			mongo.EnsureIndexes(ctx, db)
			log.Println("Index creation process completed.")
		}()

		return mongo.NewStore(db), func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(client); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

func newImageHost(cfg config.Config) (storage.ImageHost, error) {
	switch cfg.Media.Provider {
	case config.ProviderCDN:
		return storage.NewCDNHost(cfg.Media)
	case config.ProviderS3:
		return storage.NewS3Host(cfg.S3)
	}
	return nil, fmt.Errorf("unknown media provider %q", cfg.Media.Provider)
}
