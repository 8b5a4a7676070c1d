// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/imadgeboyega/dating-insights-backend/internal/assessment"
	"github.com/imadgeboyega/dating-insights-backend/internal/auth"
	"github.com/imadgeboyega/dating-insights-backend/internal/coach"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/database"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/logger"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/utils"
	"github.com/imadgeboyega/dating-insights-backend/internal/config"
	"github.com/imadgeboyega/dating-insights-backend/internal/export"
	"github.com/imadgeboyega/dating-insights-backend/internal/journal"
	"github.com/imadgeboyega/dating-insights-backend/internal/profile"
)

const exportURLExpiry = 15 * time.Minute

var startTime = time.Now()

func main() {
	// 1. Load environment variables
	envErr := godotenv.Load()

	// 2. Load and validate configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if envErr != nil {
		log.Warn("no .env file found, using environment variables", "error", envErr)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("configuration validation failed", "error", err)
	}

	ctx := context.Background()

	// 3. Connect to PostgreSQL
	sqlDB, err := database.NewPostgresDBFromURL(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", "error", err)
	}
	defer sqlDB.Close()
	db := sqlx.NewDb(sqlDB, "postgres")
	log.Info("connected to PostgreSQL")

	// 4. Connect to Redis (optional)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("continuing without Redis", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info("connected to Redis")
		}
	} else {
		log.Info("Redis URL not configured, login throttling and token revocation disabled")
	}

	// 5. Run database migrations
	if cfg.RunMigrations {
		if err := database.RunMigrations(ctx, sqlDB, log); err != nil {
			log.Fatal("failed to run migrations", "error", err)
		}
	}

	// 6. Auth
	var google auth.GoogleVerifier
	if cfg.GoogleClientID != "" {
		google = auth.NewGoogleVerifier(cfg.GoogleClientID)
	}
	authService := auth.NewService(auth.NewPostgresRepository(db), redisClient, google, &auth.Config{
		JWTSecret:           cfg.JWTSecret,
		TokenExpiry:         cfg.JWTExpiry,
		BCryptCost:          cfg.BCryptCost,
		Issuer:              "dating-insights",
		LoginAttemptsMax:    cfg.LoginAttemptsMax,
		LoginAttemptsWindow: cfg.LoginAttemptsWindow,
	})
	authMiddleware := auth.NewMiddleware(authService)
	authHandler := auth.NewHandler(authService, log, !cfg.IsDevelopment())

	// 7. Journal, profile, coach and assessments
	journalService := journal.NewService(journal.NewPostgresRepository(db))
	profileService := profile.NewService(profile.NewPostgresRepository(db), journalService)
	coachService := coach.NewService(journalService, profileService, rand.New(rand.NewSource(time.Now().UnixNano())))
	assessmentService := assessment.NewService(assessment.NewPostgresRepository(db))

	// 8. Export store
	store, err := newExportStore(cfg)
	if err != nil {
		log.Fatal("failed to set up export store", "error", err)
	}
	exportService := export.NewService(journalService, assessmentService, profileService, store)

	// 9. Routes
	handler := newRouter(cfg, log, handlers{
		health:         healthCheck(sqlDB),
		authMiddleware: authMiddleware,
		auth:           authHandler,
		profile:        profile.NewHandler(profileService, log),
		journal:        journal.NewHandler(journalService, log),
		coach:          coach.NewHandler(coachService, log),
		assessment:     assessment.NewHandler(assessmentService, log),
		export:         export.NewHandler(exportService, log),
	})

	// 10. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", srv.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return
	}

	log.Info("server exited gracefully")
}

func newExportStore(cfg *config.Config) (export.Store, error) {
	if cfg.ExportBackend == "s3" {
		return export.NewS3Store(cfg.S3BucketName, cfg.AWSRegion, exportURLExpiry)
	}
	if err := os.MkdirAll(cfg.ExportDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return export.NewLocalStore(cfg.ExportDir, cfg.BaseURL+"/api/export"), nil
}

// healthCheck returns server health status
func healthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status, code := "healthy", http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		utils.RespondWithJSON(w, code, map[string]interface{}{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(startTime).String(),
		})
	}
}
