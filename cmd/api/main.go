package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/usecase/admin"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/usecase/fraud"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/usecase/ledger"

	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/ml"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/security"
	timeProvider "github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := logger.NewZapLogger(cfg.IsProduction(), coreport.ParseLogLevel(cfg.Logger.Level))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()
	collector := metrics.NewCollector()

	// Connect to the database and bring the schema up to date
	dbManager := database.NewManager(database.CreateConfigFromViperConfig(cfg), appLogger, tp, collector)
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Minute)
	if _, err := dbManager.Connect(startupCtx); err != nil {
		cancelStartup()
		fatal(appLogger, "Failed to connect to database", err)
	}
	if err := dbManager.Migrate(startupCtx); err != nil {
		cancelStartup()
		fatal(appLogger, "Failed to run migrations", err)
	}

	uow := dbManager.CreateUnitOfWork()
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens, err := security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, tp)
	if err != nil {
		cancelStartup()
		fatal(appLogger, "Failed to create token issuer", err)
	}

	if cfg.Admin.Seed {
		_, err := migration.SeedAdmin(startupCtx, uow, hasher, tp, appLogger, migration.AdminSeed{
			Name:     cfg.Admin.SeedName,
			Email:    cfg.Admin.SeedEmail,
			Username: cfg.Admin.SeedUsername,
			Password: cfg.Admin.SeedPassword,
		})
		if err != nil {
			appLogger.Error("Failed to create default admin", map[string]any{
				"error": err.Error(),
			})
		}
	}
	cancelStartup()

	classifier, err := ml.NewClassifier(ml.Options{
		Path:         cfg.Model.Path,
		FeatureOrder: ml.ParseFeatureOrder(cfg.Model.FeatureOrder),
	}, appLogger, collector)
	if err != nil {
		fatal(appLogger, "Failed to load fraud model", err)
	}

	// Initialize use cases
	sequencer := ledger.NewSequencer(appLogger, cfg.Ledger.IdleTimeout)
	ledgerService := ledger.NewLedgerService(uow, sequencer, tp, appLogger, collector)
	accountService := account.NewAccountService(uow, ledgerService, tokens, hasher, tp, appLogger)
	fraudService := fraud.NewFraudService(uow, ledgerService, sequencer, classifier, tp, appLogger, collector)
	adminService := admin.NewAdminService(uow, sequencer, tp, appLogger)

	router := routes.NewRouter(appLogger, routes.MiddlewareOptions{
		CORSOrigins: cfg.Server.CORSOrigins,
		RateRPS:     cfg.Server.RateLimit.RPS,
		RateBurst:   cfg.Server.RateLimit.Burst,
		Observer:    collector,
	}, routes.Handlers{
		Auth:   handler.NewAuthHandler(accountService, appLogger),
		User:   handler.NewUserHandler(accountService, ledgerService),
		Fraud:  handler.NewFraudHandler(fraudService, ledgerService, appLogger),
		Admin:  handler.NewAdminHandler(adminService, appLogger),
		Health: handler.NewHealthHandler(dbManager, classifier, appLogger),
	}, accountService, collector.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":       server.Addr,
			"env":        cfg.Environment,
			"db_driver":  dbManager.Driver(),
			"model_mode": string(classifier.Mode()),
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(appLogger, "Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop accepting requests first so no new ledger work is queued
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Draining credit ledger queues...", map[string]any{
		"active_queues": sequencer.ActiveQueues(),
	})
	if err := sequencer.Shutdown(ctx); err != nil {
		appLogger.Error("Ledger queues did not drain", map[string]any{
			"error": err.Error(),
		})
	}

	if err := dbManager.Close(); err != nil {
		appLogger.Error("Failed to close database", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

func fatal(appLogger *logger.ZapLogger, message string, err error) {
	appLogger.Error(message, map[string]any{
		"error": err.Error(),
	})
	_ = appLogger.Flush()
	os.Exit(1)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}

	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}

	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration per driver
	switch cfg.Database.Driver {
	case "sqlite":
		if cfg.Database.Path == "" {
			missingConfigs = append(missingConfigs, "database.path (or FS_DB_PATH environment variable)")
		}
	case "postgres":
		if cfg.Database.Host == "" {
			missingConfigs = append(missingConfigs, "database.host (or FS_DB_HOST environment variable)")
		}
		if cfg.Database.Port == "" {
			missingConfigs = append(missingConfigs, "database.port (or FS_DB_PORT environment variable)")
		}
		if cfg.Database.Username == "" {
			missingConfigs = append(missingConfigs, "database.username (or FS_DB_USERNAME environment variable)")
		}
		if cfg.Database.Database == "" {
			missingConfigs = append(missingConfigs, "database.database (or FS_DB_NAME environment variable)")
		}
	case "":
		missingConfigs = append(missingConfigs, "database.driver")
	default:
		return fmt.Errorf("invalid database driver: %s, must be sqlite or postgres", cfg.Database.Driver)
	}

	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if cfg.Auth.JWTSecret == "" {
		missingConfigs = append(missingConfigs, "auth.jwtSecret (or FS_JWT_SECRET environment variable)")
	}

	if cfg.Auth.TokenTTL <= 0 {
		missingConfigs = append(missingConfigs, "auth.tokenTTLMinutes")
	}

	if cfg.Admin.Seed && (cfg.Admin.SeedEmail == "" || cfg.Admin.SeedUsername == "" || cfg.Admin.SeedPassword == "") {
		missingConfigs = append(missingConfigs, "admin.seedEmail, admin.seedUsername and admin.seedPassword")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// If we're in production, do additional validation for sensitive settings
	if cfg.Environment == config.Production {
		var warnings []string

		if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
			warnings = append(warnings, "auth.jwtSecret is the built-in default")
		}

		if cfg.Database.Driver == "postgres" {
			sslMode := strings.ToLower(cfg.Database.SSLMode)
			if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
				warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
			}
		}

		if cfg.Admin.Seed && cfg.Admin.SeedPassword == "password123" {
			warnings = append(warnings, "admin.seedPassword is the development default")
		}

		if len(cfg.Server.CORSOrigins) == 0 {
			warnings = append(warnings, "server.corsOrigins is empty, browsers will be refused")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
