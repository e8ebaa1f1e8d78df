// Package server implements the HTTP server command.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	entitlementUC "github.com/fakturio-inc/fakturio/internal/application/entitlement/usecases"
	subscriptionUC "github.com/fakturio-inc/fakturio/internal/application/subscription/usecases"
	"github.com/fakturio-inc/fakturio/internal/domain/entitlement"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/auth"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/billing"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/cache"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/config"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/database"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/migration"
	"github.com/fakturio-inc/fakturio/internal/infrastructure/repository"
	httpRouter "github.com/fakturio-inc/fakturio/internal/interfaces/http"
	"github.com/fakturio-inc/fakturio/internal/interfaces/http/handlers"
	"github.com/fakturio-inc/fakturio/internal/interfaces/http/middleware"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Fakturio entitlement server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		log.Errorw("failed to initialize database", "error", err)
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment")
		}
		if err := migration.NewRunner(log).Up(database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	router := buildRouter(cfg, redisClient, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

// buildRouter wires repositories, use cases and handlers into the router.
func buildRouter(cfg *config.Config, redisClient *redis.Client, log logger.Interface) *httpRouter.Router {
	db := database.Get()

	accountRepo := repository.NewAccountRepository(db, log)
	profileRepo := repository.NewProfileRepository(db, log)
	usageCounter := repository.NewUsageCountRepository(db, log)

	projectionCache := cache.NewRedisSubscriptionProjectionCache(redisClient, log)
	subscriptionRepo := cache.NewCachedSubscriptionRepository(
		repository.NewSubscriptionRepository(db, log), projectionCache, log)

	matrix := entitlement.DefaultPlanFeatureMatrix()
	moduleMap := entitlement.DefaultModuleFeatureMap()
	quotas := entitlement.DefaultQuotaTable()
	resolver := entitlement.NewResolver(matrix)

	checkFeatureUC := entitlementUC.NewCheckFeatureAccessUseCase(accountRepo, subscriptionRepo, resolver, log)
	checkModuleUC := entitlementUC.NewCanAccessModuleUseCase(accountRepo, profileRepo, subscriptionRepo, matrix, moduleMap, log)
	checkQuotaUC := entitlementUC.NewCheckQuotaUseCase(accountRepo, subscriptionRepo, usageCounter, quotas, log)

	gateway := billing.NewStripeGateway(&cfg.Stripe, log)
	prices := billing.NewPriceTable()
	applyPlanChangeUC := subscriptionUC.NewApplyPlanChangeUseCase(subscriptionRepo, gateway, prices, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMW := middleware.NewAuthMiddleware(jwtService, log)

	accessHandler := handlers.NewAccessHandler(checkFeatureUC, checkModuleUC, checkQuotaUC, log)
	billingHandler := handlers.NewBillingHandler(applyPlanChangeUC, log)

	return httpRouter.NewRouter(cfg, authMW, accessHandler, billingHandler, log)
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
