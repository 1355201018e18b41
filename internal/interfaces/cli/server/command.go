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
	"github.com/spf13/cobra"

	"github.com/lyceum-io/lyceum/internal/application/auth/usecases"
	"github.com/lyceum-io/lyceum/internal/infrastructure/config"
	"github.com/lyceum-io/lyceum/internal/infrastructure/database"
	"github.com/lyceum-io/lyceum/internal/infrastructure/migration"
	"github.com/lyceum-io/lyceum/internal/infrastructure/repository"
	"github.com/lyceum-io/lyceum/internal/infrastructure/scheduler"
	httpRouter "github.com/lyceum-io/lyceum/internal/interfaces/http"
	"github.com/lyceum-io/lyceum/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Lyceum HTTP server with the specified configuration.`,
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

	logger.Info("starting server",
		"environment", env,
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			return fmt.Errorf("refusing to auto-migrate in production, run the migrate command explicitly")
		}
		if err := migration.NewRunner().Up(database.Get()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	router, err := httpRouter.NewRouter(database.Get(), cfg, logger.NewLogger())
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	router.SetupRoutes()

	schedulerManager, err := startScheduler(cfg)
	if err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer func() {
		if err := schedulerManager.Stop(); err != nil {
			logger.Error("failed to stop scheduler", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func startScheduler(cfg *config.Config) (*scheduler.SchedulerManager, error) {
	log := logger.NewLogger()

	manager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return nil, err
	}

	sessionRepo := repository.NewSessionRepository(database.Get(), log)
	idleAfter := time.Duration(cfg.Auth.Session.SweepAfterDays) * 24 * time.Hour
	sweepUC := usecases.NewSweepSessionsUseCase(sessionRepo, idleAfter, log)

	interval := time.Duration(cfg.Auth.Session.SweepIntervalHours) * time.Hour
	if err := manager.RegisterSessionSweepJob(sweepUC, interval); err != nil {
		return nil, err
	}

	manager.Start()
	return manager, nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
