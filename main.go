package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	v1 "github.com/opsvix-api/api/v1"
	"github.com/opsvix-api/config"
	"github.com/opsvix-api/database"
	"github.com/opsvix-api/lib/analytics"
	"github.com/opsvix-api/lib/logging"
	"github.com/opsvix-api/lib/storage"
	"github.com/opsvix-api/repositories"
	"github.com/opsvix-api/services"
)

const shutdownTimeout = 5 * time.Second

func main() {
	v := viper.New()
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "opsvix-api",
		Short: "Opsvix agency API",
		Long: `Opsvix agency API: enquiries, portfolio projects, testimonies and GA4 reports.
	Configure by environment variables or a .env file:
PORT, APP_ENV, LOG_LEVEL, DATABASE_URL
JWT_SECRET, JWT_EXPIRES_IN, ADMIN_EMAIL, ADMIN_PASSWORD
FRONTEND_URL, DASHBOARD_URL
ASSET_BUCKET, ASSET_REGION, ASSET_ENDPOINT, ASSET_PUBLIC_BASE_URL, ASSET_FOLDER
GA4_PROPERTY_ID, GA4_CREDENTIALS_PATH, GA4_API_URL
`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := config.LoadEnv(envFile); err != nil {
				hclog.Default().Warn(err.Error())
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), v)
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path of the .env file to load")
	rootCmd.Flags().String("port", "", "port to listen on, overrides PORT")
	_ = v.BindPFlag("PORT", rootCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(v)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, JSON: cfg.IsProduction()})
	if cfg.DefaultDatabase {
		logger.Warn("DATABASE_URL not set, using local default")
	}

	db, err := database.Initialize(cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	if err := database.Migrate(db, logger); err != nil {
		return err
	}

	var store storage.AssetStore = storage.Disabled{}
	s3Store, err := storage.NewS3Store(ctx, cfg.Storage)
	switch {
	case err == nil:
		store = s3Store
		logger.Info("media storage ready", "bucket", cfg.Storage.Bucket)
	case errors.Is(err, storage.ErrNotConfigured):
		logger.Warn("media storage not configured, uploads are disabled")
	default:
		return err
	}

	router := v1.NewRouter(v1.RouterConfig{
		AllowedOrigins: []string{cfg.CORS.FrontendURL, cfg.CORS.DashboardURL},
		ExposeErrors:   !cfg.IsProduction(),
	}, v1.Services{
		Auth:        services.NewAuthService(cfg.Auth, logger),
		Enquiries:   services.NewEnquiryService(repositories.NewEnquiryRepository(db), logger),
		Projects:    services.NewProjectService(repositories.NewProjectRepository(db), store, logger),
		Testimonies: services.NewTestimonyService(repositories.NewTestimonyRepository(db), store, logger),
		Analytics:   services.NewAnalyticsService(analytics.NewProvider(cfg.Analytics, logger), logger),
	}, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("🚀 Opsvix API starting on port %s", cfg.Port), "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func migrate(v *viper.Viper) error {
	logger := logging.New(logging.Options{Level: "info"})
	dbURL, isDefault := config.DatabaseURL(v)
	if isDefault {
		logger.Warn("DATABASE_URL not set, using local default")
	}

	db, err := database.Initialize(dbURL, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db, logger); err != nil {
		return err
	}
	logger.Info("Database migration completed successfully!")
	return nil
}
