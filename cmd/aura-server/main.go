package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/FooTalentGroup/aura-api/internal/config"
	"github.com/FooTalentGroup/aura-api/internal/domain/identity"
	"github.com/FooTalentGroup/aura-api/internal/domain/patient"
	"github.com/FooTalentGroup/aura-api/internal/domain/records"
	"github.com/FooTalentGroup/aura-api/internal/domain/report"
	"github.com/FooTalentGroup/aura-api/internal/domain/school"
	"github.com/FooTalentGroup/aura-api/internal/domain/staff"
	"github.com/FooTalentGroup/aura-api/internal/platform/apierror"
	"github.com/FooTalentGroup/aura-api/internal/platform/auth"
	"github.com/FooTalentGroup/aura-api/internal/platform/db"
	"github.com/FooTalentGroup/aura-api/internal/platform/middleware"
	"github.com/FooTalentGroup/aura-api/internal/platform/validation"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "aura-server",
		Short: "Aura clinic management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Token issuer and session cookie
	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiration())
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid JWT configuration")
	}
	cookie := auth.CookieWriter{Secure: cfg.CookieSecure, MaxAge: cfg.JWTExpiration()}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = apierror.HTTPErrorHandler(logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.Metrics())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	e.Use(auth.CookieAuth(issuer))

	// Health and metrics
	e.GET("/health", db.HealthHandler(pool, version))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API group
	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Identity domain
	userRepo := identity.NewUserRepoPG(pool)
	roleRepo := identity.NewRoleRepoPG(pool)
	identitySvc := identity.NewService(userRepo, roleRepo, logger, pool)
	identityHandler := identity.NewHandler(identitySvc, issuer, cookie)
	identityHandler.RegisterRoutes(apiV1)

	// School domain
	schoolRepo := school.NewRepoPG(pool)
	schoolSvc := school.NewService(schoolRepo)
	schoolHandler := school.NewHandler(schoolSvc)
	schoolHandler.RegisterRoutes(apiV1)

	// Patient domain
	patientRepo := patient.NewRepoPG(pool)
	backgroundRepo := patient.NewBackgroundRepoPG(pool)
	patientSvc := patient.NewService(patientRepo, backgroundRepo)
	patientHandler := patient.NewHandler(patientSvc)
	patientHandler.RegisterRoutes(apiV1)

	// Staff domain
	professionalRepo := staff.NewProfessionalRepoPG(pool)
	receptionistRepo := staff.NewReceptionistRepoPG(pool)
	staffSvc := staff.NewService(professionalRepo, receptionistRepo, identitySvc, pool)
	staffHandler := staff.NewHandler(staffSvc)
	staffHandler.RegisterRoutes(apiV1)

	// Records domain
	recordRepo := records.NewRecordRepoPG(pool)
	diagnosisRepo := records.NewDiagnosisRepoPG(pool)
	followUpRepo := records.NewFollowUpRepoPG(pool)
	recordsSvc := records.NewService(recordRepo, diagnosisRepo, followUpRepo)
	recordsHandler := records.NewHandler(recordsSvc)
	recordsHandler.RegisterRoutes(apiV1)

	// Report domain
	reportRepo := report.NewRepoPG(pool)
	reportSvc := report.NewService(reportRepo)
	reportHandler := report.NewHandler(reportSvc)
	reportHandler.RegisterRoutes(apiV1)

	// Seed admin account
	if err := identitySvc.EnsureAdmin(ctx, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure admin account")
	}

	// Suspension sweeper reactivates accounts whose suspension has elapsed.
	sweeperCtx, sweeperCancel := context.WithCancel(ctx)
	defer sweeperCancel()
	sweeper := identity.NewSweeper(identitySvc, cfg.SuspensionSweep, logger)
	go sweeper.Start(sweeperCtx)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	sweeperCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
