package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/omspdev/omsp/internal/api"
	"github.com/omspdev/omsp/internal/cli"
	"github.com/omspdev/omsp/internal/config"
	"github.com/omspdev/omsp/internal/db"
	"github.com/omspdev/omsp/internal/services"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "reset-password" {
		runResetPassword(os.Args[2:])
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	location := loadLocation(cfg.Timezone, logger)
	time.Local = location

	defaultBudget, err := decimal.NewFromString(cfg.DefaultMonthlyBudget)
	if err != nil {
		logger.Fatal().Err(err).Str("value", cfg.DefaultMonthlyBudget).Msg("invalid DEFAULT_MONTHLY_BUDGET")
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("database init failed")
	}
	if err := db.Seed(database, cfg.SeedAdminEmail, cfg.SeedAdminPassword, time.Now().In(location)); err != nil {
		logger.Fatal().Err(err).Msg("seed failed")
	}

	repositories := db.NewRepositories(database)
	thresholds := services.DefaultTermThresholds()

	activity := services.NewActivityService(repositories.Activity, logger)
	budget := services.NewBudgetService(repositories.BudgetLogs, defaultBudget)
	frequency := services.NewFrequencyService(repositories.RequestCounts, repositories.Frequencies, services.DefaultFrequencyThresholds())
	auth := services.NewAuthService(repositories.Users, repositories.BoardMembers, repositories.Sessions, activity)
	users := services.NewUserService(repositories.Users, repositories.BoardMembers, activity, thresholds)
	assistance := services.NewAssistanceService(
		repositories.FARecords, repositories.PARecords, repositories.BoardMembers,
		repositories.Beneficiaries, repositories.Catalog, budget, frequency, activity, thresholds,
	)
	archive := services.NewArchiveService(repositories.BoardMembers, activity, thresholds)
	catalog := services.NewCatalogService(repositories.Catalog, activity, thresholds)

	handler := api.NewHandler(api.HandlerDeps{
		Auth:          auth,
		Users:         users,
		Assistance:    assistance,
		Budget:        budget,
		Frequency:     frequency,
		Archive:       archive,
		Catalog:       catalog,
		Activity:      activity,
		BoardMembers:  repositories.BoardMembers,
		Beneficiaries: repositories.Beneficiaries,
		SecretKey:     []byte(cfg.SecretKey),
		Location:      location,
		CookieSecure:  cfg.CookieSecure,
		Thresholds:    thresholds,
	})

	app := fiber.New(fiber.Config{
		AppName:               "OMSP",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	sweep := services.NewSweepService(repositories.BoardMembers, frequency, thresholds, location, logger)
	if err := sweep.Start(cfg.SweepSchedule); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.SweepSchedule).Msg("sweep scheduler init failed")
	}
	defer sweep.Stop()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		sweep.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	logger.Info().
		Str("port", cfg.Port).
		Str("db_path", cfg.DBPath).
		Str("tz", location.String()).
		Msg("omsp listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func runResetPassword(args []string) {
	flags := flag.NewFlagSet("reset-password", flag.ExitOnError)
	dbPath := flags.String("db", "data/omsp.db", "path to the sqlite database file")
	email := flags.String("email", "", "email of the account to reset")
	_ = flags.Parse(args)

	if err := cli.RunResetPasswordCommand(*dbPath, *email); err != nil {
		fmt.Fprintf(os.Stderr, "reset-password: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(parsed).With().Timestamp().Logger()
}

func loadLocation(name string, logger zerolog.Logger) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn().Str("tz", name).Msg("invalid timezone, falling back to UTC")
		return time.UTC
	}
	return location
}
