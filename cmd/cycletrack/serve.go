package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/terraincognita07/cycletrack/internal/api"
	"github.com/terraincognita07/cycletrack/internal/cli"
	"github.com/terraincognita07/cycletrack/internal/config"
	"github.com/terraincognita07/cycletrack/internal/db"
	"github.com/terraincognita07/cycletrack/internal/i18n"
	"github.com/terraincognita07/cycletrack/internal/logger"
	"github.com/terraincognita07/cycletrack/internal/services"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.App.LogMode)
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer log.Sync()

	secretKey, err := cfg.ResolveSecretKey()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	location, err := cfg.Location()
	if err != nil {
		log.Warn("invalid timezone, falling back to UTC", "timezone", cfg.App.Timezone, "error", err)
	}

	database, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(database); err != nil {
			log.Warn("database close failed", "error", err)
		}
	}()

	i18nManager, err := i18n.NewManager(cfg.App.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	deps := api.BuildDependencies(database, api.DependencySetup{
		Location: location,
		Now:      time.Now,
		Defaults: cycleDefaults(cfg),
		I18n:     i18nManager,
		Logger:   log,
	})
	handler, err := api.NewHandler(deps, api.Options{
		SecretKey:    secretKey,
		CookieSecure: cfg.Server.CookieSecure,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := api.NewApp(handler, api.AppOptions{Name: cfg.App.Name, AccessLog: true})

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	log.Info("cycletrack listening",
		"port", cfg.Server.Port,
		"db", cfg.Storage.DBPath,
		"tz", location.String(),
	)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func runResetPassword(configPath string, email string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.App.LogMode)
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer log.Sync()

	database, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close(database)

	return cli.ResetPassword(database, email, out)
}

func openDatabase(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Storage.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	database, err := db.OpenSQLite(cfg.Storage.DBPath, log.Named("db").Zap())
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, nil
}

// cycleDefaults clamps configured defaults into the accepted settings range.
func cycleDefaults(cfg *config.Config) services.CycleSettings {
	defaults := services.CycleSettings{
		CycleLength:  cfg.Cycle.DefaultCycleLength,
		PeriodLength: cfg.Cycle.DefaultPeriodLength,
	}
	if !services.IsValidCycleLength(defaults.CycleLength) {
		defaults.CycleLength = 28
	}
	if !services.IsValidPeriodLength(defaults.PeriodLength) {
		defaults.PeriodLength = 5
	}
	return defaults
}
