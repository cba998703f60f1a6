// Package app defines the App struct that composes the data layer's
// dependencies and owns their lifecycle.
//
// It owns:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool (and its Prometheus collector)
//   - the repositories built on that pool
//
// Whatever serves requests (an HTTP layer, a worker) builds one App at
// startup, uses App.Repositories and calls Shutdown on exit.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dialop/LightBnB/internal/config"
	"github.com/dialop/LightBnB/internal/database"
	loggerPkg "github.com/dialop/LightBnB/internal/logger"
	"github.com/dialop/LightBnB/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// App is the application container that holds shared resources.
type App struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	// If New Relic is disabled, this exists but contains a nil application.
	LoggerService *loggerPkg.LoggerService

	// DB holds the PostgreSQL pool wrapper.
	DB *database.Database

	// Repositories run every query on DB.Pool.
	Repositories *repository.Repositories
}

// New constructs an App and initializes core dependencies.
//
// Initialization performed:
//   - New Relic service (no-op without a license key)
//   - application logger
//   - PostgreSQL pool + tracers, pinged before returning
//   - pool metrics registered with reg (nil skips registration)
//   - repositories
func New(cfg *config.Config, reg prometheus.Registerer) (*App, error) {
	loggerService, err := loggerPkg.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, err
	}

	logger := loggerPkg.NewLoggerWithService(cfg.Observability, loggerService)

	db, err := database.New(cfg, &logger, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a, err := assemble(cfg, &logger, loggerService, db, reg)
	if err != nil {
		_ = db.Close()
		loggerService.Shutdown()
		return nil, err
	}

	logger.Info().
		Str("env", cfg.Primary.Env).
		Msg("data layer ready")

	return a, nil
}

// assemble wires everything that needs no network round trip.
func assemble(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService, db *database.Database, reg prometheus.Registerer) (*App, error) {
	if reg != nil {
		if err := database.RegisterPoolMetrics(reg, db.Pool, cfg.Observability.ServiceName); err != nil {
			return nil, fmt.Errorf("failed to register pool metrics: %w", err)
		}
	}

	return &App{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Repositories:  repository.NewRepositories(db.Pool, logger),
	}, nil
}

// Shutdown releases the pool and flushes the New Relic agent.
//
// The pool is closed even when ctx is already done; ctx only reports
// whether the caller's deadline passed meanwhile.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	a.LoggerService.Shutdown()

	if err := ctx.Err(); err != nil {
		errs = append(errs, fmt.Errorf("shutdown: %w", err))
	}

	return errors.Join(errs...)
}
