// Package app bootstraps the perk grid hosts: it loads the configuration,
// creates the fetcher and runs the terminal UI or a one-shot render.
package app

import (
	"context"
	"fmt"
	"os"

	"perkgrid/internal/config"
	"perkgrid/pkg/logging"
)

// Application is the main application structure that bootstraps and runs perkgrid
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance
func NewApplication(cfg *Config) (*Application, error) {
	// Configure logging based on debug flag
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}

	// stdout carries the rendered grid; TUI mode replaces this later.
	logging.InitForCLI(appLogLevel, os.Stderr)

	if cfg.PerkGridConfig == nil {
		pgCfg, err := config.LoadConfig()
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load perkgrid configuration")
			return nil, fmt.Errorf("failed to load perkgrid configuration: %w", err)
		}
		cfg.PerkGridConfig = &pgCfg
		logging.Debug("Bootstrap", "Loaded configuration using layered approach")
	}

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Services returns the initialized services.
func (a *Application) Services() *Services {
	return a.services
}

// Run executes the application in the appropriate mode
func (a *Application) Run(ctx context.Context) error {
	if a.config.NoTUI {
		return a.runCLIMode(ctx)
	}
	return a.runTUIMode(ctx)
}

// runCLIMode prints the grid once
func (a *Application) runCLIMode(ctx context.Context) error {
	return runCLIMode(ctx, a.config, a.services, os.Stdout)
}

// runTUIMode runs the application in interactive TUI mode
func (a *Application) runTUIMode(ctx context.Context) error {
	return runTUIMode(ctx, a.config, a.services)
}
