// Package app wires the engine together: logger, manifest loading, module
// registration, registry validation, and the CLI actions.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/habitatgo/internal/carelog"
	"github.com/vk/habitatgo/internal/config"
	"github.com/vk/habitatgo/internal/ctxlog"
	"github.com/vk/habitatgo/internal/dispatcher"
	"github.com/vk/habitatgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	registry   *registry.Registry
	dispatcher *dispatcher.Dispatcher
	store      *carelog.Store
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, registry, and care
// log. A failure to load or validate the service catalog is a fatal startup
// error and panics; main recovers and reports it.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.ManifestPath)
	if err != nil {
		panic(fmt.Errorf("failed to load service manifests: %w", err))
	}
	logger.Debug("Service manifests loaded into unified model.", "services", len(model.Services))

	store := carelog.NewStore()
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules(store)
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := reg.PopulateFromModel(model); err != nil {
		panic(fmt.Errorf("failed to bind services to handlers: %w", err))
	}

	// A mismatch between manifests and compiled handlers is a programmer
	// error, caught before the first call is ever dispatched.
	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:       outW,
		logger:     logger,
		registry:   reg,
		dispatcher: dispatcher.New(reg),
		store:      store,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Dispatcher returns the application's dispatcher. This is primarily for testing.
func (a *App) Dispatcher() *dispatcher.Dispatcher {
	return a.dispatcher
}

// Store returns the application's care-log store. This is primarily for testing.
func (a *App) Store() *carelog.Store {
	return a.store
}
