// Package app implements the application layer for rig.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/rig/internal/engine/runner"
	"go.trai.ch/rig/internal/registrar/format"
	"go.trai.ch/rig/internal/registrar/profiling"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	locator      ports.ToolLocator
	logger       ports.Logger
	runner       *runner.Runner
	tracer       ports.Tracer
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, locator ports.ToolLocator, logger ports.Logger, run *runner.Runner, tracer ports.Tracer) *App {
	return &App{
		configLoader: loader,
		locator:      locator,
		logger:       logger,
		runner:       run,
		tracer:       tracer,
	}
}

// SetConfigLoader replaces the manifest loader. The CLI uses this to honor
// a non-default --config flag.
func (a *App) SetConfigLoader(loader ports.ConfigLoader) {
	a.configLoader = loader
}

// Run performs a full configuration pass and then executes the named actions.
func (a *App) Run(ctx context.Context, actionNames []string) error {
	if len(actionNames) == 0 {
		return domain.ErrNoActionsSpecified
	}

	registry, err := a.configure()
	if err != nil {
		return err
	}

	a.tracer.EmitPlan(ctx, actionNames)

	if err := a.runner.Run(ctx, registry, actionNames); err != nil {
		return zerr.Wrap(err, "action execution failed")
	}
	return nil
}

// Actions performs a configuration pass and returns every registered action
// sorted by name.
func (a *App) Actions() ([]*domain.Action, error) {
	registry, err := a.configure()
	if err != nil {
		return nil, err
	}
	return registry.Sorted(), nil
}

// configure loads the manifest and walks the project tree, letting each
// registrar contribute its actions. Registration errors are configuration
// errors and abort the pass.
func (a *App) configure() (*domain.Registry, error) {
	manifest, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	registry := domain.NewRegistry()
	formatReg := format.New(registry, a.locator, a.logger, manifest)
	profileReg := profiling.New(registry, a.locator, a.logger, manifest)

	for _, project := range manifest.Projects() {
		if _, err := formatReg.Register(project); err != nil {
			return nil, err
		}
		for i := range project.Targets {
			target := &project.Targets[i]
			if target.Profile == nil {
				continue
			}
			if _, err := profileReg.Register(project, target.Name, *target.Profile); err != nil {
				return nil, err
			}
		}
	}

	a.logger.Info(fmt.Sprintf("configured %d actions", registry.Len()))
	return registry, nil
}
