// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package app

import (
	"context"
	"fmt"
	"os"

	"github.com/platform-engineering-labs/custodia/internal/api"
	"github.com/platform-engineering-labs/custodia/internal/cli/config"
	"github.com/platform-engineering-labs/custodia/internal/cli/display"
	"github.com/platform-engineering-labs/custodia/internal/engine"
	"github.com/platform-engineering-labs/custodia/pkg/manifest"
)

// App wires the manifest loader and the registry client for the CLI
// commands. The loader's parse cache lives as long as the App.
type App struct {
	Loader   *manifest.Loader
	Registry engine.Registry
}

func New() *App {
	if err := config.Config.EnsureClientID(); err != nil {
		fmt.Println(display.Red("Error: " + err.Error()))
		os.Exit(1)
	}

	clientID, err := config.Config.ClientID()
	if err != nil {
		fmt.Println(display.Red("Error: " + err.Error()))
		os.Exit(1)
	}

	return &App{
		Loader:   manifest.NewLoader(),
		Registry: api.NewClient(config.Config.RegistryEndpoint(), clientID, nil),
	}
}

// Evaluate loads, validates and resolves a manifest without touching
// the registry.
func (a *App) Evaluate(path string, vars map[string]string) (*manifest.Document, error) {
	doc, err := a.Loader.Load(path)
	if err != nil {
		return nil, err
	}
	if err := manifest.Validate(doc); err != nil {
		return nil, err
	}

	return manifest.ResolveVariables(doc, vars)
}

// Plan produces a read-only preview of the resources an apply would
// create.
func (a *App) Plan(path string, vars map[string]string) (*engine.PlanReport, error) {
	resolved, err := a.Evaluate(path, vars)
	if err != nil {
		return nil, err
	}

	return engine.Plan(resolved)
}

// Apply registers the manifest's resources against the governance
// registry, or logs intents only when dryRun is set.
func (a *App) Apply(ctx context.Context, path string, vars map[string]string, dryRun bool) (*engine.ApplyResult, error) {
	return engine.NewApplier(a.Loader, a.Registry).Apply(ctx, path, vars, dryRun)
}
