// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package engine

import (
	"context"
	"fmt"
	"log/slog"

	apimodel "github.com/platform-engineering-labs/custodia/internal/api/model"
	"github.com/platform-engineering-labs/custodia/pkg/manifest"
)

// Registry is the consumed side of the external governance registry.
// The engine makes no assumption about whether repeated registrations
// with the same logical id create duplicates or no-op.
type Registry interface {
	RegisterAgent(ctx context.Context, req apimodel.RegisterAgentRequest) (*apimodel.RegisteredResource, error)
}

// ApplyResult accumulates the outcome of one apply invocation. Partial
// application is the accepted outcome: earlier successes are never
// rolled back when a later resource fails.
type ApplyResult struct {
	Created []apimodel.RegisteredResource `json:"Created"`
	Errors  []string                      `json:"Errors"`
	DryRun  bool                          `json:"DryRun,omitempty"`
}

type Applier struct {
	loader   *manifest.Loader
	registry Registry
}

func NewApplier(loader *manifest.Loader, registry Registry) *Applier {
	return &Applier{
		loader:   loader,
		registry: registry,
	}
}

// Apply loads, validates and resolves the manifest at path, then
// registers its agent resources in extraction order. Failures before
// the registration loop abort the whole operation with no result; a
// failure inside the loop is recorded and the loop continues, so one
// bad resource never blocks the rest. Context cancellation surfaces the
// same way, as per-resource errors. With dryRun the intent is logged
// and no registry call is made.
func (a *Applier) Apply(ctx context.Context, path string, overrides map[string]string, dryRun bool) (*ApplyResult, error) {
	doc, err := a.loader.Load(path)
	if err != nil {
		return nil, err
	}
	if err := manifest.Validate(doc); err != nil {
		return nil, err
	}
	resolved, err := manifest.ResolveVariables(doc, overrides)
	if err != nil {
		return nil, err
	}
	agents, err := resolved.ExtractResources(manifest.KindAgent)
	if err != nil {
		return nil, err
	}
	policies, err := resolved.ExtractResources(manifest.KindPolicy)
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{
		Created: []apimodel.RegisteredResource{},
		Errors:  []string{},
		DryRun:  dryRun,
	}

	for _, agent := range agents {
		if dryRun {
			slog.Info("dry run: would register agent", "id", agent.ID, "path", path)
			continue
		}

		created, err := a.registry.RegisterAgent(ctx, registerAgentRequest(agent))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("agent '%s': %v", agent.ID, err))
			continue
		}

		result.Created = append(result.Created, *created)
	}

	// TODO: register policy resources once the registry exposes a policy
	// registration operation; they follow the same per-resource failure
	// contract as agents.
	if len(policies) > 0 {
		slog.Info("policy application is not implemented, skipping", "count", len(policies), "path", path)
	}

	return result, nil
}

func registerAgentRequest(agent manifest.ResourceDescriptor) apimodel.RegisterAgentRequest {
	return apimodel.RegisterAgentRequest{
		Name:        stringAttr(agent.Attributes, "name", agent.ID),
		Model:       stringAttr(agent.Attributes, "model", ""),
		RiskLevel:   stringAttr(agent.Attributes, "riskLevel", apimodel.DefaultRiskLevel),
		Environment: stringAttr(agent.Attributes, "environment", apimodel.DefaultEnvironment),
		Policies:    stringSliceAttr(agent.Attributes, "policies"),
		Metadata:    stringMapAttr(agent.Attributes, "metadata"),
	}
}

func stringAttr(attrs map[string]any, key string, fallback string) string {
	value, ok := attrs[key]
	if !ok || value == nil {
		return fallback
	}

	return fmt.Sprintf("%v", value)
}

func stringSliceAttr(attrs map[string]any, key string) []string {
	result := []string{}
	items, ok := attrs[key].([]any)
	if !ok {
		return result
	}

	for _, item := range items {
		result = append(result, fmt.Sprintf("%v", item))
	}

	return result
}

func stringMapAttr(attrs map[string]any, key string) map[string]string {
	result := map[string]string{}
	entries, ok := attrs[key].(map[string]any)
	if !ok {
		return result
	}

	for entryKey, value := range entries {
		result[entryKey] = fmt.Sprintf("%v", value)
	}

	return result
}
