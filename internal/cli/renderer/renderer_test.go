// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package renderer

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apimodel "github.com/platform-engineering-labs/custodia/internal/api/model"
	"github.com/platform-engineering-labs/custodia/internal/engine"
)

func stripAnsiCodes(t *testing.T, s string) string {
	t.Helper()

	re := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return re.ReplaceAllString(s, "")
}

func TestRenderPlan(t *testing.T) {
	report := &engine.PlanReport{
		Path: "manifest.yaml",
		Agents: []engine.ResourcePreview{
			{Kind: "agent", ID: "support-bot", Summary: "name=support-bot model=gpt-4o riskLevel=high"},
			{Kind: "agent", ID: "triage-bot", Summary: "model=claude-sonnet"},
		},
		Policies: []engine.ResourcePreview{
			{Kind: "policy", ID: "no-pii", Summary: "effect=deny"},
		},
	}

	result, err := RenderPlan(report)
	require.NoError(t, err)
	result = stripAnsiCodes(t, result)

	assert.Contains(t, result, "support-bot")
	assert.Contains(t, result, "triage-bot")
	assert.Contains(t, result, "no-pii")
	assert.Contains(t, result, "model=gpt-4o")
	assert.Contains(t, result, "2 agent(s) and 1 policy(s) would be created.")
	assert.Contains(t, result, "preview-only")
}

func TestRenderPlanEmpty(t *testing.T) {
	result, err := RenderPlan(&engine.PlanReport{Path: "manifest.yaml"})
	require.NoError(t, err)
	result = stripAnsiCodes(t, result)

	assert.Contains(t, result, "No resources declared.")
}

func TestRenderPlanIsDeterministic(t *testing.T) {
	report := &engine.PlanReport{
		Path: "manifest.yaml",
		Agents: []engine.ResourcePreview{
			{Kind: "agent", ID: "a", Summary: "model=m"},
			{Kind: "agent", ID: "b", Summary: "model=m"},
		},
	}

	first, err := RenderPlan(report)
	require.NoError(t, err)
	second, err := RenderPlan(report)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderApplyResult(t *testing.T) {
	t.Run("successes and failures", func(t *testing.T) {
		result := &engine.ApplyResult{
			Created: []apimodel.RegisteredResource{
				{Ksuid: "2abc", Kind: "agent", Name: "support-bot"},
			},
			Errors: []string{"agent 'triage-bot': agent 'triage-bot' is already registered"},
		}

		output := stripAnsiCodes(t, RenderApplyResult(result))

		assert.Contains(t, output, "Created support-bot (2abc)")
		assert.Contains(t, output, "Failed agent 'triage-bot'")
		assert.Contains(t, output, "1 created, 1 failed.")
	})

	t.Run("all created", func(t *testing.T) {
		result := &engine.ApplyResult{
			Created: []apimodel.RegisteredResource{
				{Ksuid: "k1", Name: "a"},
				{Ksuid: "k2", Name: "b"},
			},
			Errors: []string{},
		}

		output := stripAnsiCodes(t, RenderApplyResult(result))
		assert.Contains(t, output, "2 created, 0 failed.")
	})

	t.Run("dry run", func(t *testing.T) {
		result := &engine.ApplyResult{DryRun: true}

		output := stripAnsiCodes(t, RenderApplyResult(result))
		assert.Contains(t, output, "Dry run:")
		assert.Contains(t, output, "no registry calls were made")
	})
}
