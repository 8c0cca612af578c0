// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package app

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/custodia/internal/api"
	"github.com/platform-engineering-labs/custodia/internal/devregistry"
	"github.com/platform-engineering-labs/custodia/pkg/manifest"
)

func testApp(t *testing.T) *App {
	t.Helper()

	server := httptest.NewServer(devregistry.NewServer(0).Handler())
	t.Cleanup(server.Close)

	return &App{
		Loader:   manifest.NewLoader(),
		Registry: api.NewClient(server.URL, "test-client", server.Client()),
	}
}

func writeTestManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestEvaluate(t *testing.T) {
	app := testApp(t)
	path := writeTestManifest(t, `
variable:
  env:
    default: dev

resource:
  agent:
    bot:
      model: gpt-4o
      environment: ${var.env}
`)

	resolved, err := app.Evaluate(path, map[string]string{"env": "prod"})
	require.NoError(t, err)

	bot := resolved.Root.(map[string]any)["resource"].(map[string]any)["agent"].(map[string]any)["bot"].(map[string]any)
	assert.Equal(t, "prod", bot["environment"])
}

func TestPlanThenApply(t *testing.T) {
	app := testApp(t)
	path := writeTestManifest(t, `
resource:
  agent:
    support-bot:
      model: gpt-4o
    triage-bot:
      model: claude-sonnet
`)

	report, err := app.Plan(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count())

	result, err := app.Apply(context.Background(), path, nil, false)
	require.NoError(t, err)
	assert.Len(t, result.Created, 2)
	assert.Empty(t, result.Errors)

	// Applying the same manifest again conflicts on every name.
	again, err := app.Apply(context.Background(), path, nil, false)
	require.NoError(t, err)
	assert.Empty(t, again.Created)
	assert.Len(t, again.Errors, 2)
}

func TestApplyDryRunAgainstLiveRegistry(t *testing.T) {
	app := testApp(t)
	path := writeTestManifest(t, `
resource:
  agent:
    bot:
      model: gpt-4o
`)

	result, err := app.Apply(context.Background(), path, nil, true)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Empty(t, result.Created)

	// The dry run left no state behind; the real apply still succeeds.
	applied, err := app.Apply(context.Background(), path, nil, false)
	require.NoError(t, err)
	assert.Len(t, applied.Created, 1)
}
