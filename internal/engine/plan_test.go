// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/custodia/pkg/manifest"
)

func parseManifest(t *testing.T, content string) *manifest.Document {
	t.Helper()

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	doc, err := manifest.Parse(path)
	require.NoError(t, err)

	return doc
}

func TestPlan(t *testing.T) {
	doc := parseManifest(t, `
resource:
  agent:
    support-bot:
      name: support-bot
      model: gpt-4o
      riskLevel: high
      team: support
    triage-bot:
      model: claude-sonnet
  policy:
    no-pii:
      effect: deny
`)

	report, err := Plan(doc)
	require.NoError(t, err)

	assert.Equal(t, doc.Path, report.Path)
	assert.Equal(t, 3, report.Count())

	require.Len(t, report.Agents, 2)
	assert.Equal(t, "agent", report.Agents[0].Kind)
	assert.Equal(t, "support-bot", report.Agents[0].ID)
	assert.Equal(t, "name=support-bot model=gpt-4o riskLevel=high team=support", report.Agents[0].Summary)
	assert.Equal(t, "triage-bot", report.Agents[1].ID)
	assert.Equal(t, "model=claude-sonnet", report.Agents[1].Summary)

	require.Len(t, report.Policies, 1)
	assert.Equal(t, "no-pii", report.Policies[0].ID)
	assert.Equal(t, "effect=deny", report.Policies[0].Summary)
}

func TestPlanEmptyManifest(t *testing.T) {
	doc := parseManifest(t, "resource: {}\n")

	report, err := Plan(doc)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Count())
	assert.Empty(t, report.Agents)
	assert.Empty(t, report.Policies)
}

func TestPlanIsDeterministic(t *testing.T) {
	doc := parseManifest(t, `
resource:
  agent:
    zeta: {model: m, owner: a, budget: 10}
    alpha: {model: m}
`)

	first, err := Plan(doc)
	require.NoError(t, err)
	second, err := Plan(doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "zeta", first.Agents[0].ID)
	assert.Equal(t, "alpha", first.Agents[1].ID)
}

func TestPlanShapeError(t *testing.T) {
	doc := parseManifest(t, "resource:\n  agent: nope\n")

	_, err := Plan(doc)
	assert.ErrorAs(t, err, &manifest.InvalidConfigError{})
}
