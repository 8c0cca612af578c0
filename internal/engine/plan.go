// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/platform-engineering-labs/custodia/pkg/manifest"
)

// PlanReport is a read-only preview of what an apply would create.
// Resources appear in extraction order, which is also apply order.
type PlanReport struct {
	Path     string            `json:"Path"`
	Agents   []ResourcePreview `json:"Agents"`
	Policies []ResourcePreview `json:"Policies"`
}

type ResourcePreview struct {
	Kind    string `json:"Kind"`
	ID      string `json:"ID"`
	Summary string `json:"Summary"`
}

func (r *PlanReport) Count() int {
	return len(r.Agents) + len(r.Policies)
}

// Plan summarizes the resources a resolved document declares. It never
// contacts the registry and has no other side effects; two calls on the
// same document produce identical reports.
func Plan(doc *manifest.Document) (*PlanReport, error) {
	agents, err := doc.ExtractResources(manifest.KindAgent)
	if err != nil {
		return nil, err
	}
	policies, err := doc.ExtractResources(manifest.KindPolicy)
	if err != nil {
		return nil, err
	}

	report := &PlanReport{
		Path:     doc.Path,
		Agents:   previews(agents),
		Policies: previews(policies),
	}

	return report, nil
}

func previews(descriptors []manifest.ResourceDescriptor) []ResourcePreview {
	result := make([]ResourcePreview, 0, len(descriptors))
	for _, descriptor := range descriptors {
		result = append(result, ResourcePreview{
			Kind:    descriptor.Kind,
			ID:      descriptor.ID,
			Summary: summarize(descriptor),
		})
	}

	return result
}

// summarize renders a one-line preview with well-known attributes first
// and the rest in lexicographic order, so output is deterministic.
func summarize(descriptor manifest.ResourceDescriptor) string {
	known := []string{"name", "model", "riskLevel", "environment"}

	var parts []string
	seen := map[string]bool{"id": true}
	for _, key := range known {
		seen[key] = true
		if value, ok := descriptor.Attributes[key]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", key, value))
		}
	}

	var rest []string
	for key := range descriptor.Attributes {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		parts = append(parts, fmt.Sprintf("%s=%v", key, descriptor.Attributes[key]))
	}

	return strings.Join(parts, " ")
}
