// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/platform-engineering-labs/custodia/internal/cli/display"
	"github.com/platform-engineering-labs/custodia/internal/engine"
)

// RenderPlan renders a preview of the resources an apply would create.
// Output is deterministic for a given report.
func RenderPlan(report *engine.PlanReport) (string, error) {
	if report.Count() == 0 {
		return display.Gold("No resources declared.\n") + display.Grey("The manifest contains nothing to create.\n"), nil
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})))

	table.Header(display.LightBlue("Kind"), display.LightBlue("ID"), "Attributes")

	data := make([][]any, 0, report.Count())
	for _, preview := range report.Agents {
		data = append(data, []any{display.Green(preview.Kind), preview.ID, preview.Summary})
	}
	for _, preview := range report.Policies {
		data = append(data, []any{display.Gold(preview.Kind), preview.ID, preview.Summary})
	}

	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error formatting plan: %v", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering plan: %v", err)
	}

	summary := fmt.Sprintf("\n%s %s\n",
		display.Gold("Plan:"),
		fmt.Sprintf("%d agent(s) and %d policy(s) would be created.", len(report.Agents), len(report.Policies)))
	if len(report.Policies) > 0 {
		summary += display.Grey("Policy registration is not implemented yet; policies are preview-only.\n")
	}

	return buf.String() + summary, nil
}

// RenderApplyResult renders the success and failure counts of one apply
// invocation, listing every recorded error.
func RenderApplyResult(result *engine.ApplyResult) string {
	var out strings.Builder

	if result.DryRun {
		out.WriteString(display.Gold("Dry run:") + " no registry calls were made.\n")
		return out.String()
	}

	for _, created := range result.Created {
		out.WriteString(fmt.Sprintf("%s %s %s\n",
			display.Green("Created"),
			created.Name,
			display.Grey("("+created.Ksuid+")")))
	}
	for _, message := range result.Errors {
		out.WriteString(display.Red("Failed ") + message + "\n")
	}

	counts := fmt.Sprintf("%d created, %d failed.", len(result.Created), len(result.Errors))
	if len(result.Errors) > 0 {
		out.WriteString("\n" + display.Red(counts) + "\n")
	} else {
		out.WriteString("\n" + display.Green(counts) + "\n")
	}

	return out.String()
}
