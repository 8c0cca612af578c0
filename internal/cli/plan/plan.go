// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package plan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/custodia/internal/cli/app"
	"github.com/platform-engineering-labs/custodia/internal/cli/cmd"
	"github.com/platform-engineering-labs/custodia/internal/cli/config"
	"github.com/platform-engineering-labs/custodia/internal/cli/display"
	"github.com/platform-engineering-labs/custodia/internal/cli/printer"
	"github.com/platform-engineering-labs/custodia/internal/engine"
	"github.com/platform-engineering-labs/custodia/internal/logging"
)

type PlanOptions struct {
	ManifestFile   string
	OutputConsumer printer.Consumer
	OutputSchema   string
	Vars           map[string]string
}

func PlanCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "plan",
		Short: "Preview the resources a manifest would create",
		PreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupClientLogging(config.Config.LogFilePath())
		},
		RunE: func(command *cobra.Command, args []string) error {
			opts := &PlanOptions{}
			opts.ManifestFile = command.Flags().Arg(0)
			consumer, _ := command.Flags().GetString("output-consumer")
			opts.OutputConsumer = printer.Consumer(consumer)
			opts.OutputSchema, _ = command.Flags().GetString("output-schema")

			vars, err := cmd.VarsFromCmd(command)
			if err != nil {
				return err
			}
			opts.Vars = vars

			return runPlan(app.New(), opts)
		},
		Annotations: map[string]string{
			"type":     "Manifest",
			"examples": "{{.Name}} {{.Command}} manifest.yaml  |  {{.Name}} {{.Command}} --var env=prod manifest.yaml",
			"args":     "<manifest file>",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().String("output-consumer", string(printer.ConsumerHuman), "Consumer of the command result (human | machine)")
	command.Flags().String("output-schema", "json", "The schema to use for the result output (json | yaml)")
	cmd.AddVarFlag(command)

	return command
}

func validatePlanOptions(opts *PlanOptions) error {
	if opts.ManifestFile == "" {
		return fmt.Errorf("manifest file is required")
	}
	if opts.OutputConsumer != printer.ConsumerHuman && opts.OutputConsumer != printer.ConsumerMachine {
		return fmt.Errorf("output consumer must be either 'human' or 'machine'")
	}
	if opts.OutputConsumer == printer.ConsumerMachine {
		if opts.OutputSchema != "json" && opts.OutputSchema != "yaml" {
			return fmt.Errorf("output schema must be either 'json' or 'yaml' for machine consumer")
		}
	}

	return nil
}

func runPlan(app *app.App, opts *PlanOptions) error {
	if err := validatePlanOptions(opts); err != nil {
		return err
	}

	report, err := app.Plan(opts.ManifestFile, opts.Vars)
	if err != nil {
		return fmt.Errorf("cannot plan manifest: %v", err)
	}

	if opts.OutputConsumer == printer.ConsumerMachine {
		p := printer.NewMachineReadablePrinter[engine.PlanReport](os.Stdout, opts.OutputSchema)
		return p.Print(report)
	}

	display.PrintBanner()
	fmt.Print(display.Gold("Planning manifest:") + "\n  " + display.Green("File: ") + opts.ManifestFile + "\n\n")

	p := printer.NewHumanReadablePrinter(os.Stdout)
	if err := p.Print(report); err != nil {
		return fmt.Errorf("error printing plan: %v", err)
	}

	return nil
}
