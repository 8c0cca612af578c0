// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package apply

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/custodia/internal/cli/app"
	"github.com/platform-engineering-labs/custodia/internal/cli/cmd"
	"github.com/platform-engineering-labs/custodia/internal/cli/config"
	"github.com/platform-engineering-labs/custodia/internal/cli/display"
	"github.com/platform-engineering-labs/custodia/internal/cli/printer"
	"github.com/platform-engineering-labs/custodia/internal/engine"
	"github.com/platform-engineering-labs/custodia/internal/logging"
)

type ApplyOptions struct {
	ManifestFile   string
	OutputConsumer printer.Consumer
	OutputSchema   string
	DryRun         bool
	Yes            bool
	Vars           map[string]string
}

func ApplyCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "apply",
		Short: "Register a manifest's resources against the governance registry",
		PreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupClientLogging(config.Config.LogFilePath())
		},
		RunE: func(command *cobra.Command, args []string) error {
			opts := &ApplyOptions{}
			opts.ManifestFile = command.Flags().Arg(0)
			consumer, _ := command.Flags().GetString("output-consumer")
			opts.OutputConsumer = printer.Consumer(consumer)
			opts.OutputSchema, _ = command.Flags().GetString("output-schema")
			opts.DryRun, _ = command.Flags().GetBool("dry-run")
			opts.Yes, _ = command.Flags().GetBool("yes")

			vars, err := cmd.VarsFromCmd(command)
			if err != nil {
				return err
			}
			opts.Vars = vars

			return runApply(app.New(), opts)
		},
		Annotations: map[string]string{
			"type":     "Manifest",
			"examples": "{{.Name}} {{.Command}} manifest.yaml  |  {{.Name}} {{.Command}} --dry-run --var env=prod manifest.yaml",
			"args":     "<manifest file>",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().String("output-consumer", string(printer.ConsumerHuman), "Consumer of the command result (human | machine)")
	command.Flags().String("output-schema", "json", "The schema to use for the result output (json | yaml)")
	command.Flags().Bool("dry-run", false, "Resolve and extract resources but make no registry calls")
	command.Flags().Bool("yes", false, "Allow the command to run without any confirmations")
	cmd.AddVarFlag(command)

	return command
}

func validateApplyOptions(opts *ApplyOptions) error {
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

func runApply(app *app.App, opts *ApplyOptions) error {
	if err := validateApplyOptions(opts); err != nil {
		return err
	}
	if opts.OutputConsumer == printer.ConsumerMachine {
		return runApplyForMachines(app, opts)
	}
	return runApplyForHumans(app, opts)
}

func runApplyForHumans(app *app.App, opts *ApplyOptions) error {
	display.PrintBanner()

	// always show the plan first for humans
	report, err := app.Plan(opts.ManifestFile, opts.Vars)
	if err != nil {
		return fmt.Errorf("cannot plan manifest: %v", err)
	}

	if report.Count() == 0 {
		fmt.Printf("%s\n\n%s\n\n",
			display.Gold("Nothing to apply:"),
			display.Grey("The manifest declares no resources."))
		return nil
	}

	if !opts.Yes {
		p := printer.NewHumanReadablePrinter(os.Stdout)
		if err := p.Print(report); err != nil {
			return fmt.Errorf("error printing plan: %v", err)
		}
	}

	if opts.DryRun {
		result, err := app.Apply(context.Background(), opts.ManifestFile, opts.Vars, true)
		if err != nil {
			return fmt.Errorf("cannot apply manifest: %v", err)
		}
		p := printer.NewHumanReadablePrinter(os.Stdout)
		if err := p.Print(result); err != nil {
			return fmt.Errorf("error printing apply result: %v", err)
		}
		return nil
	}

	prompt := fmt.Sprintf("Register %d agent(s) against %s?", len(report.Agents), config.Config.RegistryEndpoint())
	if !opts.Yes && !confirm(prompt) {
		fmt.Print(display.Red("\nCommand aborted\n"))
		return nil
	}

	result, err := app.Apply(context.Background(), opts.ManifestFile, opts.Vars, false)
	if err != nil {
		return fmt.Errorf("cannot apply manifest: %v", err)
	}

	fmt.Println()
	p := printer.NewHumanReadablePrinter(os.Stdout)
	if err := p.Print(result); err != nil {
		return fmt.Errorf("error printing apply result: %v", err)
	}

	return nil
}

func runApplyForMachines(app *app.App, opts *ApplyOptions) error {
	result, err := app.Apply(context.Background(), opts.ManifestFile, opts.Vars, opts.DryRun)
	if err != nil {
		return fmt.Errorf("cannot apply manifest: %v", err)
	}

	p := printer.NewMachineReadablePrinter[engine.ApplyResult](os.Stdout, opts.OutputSchema)

	return p.Print(result)
}

func confirm(prompt string) bool {
	fmt.Printf("\n%s %s ", prompt, display.Grey("[y/N]"))

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes"
}
