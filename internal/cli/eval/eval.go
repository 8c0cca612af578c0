// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package eval

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/custodia/internal/cli/app"
	"github.com/platform-engineering-labs/custodia/internal/cli/cmd"
	"github.com/platform-engineering-labs/custodia/internal/cli/config"
	"github.com/platform-engineering-labs/custodia/internal/cli/display"
	"github.com/platform-engineering-labs/custodia/internal/cli/printer"
	"github.com/platform-engineering-labs/custodia/internal/logging"
	"github.com/platform-engineering-labs/custodia/pkg/manifest"
)

type EvalOptions struct {
	ManifestFile   string
	OutputConsumer printer.Consumer
	OutputSchema   string
	Beautify       bool
	Vars           map[string]string
}

func EvalCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "eval",
		Short: "Print a manifest with its variables resolved",
		PreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupClientLogging(config.Config.LogFilePath())
		},
		RunE: func(command *cobra.Command, args []string) error {
			opts := &EvalOptions{}
			opts.ManifestFile = command.Flags().Arg(0)
			consumer, _ := command.Flags().GetString("output-consumer")
			opts.OutputConsumer = printer.Consumer(consumer)
			opts.OutputSchema, _ = command.Flags().GetString("output-schema")
			opts.Beautify, _ = command.Flags().GetBool("beautify")

			vars, err := cmd.VarsFromCmd(command)
			if err != nil {
				return err
			}
			opts.Vars = vars

			return runEval(app.New(), opts)
		},
		Annotations: map[string]string{
			"type":     "Manifest",
			"examples": "{{.Name}} {{.Command}} manifest.yaml  |  {{.Name}} {{.Command}} --var env=prod --output-schema yaml manifest.yaml",
			"args":     "<manifest file>",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().String("output-consumer", string(printer.ConsumerHuman), "Consumer of the command result (human | machine)")
	command.Flags().String("output-schema", "json", "The schema to use for the result output (json | yaml)")
	command.Flags().Bool("beautify", true, "beautify output (human consumer only)")
	cmd.AddVarFlag(command)

	return command
}

func validateEvalOptions(opts *EvalOptions) error {
	if opts.ManifestFile == "" {
		return fmt.Errorf("manifest file is required")
	}
	if opts.OutputConsumer != printer.ConsumerHuman && opts.OutputConsumer != printer.ConsumerMachine {
		return fmt.Errorf("output consumer must be either 'human' or 'machine'")
	}
	if opts.OutputSchema != "json" && opts.OutputSchema != "yaml" {
		return fmt.Errorf("output schema must be either 'json' or 'yaml'")
	}

	return nil
}

func runEval(app *app.App, opts *EvalOptions) error {
	if err := validateEvalOptions(opts); err != nil {
		return err
	}

	resolved, err := app.Evaluate(opts.ManifestFile, opts.Vars)
	if err != nil {
		return fmt.Errorf("cannot evaluate manifest: %v", err)
	}

	output, err := serialize(resolved, opts.OutputSchema, opts.OutputConsumer == printer.ConsumerHuman && opts.Beautify)
	if err != nil {
		return fmt.Errorf("cannot serialize eval result: %v", err)
	}

	if opts.OutputConsumer == printer.ConsumerMachine {
		fmt.Print(output + "\n")
		return nil
	}

	display.PrintBanner()
	fmt.Printf("%s\n\n%s\n", display.Goldf("Evaluated manifest as '%s':", opts.OutputSchema), output)

	return nil
}

func serialize(doc *manifest.Document, schema string, beautify bool) (string, error) {
	switch schema {
	case "json":
		data, err := json.Marshal(doc.Root)
		if err != nil {
			return "", fmt.Errorf("error encoding JSON: %w", err)
		}
		if beautify {
			data = pretty.PrettyOptions(data, &pretty.Options{
				Width:  80,
				Indent: "  ",
			})
		}
		return string(bytes.TrimRight(data, "\n")), nil
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc.Root); err != nil {
			return "", fmt.Errorf("error encoding YAML: %w", err)
		}
		return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
	default:
		return "", fmt.Errorf("unsupported schema: %s", schema)
	}
}
