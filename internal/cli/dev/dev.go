// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package dev

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/custodia/internal/cli/cmd"
	"github.com/platform-engineering-labs/custodia/internal/cli/config"
	"github.com/platform-engineering-labs/custodia/internal/cli/display"
	"github.com/platform-engineering-labs/custodia/internal/devregistry"
	"github.com/platform-engineering-labs/custodia/internal/logging"
)

func DevCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "dev",
		Short: "Run local development services",
		Annotations: map[string]string{
			"type": "Development",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)
	command.AddCommand(registryCmd())

	return command
}

func registryCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "registry",
		Short: "Run an in-memory governance registry for local development",
		RunE: func(command *cobra.Command, args []string) error {
			port, _ := command.Flags().GetInt("port")
			return runRegistry(port)
		},
		Annotations: map[string]string{
			"type":     "Development",
			"examples": "{{.Name}} dev {{.Command}}  |  {{.Name}} dev {{.Command}} --port 8080",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)
	command.Flags().Int("port", config.DefaultDevRegistryPort, "Port to listen on")

	return command
}

func runRegistry(port int) error {
	if err := config.Config.EnsureDataDirectory(); err != nil {
		return fmt.Errorf("cannot prepare data directory: %v", err)
	}

	logPath := filepath.Join(config.Config.DataDirectory(), "dev-registry.log")
	logging.SetupServerLogging(logPath, slog.LevelInfo)

	server := devregistry.NewServer(port)

	display.PrintBanner()
	fmt.Printf("%s\n", display.Goldf("Development registry listening on http://localhost:%d", port))
	fmt.Printf("%s\n\n", display.Greyf("State is in-memory only and lost on shutdown. Logs: %s", logPath))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("Shutting down development registry", "signal", sig.String())
		return server.Shutdown(context.Background())
	}
}
