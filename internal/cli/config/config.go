// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/segmentio/ksuid"
)

const (
	ConfigDirectory = ".config/custodia"
	DataDirectory   = ".pel/custodia"

	// RegistryEndpointEnv overrides the registry the CLI talks to.
	RegistryEndpointEnv     = "CUSTODIA_REGISTRY_URL"
	DefaultRegistryEndpoint = "http://localhost:7171"

	DefaultDevRegistryPort = 7171
)

var Config = cliconfig{}

type cliconfig struct{}

func (cliconfig) ConfigDirectory() string {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homePath, ConfigDirectory)
}

func (cliconfig) DataDirectory() string {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homePath, DataDirectory)
}

func (cliconfig) LogFilePath() string {
	return filepath.Join(Config.DataDirectory(), "log", "client.log")
}

func (cliconfig) RegistryEndpoint() string {
	if endpoint := os.Getenv(RegistryEndpointEnv); endpoint != "" {
		return strings.TrimRight(endpoint, "/")
	}

	return DefaultRegistryEndpoint
}

func (cliconfig) EnsureConfigDirectory() error {
	configPath := Config.ConfigDirectory()
	if configPath == "" {
		return fmt.Errorf("failed to ensure custodia config directory")
	}

	return os.MkdirAll(configPath, 0700)
}

func (cliconfig) EnsureDataDirectory() error {
	dataPath := Config.DataDirectory()
	if dataPath == "" {
		return fmt.Errorf("failed to ensure custodia data directory")
	}

	return os.MkdirAll(dataPath, 0700)
}

func (cliconfig) EnsureClientID() error {
	dataPath := Config.DataDirectory()
	if dataPath == "" {
		return fmt.Errorf("failed to ensure custodia directory")
	}

	idFile := filepath.Join(dataPath, "cli_client_id")
	if _, err := os.Stat(idFile); os.IsNotExist(err) {
		err := os.WriteFile(idFile, []byte(ksuid.New().String()), 0600)
		if err != nil {
			return fmt.Errorf("failed to create ID file: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check ID file: %w", err)
	}

	return nil
}

func (cliconfig) ClientID() (string, error) {
	dataPath := Config.DataDirectory()
	if dataPath == "" {
		return "", fmt.Errorf("failed to retrieve custodia directory")
	}

	data, err := os.ReadFile(filepath.Join(dataPath, "cli_client_id"))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}
