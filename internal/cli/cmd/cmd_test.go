// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func varCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	command := &cobra.Command{Use: "test"}
	AddVarFlag(command)
	require.NoError(t, command.Flags().Parse(args))

	return command
}

func TestVarsFromCmd(t *testing.T) {
	t.Run("no vars", func(t *testing.T) {
		vars, err := VarsFromCmd(varCommand(t))
		require.NoError(t, err)
		assert.Empty(t, vars)
	})

	t.Run("repeated vars", func(t *testing.T) {
		vars, err := VarsFromCmd(varCommand(t, "--var", "env=prod", "--var", "region=eu-west-1"))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"env": "prod", "region": "eu-west-1"}, vars)
	})

	t.Run("value may contain equals signs", func(t *testing.T) {
		vars, err := VarsFromCmd(varCommand(t, "--var", "query=a=b"))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"query": "a=b"}, vars)
	})

	t.Run("last value wins", func(t *testing.T) {
		vars, err := VarsFromCmd(varCommand(t, "--var", "env=dev", "--var", "env=prod"))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"env": "prod"}, vars)
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := VarsFromCmd(varCommand(t, "--var", "env"))
		assert.Error(t, err)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := VarsFromCmd(varCommand(t, "--var", "=prod"))
		assert.Error(t, err)
	})
}
