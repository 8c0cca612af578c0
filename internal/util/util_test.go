// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureFileFolderHierarchy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c.log")

	require.NoError(t, EnsureFileFolderHierarchy(path))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureFolderHierarchyIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir")

	require.NoError(t, EnsureFolderHierarchy(path))
	assert.NoError(t, EnsureFolderHierarchy(path))
}

func TestExpandHomePath(t *testing.T) {
	t.Run("expands tilde", func(t *testing.T) {
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(home, "manifests"), ExpandHomePath("~/manifests"))
	})

	t.Run("leaves absolute paths alone", func(t *testing.T) {
		assert.Equal(t, "/tmp/manifest.yaml", ExpandHomePath("/tmp/manifest.yaml"))
	})

	t.Run("leaves relative paths alone", func(t *testing.T) {
		assert.Equal(t, "manifest.yaml", ExpandHomePath("manifest.yaml"))
	})
}
