// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		root    any
		wantErr bool
	}{
		{
			name:    "nil root",
			root:    nil,
			wantErr: true,
		},
		{
			name:    "scalar root",
			root:    "just a string",
			wantErr: true,
		},
		{
			name:    "sequence root",
			root:    []any{map[string]any{}},
			wantErr: true,
		},
		{
			name:    "empty mapping",
			root:    map[string]any{},
			wantErr: false,
		},
		{
			name: "resource block is a sequence",
			root: map[string]any{
				"resource": []any{"agent"},
			},
			wantErr: true,
		},
		{
			name: "variable block is a scalar",
			root: map[string]any{
				"variable": "env",
			},
			wantErr: true,
		},
		{
			name: "well formed",
			root: map[string]any{
				"resource": map[string]any{"agent": map[string]any{}},
				"variable": map[string]any{"env": map[string]any{"default": "dev"}},
			},
			wantErr: false,
		},
		{
			name: "unknown top level keys pass",
			root: map[string]any{
				"notes": "anything goes outside the known blocks",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&Document{Root: tt.root})
			if tt.wantErr {
				assert.ErrorAs(t, err, &InvalidConfigError{})
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
