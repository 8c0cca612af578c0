// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"time"
)

// Defaults applied when an agent declaration omits the field.
const (
	DefaultRiskLevel   = "medium"
	DefaultEnvironment = "dev"
)

type RegisterAgentRequest struct {
	Name        string            `json:"Name"`
	Model       string            `json:"Model"`
	RiskLevel   string            `json:"RiskLevel"`
	Policies    []string          `json:"Policies"`
	Environment string            `json:"Environment"`
	Metadata    map[string]string `json:"Metadata"`
}

// RegisteredResource is the registry's record of a successful
// registration.
type RegisteredResource struct {
	Ksuid        string            `json:"Ksuid"`
	Kind         string            `json:"Kind"`
	Name         string            `json:"Name"`
	Model        string            `json:"Model,omitempty"`
	RiskLevel    string            `json:"RiskLevel,omitempty"`
	Environment  string            `json:"Environment,omitempty"`
	Policies     []string          `json:"Policies,omitempty"`
	Metadata     map[string]string `json:"Metadata,omitempty"`
	RegisteredAt time.Time         `json:"RegisteredAt"`
}
