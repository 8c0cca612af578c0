// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"fmt"
)

type APIError string

const (
	InvalidRequest       APIError = "InvalidRequest"
	RegistrationRejected APIError = "RegistrationRejected"
	AgentAlreadyExists   APIError = "AgentAlreadyExists"
)

type ErrorResponse struct {
	ErrorType APIError `json:"error"`
	Message   string   `json:"message,omitempty"`
}

// Error allows ErrorResponse to satisfy the error interface
func (e ErrorResponse) Error() string {
	if e.Message == "" {
		return string(e.ErrorType)
	}
	return fmt.Sprintf("%s: %s", e.ErrorType, e.Message)
}
