// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apimodel "github.com/platform-engineering-labs/custodia/internal/api/model"
)

func TestRegisterAgent(t *testing.T) {
	var gotClientID string
	var gotRequest apimodel.RegisterAgentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, AgentsRoute, r.URL.Path)

		gotClientID = r.Header.Get("Client-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(apimodel.RegisteredResource{
			Ksuid: "2abc",
			Kind:  "agent",
			Name:  gotRequest.Name,
			Model: gotRequest.Model,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "client-1", nil)

	created, err := client.RegisterAgent(context.Background(), apimodel.RegisterAgentRequest{
		Name:      "support-bot",
		Model:     "gpt-4o",
		RiskLevel: "high",
	})
	require.NoError(t, err)

	assert.Equal(t, "client-1", gotClientID)
	assert.Equal(t, "support-bot", gotRequest.Name)
	assert.Equal(t, "high", gotRequest.RiskLevel)

	assert.Equal(t, "2abc", created.Ksuid)
	assert.Equal(t, "support-bot", created.Name)
}

func TestRegisterAgentErrorResponses(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      any
		errorType apimodel.APIError
	}{
		{
			name:      "conflict",
			status:    http.StatusConflict,
			body:      apimodel.ErrorResponse{ErrorType: apimodel.AgentAlreadyExists, Message: "agent 'bot' is already registered"},
			errorType: apimodel.AgentAlreadyExists,
		},
		{
			name:      "bad request",
			status:    http.StatusBadRequest,
			body:      apimodel.ErrorResponse{ErrorType: apimodel.InvalidRequest, Message: "agent name is required"},
			errorType: apimodel.InvalidRequest,
		},
		{
			name:      "rejected",
			status:    http.StatusUnprocessableEntity,
			body:      apimodel.ErrorResponse{ErrorType: apimodel.RegistrationRejected, Message: "no model"},
			errorType: apimodel.RegistrationRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(tt.body)
			}))
			defer server.Close()

			client := NewClient(server.URL, "client-1", nil)
			created, err := client.RegisterAgent(context.Background(), apimodel.RegisterAgentRequest{Name: "bot"})

			assert.Nil(t, created)

			var errResp apimodel.ErrorResponse
			require.ErrorAs(t, err, &errResp)
			assert.Equal(t, tt.errorType, errResp.ErrorType)
		})
	}
}

func TestRegisterAgentOpaqueErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "client-1", nil)
	_, err := client.RegisterAgent(context.Background(), apimodel.RegisterAgentRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestRegisterAgentUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "client-1", nil)
	_, err := client.RegisterAgent(context.Background(), apimodel.RegisterAgentRequest{Name: "bot"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response code")
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, HealthRoute, r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient(server.URL, "client-1", nil)
		assert.NoError(t, client.Health(context.Background()))
	})

	t.Run("unhealthy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(server.URL, "client-1", nil)
		assert.Error(t, client.Health(context.Background()))
	})
}
