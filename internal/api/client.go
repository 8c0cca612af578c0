// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"resty.dev/v3"

	apimodel "github.com/platform-engineering-labs/custodia/internal/api/model"
)

const (
	BasePath      = "/api/v1"
	AgentsRoute   = BasePath + "/agents"
	PoliciesRoute = BasePath + "/policies"
	HealthRoute   = BasePath + "/health"
)

// Client talks to a governance registry. Retries and authentication are
// deliberately not handled here; compose the client with an *http.Client
// that provides them when needed.
type Client struct {
	endpoint string
	clientID string
	resty    *resty.Client
}

func NewClient(endpoint string, clientID string, net *http.Client) *Client {
	client := resty.New()

	if net != nil {
		client = resty.NewWithClient(net)
	}

	return &Client{
		endpoint: endpoint,
		clientID: clientID,
		resty:    client,
	}
}

func (c *Client) RegisterAgent(ctx context.Context, req apimodel.RegisterAgentRequest) (*apimodel.RegisteredResource, error) {
	var created apimodel.RegisteredResource

	resp, err := c.resty.R().
		SetContext(ctx).
		SetHeader("Client-ID", c.clientID).
		SetContentType("application/json").
		SetBody(&req).
		SetResult(&created).
		Post(c.endpoint + AgentsRoute)
	if err != nil {
		return nil, fmt.Errorf("failed to reach the governance registry: %w", err)
	}

	//nolint:errcheck
	defer resp.Body.Close()

	switch resp.StatusCode() {
	case http.StatusCreated:
		return &created, nil
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return nil, parseErrorResponse(resp.Body, resp.StatusCode())
	default:
		return nil, fmt.Errorf("unexpected response code from the governance registry: %d - %s", resp.StatusCode(), resp.String())
	}
}

func (c *Client) Health(ctx context.Context) error {
	resp, err := c.resty.R().
		SetContext(ctx).
		Get(c.endpoint + HealthRoute)
	if err != nil {
		return fmt.Errorf("failed to reach the governance registry: %w", err)
	}

	//nolint:errcheck
	defer resp.Body.Close()

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("governance registry is not healthy: %d", resp.StatusCode())
	}

	return nil
}

func parseErrorResponse(body io.Reader, statusCode int) error {
	var errResp apimodel.ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil || errResp.ErrorType == "" {
		return fmt.Errorf("registration rejected by the governance registry: %d", statusCode)
	}

	return errResp
}
