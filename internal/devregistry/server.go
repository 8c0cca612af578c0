// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package devregistry is an in-memory governance registry for local
// development and tests. It implements just enough of the registry API
// for custodia apply to run end to end without a real backend.
package devregistry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/ksuid"

	"github.com/platform-engineering-labs/custodia/internal/api"
	apimodel "github.com/platform-engineering-labs/custodia/internal/api/model"
)

type Server struct {
	echo *echo.Echo
	port int

	mu     sync.Mutex
	agents map[string]apimodel.RegisteredResource
}

func NewServer(port int) *Server {
	s := &Server{
		port:   port,
		agents: make(map[string]apimodel.RegisteredResource),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestID)

	e.POST(api.AgentsRoute, s.registerAgent)
	e.GET(api.AgentsRoute, s.listAgents)
	e.GET(api.HealthRoute, s.health)

	s.echo = e

	return s
}

// Handler exposes the routes for httptest-based callers.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	slog.Info("dev registry listening", "port", s.port)

	return s.echo.Start(fmt.Sprintf(":%d", s.port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) registerAgent(c echo.Context) error {
	var req apimodel.RegisterAgentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apimodel.ErrorResponse{
			ErrorType: apimodel.InvalidRequest,
			Message:   "malformed request body",
		})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, apimodel.ErrorResponse{
			ErrorType: apimodel.InvalidRequest,
			Message:   "agent name is required",
		})
	}
	if req.Model == "" {
		return c.JSON(http.StatusUnprocessableEntity, apimodel.ErrorResponse{
			ErrorType: apimodel.RegistrationRejected,
			Message:   fmt.Sprintf("agent '%s' declares no model", req.Name),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.agents[req.Name]; exists {
		return c.JSON(http.StatusConflict, apimodel.ErrorResponse{
			ErrorType: apimodel.AgentAlreadyExists,
			Message:   fmt.Sprintf("agent '%s' is already registered", req.Name),
		})
	}

	created := apimodel.RegisteredResource{
		Ksuid:        ksuid.New().String(),
		Kind:         "agent",
		Name:         req.Name,
		Model:        req.Model,
		RiskLevel:    req.RiskLevel,
		Environment:  req.Environment,
		Policies:     req.Policies,
		Metadata:     req.Metadata,
		RegisteredAt: time.Now().UTC(),
	}
	s.agents[req.Name] = created

	slog.Info("registered agent", "name", req.Name, "ksuid", created.Ksuid, "client", c.Request().Header.Get("Client-ID"))

	return c.JSON(http.StatusCreated, created)
}

func (s *Server) listAgents(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	agents := make([]apimodel.RegisteredResource, 0, len(s.agents))
	for _, agent := range s.agents {
		agents = append(agents, agent)
	}

	return c.JSON(http.StatusOK, agents)
}

func (s *Server) health(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Request-ID", uuid.NewString())
		return next(c)
	}
}
