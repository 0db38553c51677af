package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/sommelier/internal/api"
	"github.com/jackzampolin/sommelier/internal/providers"
	"github.com/jackzampolin/sommelier/internal/svcctx"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Health check
//	@Description	Returns ok while the HTTP server is responding
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/health", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			return nil
		},
	}
}

// ReadyEndpoint handles GET /ready.
type ReadyEndpoint struct{}

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Readiness check
//	@Description	Probes the chat backend when it supports health checks
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/ready [get]
func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	backend := svcctx.BackendFrom(r.Context())
	if backend == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Backend: "not_initialized"})
		return
	}

	resp := HealthResponse{Status: "ok", Backend: backend.Name()}
	if hc, ok := backend.(providers.HealthChecker); ok {
		if err := hc.HealthCheck(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Error = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *ReadyEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Check server readiness (includes the chat backend)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/ready", &resp); err != nil {
				return err
			}
			fmt.Printf("Status:  %s\n", resp.Status)
			if resp.Backend != "" {
				fmt.Printf("Backend: %s\n", resp.Backend)
			}
			return nil
		},
	}
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server   string         `json:"server"`
	Backend  BackendStatus  `json:"backend"`
	Bottles  BottlesStatus  `json:"bottles"`
	Sessions SessionsStatus `json:"sessions"`
	Personas []string       `json:"personas"`
	Archive  string         `json:"archive"`
}

// BackendStatus describes the chat backend.
type BackendStatus struct {
	Name      string                       `json:"name"`
	Models    []string                     `json:"models,omitempty"`
	RateLimit *providers.RateLimiterStatus `json:"rate_limit,omitempty"`
}

// BottlesStatus describes bottle lookup.
type BottlesStatus struct {
	Remote bool `json:"remote"`
}

// SessionsStatus describes client sessions.
type SessionsStatus struct {
	Active int `json:"active"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct{}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Server status
//	@Description	Backend, bottle lookup, session and persona status
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Router			/status [get]
func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := StatusResponse{
		Server:  "running",
		Archive: "disabled",
	}

	if backend := svcctx.BackendFrom(ctx); backend != nil {
		resp.Backend.Name = backend.Name()
		if remote, ok := backend.(*providers.RemoteBackend); ok {
			resp.Backend.Models = remote.Models()
			status := remote.RateLimitStatus()
			resp.Backend.RateLimit = &status
		}
		if local, ok := backend.(*providers.LocalBackend); ok {
			resp.Backend.Models = []string{local.Model()}
		}
	} else {
		resp.Backend.Name = "not_initialized"
	}

	if b := svcctx.BottlesFrom(ctx); b != nil {
		resp.Bottles.Remote = b.RemoteEnabled()
	}
	if sm := svcctx.SessionsFrom(ctx); sm != nil {
		resp.Sessions.Active = sm.Count()
	}
	if reg := svcctx.PersonasFrom(ctx); reg != nil {
		resp.Personas = reg.Keys()
	}
	if svcctx.ArchiverFrom(ctx) != nil {
		resp.Archive = "redis"
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
				return err
			}
			fmt.Printf("Server: %s\n", resp.Server)
			fmt.Printf("Backend:\n")
			fmt.Printf("  Name:   %s\n", resp.Backend.Name)
			fmt.Printf("  Models: %v\n", resp.Backend.Models)
			fmt.Printf("Bottles:\n")
			fmt.Printf("  Remote: %v\n", resp.Bottles.Remote)
			fmt.Printf("Sessions: %d active\n", resp.Sessions.Active)
			fmt.Printf("Personas: %v\n", resp.Personas)
			fmt.Printf("Archive:  %s\n", resp.Archive)
			return nil
		},
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
