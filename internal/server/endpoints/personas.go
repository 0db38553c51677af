package endpoints

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/sommelier/internal/api"
	"github.com/jackzampolin/sommelier/internal/personas"
	"github.com/jackzampolin/sommelier/internal/svcctx"
)

// PersonaInfo is the listing form of a persona.
type PersonaInfo struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	ToneMarkers string `json:"tone_markers,omitempty"`
}

// ListPersonasResponse is the response for GET /api/personas.
type ListPersonasResponse struct {
	Personas []PersonaInfo `json:"personas"`
}

// Text renders one line per persona.
func (r ListPersonasResponse) Text() string {
	var b strings.Builder
	for i, p := range r.Personas {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-14s %s (%s)", p.Key, p.Name, p.Role)
	}
	return b.String()
}

// ListPersonasEndpoint handles GET /api/personas.
type ListPersonasEndpoint struct{}

func (e *ListPersonasEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/personas", e.handler
}

func (e *ListPersonasEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		List personas
//	@Description	Sommelier personas in registry order
//	@Tags			personas
//	@Produce		json
//	@Success		200	{object}	ListPersonasResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/personas [get]
func (e *ListPersonasEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	reg := svcctx.PersonasFrom(r.Context())
	if reg == nil {
		writeError(w, http.StatusServiceUnavailable, "personas not loaded")
		return
	}
	writeJSON(w, http.StatusOK, listPersonas(reg))
}

func listPersonas(reg *personas.Registry) ListPersonasResponse {
	list := reg.List()
	resp := ListPersonasResponse{Personas: make([]PersonaInfo, 0, len(list))}
	for _, p := range list {
		resp.Personas = append(resp.Personas, PersonaInfo{
			Key:         p.Key,
			Name:        p.Name,
			Role:        p.Role,
			ToneMarkers: p.ToneMarkers,
		})
	}
	return resp
}

func (e *ListPersonasEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "personas",
		Short: "List sommelier personas",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ListPersonasResponse
			if err := client.Get(cmd.Context(), "/api/personas", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
