package endpoints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/sommelier/internal/api"
	"github.com/jackzampolin/sommelier/internal/sommelier"
	"github.com/jackzampolin/sommelier/internal/svcctx"
)

// CompareRequest is the request body for POST /api/compare.
type CompareRequest struct {
	CustomerName string `json:"customer_name"`
	Dish         string `json:"dish"`
}

// CompareResponse holds one answer per persona in registry order.
type CompareResponse struct {
	CustomerName string                 `json:"customer_name"`
	Dish         string                 `json:"dish"`
	Comparisons  []sommelier.Comparison `json:"comparisons"`
}

// Text renders each persona's answer under its name.
func (r CompareResponse) Text() string {
	var b strings.Builder
	for i, c := range r.Comparisons {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "=== %s ===\n%s", c.PersonaName, c.Text)
	}
	return b.String()
}

func (req *CompareRequest) validate() error {
	req.Dish = strings.TrimSpace(req.Dish)
	if req.Dish == "" {
		return errors.New("dish is required")
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	return nil
}

func compareWith(ctx context.Context, s *sommelier.Sommelier, req CompareRequest) CompareResponse {
	return CompareResponse{
		CustomerName: req.CustomerName,
		Dish:         req.Dish,
		Comparisons:  s.ComparePersonas(ctx, req.CustomerName, req.Dish),
	}
}

// CompareEndpoint handles POST /api/compare.
type CompareEndpoint struct{}

func (e *CompareEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/compare", e.handler
}

func (e *CompareEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Compare personas
//	@Description	Ask every persona about the same dish. Nothing is saved and no bottles are fetched.
//	@Tags			recommend
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CompareRequest	true	"Comparison request"
//	@Success		200		{object}	CompareResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/compare [post]
func (e *CompareEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s := svcctx.SommelierFrom(r.Context())
	if s == nil {
		writeError(w, http.StatusServiceUnavailable, "sommelier not initialized")
		return
	}

	writeJSON(w, http.StatusOK, compareWith(r.Context(), s, req))
}

func (e *CompareEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req CompareRequest
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare every persona's pairing for one dish",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp CompareResponse
			if err := client.Post(cmd.Context(), "/api/compare", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&req.CustomerName, "name", "", "Customer name")
	cmd.Flags().StringVar(&req.Dish, "dish", "", "Dish description (required)")
	cmd.MarkFlagRequired("dish")
	return cmd
}
