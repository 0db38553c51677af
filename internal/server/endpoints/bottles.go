package endpoints

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/sommelier/internal/api"
	"github.com/jackzampolin/sommelier/internal/bottles"
	"github.com/jackzampolin/sommelier/internal/svcctx"
)

// BottleSearchRequest is the request body for POST /api/bottles/search.
// Varietal wins over Text; Text is scanned for the first known varietal.
type BottleSearchRequest struct {
	Varietal string `json:"varietal,omitempty"`
	Text     string `json:"text,omitempty"`
	Dish     string `json:"dish,omitempty"`
	MaxPrice int    `json:"max_price,omitempty"`
}

// BottleSearchResponse is the response for POST /api/bottles/search.
type BottleSearchResponse struct {
	Varietal  string               `json:"varietal"`
	Bottles   []bottles.Suggestion `json:"bottles"`
	Formatted string               `json:"formatted"`
}

// Text returns the formatted suggestion block.
func (r BottleSearchResponse) Text() string { return r.Formatted }

// BottleSearchEndpoint handles POST /api/bottles/search.
type BottleSearchEndpoint struct{}

func (e *BottleSearchEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/bottles/search", e.handler
}

func (e *BottleSearchEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Search bottles
//	@Description	Concrete bottles for a varietal: Spoonacular when configured, else the built-in catalog
//	@Tags			bottles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BottleSearchRequest	true	"Search request"
//	@Success		200		{object}	BottleSearchResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/bottles/search [post]
func (e *BottleSearchEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req BottleSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.MaxPrice < 0 {
		writeError(w, http.StatusBadRequest, "max_price must be non-negative")
		return
	}

	varietal := strings.TrimSpace(req.Varietal)
	if varietal == "" {
		found, ok := bottles.ExtractVarietal(req.Text)
		if !ok {
			writeError(w, http.StatusBadRequest, "varietal is required (none found in text)")
			return
		}
		varietal = found
	}

	searcher := svcctx.BottlesFrom(r.Context())
	if searcher == nil {
		writeError(w, http.StatusServiceUnavailable, "bottle search not available")
		return
	}

	found := searcher.Search(r.Context(), varietal, req.Dish, req.MaxPrice)
	writeJSON(w, http.StatusOK, BottleSearchResponse{
		Varietal:  varietal,
		Bottles:   found,
		Formatted: bottles.Format(found),
	})
}

func (e *BottleSearchEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req BottleSearchRequest
	cmd := &cobra.Command{
		Use:   "bottles",
		Short: "Search bottles for a varietal",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp BottleSearchResponse
			if err := client.Post(cmd.Context(), "/api/bottles/search", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&req.Varietal, "varietal", "", "Grape varietal (e.g. Pinot Noir)")
	cmd.Flags().StringVar(&req.Text, "text", "", "Free text to scan for a varietal")
	cmd.Flags().StringVar(&req.Dish, "dish", "", "Dish description")
	cmd.Flags().IntVar(&req.MaxPrice, "max-price", 0, "Maximum price (0 uses the server default)")
	return cmd
}
