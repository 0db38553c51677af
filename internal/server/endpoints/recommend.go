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
	"github.com/jackzampolin/sommelier/internal/bottles"
	"github.com/jackzampolin/sommelier/internal/session"
	"github.com/jackzampolin/sommelier/internal/sommelier"
	"github.com/jackzampolin/sommelier/internal/svcctx"
)

// ErrorKindUnknownPersona marks a response whose text is the unknown-persona message.
const ErrorKindUnknownPersona = "unknown_persona"

// RecommendRequest is the request body for POST /api/recommend.
type RecommendRequest struct {
	SessionID      string `json:"session_id,omitempty"`
	NewSession     bool   `json:"new_session,omitempty"`
	CustomerName   string `json:"customer_name"`
	Dish           string `json:"dish"`
	Persona        string `json:"persona,omitempty"`
	IncludeBottles bool   `json:"include_bottles,omitempty"`
	SaveResponse   *bool  `json:"save_response,omitempty"`
	MaxPrice       int    `json:"max_price,omitempty"`
}

// RecommendResponse is the response for POST /api/recommend.
type RecommendResponse struct {
	SessionID      string               `json:"session_id"`
	Recommendation string               `json:"text"`
	Persona        string               `json:"persona"`
	PersonaName    string               `json:"persona_name,omitempty"`
	Degraded       bool                 `json:"degraded"`
	Backend        string               `json:"backend,omitempty"`
	Model          string               `json:"model,omitempty"`
	Varietal       string               `json:"varietal,omitempty"`
	Bottles        []bottles.Suggestion `json:"bottles,omitempty"`
	RecordID       string               `json:"record_id,omitempty"`
	ErrorKind      string               `json:"error_kind,omitempty"`
}

// Text returns the recommendation text.
func (r RecommendResponse) Text() string { return r.Recommendation }

// validate normalizes the request in place.
func (req *RecommendRequest) validate() error {
	req.Dish = strings.TrimSpace(req.Dish)
	if req.Dish == "" {
		return errors.New("dish is required")
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.Persona = strings.TrimSpace(req.Persona)
	if req.Persona == "" {
		req.Persona = sommelier.DefaultPersona
	}
	if req.MaxPrice < 0 {
		return errors.New("max_price must be non-negative")
	}
	return nil
}

func (req RecommendRequest) toSommelier() sommelier.Request {
	out := sommelier.DefaultRequest(req.CustomerName, req.Dish, req.Persona)
	if req.SaveResponse != nil {
		out.SaveResponse = *req.SaveResponse
	}
	out.IncludeBottles = req.IncludeBottles
	out.MaxPrice = req.MaxPrice
	return out
}

// recommendIn serves req on sess and builds the wire response.
func recommendIn(ctx context.Context, sess *session.Session, req RecommendRequest) RecommendResponse {
	sess.Touch()
	return recommendWith(ctx, sess.Sommelier, sess.ID, req)
}

// recommendWith serves req on s. sessionID is empty for the shared sommelier.
func recommendWith(ctx context.Context, s *sommelier.Sommelier, sessionID string, req RecommendRequest) RecommendResponse {
	res := s.Recommend(ctx, req.toSommelier())

	resp := RecommendResponse{
		SessionID:      sessionID,
		Recommendation: res.Text,
		Persona:        res.PersonaKey,
		PersonaName:    res.PersonaName,
		Degraded:       res.Degraded(),
		Varietal:       res.Varietal,
		Bottles:        res.Bottles,
	}
	if res.Reply != nil {
		resp.Backend = res.Reply.Backend
		resp.Model = res.Reply.Model
	}
	if res.Record != nil {
		resp.RecordID = res.Record.ID
	}
	if res.UnknownPersona() {
		resp.ErrorKind = ErrorKindUnknownPersona
	}
	return resp
}

// RecommendEndpoint handles POST /api/recommend.
type RecommendEndpoint struct{}

func (e *RecommendEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/recommend", e.handler
}

func (e *RecommendEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Recommend a wine
//	@Description	Ask one persona for a pairing. With session_id the interaction is served and recorded in that session.
//	@Description	With new_session a session is created first and its id returned.
//	@Description	Otherwise the request is served statelessly and nothing is recorded.
//	@Description	An unknown persona returns 200 with the message in text and error_kind unknown_persona.
//	@Tags			recommend
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RecommendRequest	true	"Recommendation request"
//	@Success		200		{object}	RecommendResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Router			/api/recommend [post]
func (e *RecommendEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch {
	case req.SessionID != "":
		sess, ok := lookupSession(w, r, req.SessionID)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, recommendIn(r.Context(), sess, req))

	case req.NewSession:
		sess, err := svcctx.SessionsFrom(r.Context()).Create(r.Context())
		if errors.Is(err, session.ErrMaxSessions) {
			writeError(w, http.StatusTooManyRequests, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, recommendIn(r.Context(), sess, req))

	default:
		s := svcctx.SommelierFrom(r.Context())
		if s == nil {
			writeError(w, http.StatusServiceUnavailable, "sommelier not initialized")
			return
		}
		// The shared sommelier keeps no history.
		save := false
		req.SaveResponse = &save
		writeJSON(w, http.StatusOK, recommendWith(r.Context(), s, "", req))
	}
}

func (e *RecommendEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req RecommendRequest
	var noSave bool
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Ask a sommelier persona for a wine pairing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if noSave {
				save := false
				req.SaveResponse = &save
			}
			client := api.NewClient(getServerURL())
			var resp RecommendResponse
			if err := client.Post(cmd.Context(), "/api/recommend", req, &resp); err != nil {
				return err
			}
			if api.GetOutputFormat() == api.OutputFormatText && resp.SessionID != "" && resp.ErrorKind == "" {
				fmt.Printf("Session: %s\n\n", resp.SessionID)
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&req.SessionID, "session", "", "Session ID to record the interaction in")
	cmd.Flags().BoolVar(&req.NewSession, "new-session", false, "Create a session for this recommendation")
	cmd.Flags().StringVar(&req.CustomerName, "name", "", "Customer name")
	cmd.Flags().StringVar(&req.Dish, "dish", "", "Dish description (required)")
	cmd.Flags().StringVar(&req.Persona, "persona", sommelier.DefaultPersona, "Persona key")
	cmd.Flags().BoolVar(&req.IncludeBottles, "bottles", false, "Append bottle suggestions")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not record the interaction in session history")
	cmd.Flags().IntVar(&req.MaxPrice, "max-price", 0, "Maximum bottle price (0 uses the server default)")
	cmd.MarkFlagRequired("dish")
	return cmd
}
