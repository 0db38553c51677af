package endpoints

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/sommelier/internal/api"
	"github.com/jackzampolin/sommelier/internal/interactions"
	"github.com/jackzampolin/sommelier/internal/svcctx"
)

// HistoryResponse is the response for GET /api/sessions/{id}/history.
type HistoryResponse struct {
	SessionID    string                 `json:"session_id"`
	Interactions []interactions.Summary `json:"interactions"`
	Total        int                    `json:"total"`
	Archived     bool                   `json:"archived,omitempty"`
}

// Text renders one line per interaction, oldest first.
func (r HistoryResponse) Text() string {
	if len(r.Interactions) == 0 {
		return "No interactions yet."
	}
	var b strings.Builder
	for i, s := range r.Interactions {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  %s  %-20s %s: %s",
			s.ID, s.Timestamp.Format("2006-01-02 15:04"), s.PersonaName, s.Customer, s.DishPreview)
	}
	return b.String()
}

// SessionHistoryEndpoint handles GET /api/sessions/{id}/history.
type SessionHistoryEndpoint struct{}

func (e *SessionHistoryEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/sessions/{id}/history", e.handler
}

func (e *SessionHistoryEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Session history
//	@Description	Saved recommendations for a session in call order, dish preview truncated to 50 characters.
//	@Description	Once a session has expired its history is served from the archive when one is configured, with archived set.
//	@Tags			history
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	HistoryResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/sessions/{id}/history [get]
func (e *SessionHistoryEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, err := svcctx.SessionsFrom(r.Context()).Get(id)
	if err != nil {
		if resp, ok := archivedHistory(r.Context(), id); ok {
			writeJSON(w, http.StatusOK, resp)
			return
		}
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	summaries := sess.History().Summaries()
	writeJSON(w, http.StatusOK, HistoryResponse{
		SessionID:    sess.ID,
		Interactions: summaries,
		Total:        len(summaries),
	})
}

// archivedHistory reads an expired session's history from the archive.
// It reports false when there is no archive or nothing was archived.
func archivedHistory(ctx context.Context, sessionID string) (HistoryResponse, bool) {
	archiver := svcctx.ArchiverFrom(ctx)
	if archiver == nil {
		return HistoryResponse{}, false
	}
	records, err := archiver.History(ctx, sessionID)
	if err != nil {
		svcctx.LoggerFrom(ctx).Warn("failed to read archived history",
			"session_id", sessionID,
			"error", err)
		return HistoryResponse{}, false
	}
	if len(records) == 0 {
		return HistoryResponse{}, false
	}
	summaries := make([]interactions.Summary, len(records))
	for i := range records {
		summaries[i] = records[i].Summarize()
	}
	return HistoryResponse{
		SessionID:    sessionID,
		Interactions: summaries,
		Total:        len(summaries),
		Archived:     true,
	}, true
}

func (e *SessionHistoryEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "history <session-id>",
		Short: "Show a session's saved recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HistoryResponse
			if err := client.Get(cmd.Context(), "/api/sessions/"+args[0]+"/history", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// GetRecordEndpoint handles GET /api/sessions/{id}/history/{record}.
type GetRecordEndpoint struct{}

func (e *GetRecordEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/sessions/{id}/history/{record}", e.handler
}

func (e *GetRecordEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get a saved recommendation
//	@Description	Full interaction record; "last" selects the most recent one
//	@Tags			history
//	@Produce		json
//	@Param			id		path		string	true	"Session ID"
//	@Param			record	path		string	true	"Record ID or last"
//	@Success		200		{object}	interactions.Record
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/sessions/{id}/history/{record} [get]
func (e *GetRecordEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	rec, ok := lookupRecord(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (e *GetRecordEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "record <session-id> <record-id|last>",
		Short: "Show one saved recommendation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var rec interactions.Record
			if err := client.Get(cmd.Context(), "/api/sessions/"+args[0]+"/history/"+args[1], &rec); err != nil {
				return err
			}
			return api.Output(rec)
		},
	}
}

// ExportRecordEndpoint handles GET /api/sessions/{id}/history/{record}/export.
type ExportRecordEndpoint struct{}

func (e *ExportRecordEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/sessions/{id}/history/{record}/export", e.handler
}

func (e *ExportRecordEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Export a saved recommendation
//	@Description	Plain-text export document, served as an attachment
//	@Tags			history
//	@Produce		plain
//	@Param			id		path		string	true	"Session ID"
//	@Param			record	path		string	true	"Record ID or last"
//	@Success		200		{string}	string
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/sessions/{id}/history/{record}/export [get]
func (e *ExportRecordEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	rec, ok := lookupRecord(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", interactions.ExportFilename(rec)))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(interactions.Export(rec)))
}

func (e *ExportRecordEndpoint) Command(getServerURL func() string) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export <session-id> <record-id|last>",
		Short: "Export a saved recommendation as text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			base := "/api/sessions/" + args[0] + "/history/" + args[1]
			if dir == "" {
				text, err := client.GetText(ctx, base+"/export")
				if err != nil {
					return err
				}
				fmt.Print(text)
				return nil
			}
			var rec interactions.Record
			if err := client.Get(ctx, base, &rec); err != nil {
				return err
			}
			path, err := interactions.WriteExport(dir, rec)
			if err != nil {
				return err
			}
			fmt.Printf("Exported to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Write the export file into this directory instead of stdout")
	return cmd
}

// lastRecordID selects the most recent record.
const lastRecordID = "last"

// lookupRecord resolves {id} and {record}, writing 404 for either miss.
func lookupRecord(w http.ResponseWriter, r *http.Request) (interactions.Record, bool) {
	sess, ok := lookupSession(w, r, r.PathValue("id"))
	if !ok {
		return interactions.Record{}, false
	}

	recordID := r.PathValue("record")
	if recordID == lastRecordID {
		rec, ok := sess.History().Last()
		if !ok {
			writeError(w, http.StatusNotFound, "no saved interactions")
			return interactions.Record{}, false
		}
		return rec, true
	}

	rec, err := sess.History().Get(recordID)
	if errors.Is(err, interactions.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return interactions.Record{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return interactions.Record{}, false
	}
	return rec, true
}
